// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"html"
	"strings"
)

// XHTML renders the document tree as an XHTML body snippet: the metadata
// header in a novel_meta div, a horizontal rule, then the chapter body in a
// novel_content div. Text runs are escaped; Raw runs are emitted verbatim.
func (d *Document) XHTML() string {
	var b strings.Builder
	b.WriteString(`<div class="novel_meta">`)
	writeNodes(&b, d.Meta)
	b.WriteString("</div><hr/>")
	b.WriteString(`<div class="novel_content">`)
	writeNodes(&b, d.Body)
	b.WriteString("</div>")
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Paragraph:
			b.WriteString("<p>")
			for _, run := range n.Runs {
				writeInline(b, run)
			}
			b.WriteString("</p>")
		case LineBreak:
			b.WriteString("<br/>")
		case Image:
			writeImg(b, n.Src)
		}
	}
}

func writeInline(b *strings.Builder, run Inline) {
	switch run := run.(type) {
	case Text:
		if run.Value != "" {
			b.WriteString(html.EscapeString(run.Value))
		}
	case InlineImage:
		writeImg(b, run.Src)
	case Raw:
		b.WriteString(run.Markup)
	}
}

func writeImg(b *strings.Builder, src string) {
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`"/>`)
}
