// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup transforms raw chapter text into a typed document tree and
// renders it as XHTML for the package writer.
package markup

// Node is a block-level element of a chapter document.
type Node interface{ node() }

// Inline is a run inside a paragraph.
type Inline interface{ inline() }

// Paragraph is one paragraph holding an ordered list of inline runs.
type Paragraph struct {
	Runs []Inline
}

// LineBreak is a hard line break produced by an empty source line.
type LineBreak struct{}

// Image is a block-level image, used for novel covers.
type Image struct {
	Src string
}

func (Paragraph) node() {}
func (LineBreak) node() {}
func (Image) node()     {}

// Text is a plain text run; the renderer escapes it.
type Text struct {
	Value string
}

// InlineImage is an image embedded inside a paragraph.
type InlineImage struct {
	Src string
}

// Raw is trusted inline markup inserted verbatim, without escaping.
type Raw struct {
	Markup string
}

func (Text) inline()        {}
func (InlineImage) inline() {}
func (Raw) inline()         {}

// Document is one chapter's structured content: a metadata header (cover
// image, rendered title, description) followed by the chapter body. The
// renderer separates the two with a horizontal rule.
type Document struct {
	// Title is the rendered chapter title, including the optional
	// position prefix. It doubles as the table-of-contents label.
	Title string

	Meta []Node
	Body []Node
}
