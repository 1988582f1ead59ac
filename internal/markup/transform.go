// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/mkuroi/novelpack/pkg/types"
)

// NoPosition suppresses the numeric prefix on the rendered chapter title.
const NoPosition = 0

// embeddedImagePattern matches a line carrying an embedded-image
// placeholder: optional prefix text, [uploadedimage:<digits>], optional
// suffix text, anchored to the whole line.
var embeddedImagePattern = regexp.MustCompile(`^(.*)\[uploadedimage:(\d+)\](.*)$`)

// Transform converts one chapter's raw text into a structured document.
//
// Each empty source line becomes a hard line break. A non-empty line that
// matches the embedded-image placeholder becomes a paragraph of prefix
// text, image, suffix text; the placeholder key is resolved against the
// novel's embedded-image mapping and an unknown key is fatal. Any other
// line becomes a single verbatim paragraph. The metadata header holds the
// cover image, the title ("{position}. {title}" unless position is
// NoPosition), and the description as trusted raw markup. Image sources
// are rooted at imageDir.
func Transform(rec *types.SeriesRecord, novelID, position int, raw, imageDir string) (*Document, error) {
	novel, ok := rec.Novel(novelID)
	if !ok {
		return nil, fmt.Errorf("novel %d is not part of series %d", novelID, rec.SeriesID)
	}

	var body []Node
	for _, line := range splitLines(raw) {
		if line == "" {
			body = append(body, LineBreak{})
			continue
		}
		m := embeddedImagePattern.FindStringSubmatch(line)
		if m == nil {
			body = append(body, Paragraph{Runs: []Inline{Text{Value: line}}})
			continue
		}
		name, ok := novel.EmbeddedImages[m[2]]
		if !ok {
			return nil, &types.UnresolvedImageReferenceError{NovelID: novelID, Key: m[2]}
		}
		body = append(body, Paragraph{Runs: []Inline{
			Text{Value: m[1]},
			InlineImage{Src: path.Join(imageDir, name)},
			Text{Value: m[3]},
		}})
	}

	title := novel.Title
	if position != NoPosition {
		title = fmt.Sprintf("%d. %s", position, novel.Title)
	}

	meta := []Node{
		Image{Src: path.Join(imageDir, novel.CoverImageName)},
		Paragraph{Runs: []Inline{Text{Value: title}}},
		Paragraph{Runs: []Inline{Raw{Markup: novel.Description}}},
	}

	return &Document{Title: title, Meta: meta, Body: body}, nil
}

// splitLines splits raw text into physical lines, tolerating CRLF endings.
// A final newline terminates the last line rather than opening an empty one,
// so "\n" is one empty line and "" is no lines.
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
