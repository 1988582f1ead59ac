// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexID is an identifier field that the export schema encodes as either a
// JSON string or a JSON number, depending on the crawler version.
type FlexID string

// UnmarshalJSON accepts both encodings and stores the value as a string.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex id is neither string nor number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// NovelMeta is the per-novel sub-object of an export fragment.
type NovelMeta struct {
	// ID is the novel identifier.
	ID int `json:"id"`

	// Title is the novel title.
	Title string `json:"title"`

	// Description is the novel description as the crawler captured it.
	Description string `json:"description"`

	// CoverURL is the remote URL of the cover image; only its extension is
	// consumed when synthesizing local image names.
	CoverURL string `json:"coverUrl"`

	// EmbeddedImages maps placeholder keys found in the chapter text to the
	// remote URLs of the corresponding images. Nil when the chapter embeds
	// no images.
	EmbeddedImages map[string]string `json:"embeddedImages"`
}

// ExportFragment is one unit of the crawler's JSON export: either a series
// container or a single novel entry.
type ExportFragment struct {
	// User is the author display name.
	User string `json:"user"`

	// UserID is the author account id (string or number in the wild).
	UserID FlexID `json:"userId"`

	// SeriesID is the series grouping id, null when the export is a lone
	// novel with no series.
	SeriesID *int `json:"seriesId"`

	// SeriesTitle is the series title, null or empty for lone novels.
	SeriesTitle *string `json:"seriesTitle"`

	// ID is the entry id, used as the series id fallback.
	ID *int `json:"id"`

	// Title is the entry title, used as the series title fallback.
	Title string `json:"title"`

	// NovelMeta carries the novel body metadata. Fragments without it
	// (series container records) contribute no novel.
	NovelMeta *NovelMeta `json:"novelMeta"`
}

// NovelRecord is the canonical, immutable record for one novel in a series.
type NovelRecord struct {
	// NovelID is the unique novel key within the series.
	NovelID int `json:"novel_id" yaml:"novel_id"`

	// Title is the novel title.
	Title string `json:"title" yaml:"title"`

	// Description is raw inline markup taken verbatim from the export. It
	// is trusted and rendered unescaped, matching the upstream tool.
	Description string `json:"description" yaml:"description"`

	// CoverImageName is the synthesized local cover file name,
	// "{novel_id}.{ext}".
	CoverImageName string `json:"cover_image_name" yaml:"cover_image_name"`

	// EmbeddedImages maps placeholder keys to synthesized local file names,
	// "{novel_id}-{key}.{ext}". Nil means the chapter text must contain no
	// embedded-image placeholders.
	EmbeddedImages map[string]string `json:"embedded_images,omitempty" yaml:"embedded_images,omitempty"`
}

// SeriesRecord is the canonical record for one series build. It is
// constructed once per run by the aggregator and read-only afterwards.
type SeriesRecord struct {
	// AuthorID is the author account id, empty when the export omits it.
	AuthorID string `json:"author_id,omitempty" yaml:"author_id,omitempty"`

	// AuthorName is the author display name.
	AuthorName string `json:"author_name" yaml:"author_name"`

	// SeriesID is the series id, falling back to the lone novel's id when
	// the export has no series grouping.
	SeriesID int `json:"series_id" yaml:"series_id"`

	// SeriesTitle is the series title, falling back to the lone novel's
	// title when absent or empty.
	SeriesTitle string `json:"series_title" yaml:"series_title"`

	// Novels holds the member novels sorted ascending by NovelID. This is
	// the canonical reading order and table-of-contents order.
	Novels []NovelRecord `json:"novels" yaml:"novels"`
}

// Novel returns the member novel with the given id.
func (r *SeriesRecord) Novel(id int) (*NovelRecord, bool) {
	for i := range r.Novels {
		if r.Novels[i].NovelID == id {
			return &r.Novels[i], true
		}
	}
	return nil, false
}

// ImageExt returns the extension part of an image URL or file name the way
// the export pipeline derives it: everything after the final dot, or the
// whole string when there is no dot.
func ImageExt(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ImageStem returns the part of an image file name before the first dot,
// used as the unique asset identifier inside the package.
func ImageStem(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
