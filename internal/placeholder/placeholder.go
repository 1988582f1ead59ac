// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package placeholder expands %NAME% tokens in title and file-name
// templates against a canonical series record.
package placeholder

import (
	"strconv"
	"strings"
	"time"

	"github.com/mkuroi/novelpack/pkg/types"
)

// DefaultFilenameTemplate is the output file name used when no
// filename template is supplied.
const DefaultFilenameTemplate = "[%AUTHOR_NAME%] %SERIES_TITLE%.epub"

// nowFunc is replaced in tests for a deterministic %TIMESTAMP%.
var nowFunc = time.Now

// Expand replaces the five fixed tokens in template with values from the
// record: %AUTHOR_NAME%, %AUTHOR_ID%, %SERIES_TITLE%, %SERIES_ID%, and
// %TIMESTAMP% (wall-clock Unix seconds at call time). Each token is
// replaced globally, one token at a time in that fixed order; replacement
// is literal and does not recurse. Unrecognized %...% tokens pass through
// untouched.
func Expand(rec *types.SeriesRecord, template string) string {
	out := template
	out = strings.ReplaceAll(out, "%AUTHOR_NAME%", rec.AuthorName)
	out = strings.ReplaceAll(out, "%AUTHOR_ID%", rec.AuthorID)
	out = strings.ReplaceAll(out, "%SERIES_TITLE%", rec.SeriesTitle)
	out = strings.ReplaceAll(out, "%SERIES_ID%", strconv.Itoa(rec.SeriesID))
	out = strings.ReplaceAll(out, "%TIMESTAMP%", strconv.FormatInt(nowFunc().Unix(), 10))
	return out
}

// Validate checks an untyped template value, as read from the config file.
// Non-string values are rejected with InvalidTemplateError.
func Validate(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &types.InvalidTemplateError{Value: v}
	}
	return s, nil
}
