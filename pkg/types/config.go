// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the canonical records, configuration, and error types
// shared across the novelpack pipeline.
package types

// BuildConfig holds settings for one package build.
type BuildConfig struct {
	// DataDir is the directory holding chapter texts ({novel_id}.txt) and
	// image files.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputDir is the directory the finished package is written to. It
	// must already exist.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TitleTemplate, when non-empty, is expanded against the series record
	// to produce the book title. Empty means the raw series title.
	TitleTemplate string `json:"title_template,omitempty" yaml:"title_template,omitempty"`

	// FilenameTemplate, when non-empty, is expanded against the series
	// record to produce the output file name. Empty selects the default
	// "[%AUTHOR_NAME%] %SERIES_TITLE%.epub".
	FilenameTemplate string `json:"filename_template,omitempty" yaml:"filename_template,omitempty"`

	// UsePositionPrefix prepends "N. " to each rendered chapter title,
	// reflecting its 1-based position in reading order.
	UsePositionPrefix bool `json:"use_position_prefix" yaml:"use_position_prefix"`

	// Cover is an optional path, relative to DataDir, to the image used as
	// the package cover. When empty or absent on disk the first novel's
	// cover is used.
	Cover string `json:"cover,omitempty" yaml:"cover,omitempty"`

	// Language is the package language code written into the book metadata
	// (default "en").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}
