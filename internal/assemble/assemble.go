// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble drives a full package build: it loads chapter texts and
// image assets, transforms content, establishes reading order, and hands the
// finished manifest to the package writer.
package assemble

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/mkuroi/novelpack/internal/epub"
	"github.com/mkuroi/novelpack/internal/markup"
	"github.com/mkuroi/novelpack/internal/placeholder"
	"github.com/mkuroi/novelpack/pkg/types"
)

// imageDir is the asset directory inside the package.
const imageDir = "image"

// Result summarizes a finished build.
type Result struct {
	// OutputPath is the path of the written package file.
	OutputPath string

	// Novels is the number of content documents packaged.
	Novels int

	// Images is the number of binary image assets registered.
	Images int
}

// Build assembles the series into one package file and returns its path.
//
// The build is fail-fast and strictly ordered: title resolution, package
// cover resolution, per-novel transform and asset registration in ascending
// novel id order, output name resolution, then a single hand-off to the
// package writer. Any missing file or unresolved reference aborts the run.
// Progress lines are written to w.
func Build(rec *types.SeriesRecord, cfg types.BuildConfig, w io.Writer) (*Result, error) {
	if fi, err := os.Stat(cfg.OutputDir); err != nil || !fi.IsDir() {
		return nil, &types.InvalidOutputTargetError{Path: cfg.OutputDir}
	}

	title := rec.SeriesTitle
	if cfg.TitleTemplate != "" {
		title = placeholder.Expand(rec, cfg.TitleTemplate)
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}

	book := &epub.Book{
		Title:      title,
		Author:     rec.AuthorName,
		Language:   language,
		Identifier: fmt.Sprintf("urn:novelpack:series:%d", rec.SeriesID),
	}

	registered := make(map[string]bool)
	images := 0
	addImage := func(name string) error {
		if registered[name] {
			return nil
		}
		content, err := os.ReadFile(filepath.Join(cfg.DataDir, name))
		if err != nil {
			return &types.MissingAssetError{Path: filepath.Join(cfg.DataDir, name), Cause: err}
		}
		book.AddImage(epub.Image{
			ID:        types.ImageStem(name),
			FileName:  imageDir + "/" + name,
			MediaType: "image/" + types.ImageExt(name),
			Content:   content,
		})
		registered[name] = true
		images++
		return nil
	}

	cover, err := resolveCover(rec, cfg)
	if err != nil {
		return nil, err
	}

	for idx, novel := range rec.Novels {
		chapterPath := filepath.Join(cfg.DataDir, fmt.Sprintf("%d.txt", novel.NovelID))
		raw, err := os.ReadFile(chapterPath)
		if err != nil {
			return nil, &types.MissingAssetError{Path: chapterPath, Cause: err}
		}

		position := markup.NoPosition
		if cfg.UsePositionPrefix {
			position = idx + 1
		}
		doc, err := markup.Transform(rec, novel.NovelID, position, string(raw), imageDir)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "packing: %d (%s)\n", novel.NovelID, doc.Title)

		book.AddChapter(epub.Chapter{
			ID:       "chapter-" + strconv.Itoa(novel.NovelID),
			FileName: fmt.Sprintf("%d.xhtml", novel.NovelID),
			Title:    doc.Title,
			Body:     doc.XHTML(),
		})

		if err := addImage(novel.CoverImageName); err != nil {
			return nil, err
		}
		for _, key := range sortedKeys(novel.EmbeddedImages) {
			if err := addImage(novel.EmbeddedImages[key]); err != nil {
				return nil, err
			}
		}
	}

	if err := addImage(cover); err != nil {
		return nil, err
	}
	book.SetCover(imageDir + "/" + cover)

	filename := placeholder.DefaultFilenameTemplate
	if cfg.FilenameTemplate != "" {
		filename = cfg.FilenameTemplate
	}
	outPath := filepath.Join(cfg.OutputDir, placeholder.Expand(rec, filename))

	if err := book.WriteFile(outPath); err != nil {
		return nil, err
	}
	return &Result{OutputPath: outPath, Novels: len(rec.Novels), Images: images}, nil
}

// resolveCover picks the package-level cover: the explicit one when it
// exists under the data directory, otherwise the first novel's cover.
func resolveCover(rec *types.SeriesRecord, cfg types.BuildConfig) (string, error) {
	if cfg.Cover != "" {
		if _, err := os.Stat(filepath.Join(cfg.DataDir, cfg.Cover)); err == nil {
			return cfg.Cover, nil
		}
	}
	if len(rec.Novels) == 0 {
		return "", &types.MalformedInputError{Reason: "series has no novels to package"}
	}
	return rec.Novels[0].CoverImageName, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
