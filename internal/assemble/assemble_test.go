// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuroi/novelpack/pkg/types"
)

func loneRecord() *types.SeriesRecord {
	return &types.SeriesRecord{
		AuthorName:  "Alice",
		SeriesID:    100,
		SeriesTitle: "Lone Tale",
		Novels: []types.NovelRecord{
			{
				NovelID:        100,
				Title:          "Lone Tale",
				Description:    "d",
				CoverImageName: "100.jpg",
			},
		},
	}
}

func writeData(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
}

func TestBuildDefaultFilename(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{
		"100.txt": []byte("first line\n\nsecond line\n"),
		"100.jpg": {0xff, 0xd8},
	})

	var progress bytes.Buffer
	res, err := Build(loneRecord(), types.BuildConfig{DataDir: dataDir, OutputDir: outDir}, &progress)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "[Alice] Lone Tale.epub"), res.OutputPath)
	assert.Equal(t, 1, res.Novels)
	assert.Equal(t, 1, res.Images)
	assert.FileExists(t, res.OutputPath)
	assert.Contains(t, progress.String(), "packing: 100")
}

func TestBuildTemplates(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{
		"100.txt": []byte("text"),
		"100.jpg": {0xff},
	})

	cfg := types.BuildConfig{
		DataDir:          dataDir,
		OutputDir:        outDir,
		TitleTemplate:    "%SERIES_TITLE% (%AUTHOR_NAME%)",
		FilenameTemplate: "%SERIES_ID%.epub",
	}
	res, err := Build(loneRecord(), cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "100.epub"), res.OutputPath)

	opf := archiveEntry(t, res.OutputPath, "OEBPS/content.opf")
	assert.Contains(t, opf, "<dc:title>Lone Tale (Alice)</dc:title>")
}

func TestBuildPositionPrefixInToc(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	rec := loneRecord()
	rec.Novels = append(rec.Novels, types.NovelRecord{
		NovelID:        200,
		Title:          "Second Tale",
		CoverImageName: "200.png",
	})
	writeData(t, dataDir, map[string][]byte{
		"100.txt": []byte("a"),
		"100.jpg": {1},
		"200.txt": []byte("b"),
		"200.png": {2},
	})

	cfg := types.BuildConfig{DataDir: dataDir, OutputDir: outDir, UsePositionPrefix: true}
	res, err := Build(rec, cfg, io.Discard)
	require.NoError(t, err)

	nav := archiveEntry(t, res.OutputPath, "OEBPS/nav.xhtml")
	assert.Contains(t, nav, ">1. Lone Tale</a>")
	assert.Contains(t, nav, ">2. Second Tale</a>")
}

func TestBuildEmbeddedImagesRegistered(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	rec := loneRecord()
	rec.Novels[0].EmbeddedImages = map[string]string{"7": "100-7.png"}
	writeData(t, dataDir, map[string][]byte{
		"100.txt":   []byte("see [uploadedimage:7] here"),
		"100.jpg":   {1},
		"100-7.png": {2},
	})

	res, err := Build(rec, types.BuildConfig{DataDir: dataDir, OutputDir: outDir}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Images)

	opf := archiveEntry(t, res.OutputPath, "OEBPS/content.opf")
	assert.Contains(t, opf, `href="image/100-7.png"`)
	assert.Contains(t, opf, `media-type="image/png"`)
}

func TestBuildExplicitCover(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{
		"100.txt":   []byte("text"),
		"100.jpg":   {1},
		"extra.png": {3},
	})

	cfg := types.BuildConfig{DataDir: dataDir, OutputDir: outDir, Cover: "extra.png"}
	res, err := Build(loneRecord(), cfg, io.Discard)
	require.NoError(t, err)

	cover := archiveEntry(t, res.OutputPath, "OEBPS/cover.xhtml")
	assert.Contains(t, cover, `src="image/extra.png"`)

	// An explicit cover that is absent falls back to the first novel's.
	cfg.Cover = "nope.png"
	res, err = Build(loneRecord(), cfg, io.Discard)
	require.NoError(t, err)
	cover = archiveEntry(t, res.OutputPath, "OEBPS/cover.xhtml")
	assert.Contains(t, cover, `src="image/100.jpg"`)
}

func TestBuildMissingChapterText(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{"100.jpg": {1}})

	_, err := Build(loneRecord(), types.BuildConfig{DataDir: dataDir, OutputDir: outDir}, io.Discard)
	var missing *types.MissingAssetError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Path, "100.txt")

	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no partial package may be written")
}

func TestBuildMissingCoverImage(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{"100.txt": []byte("text")})

	_, err := Build(loneRecord(), types.BuildConfig{DataDir: dataDir, OutputDir: outDir}, io.Discard)
	var missing *types.MissingAssetError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Path, "100.jpg")
}

func TestBuildInvalidOutputDir(t *testing.T) {
	dataDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{
		"100.txt": []byte("text"),
		"100.jpg": {1},
	})

	cfg := types.BuildConfig{DataDir: dataDir, OutputDir: filepath.Join(dataDir, "missing")}
	_, err := Build(loneRecord(), cfg, io.Discard)
	var invalid *types.InvalidOutputTargetError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildUnresolvedImageReferenceAborts(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	writeData(t, dataDir, map[string][]byte{
		"100.txt": []byte("[uploadedimage:9]"),
		"100.jpg": {1},
	})

	_, err := Build(loneRecord(), types.BuildConfig{DataDir: dataDir, OutputDir: outDir}, io.Discard)
	var unresolved *types.UnresolvedImageReferenceError
	require.ErrorAs(t, err, &unresolved)
}

func archiveEntry(t *testing.T, archivePath, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("entry %s not found in %s", name, archivePath)
	return ""
}
