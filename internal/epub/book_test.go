// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epub

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testBook() *Book {
	b := &Book{
		Title:      "Long Road",
		Author:     "Alice",
		Language:   "en",
		Identifier: "urn:novelpack:series:42",
	}
	b.AddChapter(Chapter{ID: "chapter-10", FileName: "10.xhtml", Title: "First", Body: "<p>one</p>"})
	b.AddChapter(Chapter{ID: "chapter-20", FileName: "20.xhtml", Title: "2. Second", Body: "<p>two</p>"})
	b.AddImage(Image{ID: "10", FileName: "image/10.jpg", MediaType: "image/jpg", Content: []byte{0xff, 0xd8}})
	b.SetCover("image/10.jpg")
	return b
}

func writeAndReopen(t *testing.T, b *Book) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := b.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopening archive: %v", err)
	}
	return zr
}

func readEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func TestWriteFileLeavesOnlyFinalArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.epub")

	if err := testBook().WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.epub" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Fatalf("directory contents = %v, want only the final archive", names)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("archive at final path is not readable: %v", err)
	}
	zr.Close()
}

func TestWriteFileFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out.epub")

	if err := testBook().WriteFile(path); err == nil {
		t.Fatal("WriteFile into a nonexistent directory should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Stat(%s) = %v, want the output path untouched", path, err)
	}
}

func TestWriteMimetypeFirstAndStored(t *testing.T) {
	zr := writeAndReopen(t, testBook())

	first := zr.File[0]
	if first.Name != "mimetype" {
		t.Fatalf("first entry = %q, want mimetype", first.Name)
	}
	if first.Method != zip.Store {
		t.Errorf("mimetype method = %d, want stored", first.Method)
	}
	if got := readEntry(t, zr, "mimetype"); got != "application/epub+zip" {
		t.Errorf("mimetype = %q", got)
	}
}

func TestWriteContainerPointsAtPackageDocument(t *testing.T) {
	zr := writeAndReopen(t, testBook())
	container := readEntry(t, zr, "META-INF/container.xml")
	if !strings.Contains(container, `full-path="OEBPS/content.opf"`) {
		t.Errorf("container.xml missing rootfile path: %s", container)
	}
	readEntry(t, zr, "OEBPS/content.opf")
}

func TestWriteSpineOrder(t *testing.T) {
	zr := writeAndReopen(t, testBook())
	opf := readEntry(t, zr, "OEBPS/content.opf")

	cover := strings.Index(opf, `idref="cover-page"`)
	nav := strings.Index(opf, `idref="nav"`)
	first := strings.Index(opf, `idref="chapter-10"`)
	second := strings.Index(opf, `idref="chapter-20"`)
	if !(cover >= 0 && cover < nav && nav < first && first < second) {
		t.Errorf("spine order wrong: cover=%d nav=%d first=%d second=%d\n%s",
			cover, nav, first, second, opf)
	}
}

func TestWriteMetadataAndCover(t *testing.T) {
	zr := writeAndReopen(t, testBook())
	opf := readEntry(t, zr, "OEBPS/content.opf")

	for _, want := range []string{
		"<dc:title>Long Road</dc:title>",
		"<dc:creator>Alice</dc:creator>",
		"<dc:language>en</dc:language>",
		"urn:novelpack:series:42",
		`properties="cover-image"`,
	} {
		if !strings.Contains(opf, want) {
			t.Errorf("opf missing %q:\n%s", want, opf)
		}
	}

	coverPage := readEntry(t, zr, "OEBPS/cover.xhtml")
	if !strings.Contains(coverPage, `<img src="image/10.jpg"`) {
		t.Errorf("cover page missing cover image: %s", coverPage)
	}
}

func TestWriteNavAndNCXListChapters(t *testing.T) {
	zr := writeAndReopen(t, testBook())

	nav := readEntry(t, zr, "OEBPS/nav.xhtml")
	if !strings.Contains(nav, `<a href="10.xhtml">First</a>`) ||
		!strings.Contains(nav, `<a href="20.xhtml">2. Second</a>`) {
		t.Errorf("nav missing chapter links: %s", nav)
	}

	ncx := readEntry(t, zr, "OEBPS/toc.ncx")
	if !strings.Contains(ncx, `src="10.xhtml"`) || !strings.Contains(ncx, "<text>2. Second</text>") {
		t.Errorf("ncx missing nav points: %s", ncx)
	}
}

func TestWriteChapterAndImageContent(t *testing.T) {
	zr := writeAndReopen(t, testBook())

	ch := readEntry(t, zr, "OEBPS/10.xhtml")
	if !strings.Contains(ch, "<p>one</p>") {
		t.Errorf("chapter body missing: %s", ch)
	}
	if !strings.Contains(ch, "<title>First</title>") {
		t.Errorf("chapter title missing: %s", ch)
	}

	img := readEntry(t, zr, "OEBPS/image/10.jpg")
	if img != string([]byte{0xff, 0xd8}) {
		t.Errorf("image content mangled")
	}
}
