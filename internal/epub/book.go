// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package epub writes an assembled book manifest as an EPUB 3 container.
// The writer takes metadata, an ordered chapter list, and binary image
// assets, and emits a single archive; it performs no content inspection.
package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Chapter is one content document in reading order.
type Chapter struct {
	// ID is the manifest identifier, unique within the book.
	ID string

	// FileName is the document path inside the package, e.g. "1203.xhtml".
	FileName string

	// Title is the table-of-contents label.
	Title string

	// Body is the rendered XHTML body content.
	Body string
}

// Image is one binary image asset.
type Image struct {
	// ID is the manifest identifier, unique within the book.
	ID string

	// FileName is the asset path inside the package, e.g. "image/1203.jpg".
	FileName string

	// MediaType is the asset media type, e.g. "image/jpg".
	MediaType string

	// Content is the raw file content.
	Content []byte
}

// Book accumulates metadata, chapters, and assets, then writes the archive.
// The zero value is not usable; metadata fields must be set before Write.
type Book struct {
	Title      string
	Author     string
	Language   string
	Identifier string

	cover    string // FileName of the registered image used as package cover
	chapters []Chapter
	images   []Image
}

// AddChapter appends a content document to the reading order.
func (b *Book) AddChapter(c Chapter) {
	b.chapters = append(b.chapters, c)
}

// AddImage registers a binary image asset.
func (b *Book) AddImage(img Image) {
	b.images = append(b.images, img)
}

// SetCover selects a registered image, by package file name, as the book
// cover. The writer emits a cover page for it as the first spine entry.
func (b *Book) SetCover(fileName string) {
	b.cover = fileName
}

// WriteFile writes the archive to path. The archive is written to a
// temporary file in the same directory and renamed into place on success,
// so a failed write leaves nothing at path.
func (b *Book) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := b.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Write emits the EPUB container: the stored mimetype entry first, then
// META-INF/container.xml, the OPF package document, the EPUB 3 nav document
// plus a legacy NCX, the cover page, the chapters, and the image assets.
func (b *Book) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	// The mimetype entry must be first and uncompressed.
	mt, err := zw.CreateHeader(&zip.FileHeader{
		Name:     "mimetype",
		Method:   zip.Store,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	if _, err := mt.Write([]byte("application/epub+zip")); err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}

	type entry struct {
		name    string
		content []byte
	}
	entries := []entry{
		{"META-INF/container.xml", []byte(containerXML)},
		{contentDir + "/content.opf", b.opf()},
		{contentDir + "/nav.xhtml", b.nav()},
		{contentDir + "/toc.ncx", b.ncx()},
	}
	if b.cover != "" {
		entries = append(entries, entry{contentDir + "/" + coverPageFile, b.coverPage()})
	}
	for _, c := range b.chapters {
		entries = append(entries, entry{contentDir + "/" + c.FileName, documentXHTML(c.Title, c.Body)})
	}
	for _, img := range b.images {
		entries = append(entries, entry{contentDir + "/" + img.FileName, img.Content})
	}

	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("writing %s: %w", e.name, err)
		}
		if _, err := f.Write(e.content); err != nil {
			return fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
