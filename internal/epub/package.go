// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epub

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"
)

const (
	contentDir    = "OEBPS"
	coverPageFile = "cover.xhtml"

	idNav       = "nav"
	idNCX       = "ncx"
	idCoverPage = "cover-page"
)

const containerXML = xml.Header + `<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// opfPackage models the OPF package document.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Xmlns    string      `xml:"xmlns,attr"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	XmlnsDC    string        `xml:"xmlns:dc,attr"`
	Identifier opfIdentifier `xml:"dc:identifier"`
	Title      string        `xml:"dc:title"`
	Language   string        `xml:"dc:language"`
	Creator    string        `xml:"dc:creator"`
	Meta       []opfMeta     `xml:"meta"`
}

type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type opfMeta struct {
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Property string `xml:"property,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// opf renders the OPF package document: metadata, the full manifest, and the
// spine in fixed reading order (cover page, nav, chapters).
func (b *Book) opf() []byte {
	meta := opfMetadata{
		XmlnsDC:    "http://purl.org/dc/elements/1.1/",
		Identifier: opfIdentifier{ID: "book-id", Value: b.Identifier},
		Title:      b.Title,
		Language:   b.Language,
		Creator:    b.Author,
		Meta: []opfMeta{
			{Property: "dcterms:modified", Value: time.Now().UTC().Format("2006-01-02T15:04:05Z")},
		},
	}

	manifest := opfManifest{Items: []opfItem{
		{ID: idNav, Href: "nav.xhtml", MediaType: "application/xhtml+xml", Properties: "nav"},
		{ID: idNCX, Href: "toc.ncx", MediaType: "application/x-dtbncx+xml"},
	}}
	spine := opfSpine{Toc: idNCX}

	if b.cover != "" {
		manifest.Items = append(manifest.Items, opfItem{
			ID:        idCoverPage,
			Href:      coverPageFile,
			MediaType: "application/xhtml+xml",
		})
		spine.ItemRefs = append(spine.ItemRefs, opfItemRef{IDRef: idCoverPage})
	}
	spine.ItemRefs = append(spine.ItemRefs, opfItemRef{IDRef: idNav})

	for _, c := range b.chapters {
		manifest.Items = append(manifest.Items, opfItem{
			ID:        c.ID,
			Href:      c.FileName,
			MediaType: "application/xhtml+xml",
		})
		spine.ItemRefs = append(spine.ItemRefs, opfItemRef{IDRef: c.ID})
	}
	for _, img := range b.images {
		item := opfItem{ID: img.ID, Href: img.FileName, MediaType: img.MediaType}
		if img.FileName == b.cover {
			item.Properties = "cover-image"
			meta.Meta = append(meta.Meta, opfMeta{Name: "cover", Content: img.ID})
		}
		manifest.Items = append(manifest.Items, item)
	}

	pkg := opfPackage{
		Xmlns:    "http://www.idpf.org/2007/opf",
		Version:  "3.0",
		UniqueID: "book-id",
		Metadata: meta,
		Manifest: manifest,
		Spine:    spine,
	}

	out, err := xml.MarshalIndent(pkg, "", "  ")
	if err != nil {
		// The structs above marshal unconditionally.
		panic(err)
	}
	return append([]byte(xml.Header), append(out, '\n')...)
}

// ncxNCX models the legacy NCX table of contents kept for EPUB 2 readers.
type ncxNCX struct {
	XMLName   xml.Name      `xml:"ncx"`
	Xmlns     string        `xml:"xmlns,attr"`
	Version   string        `xml:"version,attr"`
	Head      []opfMeta     `xml:"head>meta"`
	DocTitle  ncxText       `xml:"docTitle"`
	NavPoints []ncxNavPoint `xml:"navMap>navPoint"`
}

type ncxText struct {
	Text string `xml:"text"`
}

type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     ncxText    `xml:"navLabel"`
	Content   ncxContent `xml:"content"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

func (b *Book) ncx() []byte {
	n := ncxNCX{
		Xmlns:   "http://www.daisy.org/z3986/2005/ncx/",
		Version: "2005-1",
		Head: []opfMeta{
			{Name: "dtb:uid", Content: b.Identifier},
			{Name: "dtb:depth", Content: "1"},
		},
		DocTitle: ncxText{Text: b.Title},
	}
	for i, c := range b.chapters {
		n.NavPoints = append(n.NavPoints, ncxNavPoint{
			ID:        c.ID,
			PlayOrder: i + 1,
			Label:     ncxText{Text: c.Title},
			Content:   ncxContent{Src: c.FileName},
		})
	}

	out, err := xml.MarshalIndent(n, "", "  ")
	if err != nil {
		panic(err)
	}
	return append([]byte(xml.Header), append(out, '\n')...)
}

// nav renders the EPUB 3 navigation document listing chapters in reading
// order.
func (b *Book) nav() []byte {
	var items strings.Builder
	for _, c := range b.chapters {
		fmt.Fprintf(&items, "      <li><a href=\"%s\">%s</a></li>\n",
			c.FileName, html.EscapeString(c.Title))
	}
	body := fmt.Sprintf(`  <nav epub:type="toc" id="toc">
    <h1>%s</h1>
    <ol>
%s    </ol>
  </nav>
`, html.EscapeString(b.Title), items.String())
	return documentShell(b.Title, body)
}

func (b *Book) coverPage() []byte {
	body := fmt.Sprintf("  <div class=\"cover\"><img src=\"%s\" alt=\"cover\"/></div>\n",
		html.EscapeString(b.cover))
	return documentShell(b.Title, body)
}

// documentXHTML wraps a rendered chapter body in a full XHTML document.
func documentXHTML(title, body string) []byte {
	return documentShell(title, body+"\n")
}

func documentShell(title, body string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body))
}
