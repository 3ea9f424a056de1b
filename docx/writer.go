package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/quizfixture/model"
)

// DefaultApplication is recorded in docProps/app.xml when the document
// metadata does not name a creator.
const DefaultApplication = "quizfixture"

// zipEpoch is stamped on every archive entry so that repeated writes of the
// same document produce the same package layout.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer serializes model documents as DOCX (Office Open XML) packages.
type Writer struct {
	// Now supplies the core-properties timestamps when the document
	// metadata leaves them unset. Nil uses time.Now.
	Now func() time.Time
}

// part is a single file inside the package.
type part struct {
	name string
	data []byte
}

// Write serializes doc to w using a default Writer.
func Write(w io.Writer, doc *model.Document) error {
	return (&Writer{}).Write(w, doc)
}

// Save writes doc to path using a default Writer.
func Save(path string, doc *model.Document) error {
	return (&Writer{}).Save(path, doc)
}

// Write serializes doc to w.
func (wr *Writer) Write(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	zw := zip.NewWriter(w)
	for _, p := range wr.parts(doc) {
		hdr := &zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing ZIP archive: %w", err)
	}
	return nil
}

// Save writes doc to path, replacing any existing file. The package is
// written to a temporary file in the same directory and renamed into place,
// so a failed save never leaves a partial file at path. The document is
// frozen after a successful save.
func (wr *Writer) Save(path string, doc *model.Document) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := wr.Write(tmp, doc); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}

	doc.Freeze()
	return nil
}

// parts returns the package parts in the order they are archived.
func (wr *Writer) parts(doc *model.Document) []part {
	return []part{
		{"[Content_Types].xml", contentTypesPart()},
		{"_rels/.rels", packageRelsPart()},
		{"docProps/core.xml", wr.corePart(doc.Metadata)},
		{"docProps/app.xml", appPart(doc.Metadata)},
		{"word/document.xml", documentPart(doc)},
		{"word/styles.xml", stylesPart()},
		{"word/_rels/document.xml.rels", documentRelsPart()},
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func contentTypesPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + nsTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return b.Bytes()
}

func packageRelsPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsRels + `">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + nsR + `/officeDocument" Target="word/document.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="` + nsRels + `/metadata/core-properties" Target="docProps/core.xml"/>`)
	b.WriteString(`<Relationship Id="rId3" Type="` + nsR + `/extended-properties" Target="docProps/app.xml"/>`)
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func documentRelsPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsRels + `">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + nsR + `/styles" Target="styles.xml"/>`)
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func (wr *Writer) corePart(meta model.Metadata) []byte {
	now := time.Now
	if wr.Now != nil {
		now = wr.Now
	}
	created := meta.CreationDate
	if created.IsZero() {
		created = now()
	}
	modified := meta.ModDate
	if modified.IsZero() {
		modified = created
	}

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="` + nsCP + `" xmlns:dc="` + nsDC +
		`" xmlns:dcterms="` + nsDCTerms + `" xmlns:xsi="` + nsXSI + `">`)
	writeElement(&b, "dc:title", meta.Title)
	writeElement(&b, "dc:subject", meta.Subject)
	writeElement(&b, "dc:creator", meta.Author)
	writeElement(&b, "cp:keywords", strings.Join(meta.Keywords, ", "))
	writeElement(&b, "cp:revision", "1")
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + created.UTC().Format(time.RFC3339) + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + modified.UTC().Format(time.RFC3339) + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.Bytes()
}

func appPart(meta model.Metadata) []byte {
	app := meta.Creator
	if app == "" {
		app = DefaultApplication
	}

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="` + nsExtProps + `">`)
	writeElement(&b, "Application", app)
	b.WriteString(`</Properties>`)
	return b.Bytes()
}

func documentPart(doc *model.Document) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)

	for _, block := range doc.Blocks {
		switch el := block.(type) {
		case *model.Heading:
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + el.StyleID() + `"/></w:pPr>`)
			writeRun(&b, model.Run{Text: el.Text})
			b.WriteString(`</w:p>`)
		case *model.Paragraph:
			b.WriteString(`<w:p>`)
			for _, r := range el.Runs {
				writeRun(&b, r)
			}
			b.WriteString(`</w:p>`)
		}
	}

	// US Letter, one-inch margins
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.Bytes()
}

// writeRun emits a <w:r>. Newlines become <w:br/> and tabs <w:tab/> so the
// run reads back with the same text.
func writeRun(b *bytes.Buffer, r model.Run) {
	b.WriteString(`<w:r>`)
	if r.Highlighted() {
		b.WriteString(`<w:rPr><w:highlight w:val="` + r.Highlight.String() + `"/></w:rPr>`)
	}

	text := norm.NFC.String(r.Text)
	start := 0
	for i, c := range text {
		if c != '\n' && c != '\t' {
			continue
		}
		writeText(b, text[start:i])
		if c == '\n' {
			b.WriteString(`<w:br/>`)
		} else {
			b.WriteString(`<w:tab/>`)
		}
		start = i + 1
	}
	writeText(b, text[start:])

	b.WriteString(`</w:r>`)
}

func writeText(b *bytes.Buffer, s string) {
	if s == "" {
		return
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	xml.EscapeText(b, []byte(s))
	b.WriteString(`</w:t>`)
}

func writeElement(b *bytes.Buffer, name, value string) {
	if value == "" {
		b.WriteString(`<` + name + `/>`)
		return
	}
	b.WriteString(`<` + name + `>`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`</` + name + `>`)
}

// Title is 28pt; Heading1..9 step down from 16pt.
func stylesPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + nsW + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="SimSun" w:cs="Times New Roman"/>` +
		`<w:sz w:val="22"/><w:lang w:val="en-US" w:eastAsia="zh-CN"/>` +
		`</w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>`)

	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
		`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:spacing w:after="300"/></w:pPr>` +
		`<w:rPr><w:sz w:val="56"/></w:rPr></w:style>`)

	for level := 1; level <= 9; level++ {
		id := "Heading" + strconv.Itoa(level)
		size := 32 - (level-1)*2
		if size < 22 {
			size = 22
		}
		b.WriteString(`<w:style w:type="paragraph" w:styleId="` + id + `"><w:name w:val="heading ` + strconv.Itoa(level) + `"/>` +
			`<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
			`<w:pPr><w:keepNext/><w:outlineLvl w:val="` + strconv.Itoa(level-1) + `"/></w:pPr>` +
			`<w:rPr><w:b/><w:sz w:val="` + strconv.Itoa(size) + `"/></w:rPr></w:style>`)
	}

	b.WriteString(`</w:styles>`)
	return b.Bytes()
}
