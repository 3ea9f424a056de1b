// Package docx provides DOCX (Office Open XML) document reading and writing.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/quizfixture/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.Reader
	closer     io.Closer
	document   *documentXML
	styles     *stylesXML
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	paragraphs []Paragraph
}

// Paragraph is a body paragraph with its style resolved.
type Paragraph struct {
	Text      string
	StyleID   string
	StyleName string
	IsHeading bool
	Level     int // heading level (0 for Title, 1-9), 0 for non-headings
	Runs      []Run
}

// Run is a text run with the formatting the reader understands.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Highlight model.HighlightColor
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads a DOCX package from ra, which holds size bytes.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Styles first so heading detection can consult them.
	if err := r.parseStyles(); err != nil {
		// Styles are optional - just continue without them
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Parse metadata (optional)
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Paragraphs returns every body paragraph in document order, including
// empty ones.
func (r *Reader) Paragraphs() []Paragraph {
	return r.paragraphs
}

// Text extracts and returns all text content from the document.
func (r *Reader) Text() (string, error) {
	if r.document == nil {
		return "", fmt.Errorf("document not parsed")
	}

	var result strings.Builder
	for i, para := range r.paragraphs {
		if i > 0 {
			result.WriteString("\n")
			if para.IsHeading {
				result.WriteString("\n") // Extra blank line before headings
			}
		}
		result.WriteString(para.Text)
	}

	return result.String(), nil
}

// Document returns a model.Document representation of the DOCX content.
// Paragraphs without text are dropped.
func (r *Reader) Document() (*model.Document, error) {
	if r.document == nil {
		return nil, fmt.Errorf("document not parsed")
	}

	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	for _, para := range r.paragraphs {
		if para.Text == "" {
			continue
		}

		if para.IsHeading {
			doc.AddHeading(para.Text, para.Level)
			continue
		}

		p := doc.AddParagraph()
		for _, run := range para.Runs {
			p.AddRun(run.Text, run.Highlight)
		}
	}

	return doc, nil
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Custom: make(map[string]string)}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		if r.coreProps.Keywords != "" {
			meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
			for i, kw := range meta.Keywords {
				meta.Keywords[i] = strings.TrimSpace(kw)
			}
		}
		meta.CreationDate, _ = time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Created))
		meta.ModDate, _ = time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Modified))
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	// Process paragraphs
	r.processParagraphs()

	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return err
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		return err
	}
	r.styles = styles
	return nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// processParagraphs processes all paragraphs in the document.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]Paragraph, 0, len(r.document.Body.Paragraphs))

	for _, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(p))
	}
}

// processParagraph processes a single paragraph.
func (r *Reader) processParagraph(p paragraphXML) Paragraph {
	parsed := Paragraph{
		StyleID: p.Properties.Style.Val,
	}

	// Extract text from runs
	var textParts []string
	for _, run := range p.Runs {
		runText := extractRunText(run)
		if runText == "" {
			continue
		}
		textParts = append(textParts, runText)
		parsed.Runs = append(parsed.Runs, Run{
			Text:      runText,
			Bold:      run.Properties.Bold.set(),
			Italic:    run.Properties.Italic.set(),
			Highlight: model.ParseHighlight(run.Properties.Highlight.Val),
		})
	}
	parsed.Text = strings.Join(textParts, "")

	// Detect heading from style
	if parsed.StyleID != "" {
		parsed.IsHeading, parsed.Level = r.isHeadingStyle(parsed.StyleID)
		if r.styles != nil {
			for _, style := range r.styles.Styles {
				if style.StyleID == parsed.StyleID {
					parsed.StyleName = style.Name.Val
					break
				}
			}
		}
	} else if lvl := parseOutlineLevel(p.Properties.OutlineLvl.Val); p.Properties.OutlineLvl.Val != "" && lvl >= 0 {
		parsed.IsHeading, parsed.Level = true, lvl+1
	}

	return parsed
}

// extractRunText extracts text from a run element.
func extractRunText(run runXML) string {
	return norm.NFC.String(strings.Join(run.Content, ""))
}

// isHeadingStyle determines if a style ID represents a heading.
func (r *Reader) isHeadingStyle(styleID string) (bool, int) {
	// Check for built-in heading styles
	lower := strings.ToLower(styleID)

	// Standard Word heading style IDs
	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 0,
	}

	if level, ok := headingMap[lower]; ok {
		return true, level
	}

	// Check style definitions for outline level
	if r.styles != nil {
		for _, style := range r.styles.Styles {
			if strings.EqualFold(style.StyleID, styleID) {
				if style.PPr.OutlineLvl.Val != "" {
					// OutlineLvl is 0-based in OOXML
					if level := parseOutlineLevel(style.PPr.OutlineLvl.Val); level >= 0 {
						return true, level + 1
					}
				}
				// Check if style name contains "heading"
				if strings.Contains(strings.ToLower(style.Name.Val), "heading") {
					return true, 1 // Default to H1 if we can't determine level
				}
			}
		}
	}

	return false, 0
}

// parseOutlineLevel parses an outline level string to an integer.
func parseOutlineLevel(s string) int {
	level := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			level = level*10 + int(c-'0')
		}
	}
	if level >= 0 && level <= 8 {
		return level
	}
	return -1
}
