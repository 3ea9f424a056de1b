package model

import (
	"strings"
	"time"
)

// Document represents a word-processing document as an ordered block tree.
type Document struct {
	Metadata Metadata
	Blocks   []Block

	frozen bool
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Blocks: make([]Block, 0),
	}
}

// AddHeading appends a heading block. Level 0 is the document title;
// levels 1-9 are section headings.
func (d *Document) AddHeading(text string, level int) *Heading {
	d.mustBeMutable()
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	h := &Heading{Level: level, Text: text}
	d.Blocks = append(d.Blocks, h)
	return h
}

// AddParagraph appends a paragraph. If text is non-empty it becomes the
// paragraph's first, unhighlighted run.
func (d *Document) AddParagraph(text ...string) *Paragraph {
	d.mustBeMutable()
	p := &Paragraph{doc: d}
	for _, t := range text {
		p.AddText(t)
	}
	d.Blocks = append(d.Blocks, p)
	return p
}

// Freeze marks the document as saved. Any later append panics.
func (d *Document) Freeze() {
	d.frozen = true
}

// Frozen reports whether Freeze has been called.
func (d *Document) Frozen() bool {
	return d.frozen
}

func (d *Document) mustBeMutable() {
	if d != nil && d.frozen {
		panic("model: document modified after it was saved")
	}
}

// Headings returns all heading blocks in order.
func (d *Document) Headings() []*Heading {
	var out []*Heading
	for _, b := range d.Blocks {
		if h, ok := b.(*Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

// Paragraphs returns all paragraph blocks in order.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// HighlightedRuns returns every run with a highlight, in document order.
func (d *Document) HighlightedRuns() []Run {
	var out []Run
	for _, p := range d.Paragraphs() {
		for _, r := range p.Runs {
			if r.Highlighted() {
				out = append(out, r)
			}
		}
	}
	return out
}

// ExtractText returns the text of every block, one block per line.
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.GetText())
	}
	return sb.String()
}
