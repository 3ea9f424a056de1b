package model

import "strings"

// BlockType represents the type of block-level element
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeHeading
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeHeading:
		return "Heading"
	default:
		return "Unknown"
	}
}

// Block is the interface for all block-level elements
type Block interface {
	Type() BlockType
	GetText() string
}

// Heading represents a title or section heading
type Heading struct {
	Level int // 0 = Title, 1-9 = Heading1..Heading9
	Text  string
}

func (h *Heading) Type() BlockType { return BlockTypeHeading }
func (h *Heading) GetText() string { return h.Text }

// StyleID returns the WordprocessingML paragraph style for the heading level.
func (h *Heading) StyleID() string {
	if h.Level == 0 {
		return "Title"
	}
	return "Heading" + string(rune('0'+h.Level))
}

// Paragraph represents an ordered sequence of runs
type Paragraph struct {
	Runs []Run

	doc *Document
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }
func (p *Paragraph) GetText() string { return p.Text() }

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// AddRun appends a run with the given highlight and returns the paragraph.
func (p *Paragraph) AddRun(text string, highlight HighlightColor) *Paragraph {
	p.doc.mustBeMutable()
	p.Runs = append(p.Runs, Run{Text: text, Highlight: highlight})
	return p
}

// AddText appends an unhighlighted run.
func (p *Paragraph) AddText(text string) *Paragraph {
	return p.AddRun(text, HighlightNone)
}

// Run is a span of text sharing one formatting treatment
type Run struct {
	Text      string
	Highlight HighlightColor
}

// Highlighted reports whether the run carries a highlight color.
func (r Run) Highlighted() bool {
	return r.Highlight != HighlightNone
}
