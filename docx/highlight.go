package docx

import "github.com/tsawler/quizfixture/model"

// HighlightedText is a highlighted run as seen by an ingestion pipeline.
type HighlightedText struct {
	Text  string `json:"text" yaml:"text"`
	Color string `json:"color" yaml:"color"`
}

// ParagraphBlock is one paragraph's text together with its highlighted runs.
type ParagraphBlock struct {
	Paragraph   string            `json:"paragraph" yaml:"paragraph"`
	Highlighted []HighlightedText `json:"highlighted" yaml:"highlighted"`
}

// Highlights returns one block per non-empty paragraph, headings included,
// listing the highlighted runs in order. Adjacent runs are not merged.
func (r *Reader) Highlights() []ParagraphBlock {
	blocks := make([]ParagraphBlock, 0, len(r.paragraphs))
	for _, p := range r.paragraphs {
		if p.Text == "" {
			continue
		}
		block := ParagraphBlock{
			Paragraph:   p.Text,
			Highlighted: []HighlightedText{},
		}
		for _, run := range p.Runs {
			if run.Highlight == model.HighlightNone {
				continue
			}
			block.Highlighted = append(block.Highlighted, HighlightedText{
				Text:  run.Text,
				Color: run.Highlight.String(),
			})
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// HighlightedTexts returns the text of every highlighted run in order.
func (r *Reader) HighlightedTexts() []string {
	var out []string
	for _, b := range r.Highlights() {
		for _, h := range b.Highlighted {
			out = append(out, h.Text)
		}
	}
	return out
}
