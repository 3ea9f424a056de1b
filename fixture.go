// Package quizfixture builds the sample quiz document used to exercise
// highlight-based question generation.
//
// The fixture is a short Chinese biology text with three terms marked with
// a yellow highlight. Ingestion pipelines that turn highlighted runs into
// multiple-choice and fill-in-the-blank questions should find exactly those
// three terms.
//
// Basic usage:
//
//	if err := quizfixture.Generate(quizfixture.DefaultOutput); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(quizfixture.Confirmation)
//
// With options:
//
//	res, err := quizfixture.New().
//	    Output("fixtures/test-quiz.docx").
//	    HTMLPreview("fixtures/test-quiz.html").
//	    Verify().
//	    Run()
package quizfixture

import (
	"github.com/tsawler/quizfixture/model"
)

const (
	// DefaultOutput is the file written when no output path is given.
	DefaultOutput = "test-quiz.docx"

	// Confirmation is printed after the fixture has been written.
	Confirmation = "Created test-quiz.docx successfully!"

	// Title is the text of the document's title heading.
	Title = "生物知识测试"

	// TermHighlight marks every term run.
	TermHighlight = model.HighlightYellow
)

// Term is a highlighted term and the plain text that follows it in the same
// paragraph.
type Term struct {
	Text       string
	Definition string
}

// Paragraph returns the full paragraph text for the term.
func (t Term) Paragraph() string {
	return t.Text + t.Definition
}

var (
	intro   = "这是一个测试文档，用于验证LLM集成是否正常工作。"
	lead    = "重要知识点："
	closing = "请根据以上黄色高亮内容生成选择题和填空题。"

	terms = []Term{
		{Text: "光合作用", Definition: "是植物将光能转化为化学能的过程。"},
		{Text: "线粒体", Definition: "被称为细胞的\"动力工厂\"。"},
		{Text: "DNA", Definition: "携带遗传信息。"},
	}
)

// Terms returns the highlighted terms in document order.
func Terms() []Term {
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}

// ParagraphTexts returns the text of every non-heading paragraph in
// document order.
func ParagraphTexts() []string {
	out := []string{intro, lead}
	for _, t := range terms {
		out = append(out, t.Paragraph())
	}
	return append(out, closing)
}

// Build assembles the fixture document. Each call returns a fresh tree.
func Build() *model.Document {
	doc := model.NewDocument()
	doc.Metadata.Title = Title
	doc.Metadata.Subject = "生物"
	doc.Metadata.Keywords = []string{"quiz", "highlight", "fixture"}

	doc.AddHeading(Title, 0)
	doc.AddParagraph(intro)
	doc.AddParagraph(lead)
	for _, t := range terms {
		doc.AddParagraph().
			AddRun(t.Text, TermHighlight).
			AddText(t.Definition)
	}
	doc.AddParagraph(closing)

	return doc
}
