package quizfixture

import (
	"errors"
	"fmt"
	"strings"

	"braces.dev/errtrace"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tsawler/quizfixture/docx"
	"github.com/tsawler/quizfixture/model"
)

// ErrPrecondition reports that the environment cannot receive the fixture.
// No output is written when it is returned.
var ErrPrecondition = errors.New("precondition failed")

// MismatchError reports a difference between a file and the fixture.
type MismatchError struct {
	// Field names what differed: "heading", "paragraphs" or "highlights".
	Field string
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: %s", e.Field, Diff(e.Want, e.Got))
}

// Diff renders a character diff of want against got, marking deletions as
// [-text-] and insertions as {+text+}.
func Diff(want, got string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Verify opens the DOCX at path and checks it against Build: one title
// heading, the paragraph texts in order, and exactly the three term runs
// highlighted, each followed in its paragraph by its unhighlighted
// definition.
func Verify(path string) error {
	r, err := docx.Open(path)
	if err != nil {
		return errtrace.Errorf("reading %s: %w", path, err)
	}
	defer r.Close()

	return errtrace.Wrap(check(r.Paragraphs()))
}

func check(paras []docx.Paragraph) error {
	var headings, texts []string
	for _, p := range paras {
		switch {
		case p.IsHeading:
			headings = append(headings, p.Text)
		case p.Text != "":
			texts = append(texts, p.Text)
		}
	}

	if len(headings) != 1 || headings[0] != Title {
		return &MismatchError{Field: "heading", Want: Title, Got: strings.Join(headings, "\n")}
	}

	want := strings.Join(ParagraphTexts(), "\n")
	if got := strings.Join(texts, "\n"); got != want {
		return &MismatchError{Field: "paragraphs", Want: want, Got: got}
	}

	var wantTerms, gotTerms []string
	for _, t := range terms {
		wantTerms = append(wantTerms, t.Text+" → "+t.Definition)
	}
	for _, p := range paras {
		for i, run := range p.Runs {
			if run.Highlight == model.HighlightNone {
				continue
			}
			entry := run.Text + " → "
			if i+1 < len(p.Runs) && p.Runs[i+1].Highlight == model.HighlightNone {
				entry += p.Runs[i+1].Text
			}
			if run.Highlight != TermHighlight {
				entry += " (" + run.Highlight.String() + ")"
			}
			gotTerms = append(gotTerms, entry)
		}
	}

	if w, g := strings.Join(wantTerms, "\n"), strings.Join(gotTerms, "\n"); w != g {
		return &MismatchError{Field: "highlights", Want: w, Got: g}
	}
	return nil
}
