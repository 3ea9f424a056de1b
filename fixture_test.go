package quizfixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/quizfixture/docx"
	"github.com/tsawler/quizfixture/htmldoc"
	"github.com/tsawler/quizfixture/model"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)
}

func TestBuild_Structure(t *testing.T) {
	doc := Build()

	require.Len(t, doc.Blocks, 7)

	h, ok := doc.Blocks[0].(*model.Heading)
	require.True(t, ok, "first block should be the title heading")
	assert.Equal(t, Title, h.Text)
	assert.Equal(t, 0, h.Level)

	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	assert.Equal(t, ParagraphTexts(), texts)

	for i, term := range Terms() {
		p := doc.Blocks[3+i].(*model.Paragraph)
		require.Len(t, p.Runs, 2)
		assert.Equal(t, model.Run{Text: term.Text, Highlight: model.HighlightYellow}, p.Runs[0])
		assert.Equal(t, model.Run{Text: term.Definition}, p.Runs[1])
	}
}

func TestBuild_FreshTree(t *testing.T) {
	a := Build()
	a.Freeze()

	b := Build()
	assert.False(t, b.Frozen())
	assert.NotPanics(t, func() { b.AddParagraph("extra") })
	assert.Len(t, Build().Blocks, 7)
}

func TestTerms_Copy(t *testing.T) {
	got := Terms()
	got[0].Text = "changed"
	assert.Equal(t, "光合作用", Terms()[0].Text)
}

// The scenario from the fixture's contract: run in an empty directory and
// read the result back.
func TestGenerate_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, Generate(path))

	r, err := docx.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var headings, paragraphs []string
	for _, p := range r.Paragraphs() {
		if p.IsHeading {
			headings = append(headings, p.Text)
		} else if p.Text != "" {
			paragraphs = append(paragraphs, p.Text)
		}
	}

	assert.Equal(t, []string{"生物知识测试"}, headings)
	assert.Equal(t, []string{
		"这是一个测试文档，用于验证LLM集成是否正常工作。",
		"重要知识点：",
		"光合作用是植物将光能转化为化学能的过程。",
		"线粒体被称为细胞的\"动力工厂\"。",
		"DNA携带遗传信息。",
		"请根据以上黄色高亮内容生成选择题和填空题。",
	}, paragraphs)
	assert.Equal(t, []string{"光合作用", "线粒体", "DNA"}, r.HighlightedTexts())

	for _, block := range r.Highlights() {
		for _, h := range block.Highlighted {
			assert.Equal(t, "yellow", h.Color)
		}
	}

	assert.NoError(t, Verify(path))
}

func TestGenerate_OverwritesDeterministically(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	g := New().Output(path).Clock(fixedClock)
	_, err := g.Run()
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = g.Run()
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the fixture should remain in the directory")
}

func TestGenerator_Options(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "quiz.docx")
	preview := filepath.Join(dir, "quiz.html")

	base := New()
	g := base.Output(out).HTMLPreview(preview).Verify()

	assert.Equal(t, DefaultOutput, base.options.output, "setters must not modify the receiver")

	res, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, Result{Output: out, HTML: preview, Verified: true}, res)

	hr, err := htmldoc.Open(preview)
	require.NoError(t, err)
	assert.Equal(t, []string{"光合作用", "线粒体", "DNA"}, hr.Highlights())
}

func TestGenerator_Preconditions(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		desc string
		gen  *Generator
	}{
		{"missing directory", New().Output(filepath.Join(dir, "nope", "quiz.docx"))},
		{"wrong extension", New().Output(filepath.Join(dir, "quiz.pdf"))},
		{"empty path", New().Output("")},
		{"output is a directory", New().Output(mkdir(t, filepath.Join(dir, "dir.docx")))},
		{"bad preview path", New().Output(filepath.Join(dir, "quiz.docx")).HTMLPreview(filepath.Join(dir, "quiz.txt"))},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := tt.gen.Run()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPrecondition)
			assert.NoFileExists(t, filepath.Join(dir, "quiz.docx"))
		})
	}
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.Mkdir(path, 0o755))
	return path
}

func TestVerify_DetectsMismatch(t *testing.T) {
	tests := []struct {
		desc  string
		field string
		edit  func(doc *model.Document)
	}{
		{
			desc:  "missing highlight",
			field: "highlights",
			edit: func(doc *model.Document) {
				doc.Paragraphs()[4].Runs[0].Highlight = model.HighlightNone
			},
		},
		{
			desc:  "wrong color",
			field: "highlights",
			edit: func(doc *model.Document) {
				doc.Paragraphs()[2].Runs[0].Highlight = model.HighlightGreen
			},
		},
		{
			desc:  "changed text",
			field: "paragraphs",
			edit: func(doc *model.Document) {
				doc.Paragraphs()[0].Runs[0].Text = "changed"
			},
		},
		{
			desc:  "changed title",
			field: "heading",
			edit: func(doc *model.Document) {
				doc.Headings()[0].Text = "物理"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			doc := Build()
			tt.edit(doc)

			path := filepath.Join(t.TempDir(), "bad.docx")
			require.NoError(t, docx.Save(path, doc))

			err := Verify(path)
			require.Error(t, err)

			var mismatch *MismatchError
			require.True(t, errors.As(err, &mismatch), "want MismatchError, got %v", err)
			assert.Equal(t, tt.field, mismatch.Field)
		})
	}
}

func TestVerify_MissingFile(t *testing.T) {
	assert.Error(t, Verify(filepath.Join(t.TempDir(), "absent.docx")))
}

func TestDiff(t *testing.T) {
	assert.Equal(t, "DNA[-携带-]{+储存+}遗传信息。", Diff("DNA携带遗传信息。", "DNA储存遗传信息。"))
	assert.Equal(t, "same", Diff("same", "same"))
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
}
