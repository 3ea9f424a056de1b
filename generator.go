package quizfixture

import (
	"os"
	"path/filepath"
	"time"

	"braces.dev/errtrace"

	"github.com/tsawler/quizfixture/docx"
	"github.com/tsawler/quizfixture/format"
	"github.com/tsawler/quizfixture/htmldoc"
)

// Options holds configuration for a fixture run.
type Options struct {
	output string
	html   string
	verify bool
	now    func() time.Time
}

// defaultOptions returns the zero-argument behavior.
func defaultOptions() Options {
	return Options{
		output: DefaultOutput,
	}
}

// Generator writes the fixture. It is configured fluently and executed with
// Run; every setter returns a new Generator.
type Generator struct {
	options Options
}

// Result describes a completed run.
type Result struct {
	// Output is the DOCX path that was written.
	Output string
	// HTML is the preview path, empty if none was requested.
	HTML string
	// Verified is true when the written file was read back and checked.
	Verified bool
}

// New returns a Generator that writes DefaultOutput.
func New() *Generator {
	return &Generator{options: defaultOptions()}
}

func (g *Generator) clone() *Generator {
	return &Generator{options: g.options}
}

// Output sets the DOCX path.
func (g *Generator) Output(path string) *Generator {
	ng := g.clone()
	ng.options.output = path
	return ng
}

// HTMLPreview also renders the fixture as HTML to path.
func (g *Generator) HTMLPreview(path string) *Generator {
	ng := g.clone()
	ng.options.html = path
	return ng
}

// Verify reads the written file back and checks its content.
func (g *Generator) Verify() *Generator {
	ng := g.clone()
	ng.options.verify = true
	return ng
}

// Clock sets the source of the core-properties timestamps.
func (g *Generator) Clock(now func() time.Time) *Generator {
	ng := g.clone()
	ng.options.now = now
	return ng
}

// Check validates the configured paths without writing anything: the output
// must name a .docx file in an existing, writable directory.
func (g *Generator) Check() error {
	if err := checkTarget(g.options.output, format.DOCX); err != nil {
		return err
	}
	if g.options.html != "" {
		return checkTarget(g.options.html, format.HTML)
	}
	return nil
}

// Run builds the fixture and writes it. Nothing is written if Check fails.
func (g *Generator) Run() (Result, error) {
	if err := g.Check(); err != nil {
		return Result{}, err
	}

	doc := Build()
	w := &docx.Writer{Now: g.options.now}
	if err := w.Save(g.options.output, doc); err != nil {
		return Result{}, errtrace.Errorf("writing %s: %w", g.options.output, err)
	}
	res := Result{Output: g.options.output}

	if g.options.html != "" {
		if err := htmldoc.RenderFile(g.options.html, doc); err != nil {
			return res, errtrace.Errorf("writing %s: %w", g.options.html, err)
		}
		res.HTML = g.options.html
	}

	if g.options.verify {
		if err := Verify(g.options.output); err != nil {
			return res, errtrace.Wrap(err)
		}
		res.Verified = true
	}

	return res, nil
}

// Generate writes the fixture to path.
func Generate(path string) error {
	_, err := New().Output(path).Run()
	return err
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
//	res := quizfixture.Must(quizfixture.New().Run())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// checkTarget verifies that path has the wanted extension and that its
// directory exists and accepts new files.
func checkTarget(path string, want format.Format) error {
	if path == "" {
		return errtrace.Errorf("%w: empty path", ErrPrecondition)
	}
	if got := format.Detect(path); got != want {
		return errtrace.Errorf("%w: %s is not a %s path (want %s extension)",
			ErrPrecondition, path, want, want.Extension())
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return errtrace.Errorf("%w: output directory: %w", ErrPrecondition, err)
	}
	if !info.IsDir() {
		return errtrace.Errorf("%w: %s is not a directory", ErrPrecondition, dir)
	}

	probe, err := os.CreateTemp(dir, ".quizfixture-probe-*")
	if err != nil {
		return errtrace.Errorf("%w: output directory is not writable: %w", ErrPrecondition, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errtrace.Errorf("%w: %s is a directory", ErrPrecondition, path)
	}
	return nil
}
