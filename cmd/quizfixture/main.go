// quizfixture writes test-quiz.docx, a small Chinese biology document with
// three yellow-highlighted terms, for exercising quiz generation from
// highlighted DOCX uploads.
//
// Run it without arguments to write ./test-quiz.docx:
//
//	quizfixture
//
// Flags may also be set through QUIZFIXTURE_* environment variables,
// e.g. QUIZFIXTURE_OUT=fixtures/quiz.docx.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/peterbourgon/ff/v3"

	"github.com/tsawler/quizfixture"
	"github.com/tsawler/quizfixture/docx"
	"github.com/tsawler/quizfixture/format"
)

var _version = "dev"

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *logger
}

// params holds all arguments for quizfixture.
type params struct {
	Output  string
	HTML    string
	Verify  bool
	Inspect string
	Version bool
}

func (cmd *mainCmd) newFlagSet() (*params, *flag.FlagSet) {
	fs := flag.NewFlagSet("quizfixture", flag.ContinueOnError)
	fs.SetOutput(cmd.Stderr)

	var p params
	fs.StringVar(&p.Output, "out", quizfixture.DefaultOutput, "DOCX file to write")
	fs.StringVar(&p.HTML, "html", "", "also write an HTML preview to this file")
	fs.BoolVar(&p.Verify, "verify", false, "read the written file back and check it")
	fs.StringVar(&p.Inspect, "inspect", "", "print the highlighted runs of an existing DOCX as YAML and exit")
	fs.BoolVar(&p.Version, "version", false, "print the version and exit")

	return &p, fs
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = newLogger(cmd.Stderr)

	p, fs := cmd.newFlagSet()
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("QUIZFIXTURE")); err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// The flag set has already printed the problem.
		return 1
	}
	if fs.NArg() > 0 {
		cmd.log.Error("unexpected arguments: %v", fs.Args())
		return 1
	}

	if p.Version {
		fmt.Fprintln(cmd.Stdout, "quizfixture", _version)
		return 0
	}

	var err error
	if p.Inspect != "" {
		err = cmd.inspect(p.Inspect)
	} else {
		err = cmd.generate(p)
	}
	if err != nil {
		cmd.log.Error("%v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) generate(p *params) error {
	g := quizfixture.New().Output(p.Output)
	if p.HTML != "" {
		g = g.HTMLPreview(p.HTML)
	}
	if p.Verify {
		g = g.Verify()
	}

	res, err := g.Run()
	if err != nil {
		return err
	}

	if p.Output == quizfixture.DefaultOutput {
		fmt.Fprintln(cmd.Stdout, quizfixture.Confirmation)
	} else {
		fmt.Fprintf(cmd.Stdout, "Created %s successfully!\n", res.Output)
	}
	if res.HTML != "" {
		cmd.log.Info("wrote preview %s", res.HTML)
	}
	if res.Verified {
		cmd.log.Info("verified %s", res.Output)
	}
	return nil
}

func (cmd *mainCmd) inspect(path string) error {
	f, err := format.DetectFile(path)
	if err != nil {
		return err
	}
	if f != format.DOCX {
		return fmt.Errorf("%s: not a DOCX file (detected %s)", path, f)
	}

	r, err := docx.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	out, err := yaml.Marshal(r.Highlights())
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	_, err = cmd.Stdout.Write(out)
	return err
}
