package main

import (
	"io"

	"github.com/fatih/color"
)

// logger prints colored status lines for the command.
type logger struct {
	w    io.Writer
	red  func(io.Writer, string, ...interface{})
	blue func(io.Writer, string, ...interface{})
}

func newLogger(w io.Writer) *logger {
	return &logger{
		w:    w,
		red:  color.New(color.FgRed).FprintfFunc(),
		blue: color.New(color.FgBlue).FprintfFunc(),
	}
}

// Error prints an error message in red.
func (l *logger) Error(format string, a ...interface{}) {
	l.red(l.w, "[!] Error: "+format+"\n", a...)
}

// Info prints an informational message in blue.
func (l *logger) Info(format string, a ...interface{}) {
	l.blue(l.w, "[+] "+format+"\n", a...)
}
