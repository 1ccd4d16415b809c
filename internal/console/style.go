// Package console renders styled terminal output for the CLI commands.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer prints text, styled or not.
type Printer interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})
}

// Style is a fatih/color attribute set bound to a writer
type Style struct {
	c *color.Color
	w io.Writer
}

var _ Printer = (*Style)(nil)

// NewStyle creates a style writing to w.
func NewStyle(w io.Writer, attrs ...color.Attribute) *Style {
	return &Style{c: color.New(attrs...), w: w}
}

func (s *Style) Print(a ...interface{}) {
	s.c.Fprint(s.w, a...)
}

func (s *Style) Printf(format string, a ...interface{}) {
	s.c.Fprintf(s.w, format, a...)
}

func (s *Style) Println(a ...interface{}) {
	s.c.Fprintln(s.w, a...)
}

// Sprint returns the styled text without printing it.
func (s *Style) Sprint(a ...interface{}) string {
	return s.c.Sprint(a...)
}

func (s *Style) disableColor() {
	s.c.DisableColor()
}

// plain prints without styling, used for raw file contents.
type plain struct {
	w io.Writer
}

func (p plain) Print(a ...interface{})                 { fmt.Fprint(p.w, a...) }
func (p plain) Printf(format string, a ...interface{}) { fmt.Fprintf(p.w, format, a...) }
func (p plain) Println(a ...interface{})               { fmt.Fprintln(p.w, a...) }
