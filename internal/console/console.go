package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const bannerWidth = 40

// Console groups the styles used by the CLI.
type Console struct {
	out io.Writer

	primary   *Style
	secondary *Style
	success   *Style
	errStyle  *Style
	warning   *Style
	info      *Style
	subtle    *Style
}

// New creates a console writing to out. Colors are disabled when noColor is
// set or when fatih/color detected a non-terminal / NO_COLOR environment.
func New(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:       out,
		primary:   NewStyle(out, color.FgBlue, color.Bold),
		secondary: NewStyle(out, color.FgHiBlue),
		success:   NewStyle(out, color.FgGreen),
		errStyle:  NewStyle(out, color.FgRed),
		warning:   NewStyle(out, color.FgYellow),
		info:      NewStyle(out, color.FgWhite),
		subtle:    NewStyle(out, color.FgHiBlack),
	}
	if noColor {
		for _, s := range []*Style{c.primary, c.secondary, c.success, c.errStyle, c.warning, c.info, c.subtle} {
			s.disableColor()
		}
	}
	return c
}

// Stdout returns a console on os.Stdout honoring NO_COLOR.
func Stdout() *Console {
	return New(os.Stdout, color.NoColor)
}

// Out is the underlying writer, for tables and raw output.
func (c *Console) Out() io.Writer { return c.out }

func (c *Console) Primary() *Style   { return c.primary }
func (c *Console) Secondary() *Style { return c.secondary }
func (c *Console) Success() *Style   { return c.success }
func (c *Console) Error() *Style     { return c.errStyle }
func (c *Console) Warning() *Style   { return c.warning }
func (c *Console) Info() *Style      { return c.info }
func (c *Console) Subtle() *Style    { return c.subtle }

// Plain prints without any styling.
func (c *Console) Plain() Printer { return plain{w: c.out} }

// Banner prints a boxed title with optional subtitle lines. The box grows to
// fit the longest line.
func (c *Console) Banner(title string, subtitles ...string) {
	width := bannerWidth
	for _, line := range append([]string{title}, subtitles...) {
		if n := utf8.RuneCountInString(line) + 4; n > width {
			width = n
		}
	}

	c.primary.Println("╔" + strings.Repeat("═", width-2) + "╗")
	c.primary.Println(boxLine(title, width))
	if len(subtitles) > 0 {
		c.primary.Println("║" + strings.Repeat("─", width-2) + "║")
		for _, sub := range subtitles {
			c.secondary.Println(boxLine(sub, width))
		}
	}
	c.primary.Println("╚" + strings.Repeat("═", width-2) + "╝")
}

func boxLine(text string, width int) string {
	free := width - utf8.RuneCountInString(text) - 2
	left := free / 2
	return fmt.Sprintf("║%s%s%s║", strings.Repeat(" ", left), text, strings.Repeat(" ", free-left))
}
