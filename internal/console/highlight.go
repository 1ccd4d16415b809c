package console

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const highlightStyle = "dracula"

// Highlight writes source to w with terminal syntax highlighting for the
// given chroma lexer name.
func Highlight(w io.Writer, source, lexer string) error {
	return quick.Highlight(w, source, lexer, "terminal256", highlightStyle)
}
