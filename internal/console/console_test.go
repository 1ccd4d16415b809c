package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Banner(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		subtitles []string
		want      []string
	}{
		{
			name:  "title only",
			title: "Welcome to Themify",
			want: []string{
				"╔══════════════════════════════════════╗",
				"║          Welcome to Themify          ║",
				"╚══════════════════════════════════════╝",
			},
		},
		{
			name:      "with subtitle",
			title:     "Welcome to Themify",
			subtitles: []string{"CSS themes over HTTP"},
			want: []string{
				"╔══════════════════════════════════════╗",
				"║          Welcome to Themify          ║",
				"║──────────────────────────────────────║",
				"║         CSS themes over HTTP         ║",
				"╚══════════════════════════════════════╝",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, true).Banner(tt.title, tt.subtitles...)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestConsole_BannerGrowsForLongTitles(t *testing.T) {
	var buf bytes.Buffer
	title := strings.Repeat("x", 50)
	New(&buf, true).Banner(title)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "║ "+title+" ║", lines[1])
}

func TestConsole_NoColorWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, true)

	c.Success().Printf("saved %s\n", "dark")
	c.Error().Println("failed")
	c.Plain().Print("raw")

	assert.Equal(t, "saved dark\nfailed\nraw", buf.String())
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, "body { color: red; }", "css"))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "red")
}
