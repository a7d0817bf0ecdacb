package markdown_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/wanderapp/wander"
	"github.com/wanderapp/wander/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	theme := wander.DefaultTheme()

	t.Run("empty input renders empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, markdown.Render("", 80, theme))
	})

	t.Run("renders plain paragraphs", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("Lisbon is lovely in spring.", 80, theme)
		assert.Contains(t, out, "Lisbon is lovely in spring.")
	})

	t.Run("wraps paragraphs to width", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("short words that keep going and going beyond the width easily", 20, theme)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 20)
		}
		assert.Contains(t, out, "easily")
	})

	t.Run("separates paragraphs with a blank line", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("First paragraph.\n\nSecond paragraph.", 80, theme)
		assert.Contains(t, out, "First paragraph.\n\nSecond paragraph.")
	})

	t.Run("renders emphasis content", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("The *Alfama* district is **essential**.", 80, theme)
		assert.Contains(t, out, "Alfama")
		assert.Contains(t, out, "essential")
		assert.NotContains(t, out, "*")
	})

	t.Run("renders unordered lists with dash markers", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("- Belem Tower\n- Jeronimos Monastery", 80, theme)
		assert.Contains(t, out, "- Belem Tower")
		assert.Contains(t, out, "- Jeronimos Monastery")
	})

	t.Run("renders ordered lists with numbers", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("1. Morning market\n2. Afternoon museum", 80, theme)
		assert.Contains(t, out, "1. Morning market")
		assert.Contains(t, out, "2. Afternoon museum")
	})

	t.Run("shows link text and destination", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("See [the guide](https://example.com/lisbon).", 80, theme)
		assert.Contains(t, out, "the guide")
		assert.Contains(t, out, "https://example.com/lisbon")
	})

	t.Run("renders heading text", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("## Day One\n\nStart at the castle.", 80, theme)
		assert.Contains(t, out, "Day One")
		assert.NotContains(t, out, "##")
	})

	t.Run("zero width falls back to a sane default", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("hello", 0, theme)
		assert.Contains(t, out, "hello")
	})
}
