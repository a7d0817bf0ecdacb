package bubbletea

import (
	"strings"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// wrapText word-wraps plain text to the given display width, measuring with
// grapheme-cluster widths so wide runes and emoji count correctly. Words
// longer than the width are broken mid-word.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var (
		lines []string
		line  strings.Builder
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
	}

	for _, word := range strings.Fields(s) {
		wordW := uniseg.StringWidth(word)
		lineW := uniseg.StringWidth(line.String())

		switch {
		case lineW == 0 && wordW <= width:
			line.WriteString(word)
		case lineW+1+wordW <= width:
			line.WriteString(" ")
			line.WriteString(word)
		case wordW <= width:
			flush()
			line.WriteString(word)
		default:
			// Break an overlong word rune by rune.
			if lineW > 0 {
				flush()
			}
			for _, r := range word {
				if uniseg.StringWidth(line.String())+rw.RuneWidth(r) > width {
					flush()
				}
				line.WriteRune(r)
			}
		}
	}
	if line.Len() > 0 {
		flush()
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// truncateTo trims s to the given display width, appending an ellipsis when
// anything was cut.
func truncateTo(s string, width int) string {
	if width <= 1 || uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if uniseg.StringWidth(b.String())+rw.RuneWidth(r) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ") + "…"
}
