package bubbletea

import (
	"fmt"
	"strings"

	"github.com/wanderapp/wander"
)

var _ TurnBlock = (*PlaceBlock)(nil)

// PlaceBlock renders a place recommendation as a bordered card: name, rating
// when present, address, coordinates.
type PlaceBlock struct {
	place  wander.Place
	styles Styles
}

// NewPlaceBlock creates a PlaceBlock.
func NewPlaceBlock(place wander.Place, styles Styles) *PlaceBlock {
	return &PlaceBlock{place: place, styles: styles}
}

func (b *PlaceBlock) View(width int) string {
	inner := width - 4 // border and padding
	if inner < 16 {
		inner = 16
	}

	var lines []string
	title := b.styles.Accent.Render(truncateTo(b.place.Name, inner))
	if b.place.Rating != nil {
		title += "  " + b.styles.Success.Render(fmt.Sprintf("★ %.1f", *b.place.Rating))
	}
	lines = append(lines, title)

	if b.place.Address != "" {
		lines = append(lines, wrapText(b.place.Address, inner)...)
	}
	lines = append(lines, b.styles.Muted.Render(fmt.Sprintf("%.5f, %.5f", b.place.Lat, b.place.Lng)))

	return b.styles.PlaceBorder.Render(strings.Join(lines, "\n"))
}
