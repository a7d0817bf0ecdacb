package bubbletea

import "github.com/wanderapp/wander"

// TurnBlock is a renderable element in the conversation. View takes a width
// parameter so the root model controls layout and blocks are testable in
// isolation.
type TurnBlock interface {
	View(width int) string
}

// newTurnBlock maps a timeline turn to its block.
func newTurnBlock(t wander.Turn, theme wander.Theme, styles Styles) TurnBlock {
	switch t := t.(type) {
	case wander.TextTurn:
		if t.Sender == wander.RoleUser {
			return NewUserTurnBlock(t.Text, styles)
		}
		return NewAssistantTurnBlock(t.Text, theme, styles)
	case wander.PlaceTurn:
		return NewPlaceBlock(t.Place, styles)
	default:
		return NewAssistantTurnBlock("", theme, styles)
	}
}
