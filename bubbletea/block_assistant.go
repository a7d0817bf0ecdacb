package bubbletea

import (
	"github.com/wanderapp/wander"
	"github.com/wanderapp/wander/markdown"
)

var _ TurnBlock = (*AssistantTurnBlock)(nil)

// AssistantTurnBlock renders assistant reply text with markdown formatting.
// Timeline turns are immutable once appended, so the rendered output is
// cached per width.
type AssistantTurnBlock struct {
	text  string
	theme wander.Theme

	byWidth map[int]string
}

// NewAssistantTurnBlock creates an AssistantTurnBlock.
func NewAssistantTurnBlock(text string, theme wander.Theme, styles Styles) *AssistantTurnBlock {
	return &AssistantTurnBlock{
		text:    text,
		theme:   theme,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantTurnBlock) View(width int) string {
	if width <= 0 || b.text == "" {
		return ""
	}
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.text, width, b.theme)
	b.byWidth[width] = rendered
	return rendered
}
