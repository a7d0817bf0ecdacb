package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ TurnBlock = (*UserTurnBlock)(nil)

// UserTurnBlock renders a user turn with a "> " prefix.
type UserTurnBlock struct {
	text   string
	styles Styles
}

// NewUserTurnBlock creates a UserTurnBlock.
func NewUserTurnBlock(text string, styles Styles) *UserTurnBlock {
	return &UserTurnBlock{text: text, styles: styles}
}

func (b *UserTurnBlock) View(width int) string {
	content := b.styles.UserMsg.Render("> ") + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
