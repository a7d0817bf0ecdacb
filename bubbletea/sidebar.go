package bubbletea

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleSidebarKey processes keys while the session sidebar is open. Plain
// letter keys are safe here: the text input is blurred while browsing.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.orch.Sessions()

	switch {
	case msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlB:
		return m.closeSidebar(), nil

	case msg.Type == tea.KeyUp || msg.String() == "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown || msg.String() == "j":
		if m.sidebarCursor < len(sessions)-1 {
			m.sidebarCursor++
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		if m.sidebarCursor >= len(sessions) {
			return m, nil
		}
		return m.selectSession(sessions[m.sidebarCursor].ID)

	case msg.String() == "d" || msg.Type == tea.KeyDelete:
		if m.sidebarCursor >= len(sessions) {
			return m, nil
		}
		return m.deleteSession(sessions[m.sidebarCursor].ID)

	case msg.String() == "n" || msg.Type == tea.KeyCtrlN:
		return m.newSession()

	case msg.String() == "r":
		m = m.clearNotice()
		if err := m.orch.RefreshSessions(context.Background()); err != nil {
			return m.setNotice("Couldn't refresh your chats.", true), nil
		}
		m.sidebarCursor = 0
		return m, nil
	}
	return m, nil
}

// selectSession switches the conversation to sessionID and kicks off the
// history fetch. The switch is immediate; history streams in behind it.
func (m Model) selectSession(sessionID string) (tea.Model, tea.Cmd) {
	m = m.clearNotice()
	tag, ok := m.orch.SelectSession(sessionID)
	m = m.closeSidebar()
	m = m.syncBlocks(true)
	if !ok {
		return m, nil
	}
	return m, historyCmd(m.orch, tag)
}

func (m Model) deleteSession(sessionID string) (tea.Model, tea.Cmd) {
	m = m.clearNotice()
	detail, err := m.orch.DeleteSession(context.Background(), sessionID)
	if err != nil {
		return m.setNotice("Couldn't delete the chat. Please try again.", true), nil
	}
	if n := len(m.orch.Sessions()); m.sidebarCursor >= n && n > 0 {
		m.sidebarCursor = n - 1
	}
	m = m.syncBlocks(true)
	if detail == "" {
		detail = "Chat deleted."
	}
	return m.setNotice(detail, false), nil
}

// sidebarView renders the session list pane.
func (m Model) sidebarView(height int) string {
	inner := sidebarWidth - 2

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Your chats"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter open • d delete • r refresh"))
	b.WriteString("\n\n")

	sessions := m.orch.Sessions()
	if len(sessions) == 0 {
		b.WriteString(m.styles.Muted.Render("No chats yet."))
	}
	for i, s := range sessions {
		label := truncateTo(s.Name, inner-2)
		switch {
		case i == m.sidebarCursor:
			b.WriteString(m.styles.Selected.Render("› " + label))
		case s.ID == m.orch.SelectedSession():
			b.WriteString(m.styles.Accent.Render("• " + label))
		default:
			b.WriteString("  " + label)
		}
		if i < len(sessions)-1 {
			b.WriteString("\n")
		}
	}

	return m.styles.Sidebar.Width(sidebarWidth).Height(height - 1).Render(b.String())
}

func lipglossJoin(sidebar, main string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}
