package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/wanderapp/wander"
	bt "github.com/wanderapp/wander/bubbletea"
	"github.com/wanderapp/wander/mock"
)

var testIdentity = wander.Identity{ID: "u1", Token: "tok", FirstName: "Ada"}

// chatBackend is a mock backend serving a small session list and echoing
// queries.
func chatBackend() *mock.Backend {
	return &mock.Backend{
		ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
			return []wander.Session{{ID: "s2", Name: "Paris"}, {ID: "s1", Name: "Rome"}}, nil
		},
		CreateSessionFn: func(ctx context.Context, token string) (wander.Session, error) {
			return wander.Session{ID: "fresh"}, nil
		},
		RenameSessionFn: func(ctx context.Context, token, id, name string) error {
			return nil
		},
		DeleteSessionFn: func(ctx context.Context, token, sessionID string) (string, error) {
			return "Chat deleted successfully", nil
		},
		GetHistoryFn: func(ctx context.Context, token, sessionID string) ([]wander.Turn, error) {
			return []wander.Turn{
				wander.TextTurn{Sender: wander.RoleUser, Text: "old question"},
				wander.TextTurn{Sender: wander.RoleAssistant, Text: "old answer"},
			}, nil
		},
		SendQueryFn: func(ctx context.Context, token, id, text string, maxPlaces int) (wander.Reply, error) {
			return wander.Reply{Message: "echo: " + text}, nil
		},
	}
}

// newOrchestrator builds a logged-in orchestrator over the backend.
func newOrchestrator(backend *mock.Backend) *wander.Orchestrator {
	o := wander.NewOrchestrator(wander.NewContext(), backend, wander.NewRegistry(backend))
	o.SetIdentity(testIdentity)
	return o
}

// initModel creates a model and sends a WindowSizeMsg to initialize the
// viewport.
func initModel(t *testing.T, o *wander.Orchestrator, recognizer wander.Recognizer) bt.Model {
	t.Helper()
	m := bt.New(o, recognizer, wander.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeText feeds text into the model one rune at a time.
func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	for _, r := range text {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runCmds executes a command tree synchronously and returns the produced
// messages, flattening batches.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmds(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T produced by cmd.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range runCmds(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T message produced", zero)
	return zero
}
