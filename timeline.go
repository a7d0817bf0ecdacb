package wander

import "fmt"

// FallbackMessage is the generic assistant notice appended when a send fails
// after the user turn was already displayed. The conversation always
// progresses; a user turn is never left without an assistant-side resolution.
const FallbackMessage = "An error occurred. Please try again."

// Timeline is the ordered in-memory sequence of turns for one session.
// Turns are append-only; order equals append order and is preserved exactly.
//
// A Timeline lives only on the client. It is rebuilt from backend history
// when its session is selected and discarded on deselection or logout.
// Not safe for concurrent use.
type Timeline struct {
	sessionID string
	turns     []Turn
	waiting   bool
}

// NewTimeline creates an empty timeline scoped to sessionID. An empty
// sessionID marks a staging timeline for a session not yet created.
func NewTimeline(sessionID string) *Timeline {
	return &Timeline{sessionID: sessionID}
}

// SessionID returns the session this timeline belongs to.
func (t *Timeline) SessionID() string { return t.sessionID }

// rebind attaches a staging timeline to its freshly created session.
func (t *Timeline) rebind(sessionID string) { t.sessionID = sessionID }

// Turns returns the turns in display order. Callers must not mutate the
// returned slice.
func (t *Timeline) Turns() []Turn { return t.turns }

// Len returns the number of turns.
func (t *Timeline) Len() int { return len(t.turns) }

// Waiting reports whether a reply is outstanding for this timeline.
func (t *Timeline) Waiting() bool { return t.waiting }

// SeedWelcome appends the initial assistant greeting for a fresh
// conversation, worded for the identity's guest status.
func (t *Timeline) SeedWelcome(id Identity) {
	text := fmt.Sprintf("Welcome %s to Wander! How can I assist with your travel plans today?", id.FirstName)
	if id.Guest {
		text = "Welcome to Wander! I'm here to help plan your perfect trip. " +
			"Note that this is a guest session and your chat history won't be saved."
	}
	t.turns = append(t.turns, TextTurn{Sender: RoleAssistant, Text: text})
}

// LoadHistory replaces the entire timeline with the backend's history, in
// the order received.
func (t *Timeline) LoadHistory(turns []Turn) {
	t.turns = append([]Turn(nil), turns...)
}

// AppendUserTurn appends a user turn synchronously, before any network call
// returns, and raises the waiting flag. The user always sees their own
// message immediately.
func (t *Timeline) AppendUserTurn(text string) {
	t.turns = append(t.turns, TextTurn{Sender: RoleUser, Text: text})
	t.waiting = true
}

// AppendAssistantReply expands a reply into one assistant text turn plus one
// turn per place, appended contiguously as a single atomic append, and
// clears the waiting flag.
func (t *Timeline) AppendAssistantReply(r Reply) {
	t.turns = append(t.turns, r.Turns()...)
	t.waiting = false
}

// AppendFallback appends the generic error turn and clears the waiting flag.
func (t *Timeline) AppendFallback() {
	t.turns = append(t.turns, TextTurn{Sender: RoleAssistant, Text: FallbackMessage})
	t.waiting = false
}
