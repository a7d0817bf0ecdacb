package wander

import (
	"context"
	"fmt"
	"strings"
)

// sessionNameTokens is how many leading whitespace-separated tokens of the
// first message become the derived session name.
const sessionNameTokens = 5

// Registry manages the list of conversation sessions for the current
// identity and keeps it synchronized with the backend.
//
// The local list always places the most recently created session first;
// deletion preserves the relative order of the remainder. At most one
// session is selected at a time. Not safe for concurrent use.
type Registry struct {
	backend  Backend
	sessions []Session
	selected string
	renamed  map[string]bool // sessions whose one-shot rename already fired
}

// NewRegistry creates a Registry backed by the given backend.
func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend: backend,
		renamed: make(map[string]bool),
	}
}

// Sessions returns the local session list, newest first.
func (r *Registry) Sessions() []Session {
	return append([]Session(nil), r.sessions...)
}

// Selected returns the selected session id, or "" when none is selected.
func (r *Registry) Selected() string { return r.selected }

// Session returns the local entry for id.
func (r *Registry) Session(id string) (Session, bool) {
	if i := r.index(id); i >= 0 {
		return r.sessions[i], true
	}
	return Session{}, false
}

// ListSessions fetches all sessions for the identity and replaces the local
// list. On failure the previously loaded list is left untouched; no partial
// overwrite.
func (r *Registry) ListSessions(ctx context.Context, id Identity) error {
	if !id.Authenticated() {
		return ErrPrecondition
	}
	sessions, err := r.backend.ListSessions(ctx, id.Token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	r.sessions = sessions
	return nil
}

// CreateSession asks the backend for a new session, prepends it to the local
// list with the default name, and selects it. Selection is unchanged on
// failure.
func (r *Registry) CreateSession(ctx context.Context, id Identity) (Session, error) {
	if !id.Authenticated() {
		return Session{}, ErrPrecondition
	}
	s, err := r.backend.CreateSession(ctx, id.Token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrCreate, err)
	}
	if s.Name == "" {
		s.Name = DefaultSessionName
	}
	r.adopt(s)
	return s, nil
}

// adopt prepends a server-created session and selects it.
func (r *Registry) adopt(s Session) {
	r.sessions = append([]Session{s}, r.sessions...)
	r.selected = s.ID
}

// SelectSession sets the selected id immediately. The history fetch for the
// selection is a separate, asynchronous concern; selection never rolls back.
func (r *Registry) SelectSession(sessionID string) {
	r.selected = sessionID
}

// ClearSelection deselects whatever session is selected.
func (r *Registry) ClearSelection() {
	r.selected = ""
}

// RenameOnFirstMessage applies the one-shot derived rename for the first
// outgoing message in a session: the session's placeholder name is replaced
// locally by the first five tokens of text, and the new name is reported for
// the backend push. It fires at most once per session lifetime; later calls
// return false.
//
// The local apply is optimistic: it stands even if the backend push later
// fails. The backend is eventually the source of truth; the inconsistency
// window is an accepted tradeoff, not a bug.
func (r *Registry) RenameOnFirstMessage(sessionID, text string) (string, bool) {
	i := r.index(sessionID)
	if i < 0 || r.renamed[sessionID] || r.sessions[i].Name != DefaultSessionName {
		return "", false
	}
	name := DeriveSessionName(text)
	if name == "" {
		return "", false
	}
	r.sessions[i].Name = name
	r.renamed[sessionID] = true
	return name, true
}

// markRenamed records that a session's one-shot rename already fired, for
// sessions whose rename ran outside the registry (create-if-absent sends).
func (r *Registry) markRenamed(sessionID string) {
	r.renamed[sessionID] = true
}

// DeleteSession removes a session from the backend and, only on success,
// from the local list. If the deleted session was selected, selection is
// cleared. Returns the backend's confirmation message.
func (r *Registry) DeleteSession(ctx context.Context, id Identity, sessionID string) (string, error) {
	if !id.Authenticated() {
		return "", ErrPrecondition
	}
	detail, err := r.backend.DeleteSession(ctx, id.Token, sessionID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDelete, err)
	}
	if i := r.index(sessionID); i >= 0 {
		r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
	}
	if r.selected == sessionID {
		r.selected = ""
	}
	delete(r.renamed, sessionID)
	return detail, nil
}

// Reset drops all per-identity state. Called on identity change.
func (r *Registry) Reset() {
	r.sessions = nil
	r.selected = ""
	r.renamed = make(map[string]bool)
}

func (r *Registry) index(sessionID string) int {
	for i, s := range r.sessions {
		if s.ID == sessionID {
			return i
		}
	}
	return -1
}

// DeriveSessionName derives a session name from the first outgoing message:
// its first five whitespace-separated tokens, joined by single spaces.
func DeriveSessionName(text string) string {
	fields := strings.Fields(text)
	if len(fields) > sessionNameTokens {
		fields = fields[:sessionNameTokens]
	}
	return strings.Join(fields, " ")
}
