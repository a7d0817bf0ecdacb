package wander

import "time"

// DefaultSessionName is the placeholder name a session carries until the
// first outgoing message derives its real name.
const DefaultSessionName = "New Chat"

// Session is a named, server-identified conversation thread owned by one
// identity.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
