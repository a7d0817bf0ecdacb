package wander

import "context"

// Backend is a strategy interface over the remote conversational service.
// Transport and encoding belong to implementations; these contracts are what
// the core requires. All calls block until the backend responds and honor
// context cancellation.
type Backend interface {
	// ListSessions returns all sessions for the identity behind token.
	ListSessions(ctx context.Context, token string) ([]Session, error)

	// CreateSession asks the backend for a new session.
	CreateSession(ctx context.Context, token string) (Session, error)

	// RenameSession pushes a session name to the backend.
	RenameSession(ctx context.Context, token, sessionID, name string) error

	// DeleteSession removes a session and returns the backend's
	// human-readable confirmation.
	DeleteSession(ctx context.Context, token, sessionID string) (string, error)

	// GetHistory returns the session's full message history in display order.
	GetHistory(ctx context.Context, token, sessionID string) ([]Turn, error)

	// SendQuery sends a user message and returns the assistant's reply,
	// with at most maxPlaces place recommendations.
	SendQuery(ctx context.Context, token, sessionID, text string, maxPlaces int) (Reply, error)
}

// Profile carries account fields for the auth operations.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Auth groups the account operations. The core consumes them only insofar as
// they produce an Identity or a confirmation message; form handling and
// validation flows live with the presentation layer.
type Auth interface {
	// GuestEntry starts an ephemeral guest identity. No credentials required.
	GuestEntry(ctx context.Context) (Identity, error)

	// Login exchanges credentials for an identity with a token.
	Login(ctx context.Context, email, password string) (Identity, error)

	// Register creates an account and returns a confirmation message.
	Register(ctx context.Context, p Profile) (string, error)

	// UpdateProfile updates account fields and returns a confirmation message.
	UpdateProfile(ctx context.Context, token string, p Profile) (string, error)

	// ForgotPassword starts a password reset and returns a confirmation message.
	ForgotPassword(ctx context.Context, email string) (string, error)
}
