// Package mock provides test doubles for wander interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/wanderapp/wander"
)

// Interface compliance checks.
var (
	_ wander.Backend = (*Backend)(nil)
	_ wander.Auth    = (*Auth)(nil)
)

// NewSessionID returns a fresh server-style session id.
func NewSessionID() string { return uuid.NewString() }

// Backend is a test double for wander.Backend.
// Set the function fields for the methods you need; unset methods panic to
// catch missing setup.
type Backend struct {
	ListSessionsFn  func(ctx context.Context, token string) ([]wander.Session, error)
	CreateSessionFn func(ctx context.Context, token string) (wander.Session, error)
	RenameSessionFn func(ctx context.Context, token, sessionID, name string) error
	DeleteSessionFn func(ctx context.Context, token, sessionID string) (string, error)
	GetHistoryFn    func(ctx context.Context, token, sessionID string) ([]wander.Turn, error)
	SendQueryFn     func(ctx context.Context, token, sessionID, text string, maxPlaces int) (wander.Reply, error)
}

// ListSessions delegates to ListSessionsFn.
func (b *Backend) ListSessions(ctx context.Context, token string) ([]wander.Session, error) {
	return b.ListSessionsFn(ctx, token)
}

// CreateSession delegates to CreateSessionFn.
func (b *Backend) CreateSession(ctx context.Context, token string) (wander.Session, error) {
	return b.CreateSessionFn(ctx, token)
}

// RenameSession delegates to RenameSessionFn.
func (b *Backend) RenameSession(ctx context.Context, token, sessionID, name string) error {
	return b.RenameSessionFn(ctx, token, sessionID, name)
}

// DeleteSession delegates to DeleteSessionFn.
func (b *Backend) DeleteSession(ctx context.Context, token, sessionID string) (string, error) {
	return b.DeleteSessionFn(ctx, token, sessionID)
}

// GetHistory delegates to GetHistoryFn.
func (b *Backend) GetHistory(ctx context.Context, token, sessionID string) ([]wander.Turn, error) {
	return b.GetHistoryFn(ctx, token, sessionID)
}

// SendQuery delegates to SendQueryFn.
func (b *Backend) SendQuery(ctx context.Context, token, sessionID, text string, maxPlaces int) (wander.Reply, error) {
	return b.SendQueryFn(ctx, token, sessionID, text, maxPlaces)
}

// Auth is a test double for wander.Auth.
type Auth struct {
	GuestEntryFn     func(ctx context.Context) (wander.Identity, error)
	LoginFn          func(ctx context.Context, email, password string) (wander.Identity, error)
	RegisterFn       func(ctx context.Context, p wander.Profile) (string, error)
	UpdateProfileFn  func(ctx context.Context, token string, p wander.Profile) (string, error)
	ForgotPasswordFn func(ctx context.Context, email string) (string, error)
}

// GuestEntry delegates to GuestEntryFn.
func (a *Auth) GuestEntry(ctx context.Context) (wander.Identity, error) {
	return a.GuestEntryFn(ctx)
}

// Login delegates to LoginFn.
func (a *Auth) Login(ctx context.Context, email, password string) (wander.Identity, error) {
	return a.LoginFn(ctx, email, password)
}

// Register delegates to RegisterFn.
func (a *Auth) Register(ctx context.Context, p wander.Profile) (string, error) {
	return a.RegisterFn(ctx, p)
}

// UpdateProfile delegates to UpdateProfileFn.
func (a *Auth) UpdateProfile(ctx context.Context, token string, p wander.Profile) (string, error) {
	return a.UpdateProfileFn(ctx, token, p)
}

// ForgotPassword delegates to ForgotPasswordFn.
func (a *Auth) ForgotPassword(ctx context.Context, email string) (string, error) {
	return a.ForgotPasswordFn(ctx, email)
}
