package wander_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderapp/wander"
	"github.com/wanderapp/wander/mock"
)

var testIdentity = wander.Identity{ID: "u1", Token: "tok", FirstName: "Ada"}

func TestRegistry_ListSessions(t *testing.T) {
	t.Parallel()

	t.Run("replaces the local list", func(t *testing.T) {
		t.Parallel()
		backend := &mock.Backend{
			ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
				assert.Equal(t, "tok", token)
				return []wander.Session{{ID: "s2", Name: "Paris"}, {ID: "s1", Name: "Rome"}}, nil
			},
		}
		r := wander.NewRegistry(backend)

		require.NoError(t, r.ListSessions(context.Background(), testIdentity))
		sessions := r.Sessions()
		require.Len(t, sessions, 2)
		assert.Equal(t, "s2", sessions[0].ID)
	})

	t.Run("leaves the list untouched on failure", func(t *testing.T) {
		t.Parallel()
		calls := 0
		backend := &mock.Backend{
			ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
				calls++
				if calls > 1 {
					return nil, errors.New("boom")
				}
				return []wander.Session{{ID: "s1", Name: "Rome"}}, nil
			},
		}
		r := wander.NewRegistry(backend)
		require.NoError(t, r.ListSessions(context.Background(), testIdentity))

		err := r.ListSessions(context.Background(), testIdentity)
		assert.ErrorIs(t, err, wander.ErrFetch)
		require.Len(t, r.Sessions(), 1)
		assert.Equal(t, "s1", r.Sessions()[0].ID)
	})

	t.Run("requires an authenticated identity", func(t *testing.T) {
		t.Parallel()
		r := wander.NewRegistry(&mock.Backend{})
		err := r.ListSessions(context.Background(), wander.Identity{})
		assert.ErrorIs(t, err, wander.ErrPrecondition)
	})
}

func TestRegistry_CreateSession(t *testing.T) {
	t.Parallel()

	t.Run("prepends and selects the new session", func(t *testing.T) {
		t.Parallel()
		backend := &mock.Backend{
			ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
				return []wander.Session{{ID: "old", Name: "Rome"}}, nil
			},
			CreateSessionFn: func(ctx context.Context, token string) (wander.Session, error) {
				return wander.Session{ID: "new"}, nil
			},
		}
		r := wander.NewRegistry(backend)
		require.NoError(t, r.ListSessions(context.Background(), testIdentity))

		s, err := r.CreateSession(context.Background(), testIdentity)
		require.NoError(t, err)
		assert.Equal(t, "new", s.ID)
		assert.Equal(t, wander.DefaultSessionName, s.Name)

		sessions := r.Sessions()
		require.Len(t, sessions, 2)
		assert.Equal(t, "new", sessions[0].ID)
		assert.Equal(t, "new", r.Selected())
	})

	t.Run("selection unchanged on failure", func(t *testing.T) {
		t.Parallel()
		backend := &mock.Backend{
			CreateSessionFn: func(ctx context.Context, token string) (wander.Session, error) {
				return wander.Session{}, errors.New("boom")
			},
		}
		r := wander.NewRegistry(backend)

		_, err := r.CreateSession(context.Background(), testIdentity)
		assert.ErrorIs(t, err, wander.ErrCreate)
		assert.Empty(t, r.Selected())
	})
}

func TestRegistry_RenameOnFirstMessage(t *testing.T) {
	t.Parallel()

	newRegistry := func(t *testing.T) *wander.Registry {
		t.Helper()
		backend := &mock.Backend{
			CreateSessionFn: func(ctx context.Context, token string) (wander.Session, error) {
				return wander.Session{ID: "s1"}, nil
			},
		}
		r := wander.NewRegistry(backend)
		_, err := r.CreateSession(context.Background(), testIdentity)
		require.NoError(t, err)
		return r
	}

	t.Run("derives the name from the first five tokens", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		name, ok := r.RenameOnFirstMessage("s1", "what are the best beaches near Lisbon in summer")
		require.True(t, ok)
		assert.Equal(t, "what are the best beaches", name)

		s, found := r.Session("s1")
		require.True(t, found)
		assert.Equal(t, "what are the best beaches", s.Name)
	})

	t.Run("fires at most once per session", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		_, ok := r.RenameOnFirstMessage("s1", "first message here")
		require.True(t, ok)
		_, ok = r.RenameOnFirstMessage("s1", "second message here")
		assert.False(t, ok)
	})

	t.Run("does not fire for sessions with a real name", func(t *testing.T) {
		t.Parallel()
		backend := &mock.Backend{
			ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
				return []wander.Session{{ID: "s1", Name: "Lisbon trip"}}, nil
			},
		}
		r := wander.NewRegistry(backend)
		require.NoError(t, r.ListSessions(context.Background(), testIdentity))

		_, ok := r.RenameOnFirstMessage("s1", "hello there")
		assert.False(t, ok)
	})

	t.Run("does not fire for whitespace-only text", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		_, ok := r.RenameOnFirstMessage("s1", "   ")
		assert.False(t, ok)
	})

	t.Run("does not fire for unknown sessions", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		_, ok := r.RenameOnFirstMessage("missing", "hello")
		assert.False(t, ok)
	})
}

func TestRegistry_DeleteSession(t *testing.T) {
	t.Parallel()

	newRegistry := func(t *testing.T, deleteFn func(ctx context.Context, token, sessionID string) (string, error)) *wander.Registry {
		t.Helper()
		backend := &mock.Backend{
			ListSessionsFn: func(ctx context.Context, token string) ([]wander.Session, error) {
				return []wander.Session{{ID: "s3"}, {ID: "s2"}, {ID: "s1"}}, nil
			},
			DeleteSessionFn: deleteFn,
		}
		r := wander.NewRegistry(backend)
		require.NoError(t, r.ListSessions(context.Background(), testIdentity))
		return r
	}

	t.Run("removes the session preserving order", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, func(ctx context.Context, token, sessionID string) (string, error) {
			return "Chat deleted successfully", nil
		})

		detail, err := r.DeleteSession(context.Background(), testIdentity, "s2")
		require.NoError(t, err)
		assert.Equal(t, "Chat deleted successfully", detail)

		sessions := r.Sessions()
		require.Len(t, sessions, 2)
		assert.Equal(t, "s3", sessions[0].ID)
		assert.Equal(t, "s1", sessions[1].ID)
	})

	t.Run("clears selection when the selected session is deleted", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, func(ctx context.Context, token, sessionID string) (string, error) {
			return "ok", nil
		})
		r.SelectSession("s2")

		_, err := r.DeleteSession(context.Background(), testIdentity, "s2")
		require.NoError(t, err)
		assert.Empty(t, r.Selected())
	})

	t.Run("keeps selection when another session is deleted", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, func(ctx context.Context, token, sessionID string) (string, error) {
			return "ok", nil
		})
		r.SelectSession("s1")

		_, err := r.DeleteSession(context.Background(), testIdentity, "s3")
		require.NoError(t, err)
		assert.Equal(t, "s1", r.Selected())
	})

	t.Run("keeps the list on backend failure", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, func(ctx context.Context, token, sessionID string) (string, error) {
			return "", errors.New("boom")
		})

		_, err := r.DeleteSession(context.Background(), testIdentity, "s2")
		assert.ErrorIs(t, err, wander.ErrDelete)
		assert.Len(t, r.Sessions(), 3)
	})
}

func TestDeriveSessionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"short message", "hello", "hello"},
		{"exactly five tokens", "one two three four five", "one two three four five"},
		{"truncates beyond five tokens", "plan a week long trip to Japan", "plan a week long trip"},
		{"collapses whitespace", "  spaced\tout   words  ", "spaced out words"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wander.DeriveSessionName(tt.text))
		})
	}
}
