package wander_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderapp/wander"
)

func TestIdentity_Authenticated(t *testing.T) {
	t.Parallel()

	assert.True(t, wander.Identity{Token: "tok"}.Authenticated())
	assert.False(t, wander.Identity{Email: "a@b.c"}.Authenticated())
}

func TestContext_SetAndClear(t *testing.T) {
	t.Parallel()

	t.Run("empty context has no identity", func(t *testing.T) {
		t.Parallel()
		c := wander.NewContext()
		_, ok := c.Current()
		assert.False(t, ok)
		assert.Equal(t, 0, c.Epoch())
	})

	t.Run("set installs the identity and bumps the epoch", func(t *testing.T) {
		t.Parallel()
		c := wander.NewContext()
		c.Set(wander.Identity{ID: "u1", Token: "tok"})

		id, ok := c.Current()
		require.True(t, ok)
		assert.Equal(t, "u1", id.ID)
		assert.Equal(t, 1, c.Epoch())
	})

	t.Run("re-setting the same identity still advances the epoch", func(t *testing.T) {
		t.Parallel()
		c := wander.NewContext()
		id := wander.Identity{ID: "u1", Token: "tok"}
		c.Set(id)
		c.Set(id)
		assert.Equal(t, 2, c.Epoch())
	})

	t.Run("clear removes the identity and bumps the epoch", func(t *testing.T) {
		t.Parallel()
		c := wander.NewContext()
		c.Set(wander.Identity{ID: "u1", Token: "tok"})
		c.Clear()

		_, ok := c.Current()
		assert.False(t, ok)
		assert.Equal(t, 2, c.Epoch())
	})
}
