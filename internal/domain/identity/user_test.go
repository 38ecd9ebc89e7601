package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := NewUser("alice", "Alice@Example.com", "secret1", RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.UserName)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.Active)
		assert.NotEqual(t, "secret1", u.PasswordHash)
		assert.True(t, u.VerifyPassword("secret1"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("unknown role falls back to customer", func(t *testing.T) {
		u, err := NewUser("bob", "bob@example.com", "secret1", Role("superuser"))
		require.NoError(t, err)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := NewUser("bob", "bob@example.com", "12345", RoleCustomer)
		assert.Error(t, err)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := NewUser("bob", "not-an-email", "secret1", RoleCustomer)
		assert.Error(t, err)
	})

	t.Run("short name rejected", func(t *testing.T) {
		_, err := NewUser("b", "bob@example.com", "secret1", RoleCustomer)
		assert.Error(t, err)
	})
}

func TestUser_IsBlocked(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "secret1", RoleCustomer)
	require.NoError(t, err)

	now := time.Now()
	assert.False(t, u.IsBlocked(now))

	future := now.Add(time.Hour)
	u.BlockedUntil = &future
	assert.True(t, u.IsBlocked(now))

	past := now.Add(-time.Hour)
	u.BlockedUntil = &past
	assert.False(t, u.IsBlocked(now))
}

func TestUser_RecordCancellation(t *testing.T) {
	newUser := func(t *testing.T) *User {
		u, err := NewUser("alice", "alice@example.com", "secret1", RoleCustomer)
		require.NoError(t, err)
		return u
	}

	t.Run("first cancellation starts both counters at 1", func(t *testing.T) {
		u := newUser(t)
		now := time.Now()

		u.RecordCancellation(now)

		assert.Equal(t, 1, u.CancelCount24h)
		assert.Equal(t, 1, u.CancelCount7d)
		require.NotNil(t, u.LastCancelAt)
		assert.Equal(t, now, *u.LastCancelAt)
		assert.Nil(t, u.BlockedUntil)
	})

	t.Run("third cancellation within 24h blocks for 24h", func(t *testing.T) {
		u := newUser(t)
		base := time.Now()

		u.RecordCancellation(base)
		u.RecordCancellation(base.Add(time.Hour))
		assert.Nil(t, u.BlockedUntil)

		third := base.Add(2 * time.Hour)
		u.RecordCancellation(third)

		assert.Equal(t, 3, u.CancelCount24h)
		require.NotNil(t, u.BlockedUntil)
		assert.Equal(t, third.Add(24*time.Hour), *u.BlockedUntil)
	})

	t.Run("stale 24h counter resets instead of accumulating", func(t *testing.T) {
		u := newUser(t)
		base := time.Now()

		u.RecordCancellation(base)
		u.RecordCancellation(base.Add(time.Minute))

		// Gap longer than 24h: the short-window counter restarts at 1.
		later := base.Add(25 * time.Hour)
		u.RecordCancellation(later)

		assert.Equal(t, 1, u.CancelCount24h)
		assert.Equal(t, 3, u.CancelCount7d)
		assert.Nil(t, u.BlockedUntil)
	})

	t.Run("fifth cancellation within 7d blocks for 7d", func(t *testing.T) {
		u := newUser(t)
		base := time.Now()

		// Spread so the 24h counter keeps resetting but the 7d counter grows.
		times := []time.Time{
			base,
			base.Add(25 * time.Hour),
			base.Add(50 * time.Hour),
			base.Add(75 * time.Hour),
		}
		for _, ts := range times {
			u.RecordCancellation(ts)
		}
		assert.Nil(t, u.BlockedUntil)
		assert.Equal(t, 4, u.CancelCount7d)

		fifth := base.Add(100 * time.Hour)
		u.RecordCancellation(fifth)

		assert.Equal(t, 5, u.CancelCount7d)
		assert.Equal(t, 1, u.CancelCount24h)
		require.NotNil(t, u.BlockedUntil)
		assert.Equal(t, fifth.Add(7*24*time.Hour), *u.BlockedUntil)
	})

	t.Run("both counters reset after a quiet week", func(t *testing.T) {
		u := newUser(t)
		base := time.Now()

		u.RecordCancellation(base)
		u.RecordCancellation(base.Add(time.Minute))

		later := base.Add(8 * 24 * time.Hour)
		u.RecordCancellation(later)

		assert.Equal(t, 1, u.CancelCount24h)
		assert.Equal(t, 1, u.CancelCount7d)
	})

	t.Run("new block overwrites an existing one", func(t *testing.T) {
		u := newUser(t)
		base := time.Now()

		u.RecordCancellation(base)
		u.RecordCancellation(base.Add(time.Minute))
		u.RecordCancellation(base.Add(2 * time.Minute))
		require.NotNil(t, u.BlockedUntil)
		first := *u.BlockedUntil

		fourth := base.Add(time.Hour)
		u.RecordCancellation(fourth)

		require.NotNil(t, u.BlockedUntil)
		assert.NotEqual(t, first, *u.BlockedUntil)
		assert.Equal(t, fourth.Add(24*time.Hour), *u.BlockedUntil)
	})
}
