package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
)

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, model.User{UserID: "12345", Username: "octocat"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "12345", got.User.UserID)
	assert.Equal(t, "octocat", got.User.Username)

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_ExpiredSessionNotReturned(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, model.User{UserID: "12345"}, -time.Minute)
	require.NoError(t, err)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNoSession)
}
