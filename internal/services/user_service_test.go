package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainymonked/reviews/internal/apperrors"
)

func TestUpdateLocale(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)

	resp, err := env.users.UpdateLocale(caller(user), "ru")
	require.NoError(t, err)
	assert.Equal(t, "ru", resp.PreferredLocale)

	stored, err := env.userRepo.FindByID(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ru", stored.PreferredLocale)
}

func TestUpdateLocaleRejectsUnsupported(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)

	for _, locale := range []string{"de", "EN", "", "en-US"} {
		_, err := env.users.UpdateLocale(caller(user), locale)
		assert.ErrorIs(t, err, apperrors.ErrInvalidLocale, "locale=%q", locale)
	}
}

func TestUpdateLocaleRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.UpdateLocale(nil, "en")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGetProfileHidesEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	env.createReview(t, piece, user)

	profile, err := env.users.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Name)
	assert.Empty(t, profile.Email)
	assert.Len(t, profile.Reviews, 1)
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
