package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/models"
)

func TestToggleCreatesLikedRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user)

	like, err := env.likes.Toggle(caller(user), review.ID)
	require.NoError(t, err)

	assert.True(t, like.Liked)
	assert.Equal(t, review.ID, like.ReviewID)
	assert.Equal(t, user.ID, like.AuthorID)
}

func TestToggleFlipsInPlace(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user)

	first, err := env.likes.Toggle(caller(user), review.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)

	second, err := env.likes.Toggle(caller(user), review.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, first.ID, second.ID)

	third, err := env.likes.Toggle(caller(user), review.ID)
	require.NoError(t, err)
	assert.True(t, third.Liked)
	assert.Equal(t, first.ID, third.ID)

	// Unliking never deletes the row
	var count int64
	require.NoError(t, env.db.Model(&models.ReviewLike{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLikeCountExcludesUnliked(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	piece := env.createPiece(t, "Dune", alice)
	review := env.createReview(t, piece, alice)

	_, err := env.likes.Toggle(caller(alice), review.ID)
	require.NoError(t, err)
	_, err = env.likes.Toggle(caller(bob), review.ID)
	require.NoError(t, err)

	count, err := env.likeRepo.CountLiked(env.db, review.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Bob unlikes: his row stays but drops out of the count.
	_, err = env.likes.Toggle(caller(bob), review.ID)
	require.NoError(t, err)

	count, err = env.likeRepo.CountLiked(env.db, review.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestToggleRejectsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user)

	_, err := env.likes.Toggle(nil, review.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestToggleUnknownReview(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)

	_, err := env.likes.Toggle(caller(user), "missing")
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}
