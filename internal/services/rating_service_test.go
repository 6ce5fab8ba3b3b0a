package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/services/dto"
)

func TestRateCreatesRating(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	rating, err := env.ratings.Rate(caller(user), piece.ID, "4")
	require.NoError(t, err)

	assert.Equal(t, "4", rating.Stars)
	assert.Equal(t, piece.ID, rating.PieceID)
	assert.Equal(t, user.ID, rating.AuthorID)
	assert.NotEmpty(t, rating.ID)
}

func TestRateSameValueIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	first, err := env.ratings.Rate(caller(user), piece.ID, "4")
	require.NoError(t, err)

	second, err := env.ratings.Rate(caller(user), piece.ID, "4")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Stars, second.Stars)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

	var count int64
	require.NoError(t, env.db.Model(&models.PieceRating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRateChangesValueInPlace(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	first, err := env.ratings.Rate(caller(user), piece.ID, "2")
	require.NoError(t, err)

	second, err := env.ratings.Rate(caller(user), piece.ID, "5")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "5", second.Stars)

	var count int64
	require.NoError(t, env.db.Model(&models.PieceRating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRateRejectsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	_, err := env.ratings.Rate(nil, piece.ID, "4")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRateValidatesStars(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	for _, stars := range []string{"0", "6", "-1", "abc", ""} {
		_, err := env.ratings.Rate(caller(user), piece.ID, stars)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStars, "stars=%q", stars)
	}
}

func TestRateUnknownPiece(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)

	_, err := env.ratings.Rate(caller(user), "missing", "3")
	assert.ErrorIs(t, err, apperrors.ErrPieceNotFound)
}

func TestPieceAggregatesRatings(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	carol := env.createUser(t, "Carol", false)
	piece := env.createPiece(t, "Dune", alice)

	_, err := env.ratings.Rate(caller(alice), piece.ID, "2")
	require.NoError(t, err)
	_, err = env.ratings.Rate(caller(bob), piece.ID, "5")
	require.NoError(t, err)
	_, err = env.ratings.Rate(caller(carol), piece.ID, "5")
	require.NoError(t, err)

	resp, err := env.pieces.Get(context.Background(), caller(alice), piece.ID)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, resp.AverageRating, 0.001)
	assert.EqualValues(t, 3, resp.TotalRatings)
	assert.Equal(t, "2", resp.CallerStars)
}

func TestListPiecesAggregatesRatings(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	dune := env.createPiece(t, "Dune", alice)
	tenet := env.createPiece(t, "Tenet", alice)
	unrated := env.createPiece(t, "Solaris", alice)

	_, err := env.ratings.Rate(caller(alice), dune.ID, "2")
	require.NoError(t, err)
	_, err = env.ratings.Rate(caller(bob), dune.ID, "4")
	require.NoError(t, err)
	_, err = env.ratings.Rate(caller(bob), tenet.ID, "5")
	require.NoError(t, err)

	list, err := env.pieces.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	byID := make(map[string]*dto.PieceResponse, len(list))
	for _, resp := range list {
		byID[resp.ID] = resp
	}

	assert.InDelta(t, 3.0, byID[dune.ID].AverageRating, 0.001)
	assert.EqualValues(t, 2, byID[dune.ID].TotalRatings)
	assert.InDelta(t, 5.0, byID[tenet.ID].AverageRating, 0.001)
	assert.EqualValues(t, 1, byID[tenet.ID].TotalRatings)
	assert.Zero(t, byID[unrated.ID].AverageRating)
	assert.Zero(t, byID[unrated.ID].TotalRatings)
}

func TestPieceWithoutRatings(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	resp, err := env.pieces.Get(context.Background(), nil, piece.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.AverageRating)
	assert.Zero(t, resp.TotalRatings)
	assert.Empty(t, resp.CallerStars)
}
