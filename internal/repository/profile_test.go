package repository

import (
	"context"
	"testing"

	"bmxhive/internal/cache"
	"bmxhive/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointsFloorsAtZero(t *testing.T) {
	cleanup(t)
	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	rider := createRider(t, "rider@x.com")

	profile, err := repo.AddPoints(ctx, rider.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, profile.Points)
	assert.Equal(t, models.LevelIntermediate, profile.RidingLevel)

	profile, err = repo.AddPoints(ctx, rider.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Points)
	assert.Equal(t, models.LevelBeginner, profile.RidingLevel)

	// The user row mirrors the profile total.
	var user models.User
	require.NoError(t, testDB.First(&user, rider.ID).Error)
	assert.Equal(t, 0, user.Points)
}

func TestGetByUserIDJoinsAccountFields(t *testing.T) {
	cleanup(t)
	repo := NewProfileRepository(testDB)

	rider := createRider(t, "joined@x.com")

	profile, err := repo.GetByUserID(context.Background(), rider.ID)
	require.NoError(t, err)
	assert.Equal(t, "joined@x.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	cleanup(t)
	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	low := createRider(t, "low@x.com")
	high := createRider(t, "high@x.com")
	mid := createRider(t, "mid@x.com")

	_, err := repo.AddPoints(ctx, low.ID, 5)
	require.NoError(t, err)
	_, err = repo.AddPoints(ctx, high.ID, 120)
	require.NoError(t, err)
	_, err = repo.AddPoints(ctx, mid.ID, 60)
	require.NoError(t, err)

	profiles, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	assert.Equal(t, high.ID, profiles[0].UserID)
	assert.Equal(t, 1, profiles[0].Position)
	assert.Equal(t, models.LevelProfessional, profiles[0].RidingLevel)

	assert.Equal(t, mid.ID, profiles[1].UserID)
	assert.Equal(t, 2, profiles[1].Position)

	assert.Equal(t, low.ID, profiles[2].UserID)
	assert.Equal(t, 3, profiles[2].Position)
}

// The board is cached as one shared entry, so a request for a narrow page
// must not leave later callers with a truncated list.
func TestLeaderboardSmallPageDoesNotShrinkCache(t *testing.T) {
	cleanup(t)
	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	t.Cleanup(func() {
		mr.Close()
		cache.InitRedis(mr.Addr())
	})

	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		rider := createRider(t, email)
		_, err := repo.AddPoints(ctx, rider.ID, (i+1)*10)
		require.NoError(t, err)
	}

	first, err := repo.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].Position)

	// The second call hits the cached entry and must still see everyone.
	second, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, 30, second[0].Points)
	assert.Equal(t, 3, second[2].Position)
}

func TestAppendTrickVideoPreservesOrder(t *testing.T) {
	cleanup(t)
	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	rider := createRider(t, "rider@x.com")

	require.NoError(t, repo.AppendTrickVideo(ctx, rider.ID, "/uploads/videos/a.mp4"))
	require.NoError(t, repo.AppendTrickVideo(ctx, rider.ID, "/uploads/videos/b.mp4"))

	profile, err := repo.GetByUserID(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/videos/a.mp4", "/uploads/videos/b.mp4"}, profile.TrickVideos)
}
