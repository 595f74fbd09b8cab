package repository

import (
	"context"
	"testing"

	"bmxhive/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	cleanup(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@x.com", Password: "x"}))

	err := repo.Create(ctx, &models.User{Email: "dup@x.com", Password: "y"})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestUserGetByEmailMissingIsNilNil(t *testing.T) {
	cleanup(t)
	repo := NewUserRepository(testDB)

	user, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSetBannedMirrorsProfile(t *testing.T) {
	cleanup(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	rider := createRider(t, "rider@x.com")

	require.NoError(t, repo.SetBanned(ctx, rider.ID, true))

	var user models.User
	require.NoError(t, testDB.First(&user, rider.ID).Error)
	assert.True(t, user.Banned)

	var profile models.Profile
	require.NoError(t, testDB.Where("user_id = ?", rider.ID).First(&profile).Error)
	assert.True(t, profile.Banned)

	require.NoError(t, repo.SetBanned(ctx, rider.ID, false))
	require.NoError(t, testDB.Where("user_id = ?", rider.ID).First(&profile).Error)
	assert.False(t, profile.Banned)
}

func TestSetBannedMissingUser(t *testing.T) {
	cleanup(t)
	repo := NewUserRepository(testDB)

	err := repo.SetBanned(context.Background(), 424242, true)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
