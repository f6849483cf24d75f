package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &model.User{Username: "johndoe", Email: "john.doe@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", byID.Username)
	assert.Equal(t, "hash", byID.PasswordHash)

	byName, err := repo.FindByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}))

	err := repo.Create(ctx, &model.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{Username: "other", Email: "alice@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}))

	tests := []struct {
		name         string
		username     string
		email        string
		wantUsername bool
		wantEmail    bool
	}{
		{name: "both free", username: "bob", email: "bob@example.com"},
		{name: "username taken", username: "alice", email: "bob@example.com", wantUsername: true},
		{name: "email taken", username: "bob", email: "alice@example.com", wantEmail: true},
		{name: "both taken", username: "alice", email: "alice@example.com", wantUsername: true, wantEmail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usernameTaken, emailTaken, err := repo.ExistsByUsernameOrEmail(ctx, tt.username, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsername, usernameTaken)
			assert.Equal(t, tt.wantEmail, emailTaken)
		})
	}
}
