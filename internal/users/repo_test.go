package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'customer',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_login_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);
	`).Error)

	return db
}

func TestFindByEmailNormalizes(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		ID:           uuid.New(),
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		FullName:     "Shopper",
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}))

	found, err := repo.FindByEmail(ctx, "  Shopper@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", found.Email)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.User{
		ID:           id,
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		FullName:     "Shopper",
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}))

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(ctx, id, at))

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, found.LastLoginAt.Equal(at))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.EnsureAdmin(ctx, "Admin@NeoKart.dev", "hash-1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureAdmin(ctx, "admin@neokart.dev", "hash-2")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := repo.FindByEmail(ctx, "admin@neokart.dev")
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, admin.Role)
	assert.Equal(t, "hash-1", admin.PasswordHash, "existing account is not rewritten")
}
