package reviews

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/pkg/db/models"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:reviews_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			icon TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			short_description TEXT,
			description TEXT,
			price NUMERIC NOT NULL,
			old_price NUMERIC,
			stock INTEGER NOT NULL DEFAULT 0,
			image_url TEXT,
			rating REAL NOT NULL DEFAULT 0,
			is_hot_deal BOOLEAN NOT NULL DEFAULT FALSE,
			is_top_deal BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME,
			updated_at DATETIME
		);
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
		CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at DATETIME,
			UNIQUE (product_id, user_id)
		);
	`).Error)

	return db
}

func newReviewsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Repo:        NewRepository(db),
		CatalogRepo: catalog.NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func seedReviewProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: "Kitchen", Slug: "kitchen"}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       "kettle",
		Slug:       "kettle",
		Price:      decimal.NewFromInt(50),
		Stock:      10,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedReviewer(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "hash",
		FullName:     name,
		Role:         "customer",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAddValidatesRating(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewsService(t, db)
	ctx := context.Background()

	product := seedReviewProduct(t, db)
	user := seedReviewer(t, db, "Asha Rao")

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Add(ctx, user.ID, product.ID, rating, nil)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}

	dto, err := svc.Add(ctx, user.ID, product.ID, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Rating)
}

func TestAddRejectsSecondReview(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewsService(t, db)
	ctx := context.Background()

	product := seedReviewProduct(t, db)
	user := seedReviewer(t, db, "Asha Rao")

	_, err := svc.Add(ctx, user.ID, product.ID, 4, nil)
	require.NoError(t, err)

	_, err = svc.Add(ctx, user.ID, product.ID, 2, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newReviewsService(t, setupReviewsTestDB(t))

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), 4, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListNewestFirstWithAuthors(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewsService(t, db)
	ctx := context.Background()

	product := seedReviewProduct(t, db)
	first := seedReviewer(t, db, "Asha Rao")
	second := seedReviewer(t, db, "Vikram Shah")

	comment := "  solid kettle  "
	require.NoError(t, db.Create(&models.Review{
		ID: uuid.New(), ProductID: product.ID, UserID: first.ID,
		Rating: 4, CreatedAt: time.Now().Add(-time.Hour),
	}).Error)
	_, err := svc.Add(ctx, second.ID, product.ID, 5, &comment)
	require.NoError(t, err)

	list, err := svc.ListForProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Vikram Shah", list[0].AuthorName)
	require.NotNil(t, list[0].Comment)
	assert.Equal(t, "solid kettle", *list[0].Comment)
	assert.Equal(t, "Asha Rao", list[1].AuthorName)
}

func TestStatsForProduct(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewsService(t, db)
	ctx := context.Background()

	product := seedReviewProduct(t, db)

	_, err := svc.Add(ctx, seedReviewer(t, db, "A").ID, product.ID, 5, nil)
	require.NoError(t, err)
	_, err = svc.Add(ctx, seedReviewer(t, db, "B").ID, product.ID, 2, nil)
	require.NoError(t, err)

	stats, err := svc.StatsForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.InDelta(t, 3.5, stats.Average, 0.001)

	empty, err := svc.StatsForProduct(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Count)
	assert.Equal(t, 0.0, empty.Average)
}
