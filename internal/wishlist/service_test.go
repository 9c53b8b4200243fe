package wishlist

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

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:wishlist_%s?mode=memory&cache=shared", uuid.NewString())
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
		CREATE TABLE wishlist_items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			created_at DATETIME,
			UNIQUE (user_id, product_id)
		);
	`).Error)

	return db
}

func newWishlistService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Repo:        NewRepository(db),
		CatalogRepo: catalog.NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func seedWishlistProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: slug + " cat", Slug: slug + "-cat"}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       slug,
		Slug:       slug,
		Price:      decimal.NewFromInt(99),
		Stock:      5,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestAddIsIdempotent(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	product := seedWishlistProduct(t, db, "lamp")

	require.NoError(t, svc.Add(ctx, shopper, product.ID))
	require.NoError(t, svc.Add(ctx, shopper, product.ID))

	list, err := svc.List(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "lamp", list[0].Product.Name)
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newWishlistService(t, setupWishlistTestDB(t))

	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListNewestFirstScopedToUser(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	other := uuid.New()
	first := seedWishlistProduct(t, db, "lamp")
	second := seedWishlistProduct(t, db, "desk")

	require.NoError(t, db.Create(&models.WishlistItem{
		ID: uuid.New(), UserID: shopper, ProductID: first.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.WishlistItem{
		ID: uuid.New(), UserID: shopper, ProductID: second.ID,
		CreatedAt: time.Now(),
	}).Error)
	require.NoError(t, svc.Add(ctx, other, first.ID))

	list, err := svc.List(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "desk", list[0].Product.Name)
	assert.Equal(t, "lamp", list[1].Product.Name)
}

func TestRemoveSilentWhenAbsent(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	product := seedWishlistProduct(t, db, "lamp")

	require.NoError(t, svc.Add(ctx, shopper, product.ID))
	require.NoError(t, svc.Remove(ctx, shopper, product.ID))
	require.NoError(t, svc.Remove(ctx, shopper, product.ID))

	list, err := svc.List(ctx, shopper)
	require.NoError(t, err)
	assert.Empty(t, list)
}
