package orders

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

	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:orders_%s?mode=memory&cache=shared", uuid.NewString())
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
		CREATE TABLE addresses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			pincode TEXT NOT NULL,
			address_line TEXT NOT NULL,
			flat_house_no TEXT,
			landmark TEXT,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME,
			updated_at DATETIME
		);
		CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			address_id TEXT,
			total_amount NUMERIC NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		);
		CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT,
			quantity INTEGER NOT NULL,
			price NUMERIC NOT NULL,
			created_at DATETIME
		);
	`).Error)

	return db
}

func newOrdersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func seedOrderProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name + " cat", Slug: name + "-cat"}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
		Slug:       name,
		Price:      decimal.NewFromInt(50),
		Stock:      10,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

type orderSpec struct {
	userID uuid.UUID
	ref    string
	total  int64
	status enums.OrderStatus
	age    time.Duration
	items  []models.OrderItem
}

func seedOrder(t *testing.T, db *gorm.DB, spec orderSpec) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:          uuid.New(),
		OrderID:     spec.ref,
		UserID:      spec.userID,
		TotalAmount: decimal.NewFromInt(spec.total),
		Status:      spec.status,
		CreatedAt:   time.Now().Add(-spec.age),
	}
	require.NoError(t, db.Create(order).Error)

	for i := range spec.items {
		spec.items[i].ID = uuid.New()
		spec.items[i].OrderID = order.ID
		require.NoError(t, db.Create(&spec.items[i]).Error)
	}
	return order
}

func TestListNewestFirstScopedToUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	other := uuid.New()

	seedOrder(t, db, orderSpec{userID: shopper, ref: "OLD1ORDER1", total: 100, status: enums.OrderStatusDelivered, age: 48 * time.Hour})
	seedOrder(t, db, orderSpec{userID: shopper, ref: "NEW1ORDER1", total: 200, status: enums.OrderStatusPending, age: time.Hour})
	seedOrder(t, db, orderSpec{userID: other, ref: "OTHERORDER", total: 300, status: enums.OrderStatusPending, age: time.Minute})

	list, err := svc.List(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "NEW1ORDER1", list[0].OrderID)
	assert.Equal(t, "OLD1ORDER1", list[1].OrderID)
}

func TestDetailScopingAndSnapshots(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	product := seedOrderProduct(t, db, "kettle")

	addr := &models.Address{
		ID:          uuid.New(),
		UserID:      shopper,
		FullName:    "Asha Rao",
		Phone:       "9000000000",
		Email:       "asha@example.com",
		Pincode:     "560001",
		AddressLine: "12 MG Road",
		IsDefault:   true,
	}
	require.NoError(t, db.Create(addr).Error)

	order := seedOrder(t, db, orderSpec{
		userID: shopper,
		ref:    "REF1ORDER1",
		total:  118,
		status: enums.OrderStatusPending,
		items: []models.OrderItem{
			{ProductID: &product.ID, Quantity: 2, Price: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, db.Model(order).Update("address_id", addr.ID).Error)

	detail, err := svc.Detail(ctx, shopper, "REF1ORDER1")
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "kettle", detail.Items[0].Name)
	assert.Equal(t, "100.00", detail.Items[0].Subtotal.StringFixed(2))
	require.NotNil(t, detail.Address)
	assert.Equal(t, "12 MG Road", detail.Address.AddressLine)

	// another user must not see it through the public reference
	_, err = svc.Detail(ctx, uuid.New(), "REF1ORDER1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.Detail(ctx, shopper, "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDetailSurvivesDeletedProduct(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	seedOrder(t, db, orderSpec{
		userID: shopper,
		ref:    "REF2ORDER2",
		total:  59,
		status: enums.OrderStatusDelivered,
		items: []models.OrderItem{
			{ProductID: nil, Quantity: 1, Price: decimal.NewFromInt(59)},
		},
	})

	detail, err := svc.Detail(ctx, shopper, "REF2ORDER2")
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Empty(t, detail.Items[0].Name)
	assert.Equal(t, "59.00", detail.Items[0].Price.StringFixed(2))
}

func TestSummaryAggregates(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	shopper := uuid.New()
	for i := 0; i < 6; i++ {
		status := enums.OrderStatusPending
		if i%2 == 0 {
			status = enums.OrderStatusDelivered
		}
		seedOrder(t, db, orderSpec{
			userID: shopper,
			ref:    fmt.Sprintf("SUMMARY%03d", i),
			total:  100,
			status: status,
			age:    time.Duration(i) * time.Hour,
		})
	}

	summary, err := svc.Summary(ctx, shopper)
	require.NoError(t, err)
	assert.Equal(t, int64(6), summary.TotalOrders)
	assert.Equal(t, "600.00", summary.TotalSpent.StringFixed(2))
	assert.Equal(t, int64(3), summary.DeliveredCount)
	assert.Equal(t, int64(3), summary.PendingCount)
	require.NotNil(t, summary.LastOrderAt)
	require.Len(t, summary.RecentOrders, 5)
	assert.Equal(t, "SUMMARY000", summary.RecentOrders[0].OrderID)
}

func TestSummaryEmptyAccount(t *testing.T) {
	svc := newOrdersService(t, setupOrdersTestDB(t))

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalOrders)
	assert.Equal(t, "0.00", summary.TotalSpent.StringFixed(2))
	assert.Nil(t, summary.LastOrderAt)
	assert.Empty(t, summary.RecentOrders)
}
