package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
	"github.com/neokart/neokart-backend/pkg/pagination"
)

func TestServiceHome(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	ctx := context.Background()

	category := newCategory(t, db, "Electronics", "electronics")
	newProduct(t, db, category.ID, productSpec{name: "Hot", slug: "hot", price: "5.00", hot: true})
	newProduct(t, db, category.ID, productSpec{name: "Top", slug: "top", price: "6.00", top: true, age: time.Hour})

	home, err := svc.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.Categories, 1)
	assert.Equal(t, "electronics", home.Categories[0].Slug)
	assert.Len(t, home.HotDeals, 1)
	assert.Len(t, home.TopDeals, 1)
	assert.Len(t, home.Latest, 2)
}

func TestServiceDetailNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)

	_, err = svc.Detail(context.Background(), "ghost")
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = svc.Detail(context.Background(), "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestServiceDetailAssemblesPayload(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	ctx := context.Background()

	category := newCategory(t, db, "Shoes", "shoes")
	product := newProduct(t, db, category.ID, productSpec{name: "Runner", slug: "runner", price: "55.00", stock: 9})
	newProduct(t, db, category.ID, productSpec{name: "Walker", slug: "walker", price: "45.00", age: time.Hour})

	detail, err := svc.Detail(ctx, "runner")
	require.NoError(t, err)
	assert.Equal(t, product.ID, detail.ID)
	assert.Equal(t, "shoes", detail.Category.Slug)
	require.Len(t, detail.Recommended, 1)
	assert.Equal(t, "walker", detail.Recommended[0].Slug)
}

func TestServiceListAndResolveCards(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	ctx := context.Background()

	category := newCategory(t, db, "Audio", "audio")
	a := newProduct(t, db, category.ID, productSpec{name: "Amp", slug: "amp", price: "100.00"})
	b := newProduct(t, db, category.ID, productSpec{name: "Mixer", slug: "mixer", price: "200.00", age: time.Hour})

	page, err := svc.List(ctx, ListFilter{}, pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	cards, err := svc.ResolveCards(ctx, []uuid.UUID{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, b.ID, cards[0].ID)
	assert.Equal(t, a.ID, cards[1].ID)
}
