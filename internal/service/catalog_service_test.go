package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_ParseLimitIsAlwaysUsable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("any input yields a limit between 1 and MaxLimit", prop.ForAll(
		func(raw string) bool {
			n := ParseLimit(raw, DefaultSearchLimit)
			return n >= 1 && n <= MaxLimit
		},
		gen.AnyString(),
	))

	properties.Property("positive integers within range are kept", prop.ForAll(
		func(n int) bool {
			return ParseLimit(strconv.Itoa(n), DefaultTopSellingLimit) == n
		},
		gen.IntRange(1, MaxLimit),
	))

	properties.Property("non-positive integers fall back to the default", prop.ForAll(
		func(n int) bool {
			return ParseLimit(strconv.Itoa(n), DefaultTopSellingLimit) == DefaultTopSellingLimit
		},
		gen.IntRange(-1000000, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 5, 5},
		{"3", 5, 3},
		{" 7 ", 5, 7},
		{"abc", 5, 5},
		{"2.5", 10, 10},
		{"0", 10, 10},
		{"-4", 10, 10},
		{"100", 5, 100},
		{"5000", 5, MaxLimit},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLimit(tt.raw, tt.def), "ParseLimit(%q, %d)", tt.raw, tt.def)
	}
}

func TestTopSellingNormalizesLimit(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo, &mockStatsRepository{})

	_, err := svc.TopSelling(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopSellingLimit, repo.lastLimit)

	_, err = svc.TopSelling(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastLimit)

	_, err = svc.TopSelling(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, repo.lastLimit)
}

func TestSearchProductsPassesFilters(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo, &mockStatsRepository{})

	_, err := svc.SearchProducts(context.Background(), repository.SearchParams{
		Query:    "shirt",
		Category: "Tops",
		Limit:    -1,
	})
	require.NoError(t, err)

	assert.Equal(t, repository.SearchParams{
		Query:    "shirt",
		Category: "Tops",
		Limit:    DefaultSearchLimit,
	}, repo.lastSearch)
}

func TestProductStockNotFound(t *testing.T) {
	svc := NewCatalogService(newMockProductRepository(), &mockStatsRepository{})

	_, err := svc.ProductStock(context.Background(), "nothing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCatalogServicePropagatesStoreErrors(t *testing.T) {
	repo := newMockProductRepository()
	repo.err = errors.New("connection reset")
	svc := NewCatalogService(repo, &mockStatsRepository{})

	_, err := svc.TopSelling(context.Background(), 5)
	assert.EqualError(t, err, "connection reset")

	_, err = svc.ProductStock(context.Background(), "shirt")
	assert.EqualError(t, err, "connection reset")
}

func TestStats(t *testing.T) {
	want := &domain.CollectionStats{Products: 3, Orders: 2, OrderItems: 5, InventoryItems: 9}
	svc := NewCatalogService(newMockProductRepository(), &mockStatsRepository{stats: want})

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
