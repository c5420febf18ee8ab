package service

import (
	"context"
	"strconv"
	"strings"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/repository"
)

const (
	DefaultTopSellingLimit = 5
	DefaultSearchLimit     = 10
	// MaxLimit caps every list endpoint.
	MaxLimit = 100
)

// ParseLimit turns a raw limit parameter into a usable row count. Missing,
// non-numeric, zero and negative values fall back to def; large values are
// clamped to MaxLimit. It never fails.
func ParseLimit(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return normalizeLimit(n, def)
}

func normalizeLimit(n, def int) int {
	if n <= 0 {
		return def
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// CatalogService answers the read-only product queries.
type CatalogService interface {
	TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error)
	// ProductStock returns repository.ErrProductNotFound when no product
	// name contains name.
	ProductStock(ctx context.Context, name string) ([]*domain.ProductStock, error)
	SearchProducts(ctx context.Context, params repository.SearchParams) ([]*domain.Product, error)
	Stats(ctx context.Context) (*domain.CollectionStats, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	statsRepo   repository.StatsRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, statsRepo repository.StatsRepository) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		statsRepo:   statsRepo,
	}
}

func (s *catalogService) TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error) {
	return s.productRepo.TopSelling(ctx, normalizeLimit(limit, DefaultTopSellingLimit))
}

func (s *catalogService) ProductStock(ctx context.Context, name string) ([]*domain.ProductStock, error) {
	return s.productRepo.StockByName(ctx, name)
}

func (s *catalogService) SearchProducts(ctx context.Context, params repository.SearchParams) ([]*domain.Product, error) {
	params.Limit = normalizeLimit(params.Limit, DefaultSearchLimit)
	return s.productRepo.Search(ctx, params)
}

func (s *catalogService) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	return s.statsRepo.CollectionStats(ctx)
}
