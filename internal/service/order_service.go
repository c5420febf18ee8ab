package service

import (
	"context"
	"fmt"
	"time"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/repository"

	"github.com/graph-gophers/dataloader/v7"
)

// OrderService assembles orders with their items and products.
type OrderService interface {
	// GetOrderDetail returns repository.ErrOrderNotFound for an unknown id.
	// Items whose product does not exist carry a nil Product.
	GetOrderDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *orderService) GetOrderDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.orderRepo.FindItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]int64, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	// A fresh loader per request, so nothing is cached across requests.
	loader := newProductLoader(s.productRepo)
	products, errs := loader.LoadMany(ctx, productIDs)()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to load product %d: %w", productIDs[i], err)
		}
	}

	detail := &domain.OrderDetail{
		Order: order,
		Items: make([]domain.OrderItemDetail, len(items)),
	}
	for i, item := range items {
		detail.Items[i] = domain.OrderItemDetail{
			OrderItem: *item,
			Product:   products[i],
		}
	}

	return detail, nil
}

type productReader struct {
	repo repository.ProductRepository
}

// getProducts resolves one batch of ids with a single query. Results follow
// the order of ids; unknown ids resolve to nil.
func (r *productReader) getProducts(ctx context.Context, ids []int64) []*dataloader.Result[*domain.Product] {
	found, err := r.repo.FindByIDs(ctx, ids)

	results := make([]*dataloader.Result[*domain.Product], len(ids))
	for i, id := range ids {
		if err != nil {
			results[i] = &dataloader.Result[*domain.Product]{Error: err}
			continue
		}
		results[i] = &dataloader.Result[*domain.Product]{Data: found[id]}
	}
	return results
}

func newProductLoader(repo repository.ProductRepository) *dataloader.Loader[int64, *domain.Product] {
	reader := &productReader{repo: repo}
	return dataloader.NewBatchedLoader(
		reader.getProducts,
		dataloader.WithWait[int64, *domain.Product](time.Millisecond),
	)
}
