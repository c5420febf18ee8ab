package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-assistant/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, cost, category, name, brand, retail_price, department, sku, distribution_center_id`

// SearchParams filters a product search. Empty strings impose no constraint.
type SearchParams struct {
	Query    string // matched against name, brand or category
	Category string
	Brand    string
	Limit    int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindByIDs returns the products that exist, keyed by id. Unknown ids
	// are simply absent from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	Search(ctx context.Context, params SearchParams) ([]*domain.Product, error)
	TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error)
	StockByName(ctx context.Context, name string) ([]*domain.ProductStock, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := s.Scan(
		&product.ID,
		&product.Cost,
		&product.Category,
		&product.Name,
		&product.Brand,
		&product.RetailPrice,
		&product.Department,
		&product.SKU,
		&product.DistributionCenterID,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	products := make(map[int64]*domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[product.ID] = product
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Search matches Query as a case-insensitive substring of name, brand or
// category, ANDed with the optional category and brand filters.
func (r *productRepository) Search(ctx context.Context, params SearchParams) ([]*domain.Product, error) {
	var (
		conditions []string
		args       []any
	)

	if params.Query != "" {
		args = append(args, containsPattern(params.Query))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}
	if params.Category != "" {
		args = append(args, containsPattern(params.Category))
		conditions = append(conditions, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if params.Brand != "" {
		args = append(args, containsPattern(params.Brand))
		conditions = append(conditions, fmt.Sprintf("brand ILIKE $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, params.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY id
		LIMIT $%d
	`, productColumns, whereClause, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return products, nil
}

// TopSelling ranks products by the number of order items that are not
// cancelled. The limit is applied before joining products, so groups whose
// product no longer exists shrink the result instead of being backfilled.
func (r *productRepository) TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error) {
	query := `
		SELECT s.product_id, p.name, p.brand, p.category, s.total_sold, p.retail_price
		FROM (
			SELECT product_id, COUNT(*) AS total_sold
			FROM order_items
			WHERE status IS DISTINCT FROM $1
			GROUP BY product_id
			ORDER BY total_sold DESC, product_id ASC
			LIMIT $2
		) s
		INNER JOIN products p ON p.id = s.product_id
		ORDER BY s.total_sold DESC, s.product_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top-selling products: %w", err)
	}
	defer rows.Close()

	result := []*domain.TopSellingProduct{}
	for rows.Next() {
		p := &domain.TopSellingProduct{}
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Brand, &p.Category, &p.TotalSold, &p.RetailPrice); err != nil {
			return nil, fmt.Errorf("failed to scan top-selling product: %w", err)
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top-selling products: %w", err)
	}

	return result, nil
}

// StockByName reports inventory counts for every product whose name contains
// name, case-insensitively. No match yields ErrProductNotFound.
func (r *productRepository) StockByName(ctx context.Context, name string) ([]*domain.ProductStock, error) {
	query := `
		SELECT p.id, p.name, p.brand, p.category, p.sku,
		       COUNT(i.id) AS total_inventory,
		       COUNT(i.sold_at) AS sold_inventory
		FROM products p
		LEFT JOIN inventory_items i ON i.product_id = p.id
		WHERE p.name ILIKE $1
		GROUP BY p.id
		ORDER BY p.id
	`

	rows, err := r.db.QueryContext(ctx, query, containsPattern(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query product stock: %w", err)
	}
	defer rows.Close()

	result := []*domain.ProductStock{}
	for rows.Next() {
		s := &domain.ProductStock{}
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Brand, &s.Category, &s.SKU, &s.TotalInventory, &s.SoldInventory); err != nil {
			return nil, fmt.Errorf("failed to scan product stock: %w", err)
		}
		s.AvailableStock = s.TotalInventory - s.SoldInventory
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product stock: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrProductNotFound
	}

	return result, nil
}
