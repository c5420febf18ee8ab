package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalog-assistant/internal/domain"
)

// Target describes where an entity comes from and where it is stored.
type Target struct {
	Name    string
	Table   string
	File    string // base name inside the data directory, without extension
	Columns []string
}

// Entity binds a target to the typed transform that produces its rows.
type Entity[T any] struct {
	Target
	Transform func(Record) (T, error)
	// Values returns one value per column, in Columns order.
	Values func(T) []any
}

// Job is an entity load with its type parameter erased, so loads of
// different entity types can be sequenced together.
type Job interface {
	Describe() Target
	Run(ctx context.Context, l *Loader, path string) (Result, error)
}

func (e Entity[T]) Describe() Target {
	return e.Target
}

func (e Entity[T]) Run(ctx context.Context, l *Loader, path string) (Result, error) {
	return Load(ctx, l, path, e)
}

var DistributionCenters = Entity[domain.DistributionCenter]{
	Target: Target{
		Name:    "distribution_centers",
		Table:   "distribution_centers",
		File:    "distribution_centers",
		Columns: []string{"id", "name", "latitude", "longitude"},
	},
	Transform: TransformDistributionCenter,
	Values: func(dc domain.DistributionCenter) []any {
		return []any{dc.ID, dc.Name, dc.Latitude, dc.Longitude}
	},
}

var Products = Entity[domain.Product]{
	Target: Target{
		Name:    "products",
		Table:   "products",
		File:    "products",
		Columns: []string{"id", "cost", "category", "name", "brand", "retail_price", "department", "sku", "distribution_center_id"},
	},
	Transform: TransformProduct,
	Values: func(p domain.Product) []any {
		return []any{p.ID, p.Cost, p.Category, p.Name, p.Brand, p.RetailPrice, p.Department, p.SKU, p.DistributionCenterID}
	},
}

var Users = Entity[domain.User]{
	Target: Target{
		Name:  "users",
		Table: "users",
		File:  "users",
		Columns: []string{"id", "first_name", "last_name", "email", "age", "gender", "state", "street_address",
			"postal_code", "city", "country", "latitude", "longitude", "traffic_source", "created_at"},
	},
	Transform: TransformUser,
	Values: func(u domain.User) []any {
		return []any{u.ID, u.FirstName, u.LastName, u.Email, u.Age, u.Gender, u.State, u.StreetAddress,
			u.PostalCode, u.City, u.Country, u.Latitude, u.Longitude, u.TrafficSource, u.CreatedAt}
	},
}

var Orders = Entity[domain.Order]{
	Target: Target{
		Name:  "orders",
		Table: "orders",
		File:  "orders",
		Columns: []string{"order_id", "user_id", "status", "gender", "created_at", "returned_at", "shipped_at",
			"delivered_at", "num_of_item"},
	},
	Transform: TransformOrder,
	Values: func(o domain.Order) []any {
		return []any{o.OrderID, o.UserID, o.Status, o.Gender, o.CreatedAt, o.ReturnedAt, o.ShippedAt,
			o.DeliveredAt, o.NumOfItem}
	},
}

var OrderItems = Entity[domain.OrderItem]{
	Target: Target{
		Name:  "order_items",
		Table: "order_items",
		File:  "order_items",
		Columns: []string{"id", "order_id", "user_id", "product_id", "inventory_item_id", "status", "created_at",
			"shipped_at", "delivered_at", "returned_at"},
	},
	Transform: TransformOrderItem,
	Values: func(i domain.OrderItem) []any {
		return []any{i.ID, i.OrderID, i.UserID, i.ProductID, i.InventoryItemID, i.Status, i.CreatedAt,
			i.ShippedAt, i.DeliveredAt, i.ReturnedAt}
	},
}

var InventoryItems = Entity[domain.InventoryItem]{
	Target: Target{
		Name:  "inventory_items",
		Table: "inventory_items",
		File:  "inventory_items",
		Columns: []string{"id", "product_id", "created_at", "sold_at", "cost", "product_category", "product_name",
			"product_brand", "product_retail_price", "product_department", "product_sku",
			"product_distribution_center_id"},
	},
	Transform: TransformInventoryItem,
	Values: func(i domain.InventoryItem) []any {
		return []any{i.ID, i.ProductID, i.CreatedAt, i.SoldAt, i.Cost, i.ProductCategory, i.ProductName,
			i.ProductBrand, i.ProductRetailPrice, i.ProductDepartment, i.ProductSKU,
			i.ProductDistributionCenterID}
	},
}

// AllJobs returns every entity load in the order the pipeline runs them.
func AllJobs() []Job {
	return []Job{DistributionCenters, Products, Users, Orders, OrderItems, InventoryItems}
}

// SelectJobs keeps the jobs named in names, preserving pipeline order. An
// empty selection means all jobs.
func SelectJobs(names []string) ([]Job, error) {
	all := AllJobs()
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			wanted[n] = true
		}
	}
	if len(wanted) == 0 {
		return all, nil
	}

	var jobs []Job
	for _, job := range all {
		if wanted[job.Describe().Name] {
			jobs = append(jobs, job)
			delete(wanted, job.Describe().Name)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown entity %s", strings.Join(unknown, ", "))
	}

	return jobs, nil
}
