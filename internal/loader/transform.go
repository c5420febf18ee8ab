package loader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-assistant/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequired is wrapped by a RecordError when a mandatory field is unset.
	ErrRequired = errors.New("value is required")
	// ErrNULByte rejects text PostgreSQL cannot store.
	ErrNULByte = errors.New("text contains a NUL byte")
)

// RecordError reports the field that made a record unusable.
type RecordError struct {
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	if errors.Is(e.Err, ErrRequired) {
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %s (%q): %v", e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// fields reads typed values out of a record and keeps the first failure, so
// a transform can read every column and check the error once at the end.
type fields struct {
	rec Record
	err error
}

func newFields(rec Record) *fields {
	return &fields{rec: rec}
}

func (f *fields) fail(name string, err error) {
	if f.err == nil {
		f.err = &RecordError{Field: name, Value: f.rec[name], Err: err}
	}
}

func (f *fields) optString(name string) *string {
	v := ParseString(f.rec[name])
	if v != nil && strings.ContainsRune(*v, 0) {
		f.fail(name, ErrNULByte)
		return nil
	}
	return v
}

func (f *fields) reqString(name string) string {
	v := f.optString(name)
	if v == nil {
		f.fail(name, ErrRequired)
		return ""
	}
	return *v
}

func (f *fields) optInt(name string) *int64 {
	v, err := ParseInt(f.rec[name])
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return v
}

func (f *fields) reqInt(name string) int64 {
	v := f.optInt(name)
	if v == nil {
		f.fail(name, ErrRequired)
		return 0
	}
	return *v
}

func (f *fields) optFloat(name string) *float64 {
	v, err := ParseFloat(f.rec[name])
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return v
}

func (f *fields) reqFloat(name string) float64 {
	v := f.optFloat(name)
	if v == nil {
		f.fail(name, ErrRequired)
		return 0
	}
	return *v
}

func (f *fields) reqDecimal(name string) decimal.Decimal {
	v, err := ParseDecimal(f.rec[name])
	if err != nil {
		f.fail(name, err)
		return decimal.Zero
	}
	if !v.Valid {
		f.fail(name, ErrRequired)
		return decimal.Zero
	}
	return v.Decimal
}

func (f *fields) optTime(name string) *time.Time {
	v, err := ParseTime(f.rec[name])
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return v
}

func (f *fields) reqTime(name string) time.Time {
	v := f.optTime(name)
	if v == nil {
		f.fail(name, ErrRequired)
		return time.Time{}
	}
	return *v
}

// TransformDistributionCenter maps a distribution_centers row.
func TransformDistributionCenter(rec Record) (domain.DistributionCenter, error) {
	f := newFields(rec)
	dc := domain.DistributionCenter{
		ID:        f.reqInt("id"),
		Name:      f.reqString("name"),
		Latitude:  f.reqFloat("latitude"),
		Longitude: f.reqFloat("longitude"),
	}
	return dc, f.err
}

// TransformProduct maps a products row.
func TransformProduct(rec Record) (domain.Product, error) {
	f := newFields(rec)
	p := domain.Product{
		ID:                   f.reqInt("id"),
		Cost:                 f.reqDecimal("cost"),
		Category:             f.reqString("category"),
		Name:                 f.reqString("name"),
		Brand:                f.reqString("brand"),
		RetailPrice:          f.reqDecimal("retail_price"),
		Department:           f.reqString("department"),
		SKU:                  f.reqString("sku"),
		DistributionCenterID: f.reqInt("distribution_center_id"),
	}
	return p, f.err
}

// TransformUser maps a users row. The id is kept verbatim as a string.
func TransformUser(rec Record) (domain.User, error) {
	f := newFields(rec)
	u := domain.User{
		ID:            f.reqString("id"),
		FirstName:     f.reqString("first_name"),
		LastName:      f.reqString("last_name"),
		Email:         f.reqString("email"),
		Age:           f.optInt("age"),
		Gender:        f.optString("gender"),
		State:         f.optString("state"),
		StreetAddress: f.optString("street_address"),
		PostalCode:    f.optString("postal_code"),
		City:          f.optString("city"),
		Country:       f.optString("country"),
		Latitude:      f.optFloat("latitude"),
		Longitude:     f.optFloat("longitude"),
		TrafficSource: f.optString("traffic_source"),
		CreatedAt:     f.reqTime("created_at"),
	}
	return u, f.err
}

// TransformOrder maps an orders row.
func TransformOrder(rec Record) (domain.Order, error) {
	f := newFields(rec)
	o := domain.Order{
		OrderID:     f.reqInt("order_id"),
		UserID:      f.reqInt("user_id"),
		Status:      f.reqString("status"),
		Gender:      f.optString("gender"),
		CreatedAt:   f.reqTime("created_at"),
		ReturnedAt:  f.optTime("returned_at"),
		ShippedAt:   f.optTime("shipped_at"),
		DeliveredAt: f.optTime("delivered_at"),
		NumOfItem:   f.reqInt("num_of_item"),
	}
	return o, f.err
}

// TransformOrderItem maps an order_items row.
func TransformOrderItem(rec Record) (domain.OrderItem, error) {
	f := newFields(rec)
	item := domain.OrderItem{
		ID:              f.reqInt("id"),
		OrderID:         f.reqInt("order_id"),
		UserID:          f.reqInt("user_id"),
		ProductID:       f.reqInt("product_id"),
		InventoryItemID: f.optInt("inventory_item_id"),
		Status:          f.reqString("status"),
		CreatedAt:       f.reqTime("created_at"),
		ShippedAt:       f.optTime("shipped_at"),
		DeliveredAt:     f.optTime("delivered_at"),
		ReturnedAt:      f.optTime("returned_at"),
	}
	return item, f.err
}

// TransformInventoryItem maps an inventory_items row. An unset sold_at means
// the unit is in stock.
func TransformInventoryItem(rec Record) (domain.InventoryItem, error) {
	f := newFields(rec)
	item := domain.InventoryItem{
		ID:                          f.reqInt("id"),
		ProductID:                   f.reqInt("product_id"),
		CreatedAt:                   f.reqTime("created_at"),
		SoldAt:                      f.optTime("sold_at"),
		Cost:                        f.reqDecimal("cost"),
		ProductCategory:             f.reqString("product_category"),
		ProductName:                 f.reqString("product_name"),
		ProductBrand:                f.reqString("product_brand"),
		ProductRetailPrice:          f.reqDecimal("product_retail_price"),
		ProductDepartment:           f.reqString("product_department"),
		ProductSKU:                  f.reqString("product_sku"),
		ProductDistributionCenterID: f.reqInt("product_distribution_center_id"),
	}
	return item, f.err
}
