package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_SearchMatchesAnyFieldIgnoringCase(t *testing.T) {
	db := requireDB(t, "products")
	bulk := NewBulkRepository(db)
	repo := NewProductRepository(db)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("a product is found iff one of name, brand or category contains q", prop.ForAll(
		func(needle string, field int) bool {
			ctx := context.Background()
			if _, err := bulk.DeleteAll(ctx, "products"); err != nil {
				t.Logf("FAIL: Failed to clear products: %v", err)
				return false
			}

			// Digits never contain an alphabetic needle.
			values := []string{"111", "222", "333"}
			if field < len(values) {
				values[field] = "x" + strings.ToUpper(needle) + "y"
			}

			_, err := bulk.InsertBatch(ctx, "products", productInsertColumns, [][]any{
				productRow(1, values[0], values[1], values[2]),
			})
			if err != nil {
				t.Logf("FAIL: Failed to insert product: %v", err)
				return false
			}

			found, err := repo.Search(ctx, SearchParams{Query: strings.ToLower(needle), Limit: 10})
			if err != nil {
				t.Logf("FAIL: Search failed: %v", err)
				return false
			}

			if field < len(values) {
				return len(found) == 1 && found[0].ID == 1
			}
			return len(found) == 0
		},
		gen.AlphaString().Map(func(s string) string {
			if len(s) > 20 {
				return s[:20]
			}
			return "q" + s
		}),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
