package catalog

import "github.com/shopspring/decimal"

// Product is one catalog entry. Products are loaded once at startup and never
// mutated afterwards.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// Categories returns "all" followed by the distinct categories in catalog
// order, for the rendering boundary's category selector.
func Categories(catalog []Product) []string {
	seen := map[string]struct{}{}
	result := []string{CategoryAll}
	for _, product := range catalog {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		result = append(result, product.Category)
	}
	return result
}
