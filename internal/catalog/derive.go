package catalog

import (
	"sort"
	"strings"

	"github.com/rnitealiii/EliteMart/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Derive computes the displayed product list from the full catalog, the
// current free-text query, the selected category and the sort key. It is pure:
// the catalog slice is never mutated, and the same inputs always produce the
// same output. An empty result is a valid, displayable state.
func Derive(catalog []Product, query, category string, key enums.SortKey) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))

	result := make([]Product, 0, len(catalog))
	for _, product := range catalog {
		if !matchesQuery(product, needle) {
			continue
		}
		if category != "" && category != CategoryAll && product.Category != category {
			continue
		}
		result = append(result, product)
	}

	sortProducts(result, key)
	return result
}

func matchesQuery(product Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(product.Name), needle) ||
		strings.Contains(strings.ToLower(product.Category), needle)
}

func sortProducts(products []Product, key enums.SortKey) {
	if key == enums.SortNone || key == "" {
		return
	}

	var names *collate.Collator
	if key == enums.SortNameAsc || key == enums.SortNameDesc {
		names = collate.New(language.English)
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch key {
		case enums.SortPriceAsc:
			return a.Price.LessThan(b.Price)
		case enums.SortPriceDesc:
			return b.Price.LessThan(a.Price)
		case enums.SortNameAsc:
			return names.CompareString(a.Name, b.Name) < 0
		case enums.SortNameDesc:
			return names.CompareString(b.Name, a.Name) < 0
		default:
			return false
		}
	})
}
