package catalog

import (
	"testing"

	"github.com/rnitealiii/EliteMart/pkg/enums"
	"github.com/shopspring/decimal"
)

func sampleCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Green Tea", Category: "drinks", Price: decimal.NewFromFloat(3.50)},
		{ID: 2, Name: "Espresso Beans", Category: "drinks", Price: decimal.NewFromFloat(12.00)},
		{ID: 3, Name: "almond biscotti", Category: "snacks", Price: decimal.NewFromFloat(5.25)},
		{ID: 4, Name: "Black Tea", Category: "drinks", Price: decimal.NewFromFloat(3.50)},
	}
}

func TestDerive_NoFilterPreservesCatalogOrder(t *testing.T) {
	catalog := sampleCatalog()
	result := Derive(catalog, "", CategoryAll, enums.SortNone)

	if len(result) != len(catalog) {
		t.Fatalf("expected %d products, got %d", len(catalog), len(result))
	}
	for i := range catalog {
		if result[i].ID != catalog[i].ID {
			t.Fatalf("position %d: expected id %d, got %d", i, catalog[i].ID, result[i].ID)
		}
	}
}

func TestDerive_NoMatchYieldsEmptyResult(t *testing.T) {
	result := Derive(sampleCatalog(), "zz-no-match", CategoryAll, enums.SortNone)
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %d products", len(result))
	}
}

func TestDerive_QueryMatchesNameOrCategoryCaseInsensitive(t *testing.T) {
	byName := Derive(sampleCatalog(), "TEA", CategoryAll, enums.SortNone)
	if len(byName) != 2 {
		t.Fatalf("expected 2 tea products, got %d", len(byName))
	}

	byCategory := Derive(sampleCatalog(), "snack", CategoryAll, enums.SortNone)
	if len(byCategory) != 1 || byCategory[0].ID != 3 {
		t.Fatalf("expected biscotti via category match, got %+v", byCategory)
	}
}

func TestDerive_QueryAndCategoryComposeByIntersection(t *testing.T) {
	result := Derive(sampleCatalog(), "tea", "snacks", enums.SortNone)
	if len(result) != 0 {
		t.Fatalf("expected no snacks matching tea, got %d", len(result))
	}

	result = Derive(sampleCatalog(), "tea", "drinks", enums.SortNone)
	if len(result) != 2 {
		t.Fatalf("expected 2 drink teas, got %d", len(result))
	}
}

func TestDerive_SortByPrice(t *testing.T) {
	asc := Derive(sampleCatalog(), "", CategoryAll, enums.SortPriceAsc)
	for i := 1; i < len(asc); i++ {
		if asc[i].Price.LessThan(asc[i-1].Price) {
			t.Fatalf("price-asc out of order at %d: %s < %s", i, asc[i].Price, asc[i-1].Price)
		}
	}

	desc := Derive(sampleCatalog(), "", CategoryAll, enums.SortPriceDesc)
	if desc[0].ID != 2 {
		t.Fatalf("expected espresso beans first on price-desc, got id %d", desc[0].ID)
	}
}

func TestDerive_PriceSortIsStable(t *testing.T) {
	// Green Tea (id 1) and Black Tea (id 4) share a price; catalog order must
	// be preserved between them.
	asc := Derive(sampleCatalog(), "", CategoryAll, enums.SortPriceAsc)
	posGreen, posBlack := -1, -1
	for i, product := range asc {
		switch product.ID {
		case 1:
			posGreen = i
		case 4:
			posBlack = i
		}
	}
	if posGreen == -1 || posBlack == -1 || posGreen > posBlack {
		t.Fatalf("stable sort violated: green at %d, black at %d", posGreen, posBlack)
	}
}

func TestDerive_NameSortIsLocaleAware(t *testing.T) {
	result := Derive(sampleCatalog(), "", CategoryAll, enums.SortNameAsc)
	// Case must not split the ordering: "almond biscotti" collates before
	// "Black Tea" even though 'a' > 'B' by code point.
	if result[0].ID != 3 {
		t.Fatalf("expected almond biscotti first on name-asc, got %q", result[0].Name)
	}

	desc := Derive(sampleCatalog(), "", CategoryAll, enums.SortNameDesc)
	if desc[len(desc)-1].ID != 3 {
		t.Fatalf("expected almond biscotti last on name-desc, got %q", desc[len(desc)-1].Name)
	}
}

func TestDerive_DoesNotMutateCatalog(t *testing.T) {
	catalog := sampleCatalog()
	Derive(catalog, "", CategoryAll, enums.SortPriceDesc)

	if catalog[0].ID != 1 || catalog[3].ID != 4 {
		t.Fatal("Derive mutated the input catalog")
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleCatalog())
	want := []string{CategoryAll, "drinks", "snacks"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
