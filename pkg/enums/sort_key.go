package enums

import "fmt"

// SortKey selects the ordering applied to the displayed product list.
type SortKey string

const (
	SortNone      SortKey = "none"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

var validSortKeys = []SortKey{
	SortNone,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input means no sorting.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortNone, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
