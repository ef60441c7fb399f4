package domain

import "strings"

// Category is the kind of trip task. Stored values are kept verbatim; only
// the four known values are recognized for grouping.
type Category string

const (
	CategoryFlight  Category = "Flight"
	CategoryHotel   Category = "Hotel"
	CategoryPacking Category = "Packing"
	CategoryOther   Category = "Other"
)

// Categories is the canonical display order.
var Categories = []Category{CategoryFlight, CategoryHotel, CategoryPacking, CategoryOther}

// IsKnown reports whether c is one of the four recognized categories.
func (c Category) IsKnown() bool {
	switch c {
	case CategoryFlight, CategoryHotel, CategoryPacking, CategoryOther:
		return true
	}
	return false
}

// Group returns the category used for grouping and styling. Unrecognized
// values fall back to Other.
func (c Category) Group() Category {
	if c.IsKnown() {
		return c
	}
	return CategoryOther
}

// ParseCategory matches s case-insensitively against the known categories.
// The second return value is false when s is not recognized.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}
