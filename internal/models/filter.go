package models

import (
	"strings"
)

// ItemFilter holds the optional criteria for listing items. All fields are
// independent; active criteria combine with logical AND. The zero value
// matches every item.
type ItemFilter struct {
	// Name restricts results to items whose name contains the trimmed
	// filter text, case-insensitively. Blank or whitespace-only means no
	// name restriction.
	Name string

	// MinPrice and MaxPrice bound the price range inclusively. Pointers so
	// a zero bound is usable. An inverted range (min > max) is not an
	// error; it simply matches nothing.
	MinPrice *float64
	MaxPrice *float64
}

// NameQuery returns the trimmed name filter and whether a name restriction
// is active. Trimming happens before the emptiness check.
func (f ItemFilter) NameQuery() (string, bool) {
	name := strings.TrimSpace(f.Name)
	return name, name != ""
}

// Matches reports whether item satisfies every active criterion.
func (f ItemFilter) Matches(item Item) bool {
	if name, ok := f.NameQuery(); ok {
		if !strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			return false
		}
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	return true
}
