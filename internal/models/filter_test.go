package models_test

import (
	"testing"

	"github.com/stockroom/backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestNameQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
		active bool
	}{
		{"empty", "", "", false},
		{"whitespace only", "   \t ", "", false},
		{"plain", "widget", "widget", true},
		{"trims surrounding space", "  widget ", "widget", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, active := models.ItemFilter{Name: tc.filter}.NameQuery()
			if got != tc.want || active != tc.active {
				t.Errorf("NameQuery(%q) = (%q, %v), want (%q, %v)", tc.filter, got, active, tc.want, tc.active)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	item := models.Item{Name: "Widget A", Price: 10}

	tests := []struct {
		name   string
		filter models.ItemFilter
		want   bool
	}{
		{"zero filter matches everything", models.ItemFilter{}, true},
		{"blank name behaves like no filter", models.ItemFilter{Name: "   "}, true},
		{"case-insensitive substring", models.ItemFilter{Name: "widget"}, true},
		{"substring is not anchored", models.ItemFilter{Name: "GET a"}, true},
		{"name miss", models.ItemFilter{Name: "gadget"}, false},
		{"min price inclusive", models.ItemFilter{MinPrice: fptr(10)}, true},
		{"min price excludes cheaper", models.ItemFilter{MinPrice: fptr(10.01)}, false},
		{"max price inclusive", models.ItemFilter{MaxPrice: fptr(10)}, true},
		{"max price excludes pricier", models.ItemFilter{MaxPrice: fptr(9.99)}, false},
		{"closed range hit", models.ItemFilter{MinPrice: fptr(5), MaxPrice: fptr(15)}, true},
		{"inverted range matches nothing", models.ItemFilter{MinPrice: fptr(20), MaxPrice: fptr(5)}, false},
		{"criteria combine with AND", models.ItemFilter{Name: "widget", MinPrice: fptr(20)}, false},
		{"all criteria satisfied", models.ItemFilter{Name: "widget", MinPrice: fptr(5), MaxPrice: fptr(15)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(item); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchesZeroPriceBound(t *testing.T) {
	free := models.Item{Name: "Sample", Price: 0}
	if !(models.ItemFilter{MinPrice: fptr(0)}).Matches(free) {
		t.Error("a zero min price bound should be usable")
	}
	if !(models.ItemFilter{MaxPrice: fptr(0)}).Matches(free) {
		t.Error("a zero max price bound should be usable")
	}
}
