package models

import (
	"fmt"
	"strings"
	"time"
)

// Category enumerates the product lines the business trades in.
type Category string

const (
	CategoryFeed     Category = "feed"
	CategoryMedicine Category = "medicine"
	CategoryChick    Category = "chick"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFeed, CategoryMedicine, CategoryChick}

// BagWeightKg is the fixed weight of one feed bag.
const BagWeightKg = 50

// DateLayout is the on-disk format of bill, invoice and payment dates.
const DateLayout = "2006-01-02"

// ParseCategory normalizes user input into a Category.
func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryFeed:
		return CategoryFeed, nil
	case CategoryMedicine:
		return CategoryMedicine, nil
	case CategoryChick, "chicks":
		return CategoryChick, nil
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFeed, CategoryMedicine, CategoryChick:
		return true
	}
	return false
}

// WeightBased reports whether line totals are priced per kg instead of per unit.
func (c Category) WeightBased() bool {
	return c == CategoryFeed
}

// Title returns the capitalized category name used in collection keys and messages.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseDate reads a stored date. Full timestamps are truncated to their date part.
func ParseDate(value string) (time.Time, error) {
	str := strings.TrimSpace(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(DateLayout, str)
}
