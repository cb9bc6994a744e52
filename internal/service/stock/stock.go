// Package stock nets purchased against sold quantities per item.
package stock

import (
	"sort"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// Level is the on-hand position of one item. Weight is only set for feed.
type Level struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Weight   *float64 `json:"weight,omitempty"`
}

// Levels nets purchases against sales for one category. Only items with at
// least one purchase are tracked; sales of unknown items are ignored.
func Levels(category models.Category, invoices []models.PurchaseInvoice, bills []models.SalesBill) map[string]Level {
	levels := make(map[string]Level)

	for _, inv := range invoices {
		for _, item := range inv.Items {
			if item.Item == "" {
				continue
			}
			level, ok := levels[item.Item]
			if !ok {
				level = Level{Name: item.Item}
				if category.WeightBased() {
					level.Weight = new(float64)
				}
			}
			level.Quantity += item.Quantity
			if level.Weight != nil {
				*level.Weight += float64(item.Quantity * models.BagWeightKg)
			}
			levels[item.Item] = level
		}
	}

	for _, bill := range bills {
		for _, item := range bill.Items {
			level, ok := levels[item.Item]
			if !ok {
				continue
			}
			level.Quantity -= item.Quantity
			if level.Weight != nil {
				*level.Weight -= float64(item.Quantity * models.BagWeightKg)
			}
			levels[item.Item] = level
		}
	}

	return levels
}

// Summary lists items with positive stock, ordered by name.
func Summary(category models.Category, invoices []models.PurchaseInvoice, bills []models.SalesBill) []Level {
	levels := Levels(category, invoices, bills)

	out := make([]Level, 0, len(levels))
	for _, level := range levels {
		if level.Quantity > 0 {
			out = append(out, level)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OnHand returns the net quantity of one item and whether it was ever purchased.
func OnHand(levels map[string]Level, item string) (int, bool) {
	level, ok := levels[item]
	return level.Quantity, ok
}
