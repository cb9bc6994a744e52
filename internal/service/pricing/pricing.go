// Package pricing derives the current cost of feed per kg from purchase history.
package pricing

import (
	"sort"
	"time"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// DefaultFeedTypes are the feed lines shown first on the price board.
var DefaultFeedTypes = []string{"Pre-PS", "Starter-SC(M)", "Starter-SC(P)", "Finisher-FP"}

// FeedPrice is the latest effective cost per kg for one feed type.
type FeedPrice struct {
	FeedType   string    `json:"feedType"`
	PricePerKg float64   `json:"pricePerKg"`
	AsOf       time.Time `json:"asOf"`
	InvoiceNo  string    `json:"invoiceNo"`

	timestamp int64
}

// CostPerKg spreads the invoice freight over its bags and converts a bag rate to a kg rate.
func CostPerKg(rate, freightPerBag float64) float64 {
	return (rate + freightPerBag) / models.BagWeightKg
}

// LatestFeedPrices returns, per feed type, the cost per kg from the invoice with
// the latest date. Invoices with unreadable dates are skipped. On equal dates
// the invoice with the later timestamp wins, then the one seen last.
// A missing key means no purchase history, not a zero price.
func LatestFeedPrices(invoices []models.PurchaseInvoice) map[string]FeedPrice {
	prices := make(map[string]FeedPrice)

	for _, inv := range invoices {
		date, err := models.ParseDate(inv.InvoiceDate)
		if err != nil {
			continue
		}
		freightPerBag := inv.FreightPerBag()

		for _, item := range inv.Items {
			if item.Item == "" {
				continue
			}
			current, seen := prices[item.Item]
			if seen && !newer(date, inv.Timestamp, current) {
				continue
			}
			prices[item.Item] = FeedPrice{
				FeedType:   item.Item,
				PricePerKg: CostPerKg(item.Rate, freightPerBag),
				AsOf:       date,
				InvoiceNo:  inv.InvoiceNo,
				timestamp:  inv.Timestamp,
			}
		}
	}

	return prices
}

func newer(date time.Time, timestamp int64, current FeedPrice) bool {
	if !date.Equal(current.AsOf) {
		return date.After(current.AsOf)
	}
	return timestamp >= current.timestamp
}

// BoardEntry is one row of the price board. Known is false for a tracked
// feed type that has never been purchased.
type BoardEntry struct {
	FeedPrice
	Known bool `json:"known"`
}

// Board orders prices for display: tracked types first in the given order,
// then any other purchased type by name.
func Board(prices map[string]FeedPrice, tracked []string) []BoardEntry {
	board := make([]BoardEntry, 0, len(prices)+len(tracked))
	listed := make(map[string]bool, len(tracked))

	for _, feedType := range tracked {
		if listed[feedType] {
			continue
		}
		listed[feedType] = true
		price, ok := prices[feedType]
		if !ok {
			price = FeedPrice{FeedType: feedType}
		}
		board = append(board, BoardEntry{FeedPrice: price, Known: ok})
	}

	var others []string
	for name := range prices {
		if !listed[name] {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	for _, name := range others {
		board = append(board, BoardEntry{FeedPrice: prices[name], Known: true})
	}

	return board
}

// LatestItemRates returns the per-unit purchase rate from each item's latest
// invoice, with the same ordering rules as LatestFeedPrices.
func LatestItemRates(invoices []models.PurchaseInvoice) map[string]float64 {
	type seen struct {
		rate float64
		at   FeedPrice
	}
	latest := make(map[string]seen)

	for _, inv := range invoices {
		date, err := models.ParseDate(inv.InvoiceDate)
		if err != nil {
			continue
		}
		for _, item := range inv.Items {
			if item.Item == "" {
				continue
			}
			current, ok := latest[item.Item]
			if ok && !newer(date, inv.Timestamp, current.at) {
				continue
			}
			latest[item.Item] = seen{rate: item.Rate, at: FeedPrice{AsOf: date, timestamp: inv.Timestamp}}
		}
	}

	rates := make(map[string]float64, len(latest))
	for name, s := range latest {
		rates[name] = s.rate
	}
	return rates
}
