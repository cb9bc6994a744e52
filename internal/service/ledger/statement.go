// Package ledger computes party statements, purchase balances and bill profit
// from raw records. Money is summed with decimal arithmetic; rounding for
// display is left to callers.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// StatementFilter narrows a party statement. Zero values mean "no filter";
// From and To are inclusive.
type StatementFilter struct {
	Category models.Category
	From     time.Time
	To       time.Time
	Search   string
}

// Statement is a party's sales history with per-category subtotals.
type Statement struct {
	Party      string                              `json:"party"`
	Bills      []models.SalesBill                  `json:"bills"`
	Subtotals  map[models.Category]decimal.Decimal `json:"subtotals"`
	GrandTotal decimal.Decimal                     `json:"grandTotal"`
}

// PartyStatement collects the bills addressed to party across all categories,
// applies the filter and sorts newest first by timestamp.
func PartyStatement(party string, bills []models.SalesBill, filter StatementFilter) Statement {
	st := Statement{
		Party:      party,
		Bills:      []models.SalesBill{},
		Subtotals:  make(map[models.Category]decimal.Decimal, len(models.Categories)),
		GrandTotal: decimal.Zero,
	}
	for _, c := range models.Categories {
		st.Subtotals[c] = decimal.Zero
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, bill := range bills {
		if bill.To != party {
			continue
		}
		if filter.Category != "" && bill.Category != filter.Category {
			continue
		}
		if !withinRange(bill.BillDate, filter.From, filter.To) {
			continue
		}
		if search != "" && !matchesSearch(bill, search) {
			continue
		}
		st.Bills = append(st.Bills, bill)
	}

	sort.SliceStable(st.Bills, func(i, j int) bool {
		return st.Bills[i].Timestamp > st.Bills[j].Timestamp
	})

	for _, bill := range st.Bills {
		amount := decimal.NewFromFloat(bill.GrandTotal)
		st.Subtotals[bill.Category] = st.Subtotals[bill.Category].Add(amount)
		st.GrandTotal = st.GrandTotal.Add(amount)
	}

	return st
}

func withinRange(value string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return false
	}
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}

func matchesSearch(bill models.SalesBill, needle string) bool {
	if strings.Contains(strings.ToLower(bill.BillNo), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(bill.Notes), needle) {
		return true
	}
	for _, item := range bill.Items {
		if strings.Contains(strings.ToLower(item.Item), needle) {
			return true
		}
	}
	return false
}
