package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// Balance is what was bought against what was paid.
type Balance struct {
	Category       models.Category `json:"category"`
	PartyName      string          `json:"partyName,omitempty"`
	TotalPurchased decimal.Decimal `json:"totalPurchased"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	BalanceDue     decimal.Decimal `json:"balanceDue"`
}

// PurchaseBalance is the category-wide supplier balance. invoices are the
// category's own collection; payments are filtered by their category field.
func PurchaseBalance(category models.Category, invoices []models.PurchaseInvoice, payments []models.Payment) Balance {
	b := Balance{Category: category, TotalPurchased: decimal.Zero, TotalPaid: decimal.Zero}
	for _, inv := range invoices {
		b.TotalPurchased = b.TotalPurchased.Add(decimal.NewFromFloat(inv.GrandTotal))
	}
	for _, p := range payments {
		if p.Category != category {
			continue
		}
		b.TotalPaid = b.TotalPaid.Add(decimal.NewFromFloat(p.Amount))
	}
	b.BalanceDue = b.TotalPurchased.Sub(b.TotalPaid)
	return b
}

// PartyBalances breaks PurchaseBalance down by supplier name, ordered by name.
func PartyBalances(category models.Category, invoices []models.PurchaseInvoice, payments []models.Payment) []Balance {
	byParty := make(map[string]*Balance)
	get := func(name string) *Balance {
		b, ok := byParty[name]
		if !ok {
			b = &Balance{Category: category, PartyName: name, TotalPurchased: decimal.Zero, TotalPaid: decimal.Zero}
			byParty[name] = b
		}
		return b
	}

	for _, inv := range invoices {
		b := get(inv.PartyName)
		b.TotalPurchased = b.TotalPurchased.Add(decimal.NewFromFloat(inv.GrandTotal))
	}
	for _, p := range payments {
		if p.Category != category {
			continue
		}
		b := get(p.PartyName)
		b.TotalPaid = b.TotalPaid.Add(decimal.NewFromFloat(p.Amount))
	}

	out := make([]Balance, 0, len(byParty))
	for _, b := range byParty {
		b.BalanceDue = b.TotalPurchased.Sub(b.TotalPaid)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartyName < out[j].PartyName })
	return out
}

// RecentActivity summarizes purchases and payments inside a trailing window.
type RecentActivity struct {
	Category     models.Category `json:"category"`
	Since        time.Time       `json:"since"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalBags    int             `json:"totalBags"`
	Purchases    decimal.Decimal `json:"purchases"`
	Freight      decimal.Decimal `json:"freight"`
	Payments     decimal.Decimal `json:"payments"`
}

// RecentPurchases covers invoices and payments dated on or after now minus days.
func RecentPurchases(category models.Category, invoices []models.PurchaseInvoice, payments []models.Payment, now time.Time, days int) RecentActivity {
	y, m, d := now.Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)

	r := RecentActivity{
		Category:  category,
		Since:     since,
		Purchases: decimal.Zero,
		Freight:   decimal.Zero,
		Payments:  decimal.Zero,
	}

	for _, inv := range invoices {
		date, err := models.ParseDate(inv.InvoiceDate)
		if err != nil || date.Before(since) {
			continue
		}
		r.InvoiceCount++
		r.TotalBags += inv.TotalQuantity()
		r.Purchases = r.Purchases.Add(decimal.NewFromFloat(inv.GrandTotal))
		r.Freight = r.Freight.Add(decimal.NewFromFloat(inv.FreightCharges))
	}
	for _, p := range payments {
		if p.Category != category {
			continue
		}
		date, err := models.ParseDate(p.Date)
		if err != nil || date.Before(since) {
			continue
		}
		r.Payments = r.Payments.Add(decimal.NewFromFloat(p.Amount))
	}

	return r
}
