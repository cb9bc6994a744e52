package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// BillProfit sums the line margins of one bill.
func BillProfit(bill models.SalesBill) decimal.Decimal {
	total := decimal.Zero
	for _, item := range bill.Items {
		total = total.Add(decimal.NewFromFloat(item.PnL))
	}
	return total
}

// SalesTotals aggregates a set of bills.
type SalesTotals struct {
	TotalBills  int             `json:"totalBills"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

// SalesSummary totals billed amount and profit over bills.
func SalesSummary(bills []models.SalesBill) SalesTotals {
	s := SalesTotals{TotalAmount: decimal.Zero, TotalProfit: decimal.Zero}
	for _, bill := range bills {
		s.TotalBills++
		s.TotalAmount = s.TotalAmount.Add(decimal.NewFromFloat(bill.GrandTotal))
		s.TotalProfit = s.TotalProfit.Add(BillProfit(bill))
	}
	return s
}

// CustomerView derives the customer ledger from the bills on read.
func CustomerView(bills []models.SalesBill) []models.CustomerBillRecord {
	out := make([]models.CustomerBillRecord, 0, len(bills))
	for _, bill := range bills {
		out = append(out, bill.CustomerRecord())
	}
	return out
}
