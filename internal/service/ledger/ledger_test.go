package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := models.ParseDate(value)
	require.NoError(t, err)
	return d
}

func billsFixture() []models.SalesBill {
	return []models.SalesBill{
		{BillNo: "F-1", BillDate: "2023-12-31", To: "Ravi", Category: models.CategoryFeed, GrandTotal: 100, Timestamp: 1},
		{BillNo: "F-2", BillDate: "2024-01-01", To: "Ravi", Category: models.CategoryFeed, GrandTotal: 250.5, Timestamp: 2,
			Items: []models.SalesBillItem{{Item: "Pre-PS"}}},
		{BillNo: "M-1", BillDate: "2024-01-31", To: "Ravi", Category: models.CategoryMedicine, GrandTotal: 40, Timestamp: 5, Notes: "Urgent vaccine"},
		{BillNo: "C-1", BillDate: "2024-02-01", To: "Ravi", Category: models.CategoryChick, GrandTotal: 900, Timestamp: 4},
		{BillNo: "C-2", BillDate: "2024-01-15", To: "Someone Else", Category: models.CategoryChick, GrandTotal: 70, Timestamp: 3},
	}
}

func TestPartyStatementDateRangeIsInclusive(t *testing.T) {
	st := PartyStatement("Ravi", billsFixture(), StatementFilter{
		From: day(t, "2024-01-01"),
		To:   day(t, "2024-01-31"),
	})

	require.Len(t, st.Bills, 2)
	assert.Equal(t, "M-1", st.Bills[0].BillNo, "newest timestamp first")
	assert.Equal(t, "F-2", st.Bills[1].BillNo)
	assert.True(t, st.GrandTotal.Equal(decimal.RequireFromString("290.5")))
	assert.True(t, st.Subtotals[models.CategoryFeed].Equal(decimal.RequireFromString("250.5")))
	assert.True(t, st.Subtotals[models.CategoryMedicine].Equal(decimal.NewFromInt(40)))
	assert.True(t, st.Subtotals[models.CategoryChick].IsZero())
}

func TestPartyStatementAllBillsSorted(t *testing.T) {
	st := PartyStatement("Ravi", billsFixture(), StatementFilter{})

	require.Len(t, st.Bills, 4)
	var order []string
	for _, b := range st.Bills {
		order = append(order, b.BillNo)
	}
	assert.Equal(t, []string{"M-1", "C-1", "F-2", "F-1"}, order)
	assert.Equal(t, "1290.5", st.GrandTotal.String())
}

func TestPartyStatementCategoryAndSearch(t *testing.T) {
	bills := billsFixture()

	st := PartyStatement("Ravi", bills, StatementFilter{Category: models.CategoryFeed})
	assert.Len(t, st.Bills, 2)

	st = PartyStatement("Ravi", bills, StatementFilter{Search: "pre-ps"})
	require.Len(t, st.Bills, 1)
	assert.Equal(t, "F-2", st.Bills[0].BillNo)

	st = PartyStatement("Ravi", bills, StatementFilter{Search: "VACCINE"})
	require.Len(t, st.Bills, 1)
	assert.Equal(t, "M-1", st.Bills[0].BillNo)

	st = PartyStatement("Ravi", bills, StatementFilter{Search: "c-1"})
	require.Len(t, st.Bills, 1)
}

func TestPartyStatementUnknownPartyIsZero(t *testing.T) {
	st := PartyStatement("Nobody", billsFixture(), StatementFilter{})
	assert.Empty(t, st.Bills)
	assert.True(t, st.GrandTotal.IsZero())
	assert.Len(t, st.Subtotals, 3)
}

func TestPurchaseBalance(t *testing.T) {
	invoices := []models.PurchaseInvoice{
		{InvoiceNo: "M-1", PartyName: "Vet Supply", GrandTotal: 3000.10},
		{InvoiceNo: "M-2", PartyName: "Pharma Co", GrandTotal: 1999.90},
	}
	payments := []models.Payment{
		{PartyName: "Vet Supply", Amount: 2000, Category: models.CategoryMedicine},
		{PartyName: "Pharma Co", Amount: 1200, Category: models.CategoryMedicine},
		{PartyName: "Feed Mill", Amount: 9999, Category: models.CategoryFeed},
	}

	b := PurchaseBalance(models.CategoryMedicine, invoices, payments)
	assert.Equal(t, "5000.00", b.TotalPurchased.StringFixed(2))
	assert.Equal(t, "3200.00", b.TotalPaid.StringFixed(2))
	assert.Equal(t, "1800.00", b.BalanceDue.StringFixed(2))

	parties := PartyBalances(models.CategoryMedicine, invoices, payments)
	require.Len(t, parties, 2)
	assert.Equal(t, "Pharma Co", parties[0].PartyName)
	assert.Equal(t, "799.90", parties[0].BalanceDue.StringFixed(2))
	assert.Equal(t, "1000.10", parties[1].BalanceDue.StringFixed(2))
}

func TestPurchaseBalanceEmpty(t *testing.T) {
	b := PurchaseBalance(models.CategoryChick, nil, nil)
	assert.True(t, b.BalanceDue.IsZero())
	assert.Empty(t, PartyBalances(models.CategoryChick, nil, nil))
}

func TestRecentPurchases(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)
	invoices := []models.PurchaseInvoice{
		{InvoiceDate: "2024-03-01", GrandTotal: 1000, FreightCharges: 50, Items: []models.PurchaseInvoiceItem{{Quantity: 10}}},
		{InvoiceDate: "2024-02-29", GrandTotal: 500, FreightCharges: 20, Items: []models.PurchaseInvoiceItem{{Quantity: 4}}},
		{InvoiceDate: "garbage", GrandTotal: 700},
	}
	payments := []models.Payment{
		{Date: "2024-03-20", Amount: 300, Category: models.CategoryFeed},
		{Date: "2024-01-20", Amount: 300, Category: models.CategoryFeed},
		{Date: "2024-03-20", Amount: 300, Category: models.CategoryChick},
	}

	r := RecentPurchases(models.CategoryFeed, invoices, payments, now, 30)
	assert.Equal(t, "2024-03-01", r.Since.Format(models.DateLayout))
	assert.Equal(t, 1, r.InvoiceCount)
	assert.Equal(t, 10, r.TotalBags)
	assert.Equal(t, "1000", r.Purchases.String())
	assert.Equal(t, "50", r.Freight.String())
	assert.Equal(t, "300", r.Payments.String())
}

func TestBillProfitAndSalesSummary(t *testing.T) {
	bills := []models.SalesBill{
		{GrandTotal: 250, Items: []models.SalesBillItem{{PnL: 30}, {PnL: -5.5}}},
		{GrandTotal: 100, Items: []models.SalesBillItem{{PnL: 10}}},
	}

	assert.Equal(t, "24.5", BillProfit(bills[0]).String())

	s := SalesSummary(bills)
	assert.Equal(t, 2, s.TotalBills)
	assert.Equal(t, "350", s.TotalAmount.String())
	assert.Equal(t, "34.5", s.TotalProfit.String())

	empty := SalesSummary(nil)
	assert.Zero(t, empty.TotalBills)
	assert.True(t, empty.TotalProfit.IsZero())
}

func TestCustomerViewMatchesProjection(t *testing.T) {
	bills := billsFixture()
	view := CustomerView(bills)
	require.Len(t, view, len(bills))
	assert.Equal(t, bills[1].CustomerRecord(), view[1])
}
