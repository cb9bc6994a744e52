package bookkeeping

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
	"github.com/mamadbah2/feedbook/internal/repository/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(records.NewRepository(store.NewMemoryStore(), nil), nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func TestPartyLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ravi, err := svc.CreateParty(ctx, models.Party{Name: " Ravi Traders ", Mobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", ravi.ID)
	assert.Equal(t, "Ravi Traders", ravi.Name)

	_, err = svc.CreateParty(ctx, models.Party{Name: "Suguna Feeds", Mobile: "9123400000"})
	require.NoError(t, err)

	_, err = svc.CreateParty(ctx, models.Party{Name: "ravi traders"})
	assert.ErrorIs(t, err, ErrDuplicateParty)
	_, err = svc.CreateParty(ctx, models.Party{Name: ""})
	assert.ErrorIs(t, err, ErrPartyNameRequired)

	found, err := svc.ListParties(ctx, "RAVI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "id-1", found[0].ID)

	found, err = svc.ListParties(ctx, "91234")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Suguna Feeds", found[0].Name)

	updated, err := svc.UpdateParty(ctx, ravi.ID, models.Party{Name: "Ravi Traders Ltd", Address: "Namakkal"})
	require.NoError(t, err)
	assert.Equal(t, ravi.Timestamp, updated.Timestamp)

	got, err := svc.Party(ctx, ravi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Namakkal", got.Address)

	_, err = svc.UpdateParty(ctx, ravi.ID, models.Party{Name: "Suguna Feeds"})
	assert.ErrorIs(t, err, ErrDuplicateParty)

	require.NoError(t, svc.DeleteParty(ctx, ravi.ID))
	assert.ErrorIs(t, svc.DeleteParty(ctx, ravi.ID), models.ErrNotFound)
	_, err = svc.UpdateParty(ctx, "missing", models.Party{Name: "X"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := svc.ListParties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPaymentLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddPayment(ctx, PaymentDraft{Date: "2024-05-01", PartyName: "Suguna Feeds", Amount: 2000, Category: models.CategoryFeed})
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, PaymentDraft{Date: "2024-05-03", PartyName: "Suguna Feeds", Amount: 1200, Category: models.CategoryFeed})
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, PaymentDraft{PartyName: "Vet Pharma", Amount: 300, Category: models.CategoryMedicine})
	require.NoError(t, err)

	feed, err := svc.ListPayments(ctx, models.CategoryFeed)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "2024-05-03", feed[0].Date)
	assert.Equal(t, "2024-05-01", feed[1].Date)

	medicine, err := svc.ListPayments(ctx, models.CategoryMedicine)
	require.NoError(t, err)
	require.Len(t, medicine, 1)
	assert.Equal(t, "2024-05-10", medicine[0].Date)

	updated, err := svc.UpdatePayment(ctx, first.ID, PaymentDraft{Date: "2024-05-02", PartyName: "Suguna Feeds", Amount: 2500, Category: models.CategoryFeed})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, first.Timestamp, updated.Timestamp)
	assert.Equal(t, 2500.0, updated.Amount)

	require.NoError(t, svc.DeletePayment(ctx, first.ID))
	assert.ErrorIs(t, svc.DeletePayment(ctx, first.ID), models.ErrNotFound)
	_, err = svc.UpdatePayment(ctx, first.ID, PaymentDraft{PartyName: "X", Amount: 1, Category: models.CategoryFeed})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddPaymentRejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPayment(ctx, PaymentDraft{PartyName: "A", Amount: 0, Category: models.CategoryFeed})
	assert.ErrorIs(t, err, ErrPaymentAmount)
	_, err = svc.AddPayment(ctx, PaymentDraft{PartyName: "  ", Amount: 10, Category: models.CategoryFeed})
	assert.ErrorIs(t, err, ErrPaymentParty)
	_, err = svc.AddPayment(ctx, PaymentDraft{PartyName: "A", Amount: 10, Category: "grain"})
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = svc.AddPayment(ctx, PaymentDraft{PartyName: "A", Amount: 10, Category: models.CategoryFeed, Date: "yesterday"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListingsSortNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.repo.SaveSalesBills(ctx, models.CategoryFeed, []models.SalesBill{
		{BillNo: "F-1", BillDate: "2024-01-05", Timestamp: 1},
		{BillNo: "F-bad", BillDate: "n/a", Timestamp: 9},
		{BillNo: "F-3", BillDate: "2024-02-01", Timestamp: 2},
		{BillNo: "F-4", BillDate: "2024-02-01", Timestamp: 5},
	}))

	bills, err := svc.SalesBills(ctx, models.CategoryFeed)
	require.NoError(t, err)
	var order []string
	for _, b := range bills {
		order = append(order, b.BillNo)
	}
	assert.Equal(t, []string{"F-4", "F-3", "F-1", "F-bad"}, order)

	_, err = svc.SalesBills(ctx, "grain")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestDeleteDocuments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.repo.SaveSalesBills(ctx, models.CategoryChick, []models.SalesBill{{BillNo: "C-1"}, {BillNo: "C-2"}}))
	require.NoError(t, svc.repo.SaveCustomerBills(ctx, models.CategoryChick, []models.CustomerBillRecord{{BillNo: "C-1"}}))
	require.NoError(t, svc.repo.SavePurchaseInvoices(ctx, models.CategoryChick, []models.PurchaseInvoice{{InvoiceNo: "P-1"}}))

	require.NoError(t, svc.DeleteSalesBill(ctx, models.CategoryChick, "C-1"))
	assert.ErrorIs(t, svc.DeleteSalesBill(ctx, models.CategoryChick, "C-1"), models.ErrNotFound)

	bills, err := svc.SalesBills(ctx, models.CategoryChick)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "C-2", bills[0].BillNo)

	customers, err := svc.CustomerBills(ctx, models.CategoryChick)
	require.NoError(t, err)
	assert.Len(t, customers, 1, "customer record is not resynchronized")

	require.NoError(t, svc.DeleteCustomerBill(ctx, models.CategoryChick, "C-1"))
	assert.ErrorIs(t, svc.DeleteCustomerBill(ctx, models.CategoryChick, "C-1"), models.ErrNotFound)

	require.NoError(t, svc.DeletePurchaseInvoice(ctx, models.CategoryChick, "P-1"))
	assert.ErrorIs(t, svc.DeletePurchaseInvoice(ctx, models.CategoryChick, "P-1"), models.ErrNotFound)
	invoices, err := svc.PurchaseInvoices(ctx, models.CategoryChick)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}
