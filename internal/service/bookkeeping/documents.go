package bookkeeping

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// SalesBills lists a category's bills, newest bill date first.
func (s *Service) SalesBills(ctx context.Context, c models.Category) ([]models.SalesBill, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	bills, err := s.repo.SalesBills(ctx, c)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(bills,
		func(b models.SalesBill) string { return b.BillDate },
		func(b models.SalesBill) int64 { return b.Timestamp })
	return bills, nil
}

// PurchaseInvoices lists a category's invoices, newest invoice date first.
func (s *Service) PurchaseInvoices(ctx context.Context, c models.Category) ([]models.PurchaseInvoice, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	invoices, err := s.repo.PurchaseInvoices(ctx, c)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(invoices,
		func(inv models.PurchaseInvoice) string { return inv.InvoiceDate },
		func(inv models.PurchaseInvoice) int64 { return inv.Timestamp })
	return invoices, nil
}

// CustomerBills lists a category's customer ledger records in stored order.
func (s *Service) CustomerBills(ctx context.Context, c models.Category) ([]models.CustomerBillRecord, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.CustomerBills(ctx, c)
}

// DeleteSalesBill removes a bill. Its customer record is left alone.
func (s *Service) DeleteSalesBill(ctx context.Context, c models.Category, billNo string) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	bills, err := s.repo.SalesBills(ctx, c)
	if err != nil {
		return err
	}
	kept, removed := without(bills, func(b models.SalesBill) bool { return b.BillNo == billNo })
	if !removed {
		return notFound("sales bill", billNo)
	}
	if err := s.repo.SaveSalesBills(ctx, c, kept); err != nil {
		return err
	}
	s.logger.Info("sales bill deleted", zap.String("category", string(c)), zap.String("bill_no", billNo))
	return nil
}

// DeletePurchaseInvoice removes an invoice.
func (s *Service) DeletePurchaseInvoice(ctx context.Context, c models.Category, invoiceNo string) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	invoices, err := s.repo.PurchaseInvoices(ctx, c)
	if err != nil {
		return err
	}
	kept, removed := without(invoices, func(inv models.PurchaseInvoice) bool { return inv.InvoiceNo == invoiceNo })
	if !removed {
		return notFound("purchase invoice", invoiceNo)
	}
	if err := s.repo.SavePurchaseInvoices(ctx, c, kept); err != nil {
		return err
	}
	s.logger.Info("purchase invoice deleted", zap.String("category", string(c)), zap.String("invoice_no", invoiceNo))
	return nil
}

// DeleteCustomerBill removes a customer ledger record.
func (s *Service) DeleteCustomerBill(ctx context.Context, c models.Category, billNo string) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	recs, err := s.repo.CustomerBills(ctx, c)
	if err != nil {
		return err
	}
	kept, removed := without(recs, func(r models.CustomerBillRecord) bool { return r.BillNo == billNo })
	if !removed {
		return notFound("customer bill", billNo)
	}
	return s.repo.SaveCustomerBills(ctx, c, kept)
}

func without[T any](recs []T, match func(T) bool) ([]T, bool) {
	kept := make([]T, 0, len(recs))
	for _, r := range recs {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	return kept, len(kept) != len(recs)
}
