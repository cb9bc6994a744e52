// Package records gives typed access to the JSON collections held by a store.Store.
// Every call reads through to the store, so callers always see the latest write.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/store"
)

// Repository loads and saves typed record collections.
type Repository struct {
	store  store.Store
	logger *zap.Logger
}

// NewRepository wires a repository on top of a raw store.
func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{store: s, logger: logger}
}

// PurchaseInvoices loads a category's supplier invoices.
func (r *Repository) PurchaseInvoices(ctx context.Context, c models.Category) ([]models.PurchaseInvoice, error) {
	var out []models.PurchaseInvoice
	err := r.load(ctx, store.PurchaseInvoices(c), &out)
	return out, err
}

// SalesBills loads a category's sales bills.
func (r *Repository) SalesBills(ctx context.Context, c models.Category) ([]models.SalesBill, error) {
	var out []models.SalesBill
	err := r.load(ctx, store.SalesBills(c), &out)
	return out, err
}

// CustomerBills loads a category's customer ledger projection.
func (r *Repository) CustomerBills(ctx context.Context, c models.Category) ([]models.CustomerBillRecord, error) {
	var out []models.CustomerBillRecord
	err := r.load(ctx, store.CustomerBills(c), &out)
	return out, err
}

// Parties loads the party master list.
func (r *Repository) Parties(ctx context.Context) ([]models.Party, error) {
	var out []models.Party
	err := r.load(ctx, store.CollectionParties, &out)
	return out, err
}

// Payments loads every supplier payment across all categories.
func (r *Repository) Payments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	err := r.load(ctx, store.CollectionPayments, &out)
	return out, err
}

// SavePurchaseInvoices replaces a category's invoice collection.
func (r *Repository) SavePurchaseInvoices(ctx context.Context, c models.Category, invoices []models.PurchaseInvoice) error {
	w, err := Encode(store.PurchaseInvoices(c), invoices)
	if err != nil {
		return err
	}
	return r.Save(ctx, w)
}

// SaveSalesBills replaces a category's sales bill collection.
func (r *Repository) SaveSalesBills(ctx context.Context, c models.Category, bills []models.SalesBill) error {
	w, err := Encode(store.SalesBills(c), bills)
	if err != nil {
		return err
	}
	return r.Save(ctx, w)
}

// SaveCustomerBills replaces a category's customer projection.
func (r *Repository) SaveCustomerBills(ctx context.Context, c models.Category, recs []models.CustomerBillRecord) error {
	w, err := Encode(store.CustomerBills(c), recs)
	if err != nil {
		return err
	}
	return r.Save(ctx, w)
}

// SaveParties replaces the party list.
func (r *Repository) SaveParties(ctx context.Context, parties []models.Party) error {
	w, err := Encode(store.CollectionParties, parties)
	if err != nil {
		return err
	}
	return r.Save(ctx, w)
}

// SavePayments replaces the payment list.
func (r *Repository) SavePayments(ctx context.Context, payments []models.Payment) error {
	w, err := Encode(store.CollectionPayments, payments)
	if err != nil {
		return err
	}
	return r.Save(ctx, w)
}

// Save hands pre-encoded writes to the store in one call.
func (r *Repository) Save(ctx context.Context, writes ...store.Write) error {
	if err := r.store.Save(ctx, writes...); err != nil {
		r.logger.Error("store write failed", zap.Int("collections", len(writes)), zap.Error(err))
		return fmt.Errorf("could not save: %w: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}

// Encode marshals records into a store write. A nil slice is stored as [].
func Encode[T any](collection string, recs []T) (store.Write, error) {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return store.Write{}, fmt.Errorf("encode %s: %w", collection, err)
	}
	return store.Write{Collection: collection, Data: data}, nil
}

func (r *Repository) load(ctx context.Context, collection string, out any) error {
	raw, err := r.store.Load(ctx, collection)
	if err != nil {
		return fmt.Errorf("load %s: %w: %v", collection, models.ErrStorageUnavailable, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w: %v", collection, models.ErrStorageUnavailable, err)
	}
	return nil
}
