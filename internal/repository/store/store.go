// Package store defines the key to JSON-array persistence contract shared by
// every backend, plus the collection names the bookkeeping data lives under.
package store

import (
	"context"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// Collection names. Each holds one JSON array.
const (
	CollectionParties  = "parties"
	CollectionPayments = "purchasePayments"
)

// Write replaces one collection with the given JSON array.
type Write struct {
	Collection string
	Data       []byte
}

// Store persists raw JSON arrays by collection name. Load returns nil data and
// no error for a collection that was never written. Save applies every write;
// backends that support it apply them atomically.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, writes ...Write) error
	Close(ctx context.Context) error
}

// PurchaseInvoices is the collection holding a category's supplier invoices.
func PurchaseInvoices(c models.Category) string {
	return string(c) + "PurchaseInvoices"
}

// SalesBills is the collection holding a category's sales bills.
func SalesBills(c models.Category) string {
	return string(c) + "BillInvoices"
}

// CustomerBills is the collection holding a category's customer ledger projection.
func CustomerBills(c models.Category) string {
	return "customer" + c.Title() + "Bills"
}
