package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/store"
)

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("quota exceeded")
}

func (brokenStore) Save(context.Context, ...store.Write) error {
	return errors.New("quota exceeded")
}

func (brokenStore) Close(context.Context) error { return nil }

const storedBills = `[{"billNo":"F-1","billDate":"2024-01-10","to":"Ravi Traders","items":[{"id":"a","item":"Pre-PS","quantity":2,"weight":100,"buyingRate":2.2,"buyingTotal":220,"sellingRate":2.5,"sellingTotal":250,"pnl":30,"balanceBags":8}],"notes":"","grandTotal":250,"timestamp":1704873600000,"category":"feed","paymentType":"credit"}]`

const browserMedicineInvoices = `[{"invoiceNo":"M-1","invoiceDate":"2024-01-05","partyName":"Vet Supplies","notes":"","timestamp":1704412800000,"items":[{"id":"1","item":"Vitamin","quantity":2,"mrp":10,"discountPercentage":0,"rate":10,"amount":20}],"grandTotal":20,"type":"medicine"}]`

const browserPayments = `[{"id":"p1","date":"2024-01-06","partyName":"Vet Supplies","from":"Cash","amount":15,"note":"","timestamp":1704499200000,"type":"medicine"}]`

func TestLoadSaveRoundTripIsIdempotent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		collection string
		data       string
		roundTrip  func(*Repository) error
	}{
		{
			name:       "sales bills",
			collection: store.SalesBills(models.CategoryFeed),
			data:       storedBills,
			roundTrip: func(repo *Repository) error {
				bills, err := repo.SalesBills(ctx, models.CategoryFeed)
				if err != nil {
					return err
				}
				return repo.SaveSalesBills(ctx, models.CategoryFeed, bills)
			},
		},
		{
			name:       "browser medicine invoices",
			collection: store.PurchaseInvoices(models.CategoryMedicine),
			data:       browserMedicineInvoices,
			roundTrip: func(repo *Repository) error {
				invoices, err := repo.PurchaseInvoices(ctx, models.CategoryMedicine)
				if err != nil {
					return err
				}
				return repo.SavePurchaseInvoices(ctx, models.CategoryMedicine, invoices)
			},
		},
		{
			name:       "browser payments",
			collection: store.CollectionPayments,
			data:       browserPayments,
			roundTrip: func(repo *Repository) error {
				payments, err := repo.Payments(ctx)
				if err != nil {
					return err
				}
				return repo.SavePayments(ctx, payments)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemoryStore()
			require.NoError(t, mem.Save(ctx, store.Write{Collection: tt.collection, Data: []byte(tt.data)}))

			require.NoError(t, tt.roundTrip(NewRepository(mem, nil)))

			raw, err := mem.Load(ctx, tt.collection)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(raw))
		})
	}
}

func TestLegacyTypeKeyFillsCategory(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Save(ctx,
		store.Write{Collection: store.PurchaseInvoices(models.CategoryMedicine), Data: []byte(browserMedicineInvoices)},
		store.Write{Collection: store.CollectionPayments, Data: []byte(browserPayments)},
	))
	repo := NewRepository(mem, nil)

	invoices, err := repo.PurchaseInvoices(ctx, models.CategoryMedicine)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, models.CategoryMedicine, invoices[0].Category)

	payments, err := repo.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.CategoryMedicine, payments[0].Category)

	payments[0].Amount = 18
	require.NoError(t, repo.SavePayments(ctx, payments))

	raw, err := mem.Load(ctx, store.CollectionPayments)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","date":"2024-01-06","partyName":"Vet Supplies","from":"Cash","amount":18,"note":"","timestamp":1704499200000,"category":"medicine","type":"medicine"}]`, string(raw))
}

func TestMissingCollectionIsEmpty(t *testing.T) {
	repo := NewRepository(store.NewMemoryStore(), nil)

	parties, err := repo.Parties(context.Background())
	require.NoError(t, err)
	assert.Empty(t, parties)
}

func TestCorruptCollectionReportsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Save(ctx, store.Write{Collection: store.CollectionPayments, Data: []byte(`{not json`)}))

	_, err := NewRepository(mem, nil).Payments(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestBrokenStoreReportsStorageUnavailable(t *testing.T) {
	repo := NewRepository(brokenStore{}, nil)

	_, err := repo.PurchaseInvoices(context.Background(), models.CategoryFeed)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)

	err = repo.SaveParties(context.Background(), []models.Party{{ID: "1", Name: "X"}})
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestEncodeNilAsEmptyArray(t *testing.T) {
	w, err := Encode[models.Payment](store.CollectionPayments, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(w.Data))
}
