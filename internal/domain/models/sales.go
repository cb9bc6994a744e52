package models

import "encoding/json"

// PaymentType tells whether a sales bill was settled immediately.
type PaymentType string

const (
	PaymentCredit PaymentType = "credit"
	PaymentCash   PaymentType = "cash"
)

// SalesBillItem is one line of a sales bill with its margin.
type SalesBillItem struct {
	ID           string  `json:"id"`
	Item         string  `json:"item"`
	Quantity     int     `json:"quantity"`
	Weight       float64 `json:"weight"`
	BuyingRate   float64 `json:"buyingRate"`
	BuyingTotal  float64 `json:"buyingTotal"`
	SellingRate  float64 `json:"sellingRate"`
	SellingTotal float64 `json:"sellingTotal"`
	PnL          float64 `json:"pnl"`
	BalanceBags  int     `json:"balanceBags"`

	stored storedForm
}

type salesItemFields SalesBillItem

// UnmarshalJSON keeps the stored form of the line.
func (item *SalesBillItem) UnmarshalJSON(data []byte) error {
	fields := (*salesItemFields)(item)
	stored, err := decodeStored(data, fields, nil)
	if err != nil {
		return err
	}
	item.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (item SalesBillItem) MarshalJSON() ([]byte, error) {
	return item.stored.encode(salesItemFields(item))
}

// SalesBill is a bill issued to a customer. To holds the party name or free text.
type SalesBill struct {
	BillNo      string          `json:"billNo"`
	BillDate    string          `json:"billDate"`
	To          string          `json:"to"`
	Items       []SalesBillItem `json:"items"`
	Notes       string          `json:"notes"`
	GrandTotal  float64         `json:"grandTotal"`
	Timestamp   int64           `json:"timestamp"`
	Category    Category        `json:"category"`
	PaymentType PaymentType     `json:"paymentType"`

	stored storedForm
}

type salesBillFields SalesBill

// UnmarshalJSON reads the category from the legacy "type" key when "category" is absent.
func (b *SalesBill) UnmarshalJSON(data []byte) error {
	fields := (*salesBillFields)(b)
	stored, err := decodeStored(data, fields, func(extra map[string]json.RawMessage) {
		if fields.Category == "" {
			fields.Category = legacyCategory(extra)
		}
	})
	if err != nil {
		return err
	}
	b.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (b SalesBill) MarshalJSON() ([]byte, error) {
	return b.stored.encode(salesBillFields(b))
}

// CustomerBillRecord is the simplified customer-facing copy of a bill's first line.
// It is written once and never resynchronized with the source bill.
type CustomerBillRecord struct {
	BillNo    string   `json:"billNo"`
	BillDate  string   `json:"billDate"`
	To        string   `json:"to"`
	Item      string   `json:"item"`
	Weight    float64  `json:"weight"`
	Quantity  int      `json:"quantity"`
	Category  Category `json:"category"`
	Timestamp int64    `json:"timestamp"`

	stored storedForm
}

type customerBillFields CustomerBillRecord

// UnmarshalJSON reads the category from the legacy "type" key when "category" is absent.
func (rec *CustomerBillRecord) UnmarshalJSON(data []byte) error {
	fields := (*customerBillFields)(rec)
	stored, err := decodeStored(data, fields, func(extra map[string]json.RawMessage) {
		if fields.Category == "" {
			fields.Category = legacyCategory(extra)
		}
	})
	if err != nil {
		return err
	}
	rec.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (rec CustomerBillRecord) MarshalJSON() ([]byte, error) {
	return rec.stored.encode(customerBillFields(rec))
}

// CustomerRecord projects the bill into its customer ledger form.
func (b SalesBill) CustomerRecord() CustomerBillRecord {
	rec := CustomerBillRecord{
		BillNo:    b.BillNo,
		BillDate:  b.BillDate,
		To:        b.To,
		Category:  b.Category,
		Timestamp: b.Timestamp,
	}
	if len(b.Items) > 0 {
		rec.Item = b.Items[0].Item
		rec.Weight = b.Items[0].Weight
		rec.Quantity = b.Items[0].Quantity
	}
	return rec
}
