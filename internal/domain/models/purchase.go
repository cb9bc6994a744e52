package models

import "encoding/json"

// PurchaseInvoiceItem is one line of a supplier invoice.
type PurchaseInvoiceItem struct {
	ID                 string  `json:"id"`
	Item               string  `json:"item"`
	Quantity           int     `json:"quantity"`
	MRP                float64 `json:"mrp"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Rate               float64 `json:"rate"`
	Amount             float64 `json:"amount"`
	CostPerKg          float64 `json:"costPerKg,omitempty"`

	stored storedForm
}

type purchaseItemFields PurchaseInvoiceItem

// UnmarshalJSON keeps the stored form of the line.
func (item *PurchaseInvoiceItem) UnmarshalJSON(data []byte) error {
	fields := (*purchaseItemFields)(item)
	stored, err := decodeStored(data, fields, nil)
	if err != nil {
		return err
	}
	item.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (item PurchaseInvoiceItem) MarshalJSON() ([]byte, error) {
	return item.stored.encode(purchaseItemFields(item))
}

// PurchaseInvoice records goods bought from a supplier. GrandTotal excludes freight.
type PurchaseInvoice struct {
	InvoiceNo      string                `json:"invoiceNo"`
	InvoiceDate    string                `json:"invoiceDate"`
	PartyName      string                `json:"partyName"`
	Items          []PurchaseInvoiceItem `json:"items"`
	FreightCharges float64               `json:"freightCharges,omitempty"`
	Notes          string                `json:"notes"`
	GrandTotal     float64               `json:"grandTotal"`
	Timestamp      int64                 `json:"timestamp"`
	Category       Category              `json:"category"`

	stored storedForm
}

type purchaseInvoiceFields PurchaseInvoice

// UnmarshalJSON reads the category from the legacy "type" key when "category" is absent.
func (inv *PurchaseInvoice) UnmarshalJSON(data []byte) error {
	fields := (*purchaseInvoiceFields)(inv)
	stored, err := decodeStored(data, fields, func(extra map[string]json.RawMessage) {
		if fields.Category == "" {
			fields.Category = legacyCategory(extra)
		}
	})
	if err != nil {
		return err
	}
	inv.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (inv PurchaseInvoice) MarshalJSON() ([]byte, error) {
	return inv.stored.encode(purchaseInvoiceFields(inv))
}

// TotalQuantity sums the bag/unit count across all lines.
func (inv PurchaseInvoice) TotalQuantity() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Quantity
	}
	return total
}

// FreightPerBag spreads the freight charges evenly over every bag on the invoice.
func (inv PurchaseInvoice) FreightPerBag() float64 {
	bags := inv.TotalQuantity()
	if bags <= 0 {
		return 0
	}
	return inv.FreightCharges / float64(bags)
}
