package models

import "encoding/json"

// Payment is money paid to suppliers for a category. It is not tied to an invoice.
type Payment struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	PartyName string   `json:"partyName"`
	From      string   `json:"from"`
	Amount    float64  `json:"amount"`
	Note      string   `json:"note"`
	Timestamp int64    `json:"timestamp"`
	Category  Category `json:"category"`

	stored storedForm
}

type paymentFields Payment

// UnmarshalJSON reads the category from the legacy "type" key when "category" is absent.
func (p *Payment) UnmarshalJSON(data []byte) error {
	fields := (*paymentFields)(p)
	stored, err := decodeStored(data, fields, func(extra map[string]json.RawMessage) {
		if fields.Category == "" {
			fields.Category = legacyCategory(extra)
		}
	})
	if err != nil {
		return err
	}
	p.stored = stored
	return nil
}

// MarshalJSON writes the stored bytes back when the record is unchanged.
func (p Payment) MarshalJSON() ([]byte, error) {
	return p.stored.encode(paymentFields(p))
}
