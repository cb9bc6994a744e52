package billing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
	"github.com/mamadbah2/feedbook/internal/repository/store"
	"github.com/mamadbah2/feedbook/internal/service/pricing"
)

// PurchaseItemDraft is one supplier invoice line as entered.
type PurchaseItemDraft struct {
	ID                 string  `json:"id"`
	Item               string  `json:"item"`
	Quantity           int     `json:"quantity"`
	MRP                float64 `json:"mrp"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// PurchaseInvoiceDraft is the raw purchase invoice form.
type PurchaseInvoiceDraft struct {
	Category       models.Category     `json:"category"`
	InvoiceNo      string              `json:"invoiceNo"`
	InvoiceDate    string              `json:"invoiceDate"`
	PartyName      string              `json:"partyName"`
	FreightCharges float64             `json:"freightCharges"`
	Notes          string              `json:"notes"`
	Items          []PurchaseItemDraft `json:"items"`
}

// CreatePurchaseInvoice validates the draft, derives rates and amounts and
// appends the invoice to its category collection.
func (s *Service) CreatePurchaseInvoice(ctx context.Context, draft PurchaseInvoiceDraft) (models.PurchaseInvoice, error) {
	if err := validatePurchaseDraft(&draft); err != nil {
		return models.PurchaseInvoice{}, err
	}
	invoiceDate, err := s.normalizeDate(draft.InvoiceDate)
	if err != nil {
		return models.PurchaseInvoice{}, err
	}

	existing, err := s.repo.PurchaseInvoices(ctx, draft.Category)
	if err != nil {
		return models.PurchaseInvoice{}, err
	}
	for _, inv := range existing {
		if inv.InvoiceNo == draft.InvoiceNo {
			return models.PurchaseInvoice{}, ErrDuplicateInvoiceNo
		}
	}

	invoice := models.PurchaseInvoice{
		InvoiceNo:   draft.InvoiceNo,
		InvoiceDate: invoiceDate,
		PartyName:   draft.PartyName,
		Notes:       draft.Notes,
		Category:    draft.Category,
		Timestamp:   s.now().UnixMilli(),
	}
	if draft.Category.WeightBased() {
		invoice.FreightCharges = draft.FreightCharges
	}

	invoice.Items = make([]models.PurchaseInvoiceItem, 0, len(draft.Items))
	for _, in := range draft.Items {
		item := models.PurchaseInvoiceItem{
			ID:                 in.ID,
			Item:               in.Item,
			Quantity:           in.Quantity,
			MRP:                in.MRP,
			DiscountPercentage: in.DiscountPercentage,
		}
		if item.ID == "" {
			item.ID = s.newID()
		}
		item.Rate = item.MRP * (1 - item.DiscountPercentage/100)
		item.Amount = float64(item.Quantity) * item.Rate
		invoice.Items = append(invoice.Items, item)
		invoice.GrandTotal += item.Amount
	}
	if draft.Category.WeightBased() {
		perBag := invoice.FreightPerBag()
		for i := range invoice.Items {
			invoice.Items[i].CostPerKg = pricing.CostPerKg(invoice.Items[i].Rate, perBag)
		}
	}

	w, err := records.Encode(store.PurchaseInvoices(draft.Category), append(existing, invoice))
	if err != nil {
		return models.PurchaseInvoice{}, err
	}
	if err := s.repo.Save(ctx, w); err != nil {
		return models.PurchaseInvoice{}, err
	}

	s.logger.Info("purchase invoice saved",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("category", string(invoice.Category)),
		zap.String("party", invoice.PartyName),
		zap.Float64("grand_total", invoice.GrandTotal))

	return invoice, nil
}

func validatePurchaseDraft(draft *PurchaseInvoiceDraft) error {
	if !draft.Category.Valid() {
		return ErrInvalidCategory
	}
	draft.InvoiceNo = strings.TrimSpace(draft.InvoiceNo)
	if draft.InvoiceNo == "" {
		return ErrInvoiceNoRequired
	}
	draft.PartyName = strings.TrimSpace(draft.PartyName)
	if draft.PartyName == "" {
		return ErrPartyRequired
	}
	if draft.FreightCharges < 0 {
		return ErrNegativeFreight
	}
	if len(draft.Items) == 0 {
		return ErrNoItems
	}
	for i := range draft.Items {
		item := &draft.Items[i]
		item.Item = strings.TrimSpace(item.Item)
		if item.Item == "" {
			return ErrItemRequired
		}
		if item.Quantity < 0 || item.MRP < 0 {
			return ErrNegativeAmount
		}
		if item.DiscountPercentage < 0 || item.DiscountPercentage > 100 {
			return ErrInvalidDiscount
		}
	}
	return nil
}
