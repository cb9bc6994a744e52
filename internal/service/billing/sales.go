package billing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
	"github.com/mamadbah2/feedbook/internal/repository/store"
	"github.com/mamadbah2/feedbook/internal/service/pricing"
	"github.com/mamadbah2/feedbook/internal/service/stock"
)

// SalesItemDraft is one bill line as entered. A zero BuyingRate is filled in
// from purchase history.
type SalesItemDraft struct {
	ID          string  `json:"id"`
	Item        string  `json:"item"`
	Quantity    int     `json:"quantity"`
	BuyingRate  float64 `json:"buyingRate"`
	SellingRate float64 `json:"sellingRate"`
}

// SalesBillDraft is the raw sales bill form.
type SalesBillDraft struct {
	Category    models.Category    `json:"category"`
	BillNo      string             `json:"billNo"`
	BillDate    string             `json:"billDate"`
	To          string             `json:"to"`
	Notes       string             `json:"notes"`
	PaymentType models.PaymentType `json:"paymentType"`
	Items       []SalesItemDraft   `json:"items"`
}

// CreateSalesBill validates the draft, derives every line, appends the bill to
// its category and writes the customer ledger projection in the same save.
func (s *Service) CreateSalesBill(ctx context.Context, draft SalesBillDraft) (models.SalesBill, error) {
	if err := validateSalesDraft(&draft); err != nil {
		return models.SalesBill{}, err
	}
	billDate, err := s.normalizeDate(draft.BillDate)
	if err != nil {
		return models.SalesBill{}, err
	}

	existing, err := s.repo.SalesBills(ctx, draft.Category)
	if err != nil {
		return models.SalesBill{}, err
	}
	for _, bill := range existing {
		if bill.BillNo == draft.BillNo {
			return models.SalesBill{}, ErrDuplicateBillNo
		}
	}

	customerBills, err := s.repo.CustomerBills(ctx, draft.Category)
	if err != nil {
		return models.SalesBill{}, err
	}

	bill := models.SalesBill{
		BillNo:      draft.BillNo,
		BillDate:    billDate,
		To:          draft.To,
		Notes:       draft.Notes,
		Category:    draft.Category,
		PaymentType: draft.PaymentType,
		Timestamp:   s.now().UnixMilli(),
		Items:       s.deriveSalesItems(ctx, draft, existing),
	}
	for _, item := range bill.Items {
		bill.GrandTotal += item.SellingTotal
	}

	billsWrite, err := records.Encode(store.SalesBills(draft.Category), append(existing, bill))
	if err != nil {
		return models.SalesBill{}, err
	}
	customerWrite, err := records.Encode(store.CustomerBills(draft.Category), append(customerBills, bill.CustomerRecord()))
	if err != nil {
		return models.SalesBill{}, err
	}
	if err := s.repo.Save(ctx, billsWrite, customerWrite); err != nil {
		return models.SalesBill{}, err
	}

	s.logger.Info("sales bill saved",
		zap.String("bill_no", bill.BillNo),
		zap.String("category", string(bill.Category)),
		zap.Int("items", len(bill.Items)),
		zap.Float64("grand_total", bill.GrandTotal))

	return bill, nil
}

func validateSalesDraft(draft *SalesBillDraft) error {
	if !draft.Category.Valid() {
		return ErrInvalidCategory
	}
	draft.BillNo = strings.TrimSpace(draft.BillNo)
	if draft.BillNo == "" {
		return ErrBillNoRequired
	}
	draft.To = strings.TrimSpace(draft.To)
	if draft.To == "" {
		return ErrRecipientRequired
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
		if item.Quantity < 0 || item.BuyingRate < 0 || item.SellingRate < 0 {
			return ErrNegativeAmount
		}
	}
	switch draft.PaymentType {
	case "":
		draft.PaymentType = models.PaymentCredit
	case models.PaymentCredit, models.PaymentCash:
	default:
		return ErrInvalidPaymentType
	}
	return nil
}

// deriveSalesItems fills weight, totals, margin and the stock snapshot. Purchase
// history only feeds defaults, so an unreadable purchase collection degrades to
// no defaults instead of blocking the bill.
func (s *Service) deriveSalesItems(ctx context.Context, draft SalesBillDraft, existing []models.SalesBill) []models.SalesBillItem {
	invoices, err := s.repo.PurchaseInvoices(ctx, draft.Category)
	if err != nil {
		s.logger.Warn("purchase history unavailable, bill uses entered rates only",
			zap.String("category", string(draft.Category)), zap.Error(err))
		invoices = nil
	}

	levels := stock.Levels(draft.Category, invoices, existing)
	defaults := defaultBuyingRates(draft.Category, invoices)
	taken := make(map[string]int)

	items := make([]models.SalesBillItem, 0, len(draft.Items))
	for _, in := range draft.Items {
		item := models.SalesBillItem{
			ID:          in.ID,
			Item:        in.Item,
			Quantity:    in.Quantity,
			BuyingRate:  in.BuyingRate,
			SellingRate: in.SellingRate,
		}
		if item.ID == "" {
			item.ID = s.newID()
		}
		if item.BuyingRate == 0 {
			item.BuyingRate = defaults[item.Item]
		}

		derive(draft.Category, &item)

		if onHand, ok := stock.OnHand(levels, item.Item); ok {
			item.BalanceBags = onHand - taken[item.Item] - item.Quantity
			taken[item.Item] += item.Quantity
		}

		items = append(items, item)
	}
	return items
}

// derive recomputes weight, totals and margin of a line from its quantity and rates.
func derive(category models.Category, item *models.SalesBillItem) {
	if category.WeightBased() {
		item.Weight = float64(item.Quantity * models.BagWeightKg)
		item.BuyingTotal = item.Weight * item.BuyingRate
		item.SellingTotal = item.Weight * item.SellingRate
	} else {
		item.Weight = 0
		item.BuyingTotal = float64(item.Quantity) * item.BuyingRate
		item.SellingTotal = float64(item.Quantity) * item.SellingRate
	}
	item.PnL = item.SellingTotal - item.BuyingTotal
}

func defaultBuyingRates(category models.Category, invoices []models.PurchaseInvoice) map[string]float64 {
	if !category.WeightBased() {
		return pricing.LatestItemRates(invoices)
	}
	rates := make(map[string]float64)
	for name, price := range pricing.LatestFeedPrices(invoices) {
		rates[name] = price.PricePerKg
	}
	return rates
}
