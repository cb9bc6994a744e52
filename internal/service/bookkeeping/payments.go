package bookkeeping

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// PaymentDraft is the payment form.
type PaymentDraft struct {
	Date      string          `json:"date"`
	PartyName string          `json:"partyName"`
	From      string          `json:"from"`
	Amount    float64         `json:"amount"`
	Note      string          `json:"note"`
	Category  models.Category `json:"category"`
}

func (s *Service) validatePayment(d PaymentDraft) (models.Payment, error) {
	if !d.Category.Valid() {
		return models.Payment{}, ErrInvalidCategory
	}
	party := strings.TrimSpace(d.PartyName)
	if party == "" {
		return models.Payment{}, ErrPaymentParty
	}
	if d.Amount <= 0 {
		return models.Payment{}, ErrPaymentAmount
	}
	date, err := s.normalizeDate(d.Date)
	if err != nil {
		return models.Payment{}, err
	}
	return models.Payment{
		Date:      date,
		PartyName: party,
		From:      strings.TrimSpace(d.From),
		Amount:    d.Amount,
		Note:      d.Note,
		Category:  d.Category,
	}, nil
}

// ListPayments returns a category's payments, newest first.
func (s *Service) ListPayments(ctx context.Context, category models.Category) ([]models.Payment, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	all, err := s.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Payment, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	sortByDateDesc(out,
		func(p models.Payment) string { return p.Date },
		func(p models.Payment) int64 { return p.Timestamp })
	return out, nil
}

// AddPayment records a new supplier payment.
func (s *Service) AddPayment(ctx context.Context, d PaymentDraft) (models.Payment, error) {
	payment, err := s.validatePayment(d)
	if err != nil {
		return models.Payment{}, err
	}

	all, err := s.repo.Payments(ctx)
	if err != nil {
		return models.Payment{}, err
	}

	payment.ID = s.newID()
	payment.Timestamp = s.now().UnixMilli()
	if err := s.repo.SavePayments(ctx, append(all, payment)); err != nil {
		return models.Payment{}, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("category", string(payment.Category)),
		zap.String("party", payment.PartyName),
		zap.Float64("amount", payment.Amount))
	return payment, nil
}

// UpdatePayment edits a payment in place, keeping its id and timestamp.
func (s *Service) UpdatePayment(ctx context.Context, id string, d PaymentDraft) (models.Payment, error) {
	payment, err := s.validatePayment(d)
	if err != nil {
		return models.Payment{}, err
	}

	all, err := s.repo.Payments(ctx)
	if err != nil {
		return models.Payment{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		payment.ID = id
		payment.Timestamp = all[i].Timestamp
		all[i] = payment
		if err := s.repo.SavePayments(ctx, all); err != nil {
			return models.Payment{}, err
		}
		return payment, nil
	}
	return models.Payment{}, notFound("payment", id)
}

// DeletePayment removes a payment by id.
func (s *Service) DeletePayment(ctx context.Context, id string) error {
	all, err := s.repo.Payments(ctx)
	if err != nil {
		return err
	}
	kept, removed := without(all, func(p models.Payment) bool { return p.ID == id })
	if !removed {
		return notFound("payment", id)
	}
	if err := s.repo.SavePayments(ctx, kept); err != nil {
		return err
	}
	s.logger.Info("payment deleted", zap.String("payment_id", id))
	return nil
}
