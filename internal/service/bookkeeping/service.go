// Package bookkeeping manages the party master list, supplier payments and the
// listing and removal of stored bills and invoices.
package bookkeeping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
)

var (
	ErrPartyNameRequired = &models.ValidationError{Field: "name", Title: "Name Required", Message: "Please enter the party name."}
	ErrDuplicateParty    = &models.ValidationError{Field: "name", Title: "Duplicate Party", Message: "A party with this name already exists."}
	ErrPaymentParty      = &models.ValidationError{Field: "partyName", Title: "Party Required", Message: "Please select who was paid."}
	ErrPaymentAmount     = &models.ValidationError{Field: "amount", Title: "Invalid Amount", Message: "Payment amount must be greater than zero."}
	ErrInvalidCategory   = &models.ValidationError{Field: "category", Title: "Invalid Category", Message: "Please choose feed, medicine or chick."}
	ErrInvalidDate       = &models.ValidationError{Field: "date", Title: "Invalid Date", Message: "Please enter the date as YYYY-MM-DD."}
)

// Service implements the CRUD flows around the ledger collections.
type Service struct {
	repo   *records.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a bookkeeping service.
func NewService(repo *records.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func notFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, models.ErrNotFound)
}

func (s *Service) normalizeDate(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return s.now().Format(models.DateLayout), nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(models.DateLayout), nil
}

// sortByDateDesc orders newest first. Records with unreadable dates go last.
func sortByDateDesc[T any](recs []T, date func(T) string, timestamp func(T) int64) {
	sort.SliceStable(recs, func(i, j int) bool {
		di, errI := models.ParseDate(date(recs[i]))
		dj, errJ := models.ParseDate(date(recs[j]))
		switch {
		case errI != nil || errJ != nil:
			return errI == nil && errJ != nil
		case !di.Equal(dj):
			return di.After(dj)
		}
		return timestamp(recs[i]) > timestamp(recs[j])
	})
}
