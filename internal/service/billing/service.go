// Package billing validates sales bill and purchase invoice forms, derives
// their computed fields and appends them to the record store.
package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
)

// Service builds and persists bills and invoices.
type Service struct {
	repo   *records.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a billing service.
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
