package bookkeeping

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// ListParties returns every party, or those whose name (case-insensitive) or
// mobile number contains query.
func (s *Service) ListParties(ctx context.Context, query string) ([]models.Party, error) {
	parties, err := s.repo.Parties(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return parties, nil
	}

	needle := strings.ToLower(query)
	matches := make([]models.Party, 0, len(parties))
	for _, p := range parties {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(p.Mobile, query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// Party looks a party up by id.
func (s *Service) Party(ctx context.Context, id string) (models.Party, error) {
	parties, err := s.repo.Parties(ctx)
	if err != nil {
		return models.Party{}, err
	}
	for _, p := range parties {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Party{}, notFound("party", id)
}

// CreateParty adds a party with a fresh id.
func (s *Service) CreateParty(ctx context.Context, p models.Party) (models.Party, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Party{}, ErrPartyNameRequired
	}

	parties, err := s.repo.Parties(ctx)
	if err != nil {
		return models.Party{}, err
	}
	for _, existing := range parties {
		if strings.EqualFold(existing.Name, p.Name) {
			return models.Party{}, ErrDuplicateParty
		}
	}

	p.ID = s.newID()
	p.Timestamp = s.now().UnixMilli()
	if err := s.repo.SaveParties(ctx, append(parties, p)); err != nil {
		return models.Party{}, err
	}

	s.logger.Info("party created", zap.String("party_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateParty replaces the details of an existing party. Renaming does not
// touch bills or invoices that reference the old name.
func (s *Service) UpdateParty(ctx context.Context, id string, p models.Party) (models.Party, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Party{}, ErrPartyNameRequired
	}

	parties, err := s.repo.Parties(ctx)
	if err != nil {
		return models.Party{}, err
	}

	idx := -1
	for i, existing := range parties {
		if existing.ID == id {
			idx = i
		} else if strings.EqualFold(existing.Name, p.Name) {
			return models.Party{}, ErrDuplicateParty
		}
	}
	if idx < 0 {
		return models.Party{}, notFound("party", id)
	}

	p.ID = id
	p.Timestamp = parties[idx].Timestamp
	parties[idx] = p
	if err := s.repo.SaveParties(ctx, parties); err != nil {
		return models.Party{}, err
	}
	return p, nil
}

// DeleteParty removes a party from the master list.
func (s *Service) DeleteParty(ctx context.Context, id string) error {
	parties, err := s.repo.Parties(ctx)
	if err != nil {
		return err
	}
	kept, removed := without(parties, func(p models.Party) bool { return p.ID == id })
	if !removed {
		return notFound("party", id)
	}
	if err := s.repo.SaveParties(ctx, kept); err != nil {
		return err
	}
	s.logger.Info("party deleted", zap.String("party_id", id))
	return nil
}
