package reporting

import (
	"context"
	"time"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/service/ledger"
	"github.com/mamadbah2/feedbook/internal/service/pricing"
	"github.com/mamadbah2/feedbook/internal/service/stock"
)

// DefaultRecentDays is the window of the recent purchase summary.
const DefaultRecentDays = 30

// PurchaseLedger is the supplier balance of a category and its per-party breakdown.
type PurchaseLedger struct {
	Balance ledger.Balance   `json:"balance"`
	Parties []ledger.Balance `json:"parties"`
}

// FeedPrices returns the price board. Unreadable invoices leave every feed type unknown.
func (s *Service) FeedPrices(ctx context.Context) []pricing.BoardEntry {
	return pricing.Board(pricing.LatestFeedPrices(s.invoices(ctx, models.CategoryFeed)), s.feedTypes)
}

// Stock returns the items of a category with positive stock.
func (s *Service) Stock(ctx context.Context, c models.Category) []stock.Level {
	return stock.Summary(c, s.invoices(ctx, c), s.bills(ctx, c))
}

// PurchaseLedger returns what is owed to suppliers for a category.
func (s *Service) PurchaseLedger(ctx context.Context, c models.Category) PurchaseLedger {
	invoices := s.invoices(ctx, c)
	payments := s.payments(ctx)
	return PurchaseLedger{
		Balance: ledger.PurchaseBalance(c, invoices, payments),
		Parties: ledger.PartyBalances(c, invoices, payments),
	}
}

// RecentPurchases summarizes the last days of purchasing. days <= 0 means DefaultRecentDays.
func (s *Service) RecentPurchases(ctx context.Context, c models.Category, days int) ledger.RecentActivity {
	if days <= 0 {
		days = DefaultRecentDays
	}
	return ledger.RecentPurchases(c, s.invoices(ctx, c), s.payments(ctx), s.now(), days)
}

// Statement returns the filtered sales statement of a party.
func (s *Service) Statement(ctx context.Context, party string, filter ledger.StatementFilter) ledger.Statement {
	return ledger.PartyStatement(party, s.allBills(ctx), filter)
}

// ParseRange reads optional YYYY-MM-DD bounds of a statement filter.
func ParseRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = models.ParseDate(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if end, err = models.ParseDate(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
