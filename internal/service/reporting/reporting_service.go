// Package reporting assembles read-only views of the ledger for chat replies,
// the dashboard endpoint and the scheduled digest.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/records"
	"github.com/mamadbah2/feedbook/internal/service/ledger"
	"github.com/mamadbah2/feedbook/internal/service/pricing"
	"github.com/mamadbah2/feedbook/internal/service/stock"
)

// CategorySnapshot is the dashboard view of one category.
type CategorySnapshot struct {
	Category models.Category    `json:"category"`
	Stock    []stock.Level      `json:"stock"`
	Balance  ledger.Balance     `json:"balance"`
	Sales    ledger.SalesTotals `json:"sales"`
}

// Snapshot is the whole dashboard at one instant.
type Snapshot struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	FeedPrices  []pricing.BoardEntry `json:"feedPrices"`
	Categories  []CategorySnapshot   `json:"categories"`
}

// Service exposes the aggregations behind summaries and digests.
type Service struct {
	repo      *records.Repository
	feedTypes []string
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. feedTypes are always
// listed on the price board, even before their first purchase.
func NewService(repository *records.Repository, feedTypes []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(feedTypes) == 0 {
		feedTypes = pricing.DefaultFeedTypes
	}
	return &Service{repo: repository, feedTypes: feedTypes, logger: logger, now: time.Now}
}

// Snapshot builds the dashboard. Unreadable collections are logged and count as empty.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	payments := s.payments(ctx)

	snap := Snapshot{GeneratedAt: s.now()}
	for _, c := range models.Categories {
		invoices := s.invoices(ctx, c)
		bills := s.bills(ctx, c)

		if c == models.CategoryFeed {
			snap.FeedPrices = pricing.Board(pricing.LatestFeedPrices(invoices), s.feedTypes)
		}
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Category: c,
			Stock:    stock.Summary(c, invoices, bills),
			Balance:  ledger.PurchaseBalance(c, invoices, payments),
			Sales:    ledger.SalesSummary(bills),
		})
	}
	return snap
}

// CalculatePriceBoard renders the latest cost per kg of every feed type.
func (s *Service) CalculatePriceBoard(ctx context.Context) (string, error) {
	return formatPriceBoard(s.FeedPrices(ctx)), nil
}

// CalculateStockSummary renders on-hand stock for the given categories, or all of them.
func (s *Service) CalculateStockSummary(ctx context.Context, categories ...models.Category) (string, error) {
	if len(categories) == 0 {
		categories = models.Categories
	}

	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		writeStock(&b, c, s.Stock(ctx, c))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// CalculateBalance renders the supplier balance for the given categories, or all of them.
func (s *Service) CalculateBalance(ctx context.Context, categories ...models.Category) (string, error) {
	if len(categories) == 0 {
		categories = models.Categories
	}
	payments := s.payments(ctx)

	lines := make([]string, 0, len(categories))
	for _, c := range categories {
		lines = append(lines, formatBalance(ledger.PurchaseBalance(c, s.invoices(ctx, c), payments)))
	}
	return strings.Join(lines, "\n"), nil
}

// CalculateStatement renders a party's sales statement across all categories.
func (s *Service) CalculateStatement(ctx context.Context, party string) (string, error) {
	bills := s.allBills(ctx)

	party = s.canonicalParty(ctx, party)
	st := ledger.PartyStatement(party, bills, ledger.StatementFilter{})
	if len(st.Bills) == 0 {
		return fmt.Sprintf("Statement for %s: no bills yet.", party), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Statement for %s (%d bills)\n", party, len(st.Bills))
	for _, c := range models.Categories {
		if total, ok := st.Subtotals[c]; ok && !total.IsZero() {
			fmt.Fprintf(&b, "%s: %s\n", c.Title(), rupees(total))
		}
	}
	fmt.Fprintf(&b, "Total: %s", rupees(st.GrandTotal))
	return b.String(), nil
}

// FormatDigest renders a snapshot as the plain-text daily digest.
func FormatDigest(snap Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily digest %s\n\n", snap.GeneratedAt.Format(models.DateLayout))
	b.WriteString(formatPriceBoard(snap.FeedPrices))
	b.WriteString("\n")

	for _, cs := range snap.Categories {
		fmt.Fprintf(&b, "\n%s: %d items in stock\n", cs.Category.Title(), len(cs.Stock))
		fmt.Fprintf(&b, "Purchased %s, paid %s, due %s\n",
			rupees(cs.Balance.TotalPurchased), rupees(cs.Balance.TotalPaid), rupees(cs.Balance.BalanceDue))
		fmt.Fprintf(&b, "Sales %s over %d bills, profit %s\n",
			rupees(cs.Sales.TotalAmount), cs.Sales.TotalBills, rupees(cs.Sales.TotalProfit))
	}
	return strings.TrimRight(b.String(), "\n")
}

// DigestRows flattens a snapshot into one export row per category.
func DigestRows(snap Snapshot) []models.DigestRow {
	rows := make([]models.DigestRow, 0, len(snap.Categories))
	for _, cs := range snap.Categories {
		rows = append(rows, models.DigestRow{
			Date:           snap.GeneratedAt,
			Category:       cs.Category,
			StockItems:     len(cs.Stock),
			TotalPurchased: cs.Balance.TotalPurchased.StringFixed(2),
			TotalPaid:      cs.Balance.TotalPaid.StringFixed(2),
			BalanceDue:     cs.Balance.BalanceDue.StringFixed(2),
			SalesProfit:    cs.Sales.TotalProfit.StringFixed(2),
		})
	}
	return rows
}

// canonicalParty maps a typed name onto the stored party name, ignoring case.
func (s *Service) canonicalParty(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	parties, err := s.repo.Parties(ctx)
	if err != nil {
		s.logger.Debug("party lookup failed", zap.Error(err))
		return name
	}
	for _, p := range parties {
		if strings.EqualFold(p.Name, name) {
			return p.Name
		}
	}
	return name
}

func (s *Service) invoices(ctx context.Context, c models.Category) []models.PurchaseInvoice {
	invoices, err := s.repo.PurchaseInvoices(ctx, c)
	if err != nil {
		s.logger.Warn("purchase invoices unavailable", zap.String("category", string(c)), zap.Error(err))
		return nil
	}
	return invoices
}

func (s *Service) bills(ctx context.Context, c models.Category) []models.SalesBill {
	bills, err := s.repo.SalesBills(ctx, c)
	if err != nil {
		s.logger.Warn("sales bills unavailable", zap.String("category", string(c)), zap.Error(err))
		return nil
	}
	return bills
}

func (s *Service) allBills(ctx context.Context) []models.SalesBill {
	var all []models.SalesBill
	for _, c := range models.Categories {
		all = append(all, s.bills(ctx, c)...)
	}
	return all
}

func (s *Service) payments(ctx context.Context) []models.Payment {
	payments, err := s.repo.Payments(ctx)
	if err != nil {
		s.logger.Warn("payments unavailable", zap.Error(err))
		return nil
	}
	return payments
}

func formatPriceBoard(board []pricing.BoardEntry) string {
	var b strings.Builder
	b.WriteString("Feed prices (per kg)")
	for _, entry := range board {
		if !entry.Known {
			fmt.Fprintf(&b, "\n- %s: no purchases yet", entry.FeedType)
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %s as of %s", entry.FeedType,
			rupees(decimal.NewFromFloat(entry.PricePerKg)), entry.AsOf.Format(models.DateLayout))
	}
	return b.String()
}

func writeStock(b *strings.Builder, c models.Category, levels []stock.Level) {
	if len(levels) == 0 {
		fmt.Fprintf(b, "%s stock: empty.\n", c.Title())
		return
	}
	fmt.Fprintf(b, "%s stock:\n", c.Title())
	for _, level := range levels {
		if level.Weight != nil {
			fmt.Fprintf(b, "- %s: %d bags (%.0f kg)\n", level.Name, level.Quantity, *level.Weight)
			continue
		}
		fmt.Fprintf(b, "- %s: %d\n", level.Name, level.Quantity)
	}
}

func formatBalance(bal ledger.Balance) string {
	return fmt.Sprintf("%s: purchased %s, paid %s, due %s", bal.Category.Title(),
		rupees(bal.TotalPurchased), rupees(bal.TotalPaid), rupees(bal.BalanceDue))
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
