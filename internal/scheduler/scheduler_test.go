package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/service/ledger"
	"github.com/mamadbah2/feedbook/internal/service/reporting"
)

type staticSource struct{ snap reporting.Snapshot }

func (s staticSource) Snapshot(context.Context) reporting.Snapshot { return s.snap }

type fakeExporter struct {
	rows []models.DigestRow
	err  error
}

func (f *fakeExporter) AppendDigest(_ context.Context, rows []models.DigestRow) error {
	f.rows = append(f.rows, rows...)
	return f.err
}

type fakeMessaging struct {
	sent []models.OutboundMessageRequest
}

func (f *fakeMessaging) VerifyWebhookToken(string, string, string) (string, error) { return "", nil }

func (f *fakeMessaging) HandleWebhook(context.Context, models.WebhookPayload) error { return nil }

func (f *fakeMessaging) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func snapshot() reporting.Snapshot {
	return reporting.Snapshot{
		GeneratedAt: time.Date(2024, 2, 11, 20, 0, 0, 0, time.UTC),
		Categories: []reporting.CategorySnapshot{{
			Category: models.CategoryFeed,
			Balance: ledger.Balance{
				Category:       models.CategoryFeed,
				TotalPurchased: decimal.NewFromInt(1000),
				TotalPaid:      decimal.NewFromInt(400),
				BalanceDue:     decimal.NewFromInt(600),
			},
			Sales: ledger.SalesTotals{TotalAmount: decimal.Zero, TotalProfit: decimal.Zero},
		}},
	}
}

func TestRunDigestExportsAndSends(t *testing.T) {
	exp := &fakeExporter{}
	msg := &fakeMessaging{}
	s := NewScheduler(staticSource{snapshot()}, Options{Schedule: "0 20 * * *", OperatorID: "919800000000", Exporter: exp, Messaging: msg}, nil)

	require.NoError(t, s.RunDigest(context.Background()))

	require.Len(t, exp.rows, 1)
	assert.Equal(t, "600.00", exp.rows[0].BalanceDue)
	require.Len(t, msg.sent, 1)
	assert.Equal(t, "919800000000", msg.sent[0].To)
	assert.Contains(t, msg.sent[0].Message, "Daily digest 2024-02-11")
}

func TestRunDigestStillSendsWhenExportFails(t *testing.T) {
	exp := &fakeExporter{err: errors.New("quota")}
	msg := &fakeMessaging{}
	s := NewScheduler(staticSource{snapshot()}, Options{OperatorID: "1", Exporter: exp, Messaging: msg}, nil)

	err := s.RunDigest(context.Background())
	assert.EqualError(t, err, "quota")
	assert.Len(t, msg.sent, 1)
}

func TestRunDigestWithoutIntegrations(t *testing.T) {
	s := NewScheduler(staticSource{snapshot()}, Options{}, nil)
	assert.NoError(t, s.RunDigest(context.Background()))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(staticSource{}, Options{Schedule: "every day"}, nil)
	assert.Error(t, s.Start())

	ok := NewScheduler(staticSource{}, Options{Schedule: "0 20 * * *", Location: time.UTC}, nil)
	require.NoError(t, ok.Start())
	ok.Stop()
}
