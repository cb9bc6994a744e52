package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/repository/sheets"
	"github.com/mamadbah2/feedbook/internal/service/reporting"
	"github.com/mamadbah2/feedbook/internal/service/whatsapp"
)

const digestTimeout = 2 * time.Minute

// SnapshotSource produces the dashboard snapshot the digest is built from.
type SnapshotSource interface {
	Snapshot(ctx context.Context) reporting.Snapshot
}

// Options configures the digest job. Exporter and Messaging are optional.
type Options struct {
	Schedule   string
	Location   *time.Location
	OperatorID string
	Exporter   sheets.DigestExporter
	Messaging  whatsapp.MessagingService
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	schedule   string
	operatorID string
	source     SnapshotSource
	exporter   sheets.DigestExporter
	messaging  whatsapp.MessagingService
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(source SnapshotSource, opts Options, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		schedule:   opts.Schedule,
		operatorID: opts.OperatorID,
		source:     source,
		exporter:   opts.Exporter,
		messaging:  opts.Messaging,
		logger:     logger,
	}
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runScheduledDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduledDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.logger.Error("daily digest incomplete", zap.Error(err))
	}
}

// RunDigest builds the snapshot, exports its rows and sends the text digest to
// the operator. Both deliveries are attempted; the first failure is returned.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	s.logger.Info("generating daily digest")
	snap := s.source.Snapshot(ctx)

	var firstErr error

	if s.exporter != nil {
		if err := s.exporter.AppendDigest(ctx, reporting.DigestRows(snap)); err != nil {
			s.logger.Error("failed to export digest", zap.Error(err))
			firstErr = err
		}
	}

	if s.messaging != nil && s.operatorID != "" {
		req := models.OutboundMessageRequest{To: s.operatorID, Message: reporting.FormatDigest(snap)}
		if err := s.messaging.SendOutbound(ctx, req); err != nil {
			s.logger.Error("failed to send digest", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		} else {
			s.logger.Info("digest sent", zap.String("to", s.operatorID))
		}
	}

	return firstErr
}
