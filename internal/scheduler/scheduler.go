// Package scheduler runs the recurring background jobs: upload
// reconciliation and the weekly summary export.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/config"
	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/sheets"
	"github.com/jhconstruction/backoffice/internal/service/reporting"
	"github.com/jhconstruction/backoffice/internal/service/uploads"
)

// Scheduler manages the cron jobs of the application.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.JobsConfig
	uploadsSvc   *uploads.Service
	reportingSvc *reporting.Service
	exporter     sheets.Exporter
	logger       *zap.Logger
}

// NewScheduler creates a scheduler in the configured timezone. exporter may
// be nil when no spreadsheet is configured; the summary job is then skipped.
func NewScheduler(cfg config.JobsConfig, uploadsSvc *uploads.Service, reportingSvc *reporting.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		cfg:          cfg,
		uploadsSvc:   uploadsSvc,
		reportingSvc: reportingSvc,
		exporter:     exporter,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.uploadsSvc.Enabled() {
		if _, err := s.cron.AddFunc(s.cfg.ReconcileCron, s.reconcileUploads); err != nil {
			s.logger.Error("failed to schedule upload reconciliation", zap.Error(err))
		}
	}

	if s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.SummaryCron, s.exportWeeklySummary); err != nil {
			s.logger.Error("failed to schedule summary export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) reconcileUploads() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.uploadsSvc.Reconcile(ctx)
	if err != nil {
		s.logger.Error("upload reconciliation failed", zap.Int("deleted", deleted), zap.Error(err))
		return
	}
	s.logger.Info("upload reconciliation complete", zap.Int("deleted", deleted))
}

func (s *Scheduler) exportWeeklySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -7)

	summary, _, err := s.reportingSvc.FinancialReport(ctx, reporting.Query{
		From:  from,
		To:    to,
		Types: []models.TransactionType{models.TransactionIncome, models.TransactionExpense},
	})
	if err != nil {
		s.logger.Error("failed to compute weekly summary", zap.Error(err))
		return
	}

	if err := s.exporter.AppendSummary(ctx, from, to, summary.TotalIncome, summary.TotalExpense, summary.Balance); err != nil {
		s.logger.Error("failed to export weekly summary", zap.Error(err))
		return
	}
	s.logger.Info("weekly summary exported", zap.Float64("balance", summary.Balance))
}
