// Package analytics exposes the read-only report service: a thin layer
// that loads one session's answer records and hands them to the pure
// analyzer in internal/domain/report.
//
// It performs no writes and tolerates partially answered sessions; a
// report over an in-progress session is simply based on fewer records.
package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain/report"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/store"
)

// AnalyticsService produces session reports.
type AnalyticsService interface {
	// GetReport builds the analytics report for one (list, user) session
	// from a snapshot of its answer records. An empty or unstarted
	// session yields an empty report, not an error.
	GetReport(ctx context.Context, listID, userID uuid.UUID) (*report.Report, error)
}

// Verify interface compliance at compile time
var _ AnalyticsService = (*analyticsServiceImpl)(nil)

type analyticsServiceImpl struct {
	recordStore store.AnswerRecordStore
	analyzer    *report.Analyzer
	logger      *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService implementation.
// A nil analyzer gets the default rule parameters.
func NewAnalyticsService(
	recordStore store.AnswerRecordStore,
	analyzer *report.Analyzer,
	logger *slog.Logger,
) AnalyticsService {
	if recordStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("recordStore cannot be nil")
	}

	if analyzer == nil {
		analyzer = report.NewDefaultAnalyzer()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &analyticsServiceImpl{
		recordStore: recordStore,
		analyzer:    analyzer,
		logger:      logger.With(slog.String("component", "analytics_service")),
	}
}

// GetReport implements AnalyticsService.GetReport.
func (s *analyticsServiceImpl) GetReport(
	ctx context.Context,
	listID, userID uuid.UUID,
) (*report.Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.recordStore.ListByListAndUser(ctx, listID, userID)
	if err != nil {
		log.Error("failed to load session records for report",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load session records: %w", err)
	}

	rep := s.analyzer.Analyze(records)

	log.Debug("session report computed",
		slog.String("list_id", listID.String()),
		slog.Int("answered", rep.AnsweredCount),
		slog.Float64("accuracy", rep.OverallAccuracy))

	return rep, nil
}
