package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain/report"
)

// MockAnalyticsService is a mock implementation of the AnalyticsService
// interface for testing.
type MockAnalyticsService struct {
	GetReportFunc func(ctx context.Context, listID, userID uuid.UUID) (*report.Report, error)
}

// Ensure MockAnalyticsService implements AnalyticsService
var _ AnalyticsService = (*MockAnalyticsService)(nil)

// GetReport delegates to GetReportFunc when set.
func (m *MockAnalyticsService) GetReport(ctx context.Context, listID, userID uuid.UUID) (*report.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, listID, userID)
	}
	return report.NewDefaultAnalyzer().Analyze(nil), nil
}
