package quiz_session

import (
	"context"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// MockQuizSessionService is a mock implementation of the
// QuizSessionService interface for testing.
type MockQuizSessionService struct {
	StartSessionFunc func(ctx context.Context, listID, userID uuid.UUID) (*StartedSession, error)
	SubmitAnswerFunc func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*SubmitResult, error)
	SetStudiedFunc   func(ctx context.Context, userID, recordID uuid.UUID, studied bool) (*SubmitResult, error)
	GetSummaryFunc   func(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error)
	GetRecordsFunc   func(ctx context.Context, listID, userID uuid.UUID) ([]*domain.AnswerRecord, error)
}

// Ensure MockQuizSessionService implements QuizSessionService
var _ QuizSessionService = (*MockQuizSessionService)(nil)

// StartSession delegates to StartSessionFunc when set.
func (m *MockQuizSessionService) StartSession(ctx context.Context, listID, userID uuid.UUID) (*StartedSession, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, listID, userID)
	}
	return &StartedSession{}, nil
}

// SubmitAnswer delegates to SubmitAnswerFunc when set.
func (m *MockQuizSessionService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	recordID uuid.UUID,
	selectedChoiceID uuid.UUID,
	rawCause string,
) (*SubmitResult, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, userID, recordID, selectedChoiceID, rawCause)
	}
	return &SubmitResult{}, nil
}

// SetStudied delegates to SetStudiedFunc when set.
func (m *MockQuizSessionService) SetStudied(
	ctx context.Context,
	userID uuid.UUID,
	recordID uuid.UUID,
	studied bool,
) (*SubmitResult, error) {
	if m.SetStudiedFunc != nil {
		return m.SetStudiedFunc(ctx, userID, recordID, studied)
	}
	return &SubmitResult{}, nil
}

// GetSummary delegates to GetSummaryFunc when set.
func (m *MockQuizSessionService) GetSummary(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error) {
	if m.GetSummaryFunc != nil {
		return m.GetSummaryFunc(ctx, listID, userID)
	}
	return &domain.ListSummary{ListID: listID, UserID: userID}, nil
}

// GetRecords delegates to GetRecordsFunc when set.
func (m *MockQuizSessionService) GetRecords(ctx context.Context, listID, userID uuid.UUID) ([]*domain.AnswerRecord, error) {
	if m.GetRecordsFunc != nil {
		return m.GetRecordsFunc(ctx, listID, userID)
	}
	return nil, nil
}
