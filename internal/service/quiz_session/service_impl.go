package quiz_session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/domain/scoring"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/store"
)

// Verify interface compliance at compile time
var _ QuizSessionService = (*quizSessionServiceImpl)(nil)

// quizSessionServiceImpl implements the QuizSessionService interface.
type quizSessionServiceImpl struct {
	db            *sql.DB
	questionStore store.QuestionStore
	recordStore   store.AnswerRecordStore
	summaryStore  store.ListSummaryStore
	logger        *slog.Logger
}

// NewQuizSessionService creates a new QuizSessionService implementation.
func NewQuizSessionService(
	db *sql.DB,
	questionStore store.QuestionStore,
	recordStore store.AnswerRecordStore,
	summaryStore store.ListSummaryStore,
	logger *slog.Logger,
) QuizSessionService {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if questionStore == nil {
		panic("questionStore cannot be nil")
	}
	if recordStore == nil {
		panic("recordStore cannot be nil")
	}
	if summaryStore == nil {
		panic("summaryStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &quizSessionServiceImpl{
		db:            db,
		questionStore: questionStore,
		recordStore:   recordStore,
		summaryStore:  summaryStore,
		logger:        logger.With(slog.String("component", "quiz_session_service")),
	}
}

// StartSession implements QuizSessionService.StartSession.
func (s *quizSessionServiceImpl) StartSession(
	ctx context.Context,
	listID, userID uuid.UUID,
) (*StartedSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("starting session",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()))

	// A session that already exists is returned as-is; session creation
	// is idempotent per (list, user).
	existing, err := s.recordStore.ListByListAndUser(ctx, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing session: %w", err)
	}
	if len(existing) > 0 {
		summary := scoring.Recompute(listID, userID, existing)
		return &StartedSession{Records: existing, Summary: summary}, nil
	}

	questions, err := s.questionStore.ListByListID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load list questions: %w", err)
	}

	records := make([]*domain.AnswerRecord, 0, len(questions))
	for i, question := range questions {
		record, err := domain.NewAnswerRecord(listID, userID, question, i)
		if err != nil {
			return nil, fmt.Errorf("failed to build answer record: %w", err)
		}
		records = append(records, record)
	}

	summary := scoring.Recompute(listID, userID, records)

	// An empty list is a valid session with nothing to persist yet; it
	// reports an all-zero, non-finalized summary.
	if len(records) == 0 {
		log.Debug("list has no questions, returning empty session",
			slog.String("list_id", listID.String()))
		return &StartedSession{Records: records, Summary: summary}, nil
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.recordStore.WithTx(tx).CreateBulk(ctx, records); err != nil {
			return err
		}
		return s.summaryStore.WithTx(tx).Upsert(ctx, &summary)
	})
	if err != nil {
		// Two clients racing to start the same session: the loser reads
		// back what the winner created.
		if errors.Is(err, store.ErrSessionExists) {
			existing, listErr := s.recordStore.ListByListAndUser(ctx, listID, userID)
			if listErr != nil {
				return nil, fmt.Errorf("failed to load concurrently created session: %w", listErr)
			}
			summary := scoring.Recompute(listID, userID, existing)
			return &StartedSession{Records: existing, Summary: summary}, nil
		}

		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session started",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("questions", len(records)))

	return &StartedSession{Records: records, Summary: summary}, nil
}

// SubmitAnswer implements QuizSessionService.SubmitAnswer.
// It evaluates correctness, writes the record, and recomputes the summary
// as one critical section.
func (s *quizSessionServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	recordID uuid.UUID,
	selectedChoiceID uuid.UUID,
	rawCause string,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing answer submission",
		slog.String("user_id", userID.String()),
		slog.String("record_id", recordID.String()))

	result, err := s.mutateRecord(ctx, userID, recordID,
		func(record *domain.AnswerRecord, question *domain.Question) (*domain.AnswerRecord, error) {
			return scoring.ApplyAnswer(record, question, selectedChoiceID, rawCause, time.Now().UTC())
		})
	if err != nil {
		return nil, err
	}

	log.Debug("answer submitted",
		slog.String("record_id", recordID.String()),
		slog.Bool("correct", result.Record.Correct),
		slog.Int("answered", result.Summary.AnsweredCount),
		slog.Bool("finalized", result.Summary.Finalized))

	return result, nil
}

// SetStudied implements QuizSessionService.SetStudied.
func (s *quizSessionServiceImpl) SetStudied(
	ctx context.Context,
	userID uuid.UUID,
	recordID uuid.UUID,
	studied bool,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.mutateRecord(ctx, userID, recordID,
		func(record *domain.AnswerRecord, _ *domain.Question) (*domain.AnswerRecord, error) {
			return scoring.MarkStudied(record, studied, time.Now().UTC())
		})
	if err != nil {
		return nil, err
	}

	log.Debug("studied flag updated",
		slog.String("record_id", recordID.String()),
		slog.Bool("studied", studied))

	return result, nil
}

// mutateRecord is the shared critical section for record mutations:
// lock the record row, apply the pure mutation, write the record, then
// recompute and write the summary from the full record set. Everything
// happens inside one transaction so the summary can never reflect a
// record state that was not committed.
func (s *quizSessionServiceImpl) mutateRecord(
	ctx context.Context,
	userID uuid.UUID,
	recordID uuid.UUID,
	mutate func(*domain.AnswerRecord, *domain.Question) (*domain.AnswerRecord, error),
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result SubmitResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		recordStore := s.recordStore.WithTx(tx)
		summaryStore := s.summaryStore.WithTx(tx)

		record, err := recordStore.GetByIDForUpdate(ctx, recordID)
		if err != nil {
			if errors.Is(err, store.ErrAnswerRecordNotFound) {
				return ErrRecordNotFound
			}
			return fmt.Errorf("failed to get answer record: %w", err)
		}

		if record.UserID != userID {
			log.Warn("user does not own answer record",
				slog.String("user_id", userID.String()),
				slog.String("record_id", recordID.String()),
				slog.String("owner_id", record.UserID.String()))
			return ErrRecordNotOwned
		}

		question, err := s.questionStore.WithTx(tx).GetByID(ctx, record.QuestionID)
		if err != nil {
			return fmt.Errorf("failed to get question: %w", err)
		}

		updated, err := mutate(record, question)
		if err != nil {
			return err
		}

		if err := recordStore.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update answer record: %w", err)
		}

		// Full recomputation over the complete record set, never an
		// incremental patch.
		records, err := recordStore.ListByListAndUser(ctx, record.ListID, record.UserID)
		if err != nil {
			return fmt.Errorf("failed to load session records: %w", err)
		}

		summary := scoring.Recompute(record.ListID, record.UserID, records)
		if err := summaryStore.Upsert(ctx, &summary); err != nil {
			return fmt.Errorf("failed to write list summary: %w", err)
		}

		result.Record = updated
		result.Summary = summary
		return nil
	})
	if err != nil {
		// Service and validation errors pass through untouched so the
		// API layer can map them precisely.
		if errors.Is(err, ErrRecordNotFound) ||
			errors.Is(err, ErrRecordNotOwned) ||
			errors.Is(err, scoring.ErrNoSelection) ||
			errors.Is(err, scoring.ErrUnknownChoice) ||
			errors.Is(err, scoring.ErrCauseNotAllowed) ||
			errors.Is(err, domain.ErrInvalidErrorCause) {
			return nil, err
		}

		log.Error("failed to mutate answer record",
			slog.String("error", err.Error()),
			slog.String("record_id", recordID.String()))
		return nil, fmt.Errorf("failed to process submission: %w", err)
	}

	return &result, nil
}

// GetSummary implements QuizSessionService.GetSummary.
// The stored summary is never trusted blindly; it is checked against a
// fresh recomputation and silently repaired when it drifted.
func (s *quizSessionServiceImpl) GetSummary(
	ctx context.Context,
	listID, userID uuid.UUID,
) (*domain.ListSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.recordStore.ListByListAndUser(ctx, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session records: %w", err)
	}

	computed := scoring.Recompute(listID, userID, records)

	stored, err := s.summaryStore.Get(ctx, listID, userID)
	if err != nil && !errors.Is(err, store.ErrListSummaryNotFound) {
		return nil, fmt.Errorf("failed to load list summary: %w", err)
	}

	// Nothing persisted at all: an unstarted (or empty) session reports
	// the all-zero summary without creating a row for it.
	if len(records) == 0 && stored == nil {
		return &computed, nil
	}

	if stored == nil || !computed.Equal(stored) {
		log.Warn("list summary drift detected, repairing",
			slog.String("list_id", listID.String()),
			slog.String("user_id", userID.String()))
		if err := s.summaryStore.Upsert(ctx, &computed); err != nil {
			// The recomputed value is still correct; surfacing it beats
			// failing the read over a repair write.
			log.Error("failed to repair list summary",
				slog.String("error", err.Error()),
				slog.String("list_id", listID.String()))
		}
	}

	return &computed, nil
}

// GetRecords implements QuizSessionService.GetRecords.
func (s *quizSessionServiceImpl) GetRecords(
	ctx context.Context,
	listID, userID uuid.UUID,
) ([]*domain.AnswerRecord, error) {
	records, err := s.recordStore.ListByListAndUser(ctx, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session records: %w", err)
	}
	return records, nil
}
