package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/store"
)

// PostgresListSummaryStore implements the store.ListSummaryStore
// interface using a PostgreSQL database as the storage backend.
type PostgresListSummaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListSummaryStore creates a new PostgreSQL implementation of
// the ListSummaryStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresListSummaryStore(db store.DBTX, logger *slog.Logger) *PostgresListSummaryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresListSummaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "list_summary_store")),
	}
}

// Ensure PostgresListSummaryStore implements store.ListSummaryStore interface
var _ store.ListSummaryStore = (*PostgresListSummaryStore)(nil)

// Get implements store.ListSummaryStore.Get
// Returns store.ErrListSummaryNotFound if no summary row exists.
func (s *PostgresListSummaryStore) Get(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT list_id, user_id, total_questions, answered_count,
			correct_count, incorrect_count, studied_percentage, finalized
		FROM list_summaries
		WHERE list_id = $1 AND user_id = $2
	`

	var summary domain.ListSummary
	err := s.db.QueryRowContext(ctx, query, listID, userID).Scan(
		&summary.ListID,
		&summary.UserID,
		&summary.TotalQuestions,
		&summary.AnsweredCount,
		&summary.CorrectCount,
		&summary.IncorrectCount,
		&summary.StudiedPercentage,
		&summary.Finalized,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("list summary not found",
				slog.String("list_id", listID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrListSummaryNotFound
		}
		log.Error("failed to get list summary",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, MapError(err)
	}

	return &summary, nil
}

// Upsert implements store.ListSummaryStore.Upsert
// The whole row is overwritten on conflict; a summary is never patched
// incrementally, only replaced by a fresh recomputation.
func (s *PostgresListSummaryStore) Upsert(ctx context.Context, summary *domain.ListSummary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := summary.Validate(); err != nil {
		log.Warn("list summary validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("list_id", summary.ListID.String()))
		return err
	}

	query := `
		INSERT INTO list_summaries (list_id, user_id, total_questions,
			answered_count, correct_count, incorrect_count,
			studied_percentage, finalized, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (list_id, user_id) DO UPDATE SET
			total_questions = EXCLUDED.total_questions,
			answered_count = EXCLUDED.answered_count,
			correct_count = EXCLUDED.correct_count,
			incorrect_count = EXCLUDED.incorrect_count,
			studied_percentage = EXCLUDED.studied_percentage,
			finalized = EXCLUDED.finalized,
			updated_at = now()
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		summary.ListID,
		summary.UserID,
		summary.TotalQuestions,
		summary.AnsweredCount,
		summary.CorrectCount,
		summary.IncorrectCount,
		summary.StudiedPercentage,
		summary.Finalized,
	)
	if err != nil {
		log.Error("failed to upsert list summary",
			slog.String("error", err.Error()),
			slog.String("list_id", summary.ListID.String()),
			slog.String("user_id", summary.UserID.String()))
		return MapError(err)
	}

	log.Debug("list summary upserted",
		slog.String("list_id", summary.ListID.String()),
		slog.Int("answered", summary.AnsweredCount),
		slog.Bool("finalized", summary.Finalized))
	return nil
}

// WithTx implements store.ListSummaryStore.WithTx
func (s *PostgresListSummaryStore) WithTx(tx *sql.Tx) store.ListSummaryStore {
	return &PostgresListSummaryStore{
		db:     tx,
		logger: s.logger,
	}
}
