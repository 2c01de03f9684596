package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend. The catalog is
// read-only from the engine's point of view, so only queries exist here.
//
// Choices are stored as a JSONB document on the question row; they are
// only ever read as a unit alongside their question.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// GetByID implements store.QuestionStore.GetByID
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, correct_choice_id, annulled, category, subcategory,
			subject, difficulty, global_accuracy, choices
		FROM questions
		WHERE id = $1
	`

	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.String("question_id", id.String()))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return nil, MapError(err)
	}

	return question, nil
}

// ListByListID implements store.QuestionStore.ListByListID
// Questions come back in list position order.
func (s *PostgresQuestionStore) ListByListID(ctx context.Context, listID uuid.UUID) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT q.id, q.correct_choice_id, q.annulled, q.category,
			q.subcategory, q.subject, q.difficulty, q.global_accuracy, q.choices
		FROM questions q
		JOIN list_questions lq ON lq.question_id = q.id
		WHERE lq.list_id = $1
		ORDER BY lq.position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, listID)
	if err != nil {
		log.Error("failed to list questions",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*domain.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row",
				slog.String("error", err.Error()),
				slog.String("list_id", listID.String()))
			return nil, MapError(err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return questions, nil
}

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanQuestion scans one questions row, decoding the JSONB choices
// document.
func scanQuestion(row rowScanner) (*domain.Question, error) {
	var (
		question      domain.Question
		correctChoice uuid.NullUUID
		choicesJSON   []byte
	)

	err := row.Scan(
		&question.ID,
		&correctChoice,
		&question.Annulled,
		&question.Category,
		&question.Subcategory,
		&question.Subject,
		&question.Difficulty,
		&question.GlobalAccuracy,
		&choicesJSON,
	)
	if err != nil {
		return nil, err
	}

	if correctChoice.Valid {
		question.CorrectChoiceID = correctChoice.UUID
	}

	if len(choicesJSON) > 0 {
		if err := json.Unmarshal(choicesJSON, &question.Choices); err != nil {
			return nil, fmt.Errorf("%w: malformed choices document: %v", store.ErrInvalidEntity, err)
		}
	}

	return &question, nil
}
