package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/store"
)

// answerRecordColumns is the column list shared by every SELECT so row
// scanning stays in one place.
const answerRecordColumns = `id, list_id, question_id, user_id, answered, correct,
	selected_choice_id, error_cause, studied, answered_at,
	category, subcategory, subject, difficulty, position, created_at, updated_at`

// PostgresAnswerRecordStore implements the store.AnswerRecordStore
// interface using a PostgreSQL database as the storage backend.
type PostgresAnswerRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerRecordStore creates a new PostgreSQL implementation of
// the AnswerRecordStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAnswerRecordStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerRecordStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_record_store")),
	}
}

// Ensure PostgresAnswerRecordStore implements store.AnswerRecordStore interface
var _ store.AnswerRecordStore = (*PostgresAnswerRecordStore)(nil)

// CreateBulk implements store.AnswerRecordStore.CreateBulk
// It inserts the whole record set for a new session in one statement.
// Returns store.ErrSessionExists if any (list, question, user) row exists.
func (s *PostgresAnswerRecordStore) CreateBulk(ctx context.Context, records []*domain.AnswerRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			log.Warn("answer record validation failed during bulk create",
				slog.String("error", err.Error()),
				slog.String("record_id", record.ID.String()))
			return err
		}
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		INSERT INTO answer_records (` + answerRecordColumns + `)
		VALUES `)
	for i, record := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 17
		sb.WriteString("(")
		for j := 1; j <= 17; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")
		args = append(args,
			record.ID,
			record.ListID,
			record.QuestionID,
			record.UserID,
			record.Answered,
			record.Correct,
			nullUUID(record.SelectedChoiceID),
			nullCause(record.ErrorCause),
			record.Studied,
			nullTime(record.AnsweredAt),
			record.Category,
			record.Subcategory,
			record.Subject,
			record.Difficulty,
			record.Position,
			record.CreatedAt,
			record.UpdatedAt,
		)
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		if IsUniqueViolation(err) {
			log.Warn("session already exists for list and user",
				slog.String("list_id", records[0].ListID.String()),
				slog.String("user_id", records[0].UserID.String()))
			return store.ErrSessionExists
		}

		log.Error("failed to bulk create answer records",
			slog.String("error", err.Error()),
			slog.String("list_id", records[0].ListID.String()),
			slog.Int("count", len(records)))
		return MapError(err)
	}

	log.Info("session records created",
		slog.String("list_id", records[0].ListID.String()),
		slog.String("user_id", records[0].UserID.String()),
		slog.Int("count", len(records)))
	return nil
}

// GetByID implements store.AnswerRecordStore.GetByID
// Returns store.ErrAnswerRecordNotFound if the record does not exist.
func (s *PostgresAnswerRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnswerRecord, error) {
	query := `SELECT ` + answerRecordColumns + ` FROM answer_records WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.AnswerRecordStore.GetByIDForUpdate
// It locks the row with SELECT FOR UPDATE; use only inside a transaction.
// Returns store.ErrAnswerRecordNotFound if the record does not exist.
func (s *PostgresAnswerRecordStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.AnswerRecord, error) {
	query := `SELECT ` + answerRecordColumns + ` FROM answer_records WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresAnswerRecordStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.AnswerRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, query, id)
	record, err := scanAnswerRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("answer record not found", slog.String("record_id", id.String()))
			return nil, store.ErrAnswerRecordNotFound
		}
		log.Error("failed to get answer record",
			slog.String("error", err.Error()),
			slog.String("record_id", id.String()))
		return nil, MapError(err)
	}

	return record, nil
}

// ListByListAndUser implements store.AnswerRecordStore.ListByListAndUser
// Records come back ordered by their list position, so navigators index
// the same question every time. An empty result is not an error.
func (s *PostgresAnswerRecordStore) ListByListAndUser(
	ctx context.Context,
	listID, userID uuid.UUID,
) ([]*domain.AnswerRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + answerRecordColumns + `
		FROM answer_records
		WHERE list_id = $1 AND user_id = $2
		ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, listID, userID)
	if err != nil {
		log.Error("failed to list answer records",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.AnswerRecord
	for rows.Next() {
		record, err := scanAnswerRecord(rows)
		if err != nil {
			log.Error("failed to scan answer record row",
				slog.String("error", err.Error()),
				slog.String("list_id", listID.String()))
			return nil, MapError(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// Update implements store.AnswerRecordStore.Update
// Returns store.ErrAnswerRecordNotFound if the record does not exist.
// Returns validation errors from the domain AnswerRecord if data is invalid.
func (s *PostgresAnswerRecordStore) Update(ctx context.Context, record *domain.AnswerRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("answer record validation failed during update",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return err
	}

	query := `
		UPDATE answer_records
		SET answered = $2, correct = $3, selected_choice_id = $4,
			error_cause = $5, studied = $6, answered_at = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.Answered,
		record.Correct,
		nullUUID(record.SelectedChoiceID),
		nullCause(record.ErrorCause),
		record.Studied,
		nullTime(record.AnsweredAt),
		record.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update answer record",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		log.Debug("answer record not found during update",
			slog.String("record_id", record.ID.String()))
		return store.ErrAnswerRecordNotFound
	}

	log.Debug("answer record updated",
		slog.String("record_id", record.ID.String()),
		slog.Bool("answered", record.Answered),
		slog.Bool("correct", record.Correct))
	return nil
}

// WithTx implements store.AnswerRecordStore.WithTx
func (s *PostgresAnswerRecordStore) WithTx(tx *sql.Tx) store.AnswerRecordStore {
	return &PostgresAnswerRecordStore{
		db:     tx,
		logger: s.logger,
	}
}
