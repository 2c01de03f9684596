package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAnswerRecord scans one answer_records row in answerRecordColumns
// order, translating SQL NULLs back into the domain's zero-value
// "absent" encodings.
func scanAnswerRecord(row rowScanner) (*domain.AnswerRecord, error) {
	var (
		record   domain.AnswerRecord
		selected uuid.NullUUID
		cause    sql.NullString
		answered sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.ListID,
		&record.QuestionID,
		&record.UserID,
		&record.Answered,
		&record.Correct,
		&selected,
		&cause,
		&record.Studied,
		&answered,
		&record.Category,
		&record.Subcategory,
		&record.Subject,
		&record.Difficulty,
		&record.Position,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if selected.Valid {
		record.SelectedChoiceID = selected.UUID
	}
	if cause.Valid {
		record.ErrorCause = domain.ErrorCause(cause.String)
	}
	if answered.Valid {
		record.AnsweredAt = answered.Time
	}

	return &record, nil
}

// nullUUID converts the domain's uuid.Nil "absent" encoding to SQL NULL.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// nullCause converts the domain's empty-string "absent" cause to SQL NULL.
func nullCause(cause domain.ErrorCause) sql.NullString {
	return sql.NullString{String: string(cause), Valid: cause != domain.ErrorCauseNone}
}

// nullTime converts a zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
