package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// ListSummaryStore defines the interface for list summary persistence.
//
// Summaries are derived data: they are only ever written with the output
// of a full recomputation over the session's answer records, so Upsert is
// the single write operation.
type ListSummaryStore interface {
	// Get retrieves the summary for one (list, user) session.
	// Returns ErrListSummaryNotFound if no summary row exists.
	Get(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error)

	// Upsert writes the recomputed summary, inserting or overwriting the
	// existing row for the same (list, user). Overwriting is safe because
	// recomputation is idempotent over the full record set.
	// Returns validation errors from the domain ListSummary if data is invalid.
	Upsert(ctx context.Context, summary *domain.ListSummary) error

	// WithTx returns a new ListSummaryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ListSummaryStore
}
