package postgres

import (
	"context"
	"database/sql"

	"docqa/internal/model"
	"docqa/internal/repository"
)

// AskEventPostgres is a PostgreSQL implementation of repository.AskEventRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AskEventPostgres struct {
	db *sql.DB
}

// NewAskEventPostgres creates a new AskEventPostgres repository.
func NewAskEventPostgres(db *sql.DB) *AskEventPostgres {
	return &AskEventPostgres{db: db}
}

var _ repository.AskEventRepository = (*AskEventPostgres)(nil)

// Record inserts a new ask_events row.
func (r *AskEventPostgres) Record(ctx context.Context, ev *model.AskEvent) error {
	const q = `
		INSERT INTO ask_events (id, doc_id, question_chars, answer_chars, outcome, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		ev.ID,
		ev.DocID,
		ev.QuestionChars,
		ev.AnswerChars,
		ev.Outcome,
		ev.LatencyMS,
		ev.CreatedAt,
	)
	return err
}

// CountByOutcome returns the number of recorded events per outcome.
func (r *AskEventPostgres) CountByOutcome(ctx context.Context) (map[string]int, error) {
	const q = `SELECT outcome, COUNT(*) FROM ask_events GROUP BY outcome`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
