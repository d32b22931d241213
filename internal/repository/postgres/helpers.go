package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/messaging"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit transaction", err)
	}
	return nil
}

// findOrCreateConversationTx resolves the conversation for an unordered
// participant pair, creating it on first use. The upsert returns the id in
// both the insert and the already-exists case.
func findOrCreateConversationTx(ctx context.Context, q querier, a, b common.UUID, jobID *common.UUID) (common.UUID, error) {
	a, b = messaging.NormalizePair(a, b)
	now := time.Now().UTC()
	row := q.QueryRowContext(ctx, `INSERT INTO conversations (id, participant_a, participant_b, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (participant_a, participant_b) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id`, common.NewUUID(), a, b, jobID, now)
	var id common.UUID
	if err := row.Scan(&id); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to resolve conversation", err)
	}
	return id, nil
}

func insertMessageTx(ctx context.Context, q querier, conversationID, senderID common.UUID, body string) error {
	now := time.Now().UTC()
	if _, err := q.ExecContext(ctx, `INSERT INTO messages (id, conversation_id, sender_id, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)`, common.NewUUID(), conversationID, senderID, body, now); err != nil {
		return common.NewError(common.CodeInternal, "failed to insert message", err)
	}
	if _, err := q.ExecContext(ctx, `UPDATE conversations SET updated_at = $1 WHERE id = $2`, now, conversationID); err != nil {
		return common.NewError(common.CodeInternal, "failed to touch conversation", err)
	}
	return nil
}
