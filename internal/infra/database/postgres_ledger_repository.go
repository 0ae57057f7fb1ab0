package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"club_birthday_notifier/internal/domain/ledger"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Schema:
//
//	CREATE TABLE birthday_send_log (
//	    id         BIGSERIAL PRIMARY KEY,
//	    member_id  TEXT NOT NULL,
//	    name       TEXT NOT NULL,
//	    email      TEXT NOT NULL,
//	    sent_date  DATE NOT NULL,
//	    status     TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    CONSTRAINT birthday_send_log_member_date_unique UNIQUE (member_id, sent_date)
//	);
//
// The unique constraint enforces at-most-one row per member per day at
// the storage level, backing up the in-core exclusion check.

type PostgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

func (r *PostgresLedgerRepository) ListSentOn(ctx context.Context, date time.Time) ([]*ledger.Record, error) {
	query := `SELECT id, member_id, name, email, sent_date, status, created_at
               FROM birthday_send_log WHERE sent_date = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ledger.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("error listing send records: %w", err)
	}
	defer rows.Close()

	records := make([]*ledger.Record, 0)
	for rows.Next() {
		rec := &ledger.Record{}
		if err := rows.Scan(&rec.ID, &rec.MemberID, &rec.Name, &rec.Email, &rec.SentDate, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning send record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating send records: %w", err)
	}
	return records, nil
}

func (r *PostgresLedgerRepository) Append(ctx context.Context, rec *ledger.Record) error {
	query := `INSERT INTO birthday_send_log (member_id, name, email, sent_date, status)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, rec.MemberID, rec.Name, rec.Email, ledger.DateOnly(rec.SentDate), rec.Status).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "birthday_send_log_member_date_unique") {
			return ledger.ErrDuplicateRecord
		}
		return fmt.Errorf("error appending send record: %w", err)
	}
	return nil
}
