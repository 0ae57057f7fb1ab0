package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateRecord indicates an append for a (MemberID, SentDate) pair
// that already has a ledger row.
var ErrDuplicateRecord = errors.New("duplicate send record for member and date")

// Repository defines the operations for persisting and querying send
// records. The storage format is the implementation's business: a flat
// CSV file and a Postgres table both satisfy this contract.
type Repository interface {
	// ListSentOn returns all records whose SentDate equals the given
	// calendar date. An empty slice (not an error) means nothing was
	// sent that day.
	ListSentOn(ctx context.Context, date time.Time) ([]*Record, error)

	// Append persists a new record. Returns ErrDuplicateRecord when a
	// row for the same member and date already exists.
	Append(ctx context.Context, rec *Record) error
}
