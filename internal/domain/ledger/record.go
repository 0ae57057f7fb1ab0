package ledger

import "time"

// Status marks the outcome recorded for a ledger entry. Only successful
// sends are written, so in practice every row carries StatusSent; the
// column exists so the log stays extensible (the CSV file doubles as a
// human-readable audit trail).
type Status string

const (
	StatusSent Status = "SENT"
)

// Record is one append-only ledger entry: member X was notified on date Y.
// At most one Record exists per (MemberID, SentDate) pair; that pair is
// the at-most-once-per-day guarantee.
type Record struct {
	ID       int64 // assigned by the Postgres backend; 0 for the CSV file
	MemberID string
	// Name and Email are denormalized for human inspection of the log;
	// dedup keys off MemberID only.
	Name      string
	Email     string
	SentDate  time.Time // calendar date, time-of-day zeroed
	Status    Status
	CreatedAt time.Time
}

// DateOnly truncates t to its calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
