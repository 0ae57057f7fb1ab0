package ledgerfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"club_birthday_notifier/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

var header = []string{"member_id", "name", "email", "date", "status"}

// CSVLedger is an append-only send log backed by a flat CSV file, the
// format the club has kept its sent_birthdays log in. A missing file
// means an empty ledger; the header row is written on first append.
//
// The file is shared state between runs but not within one: the notifier
// is single-threaded and runs do not overlap, so no locking is needed.
type CSVLedger struct {
	path string
}

func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

func (l *CSVLedger) ListSentOn(ctx context.Context, date time.Time) ([]*ledger.Record, error) {
	records, err := l.readAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*ledger.Record, 0)
	for _, rec := range records {
		if ledger.SameDate(rec.SentDate, date) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (l *CSVLedger) Append(ctx context.Context, rec *ledger.Record) error {
	existing, err := l.readAll()
	if err != nil {
		return err
	}
	for _, prior := range existing {
		if prior.MemberID == rec.MemberID && ledger.SameDate(prior.SentDate, rec.SentDate) {
			return ledger.ErrDuplicateRecord
		}
	}

	isNew := len(existing) == 0
	if _, err := os.Stat(l.path); err == nil {
		isNew = false
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("error writing ledger header: %w", err)
		}
	}
	row := []string{rec.MemberID, rec.Name, rec.Email, ledger.DateOnly(rec.SentDate).Format(dateLayout), string(rec.Status)}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("error writing ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing ledger file: %w", err)
	}

	rec.CreatedAt = time.Now()
	return nil
}

// readAll loads every row of the ledger file. A missing file is an empty
// ledger, not an error; any other read problem aborts the run.
func (l *CSVLedger) readAll() ([]*ledger.Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	records := make([]*ledger.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue // header row
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("malformed ledger row %d: expected 5 fields, got %d", i+1, len(row))
		}
		sentDate, err := time.Parse(dateLayout, row[3])
		if err != nil {
			return nil, fmt.Errorf("malformed date in ledger row %d: %w", i+1, err)
		}
		records = append(records, &ledger.Record{
			MemberID: row[0],
			Name:     row[1],
			Email:    row[2],
			SentDate: sentDate,
			Status:   ledger.Status(row[4]),
		})
	}
	return records, nil
}
