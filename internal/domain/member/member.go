package member

import "time"

// Member represents one club contact as fetched from the contact provider.
// Members are read-only snapshots; they are re-fetched fresh on every run
// and never persisted locally.
type Member struct {
	// ID is the provider-assigned stable identifier (the People API
	// resourceName, e.g. "people/c123"). It is the dedup key for the
	// send ledger so that two members sharing a name do not collide.
	ID          string
	DisplayName string
	// Email is empty when the contact has no address on file. Such a
	// member cannot be notified and is reported as a failure on their
	// birthday.
	Email string
	// BirthMonth and BirthDay are 1-based; both are 0 when the contact
	// has no birthday on file, which excludes the member from matching.
	BirthMonth int
	BirthDay   int
	// BirthYear is optional and irrelevant for matching; 0 when unknown.
	BirthYear int
}

// HasBirthday reports whether the contact has a usable birthday on file.
func (m Member) HasBirthday() bool {
	return m.BirthMonth >= 1 && m.BirthMonth <= 12 && m.BirthDay >= 1 && m.BirthDay <= 31
}

// BirthdayOn reports whether the member's birthday falls on the given
// calendar date. Years are ignored: a birthday matches every year.
// A Feb 29 birthday matches only in leap years.
func (m Member) BirthdayOn(t time.Time) bool {
	if !m.HasBirthday() {
		return false
	}
	return int(t.Month()) == m.BirthMonth && t.Day() == m.BirthDay
}
