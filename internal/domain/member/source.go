package member

import (
	"context"
	"errors"
)

// ErrSourceUnavailable indicates the contact provider could not be
// reached or refused authentication. Errors wrapping it abort the whole
// run: without a complete member list the notifier cannot distinguish
// "no birthdays today" from "missing data".
var ErrSourceUnavailable = errors.New("contact source unavailable")

// Source lists the members of the configured contact group.
// Implementations hide the provider's data model; the notifier only sees
// Member values.
type Source interface {
	ListGroupMembers(ctx context.Context) ([]Member, error)
}
