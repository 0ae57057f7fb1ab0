package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBirthdayOnMatchesRegardlessOfYear(t *testing.T) {
	m := Member{ID: "people/1", DisplayName: "Ana", BirthMonth: 3, BirthDay: 15, BirthYear: 1990}

	assert.True(t, m.BirthdayOn(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))
	assert.True(t, m.BirthdayOn(time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.BirthdayOn(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.BirthdayOn(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)))
}

func TestBirthdayOnUnknownBirthYear(t *testing.T) {
	m := Member{BirthMonth: 6, BirthDay: 1} // year never provided

	assert.True(t, m.BirthdayOn(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBirthdayOnMissingBirthdayNeverMatches(t *testing.T) {
	m := Member{ID: "people/2", DisplayName: "Sin Cumple"}

	assert.False(t, m.HasBirthday())
	assert.False(t, m.BirthdayOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBirthdayOnLeapDay(t *testing.T) {
	m := Member{BirthMonth: 2, BirthDay: 29}

	assert.True(t, m.BirthdayOn(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	// Non-leap years have no Feb 29, so the birthday simply never matches.
	assert.False(t, m.BirthdayOn(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.BirthdayOn(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
}
