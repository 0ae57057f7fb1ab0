package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/people/v1"
)

const groupID = "contactGroups/abc123"

func membership(group string) *people.Membership {
	return &people.Membership{
		ContactGroupMembership: &people.ContactGroupMembership{ContactGroupResourceName: group},
	}
}

func TestMatchGroupByName(t *testing.T) {
	groups := []*people.ContactGroup{
		{ResourceName: "contactGroups/starred", Name: "Starred"},
		{ResourceName: groupID, Name: "  DIFUSION SOCIOS 2025 "},
	}

	assert.Equal(t, groupID, matchGroupByName(groups, "difusion socios 2025"))
	assert.Equal(t, groupID, matchGroupByName(groups, "DIFUSION SOCIOS 2025"))
	assert.Empty(t, matchGroupByName(groups, "socios 2024"))
}

func TestBelongsToGroup(t *testing.T) {
	p := &people.Person{Memberships: []*people.Membership{
		membership("contactGroups/other"),
		membership(groupID),
	}}

	assert.True(t, belongsToGroup(p, groupID))
	assert.False(t, belongsToGroup(p, "contactGroups/missing"))
	assert.False(t, belongsToGroup(&people.Person{}, groupID))
}

func TestPersonToMemberFullContact(t *testing.T) {
	p := &people.Person{
		ResourceName:   "people/c42",
		Names:          []*people.Name{{DisplayName: "Ana García"}},
		EmailAddresses: []*people.EmailAddress{{Value: "ana@x.com"}},
		Birthdays: []*people.Birthday{{
			Date: &people.Date{Year: 1990, Month: 3, Day: 15},
		}},
	}

	m, ok := personToMember(p)
	require.True(t, ok)
	assert.Equal(t, "people/c42", m.ID)
	assert.Equal(t, "Ana García", m.DisplayName)
	assert.Equal(t, "ana@x.com", m.Email)
	assert.Equal(t, 3, m.BirthMonth)
	assert.Equal(t, 15, m.BirthDay)
	assert.Equal(t, 1990, m.BirthYear)
}

func TestPersonToMemberPartialContact(t *testing.T) {
	// Birthday without a year, a common setting in Google Contacts.
	p := &people.Person{
		ResourceName: "people/c7",
		Names:        []*people.Name{{DisplayName: "Bruno"}},
		Birthdays:    []*people.Birthday{{Date: &people.Date{Month: 6, Day: 1}}},
	}

	m, ok := personToMember(p)
	require.True(t, ok)
	assert.Empty(t, m.Email)
	assert.Equal(t, 6, m.BirthMonth)
	assert.Equal(t, 1, m.BirthDay)
	assert.Zero(t, m.BirthYear)
	assert.True(t, m.HasBirthday())
}

func TestPersonToMemberDropsNameless(t *testing.T) {
	_, ok := personToMember(&people.Person{ResourceName: "people/c9"})
	assert.False(t, ok)

	// Free-form birthday text without a structured date maps to no birthday.
	p := &people.Person{
		ResourceName: "people/c10",
		Names:        []*people.Name{{DisplayName: "Clara"}},
		Birthdays:    []*people.Birthday{{Text: "sometime in June"}},
	}
	m, ok := personToMember(p)
	require.True(t, ok)
	assert.False(t, m.HasBirthday())
}
