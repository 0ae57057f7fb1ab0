package contacts

import (
	"strings"

	"club_birthday_notifier/internal/domain/member"

	"google.golang.org/api/people/v1"
)

// matchGroupByName returns the resourceName of the first group whose
// name equals the wanted name, ignoring case and surrounding whitespace.
func matchGroupByName(groups []*people.ContactGroup, name string) string {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, g := range groups {
		if strings.ToLower(strings.TrimSpace(g.Name)) == want {
			return g.ResourceName
		}
	}
	return ""
}

// belongsToGroup reports whether the person is a member of the contact
// group with the given resourceName.
func belongsToGroup(p *people.Person, groupID string) bool {
	for _, m := range p.Memberships {
		if m.ContactGroupMembership != nil && m.ContactGroupMembership.ContactGroupResourceName == groupID {
			return true
		}
	}
	return false
}

// personToMember maps a People API person onto the domain Member.
// People without a display name are dropped (ok == false): there is no
// way to personalize a greeting for them. Missing email or birthday map
// to zero values; the notifier decides what to do with those.
func personToMember(p *people.Person) (member.Member, bool) {
	m := member.Member{ID: p.ResourceName}

	if len(p.Names) == 0 || p.Names[0].DisplayName == "" {
		return member.Member{}, false
	}
	m.DisplayName = p.Names[0].DisplayName

	if len(p.EmailAddresses) > 0 {
		m.Email = p.EmailAddresses[0].Value
	}

	if len(p.Birthdays) > 0 && p.Birthdays[0].Date != nil {
		d := p.Birthdays[0].Date
		m.BirthMonth = int(d.Month)
		m.BirthDay = int(d.Day)
		m.BirthYear = int(d.Year)
	}

	return m, true
}
