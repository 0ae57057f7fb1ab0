package contacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"club_birthday_notifier/internal/domain/member"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

const connectionsPageSize = 1000

// personFields requested from the People API; everything else the
// provider knows about a contact is ignored.
const personFields = "names,birthdays,emailAddresses,memberships"

// GoogleSource implements member.Source on top of the Google People API.
// The club roster is a contact group resolved by name (with an optional
// fallback resourceName for when the group gets renamed).
type GoogleSource struct {
	svc             *people.Service
	groupName       string
	fallbackGroupID string
	log             logrus.FieldLogger
}

// NewGoogleSource builds an authenticated People API client from an
// installed-app credentials file and a cached token file.
func NewGoogleSource(ctx context.Context, credentialsPath, tokenPath, groupName, fallbackGroupID string, log logrus.FieldLogger) (*GoogleSource, error) {
	creds, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(creds, people.ContactsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		// No cached token yet: run the one-time console consent flow and
		// persist the result for subsequent scheduled runs.
		tok, err = tokenFromConsent(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	client := oauthCfg.Client(ctx, tok)
	svc, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &GoogleSource{
		svc:             svc,
		groupName:       groupName,
		fallbackGroupID: fallbackGroupID,
		log:             log,
	}, nil
}

// ListGroupMembers fetches all connections of the authenticated account
// and returns those belonging to the configured contact group.
func (s *GoogleSource) ListGroupMembers(ctx context.Context) ([]member.Member, error) {
	groupID, err := s.resolveGroupID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", member.ErrSourceUnavailable, err)
	}
	s.log.WithField("group", groupID).Debug("Resolved contact group")

	var members []member.Member
	call := s.svc.People.Connections.List("people/me").
		PageSize(connectionsPageSize).
		PersonFields(personFields)
	err = call.Pages(ctx, func(resp *people.ListConnectionsResponse) error {
		for _, p := range resp.Connections {
			if !belongsToGroup(p, groupID) {
				continue
			}
			m, ok := personToMember(p)
			if !ok {
				continue
			}
			members = append(members, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing connections: %v", member.ErrSourceUnavailable, err)
	}

	s.log.WithField("members", len(members)).Debug("Fetched group members from Google Contacts")
	return members, nil
}

// resolveGroupID finds the contact group's resourceName by
// case-insensitive name match, falling back to the configured
// resourceName when the lookup comes up empty.
func (s *GoogleSource) resolveGroupID(ctx context.Context) (string, error) {
	resp, err := s.svc.ContactGroups.List().PageSize(100).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing contact groups: %w", err)
	}
	if id := matchGroupByName(resp.ContactGroups, s.groupName); id != "" {
		return id, nil
	}
	if s.fallbackGroupID != "" {
		s.log.WithFields(logrus.Fields{"group_name": s.groupName, "fallback": s.fallbackGroupID}).
			Warn("Contact group not found by name, using fallback resourceName")
		return s.fallbackGroupID, nil
	}
	return "", fmt.Errorf("contact group %q not found and no fallback configured", s.groupName)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	return tok, nil
}

// tokenFromConsent walks the operator through the offline-access consent
// flow on the console. Scheduled runs never hit this path once the token
// file exists; the refresh token keeps the cached credentials valid.
func tokenFromConsent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
