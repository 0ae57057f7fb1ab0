package app

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"club_birthday_notifier/internal/domain/email"
	"club_birthday_notifier/internal/domain/ledger"
	"club_birthday_notifier/internal/domain/member"

	"github.com/sirupsen/logrus"
)

// FailureReason classifies a per-member failure. Per-member failures
// never abort the batch; they only show up in the run report.
type FailureReason string

const (
	// ReasonMissingContactInfo: the member has no email address on file
	// (or a malformed one). No send is attempted, no ledger row written.
	ReasonMissingContactInfo FailureReason = "missing-contact-info"
	// ReasonDeliveryError: the send itself failed. No ledger row is
	// written, so a re-run on the same day attempts the send again.
	ReasonDeliveryError FailureReason = "delivery-error"
	// ReasonLedgerWriteError: the email went out but the ledger append
	// failed. Reported so the operator knows a same-day re-run would
	// double-send this member.
	ReasonLedgerWriteError FailureReason = "ledger-write-error"
)

// Failure pairs a member with the reason their notification failed.
type Failure struct {
	Member member.Member
	Reason FailureReason
	Err    error
}

// RunReport summarizes one daily check.
type RunReport struct {
	Date    time.Time
	Sent    []member.Member
	Skipped []member.Member
	Failed  []Failure
}

// Composer builds the personalized greeting for a member. Body
// construction (templates, the card image) is entirely the composer's
// business; the service only supplies the member.
type Composer interface {
	Compose(m member.Member) (*email.Message, error)
}

// BirthdayService runs the daily birthday check: find members whose
// birthday is today, skip the ones already notified today, send a
// greeting to the rest and record each successful send in the ledger.
//
// Correctness is reconstructed each run purely from the ledger's
// persisted contents; the service holds no cross-run state.
type BirthdayService struct {
	source   member.Source
	ledger   ledger.Repository
	sender   email.Sender
	composer Composer
	log      logrus.FieldLogger
}

func NewBirthdayService(
	source member.Source,
	repo ledger.Repository,
	sender email.Sender,
	composer Composer,
	log logrus.FieldLogger,
) *BirthdayService {
	return &BirthdayService{
		source:   source,
		ledger:   repo,
		sender:   sender,
		composer: composer,
		log:      log,
	}
}

// RunDailyCheck executes one batch pass for the given calendar date.
//
// It returns an error only when the shared setup phase fails (member
// list unavailable, ledger unreadable); partial data there would risk
// missed or duplicate notifications, so nothing is processed. Per-member
// problems are reported in the RunReport and never escalate.
//
// Running twice with the same date sends at most one notification per
// member: the second run sees the ledger rows written by the first.
func (s *BirthdayService) RunDailyCheck(ctx context.Context, today time.Time) (*RunReport, error) {
	date := ledger.DateOnly(today)
	s.log.WithField("date", date.Format("2006-01-02")).Info("Starting daily birthday check")

	members, err := s.source.ListGroupMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	s.log.WithField("members", len(members)).Debug("Fetched contact group members")

	prior, err := s.ledger.ListSentOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read send ledger for %s: %w", date.Format("2006-01-02"), err)
	}
	alreadySent := make(map[string]bool, len(prior))
	for _, rec := range prior {
		alreadySent[rec.MemberID] = true
	}

	report := &RunReport{Date: date}
	for _, m := range members {
		switch {
		case !m.BirthdayOn(date):
			report.Skipped = append(report.Skipped, m)
		case alreadySent[m.ID]:
			s.log.WithFields(logrus.Fields{"member": m.DisplayName, "id": m.ID}).
				Info("Already notified today, skipping")
			report.Skipped = append(report.Skipped, m)
		default:
			s.notify(ctx, m, date, report)
		}
	}

	s.log.WithFields(logrus.Fields{
		"sent":    len(report.Sent),
		"skipped": len(report.Skipped),
		"failed":  len(report.Failed),
	}).Info("Daily birthday check finished")
	return report, nil
}

// notify handles one birthday member: validate the address, send the
// greeting, record the send. Outcomes land in the report.
func (s *BirthdayService) notify(ctx context.Context, m member.Member, date time.Time, report *RunReport) {
	log := s.log.WithFields(logrus.Fields{"member": m.DisplayName, "id": m.ID})

	if _, err := mail.ParseAddress(m.Email); m.Email == "" || err != nil {
		log.Warn("Birthday member has no usable email address")
		report.Failed = append(report.Failed, Failure{Member: m, Reason: ReasonMissingContactInfo, Err: err})
		return
	}

	msg, err := s.composer.Compose(m)
	if err != nil {
		log.WithError(err).Error("Failed to compose greeting")
		report.Failed = append(report.Failed, Failure{Member: m, Reason: ReasonDeliveryError, Err: err})
		return
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to deliver greeting")
		report.Failed = append(report.Failed, Failure{Member: m, Reason: ReasonDeliveryError, Err: err})
		return
	}

	rec := &ledger.Record{
		MemberID: m.ID,
		Name:     m.DisplayName,
		Email:    m.Email,
		SentDate: date,
		Status:   ledger.StatusSent,
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		// The greeting did go out; without the ledger row a same-day
		// re-run would send it again.
		log.WithError(err).Error("Greeting delivered but ledger append failed")
		report.Failed = append(report.Failed, Failure{Member: m, Reason: ReasonLedgerWriteError, Err: err})
		return
	}

	log.WithField("email", m.Email).Info("Birthday greeting sent")
	report.Sent = append(report.Sent, m)
}

// Summary renders the per-run counts in a single line, suitable for logs
// and the optional Telegram admin message.
func (r *RunReport) Summary() string {
	out := fmt.Sprintf("Birthday check for %s: %d sent, %d skipped, %d failed",
		r.Date.Format("2006-01-02"), len(r.Sent), len(r.Skipped), len(r.Failed))
	for _, f := range r.Failed {
		out += fmt.Sprintf("\n- %s: %s", f.Member.DisplayName, f.Reason)
	}
	return out
}
