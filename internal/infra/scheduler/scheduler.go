package scheduler

import (
	"context"
	"time"

	"club_birthday_notifier/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds one daily check. Club membership is at most a few
// hundred contacts, so a run finishing anywhere near this limit is stuck.
const jobTimeout = 10 * time.Minute

// SummarySink receives the report of each completed run (e.g. the
// Telegram admin summary). A nil sink disables reporting.
type SummarySink interface {
	Notify(report *app.RunReport)
}

// BirthdayScheduler runs the daily birthday check on an in-process cron
// schedule, for deployments without an external scheduler.
type BirthdayScheduler struct {
	cronEngine    *cron.Cron
	service       *app.BirthdayService
	summary       SummarySink
	log           logrus.FieldLogger
	cronSpecDaily string
}

func NewBirthdayScheduler(
	service *app.BirthdayService,
	summary SummarySink,
	log logrus.FieldLogger,
	cronSpecDaily string, // e.g. "0 9 * * *" (9:00 AM daily)
) *BirthdayScheduler {
	return &BirthdayScheduler{
		cronEngine:    cron.New(cron.WithLocation(time.Local)), // birthdays are local calendar dates
		service:       service,
		summary:       summary,
		log:           log,
		cronSpecDaily: cronSpecDaily,
	}
}

func (s *BirthdayScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		s.log.Info("Cron job triggered for daily birthday check")
		s.runOnce()
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.log.WithField("spec", s.cronSpecDaily).Info("Birthday scheduler started")
	return nil
}

func (s *BirthdayScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.service.RunDailyCheck(ctx, time.Now())
	if err != nil {
		// An abort here is logged and retried by tomorrow's trigger; the
		// daily cadence is the retry loop.
		s.log.WithError(err).Error("Daily birthday check aborted")
		return
	}
	s.log.Info(report.Summary())
	if s.summary != nil {
		s.summary.Notify(report)
	}
}

func (s *BirthdayScheduler) Stop() {
	s.log.Info("Stopping birthday scheduler...")
	ctx := s.cronEngine.Stop() // waits for a running job to finish
	<-ctx.Done()
	s.log.Info("Birthday scheduler gracefully stopped")
}
