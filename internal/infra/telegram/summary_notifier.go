package telegram

import (
	"club_birthday_notifier/internal/app"
	"club_birthday_notifier/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// SummaryNotifier sends the per-run counts to a club admin chat after
// each daily check. Delivery problems are logged, never escalated: the
// summary is a convenience, not part of the run's contract.
type SummaryNotifier struct {
	client      telegram.Client
	adminChatID int64
	log         logrus.FieldLogger
}

func NewSummaryNotifier(client telegram.Client, adminChatID int64, log logrus.FieldLogger) *SummaryNotifier {
	return &SummaryNotifier{client: client, adminChatID: adminChatID, log: log}
}

// Notify delivers the report summary to the admin chat.
func (n *SummaryNotifier) Notify(report *app.RunReport) {
	if err := n.client.SendMessage(n.adminChatID, report.Summary()); err != nil {
		n.log.WithError(err).Warn("Failed to deliver run summary to admin chat")
	}
}
