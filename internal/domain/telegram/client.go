package telegram

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot
// library; the run-summary notifier only ever needs plain text sends.
type Client interface {
	SendMessage(recipientChatID int64, text string) error
}
