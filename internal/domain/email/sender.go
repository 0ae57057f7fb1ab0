package email

import "context"

// Sender delivers a prepared email message. Implementations wrap a
// concrete provider (SMTP, Resend) so the application logic never
// depends on the provider's client shape.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Message is a fully-prepared email ready for delivery.
type Message struct {
	To      string
	Subject string
	// Text is the plain-text body; HTML is the alternative rich body.
	Text        string
	HTML        string
	Attachments []Attachment
}

// Attachment is a file attached to a message. When ContentID is set the
// attachment is inline and referenced from the HTML body as
// "cid:<ContentID>".
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string
	Content     []byte
}
