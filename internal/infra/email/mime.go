package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"time"

	domainemail "club_birthday_notifier/internal/domain/email"
)

// buildMIME assembles the raw RFC 5322 message:
//
//	multipart/alternative
//	├── text/plain
//	└── multipart/related
//	    ├── text/html
//	    └── inline attachments (the card image, by Content-ID)
//
// the same layout the club's greetings have always used, so existing
// mail clients keep rendering the card inline.
func buildMIME(from string, msg *domainemail.Message) ([]byte, error) {
	var buf bytes.Buffer

	alternative := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", alternative.Boundary())

	if err := writeTextPart(alternative, "text/plain; charset=utf-8", []byte(msg.Text)); err != nil {
		return nil, err
	}

	if len(msg.Attachments) == 0 {
		if err := writeTextPart(alternative, "text/html; charset=utf-8", []byte(msg.HTML)); err != nil {
			return nil, err
		}
	} else {
		// The boundary has to appear in the part header before the
		// nested writer exists, so generate it up front.
		boundary := multipart.NewWriter(io.Discard).Boundary()
		relatedHeader := textproto.MIMEHeader{}
		relatedHeader.Set("Content-Type", fmt.Sprintf("multipart/related; boundary=%q", boundary))
		part, err := alternative.CreatePart(relatedHeader)
		if err != nil {
			return nil, fmt.Errorf("error creating related part: %w", err)
		}

		rw := multipart.NewWriter(part)
		if err := rw.SetBoundary(boundary); err != nil {
			return nil, fmt.Errorf("error setting related boundary: %w", err)
		}
		if err := writeTextPart(rw, "text/html; charset=utf-8", []byte(msg.HTML)); err != nil {
			return nil, err
		}
		for _, att := range msg.Attachments {
			if err := writeAttachment(rw, att); err != nil {
				return nil, err
			}
		}
		if err := rw.Close(); err != nil {
			return nil, fmt.Errorf("error closing related part: %w", err)
		}
	}

	if err := alternative.Close(); err != nil {
		return nil, fmt.Errorf("error closing message: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTextPart(w *multipart.Writer, contentType string, body []byte) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("error creating %s part: %w", contentType, err)
	}
	return writeBase64(part, body)
}

func writeAttachment(w *multipart.Writer, att domainemail.Attachment) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", att.ContentType)
	h.Set("Content-Transfer-Encoding", "base64")
	if att.ContentID != "" {
		h.Set("Content-ID", fmt.Sprintf("<%s>", att.ContentID))
		h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", att.Filename))
	} else {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("error creating attachment part: %w", err)
	}
	return writeBase64(part, att.Content)
}

// writeBase64 encodes body in 76-column base64 lines per RFC 2045.
func writeBase64(w io.Writer, body []byte) error {
	encoded := base64.StdEncoding.EncodeToString(body)
	for len(encoded) > 0 {
		n := 76
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return fmt.Errorf("error writing encoded body: %w", err)
		}
		encoded = encoded[n:]
	}
	return nil
}
