package email

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"os"
	"path/filepath"

	domainemail "club_birthday_notifier/internal/domain/email"
	"club_birthday_notifier/internal/domain/member"
)

// cardContentID references the inline card image from the HTML body.
const cardContentID = "birthday-card"

const textBody = `Hola %s 👋


🎂 ¡El Club Discóbolo te desea un muy feliz cumpleaños!

Que tengas un gran día lleno de alegría y buenos momentos 🎾🎈

¡Te esperamos para celebrarlo en el club!

Saludos,
Club Discóbolo
`

var htmlBody = template.Must(template.New("card").Parse(`<html>
    <body style="font-family: Arial, sans-serif; color: #333;">
        <p>Hola {{.Name}} 👋🎉</p>
        <br>
        <p>¡El <strong>Club Discóbolo</strong> te desea un muy feliz cumpleaños!🎂</p>
{{- if .HasCard}}
        <div style="text-align: center; margin: 25px 0;">
            <img src="cid:{{.CardCID}}" alt="Feliz cumple" style="width:65%; max-width:360px; border-radius:16px;"/>
        </div>
{{- end}}
        <p>¡Te esperamos para celebrarlo en el club! 🎾🥳</p>
        <br>
        <p>Saludos,</p>
        <p style="font-size: 0.9em; color: #888;">Club de Deportes Discóbolo</p>
    </body>
</html>
`))

// CardComposer renders the personalized birthday greeting: plain text,
// an HTML alternative and, when a card image is configured, the card
// attached inline.
type CardComposer struct {
	cardImagePath string // empty disables the inline image
}

func NewCardComposer(cardImagePath string) *CardComposer {
	return &CardComposer{cardImagePath: cardImagePath}
}

// Compose builds the greeting for one member.
func (c *CardComposer) Compose(m member.Member) (*domainemail.Message, error) {
	msg := &domainemail.Message{
		To:      m.Email,
		Subject: fmt.Sprintf("🎉 ¡Feliz Cumple %s!", m.DisplayName),
		Text:    fmt.Sprintf(textBody, m.DisplayName),
	}

	if c.cardImagePath != "" {
		card, err := c.loadCard()
		if err != nil {
			return nil, err
		}
		msg.Attachments = []domainemail.Attachment{card}
	}

	var buf bytes.Buffer
	data := struct {
		Name    string
		HasCard bool
		CardCID string
	}{Name: m.DisplayName, HasCard: len(msg.Attachments) > 0, CardCID: cardContentID}
	if err := htmlBody.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("error rendering greeting body: %w", err)
	}
	msg.HTML = buf.String()

	return msg, nil
}

func (c *CardComposer) loadCard() (domainemail.Attachment, error) {
	content, err := os.ReadFile(c.cardImagePath)
	if err != nil {
		return domainemail.Attachment{}, fmt.Errorf("error reading card image: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(c.cardImagePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return domainemail.Attachment{
		Filename:    filepath.Base(c.cardImagePath),
		ContentType: contentType,
		ContentID:   cardContentID,
		Content:     content,
	}, nil
}
