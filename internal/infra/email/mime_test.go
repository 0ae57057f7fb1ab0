package email

import (
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	domainemail "club_birthday_notifier/internal/domain/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEHeaders(t *testing.T) {
	raw, err := buildMIME("club@x.com", &domainemail.Message{
		To:      "ana@x.com",
		Subject: "¡Feliz Cumple Ana!",
		Text:    "hola",
		HTML:    "<p>hola</p>",
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, "club@x.com", parsed.Header.Get("From"))
	assert.Equal(t, "ana@x.com", parsed.Header.Get("To"))

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "¡Feliz Cumple Ana!", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)
	assert.NotEmpty(t, params["boundary"])
}

func TestBuildMIMEInlineAttachment(t *testing.T) {
	raw, err := buildMIME("club@x.com", &domainemail.Message{
		To:      "ana@x.com",
		Subject: "hola",
		Text:    "hola",
		HTML:    `<img src="cid:birthday-card"/>`,
		Attachments: []domainemail.Attachment{{
			Filename:    "card.png",
			ContentType: "image/png",
			ContentID:   "birthday-card",
			Content:     []byte("fake png"),
		}},
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	// Walk the alternative parts; the second must be multipart/related
	// carrying the HTML body plus the inline image.
	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var contentTypes []string
	var sawContentID bool
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		mediaType, partParams, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		require.NoError(t, err)
		contentTypes = append(contentTypes, mediaType)

		if mediaType == "multipart/related" {
			nested := multipart.NewReader(part, partParams["boundary"])
			for {
				inner, err := nested.NextPart()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				if inner.Header.Get("Content-ID") == "<birthday-card>" {
					sawContentID = true
				}
			}
		}
	}

	assert.Equal(t, []string{"text/plain", "multipart/related"}, contentTypes)
	assert.True(t, sawContentID, "inline image must carry the Content-ID the HTML references")
}
