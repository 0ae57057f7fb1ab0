package email

import (
	"os"
	"path/filepath"
	"testing"

	"club_birthday_notifier/internal/domain/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeWithoutCardImage(t *testing.T) {
	composer := NewCardComposer("")

	msg, err := composer.Compose(member.Member{DisplayName: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "ana@x.com", msg.To)
	assert.Contains(t, msg.Subject, "Ana")
	assert.Contains(t, msg.Text, "Hola Ana")
	assert.Contains(t, msg.HTML, "Hola Ana")
	assert.NotContains(t, msg.HTML, "cid:", "no inline image without a configured card")
	assert.Empty(t, msg.Attachments)
}

func TestComposeWithCardImage(t *testing.T) {
	cardPath := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, os.WriteFile(cardPath, []byte("\x89PNG fake image bytes"), 0644))
	composer := NewCardComposer(cardPath)

	msg, err := composer.Compose(member.Member{DisplayName: "Bruno", Email: "bruno@x.com"})
	require.NoError(t, err)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "card.png", att.Filename)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Equal(t, cardContentID, att.ContentID)
	assert.NotEmpty(t, att.Content)
	assert.Contains(t, msg.HTML, "cid:"+cardContentID)
}

func TestComposeEscapesName(t *testing.T) {
	composer := NewCardComposer("")

	msg, err := composer.Compose(member.Member{DisplayName: "<script>x</script>", Email: "x@x.com"})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestComposeMissingCardImageFails(t *testing.T) {
	composer := NewCardComposer(filepath.Join(t.TempDir(), "nope.png"))

	_, err := composer.Compose(member.Member{DisplayName: "Ana", Email: "ana@x.com"})
	require.Error(t, err)
}
