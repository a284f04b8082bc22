package notification

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLeadAlert(t *testing.T) {
	msg, err := RenderLeadAlert(LeadAlert{
		ID:           "websiteLeadId0007",
		Name:         "Anita <script>",
		MobileNumber: "9830000000",
		Service:      "Web Development",
	}, []string{"sales@example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"sales@example.com"}, msg.To)
	assert.Equal(t, "New website lead: Anita <script>", msg.Subject)
	assert.Contains(t, msg.HTML, "websiteLeadId0007")
	assert.Contains(t, msg.HTML, "Web Development")
	assert.Contains(t, msg.HTML, "Anita &lt;script&gt;")
	assert.NotContains(t, msg.HTML, "<b>Email</b>")
}

func TestSMTPMailerBuild(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "crm@example.com"})
	gm := m.Build(Message{To: []string{"a@example.com", "b@example.com"}, Subject: "Hi", HTML: "<p>x</p>"})

	assert.Equal(t, []string{"crm@example.com"}, gm.GetHeader("From"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gm.GetHeader("To"))

	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "text/html"))
}

func TestSMTPMailerSkipsEmptyRecipients(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "unreachable.invalid", Port: 25})
	assert.NoError(t, m.Send(context.Background(), Message{Subject: "nobody"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: []string{"a@example.com"}}), context.Canceled)
}
