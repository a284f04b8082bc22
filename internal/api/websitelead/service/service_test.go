package websiteleadsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	websiteleaddto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/notification"
)

type recordingMailer struct{ sent []notification.Message }

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func syncNotify(m notification.Mailer, msg notification.Message) {
	_ = m.Send(context.Background(), msg)
}

func TestNewWebsiteLead(t *testing.T) {
	lead := NewWebsiteLead(&websiteleaddto.WebsiteLeadCreateInput{
		Name:         " Priya ",
		MobileNumber: "98300 00000",
		Email:        "Priya@Mail.com ",
		Service:      "SEO",
	})
	assert.Equal(t, "Priya", lead.Name)
	assert.Equal(t, "9830000000", lead.MobileNumber)
	assert.Equal(t, "priya@mail.com", lead.Email)
	assert.Equal(t, models.StatusNew, lead.Status)
}

func TestAlert(t *testing.T) {
	mailer := &recordingMailer{}
	s := &WebsiteLeadService{mailer: mailer, recipients: []string{"sales@example.com"}, notify: syncNotify}

	s.alert(models.WebsiteLead{WebsiteLeadID: "websiteLeadId0002", Name: "Priya", MobileNumber: "9830000000"})
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"sales@example.com"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "websiteLeadId0002")
}

func TestAlertWithoutRecipients(t *testing.T) {
	mailer := &recordingMailer{}
	s := &WebsiteLeadService{mailer: mailer, notify: syncNotify}
	s.alert(models.WebsiteLead{Name: "x"})
	assert.Empty(t, mailer.sent)
}
