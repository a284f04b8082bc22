// Package websiteleadsvc stores website enquiries and alerts the sales team.
package websiteleadsvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	websiteleaddto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/notification"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// KeyField is the human-readable identifier of a website lead.
const KeyField = "websiteLeadId"

// WebsiteLeadService manages the website leads collection.
type WebsiteLeadService struct {
	*basesvc.BaseServiceMongoImpl[models.WebsiteLead]
	allocators func(entity string) (sequence.Allocator, error)
	mailer     notification.Mailer
	recipients []string
	// notify delivers alerts; notification.SendAsync outside tests.
	notify func(m notification.Mailer, msg notification.Message)
}

// NewWebsiteLeadService creates the service over the registered collection.
func NewWebsiteLeadService() (*WebsiteLeadService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebsiteLeads)
	if !exist {
		return nil, fmt.Errorf("failed to get website leads collection: %w", common.ErrNotFound)
	}
	var recipients []string
	if global.MongoDB_ServerConfig != nil {
		recipients = global.MongoDB_ServerConfig.LeadRecipients()
	}
	return &WebsiteLeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.WebsiteLead](collection),
		allocators:           sequence.For,
		mailer:               notification.DefaultMailer(),
		recipients:           recipients,
		notify:               notification.SendAsync,
	}, nil
}

// NewWebsiteLead builds the lead described by input.
func NewWebsiteLead(input *websiteleaddto.WebsiteLeadCreateInput) models.WebsiteLead {
	return models.WebsiteLead{
		Name:         strings.TrimSpace(input.Name),
		MobileNumber: strings.ReplaceAll(input.MobileNumber, " ", ""),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Service:      strings.TrimSpace(input.Service),
		Message:      strings.TrimSpace(input.Message),
		Page:         input.Page,
		Status:       models.StatusNew,
	}
}

// Create stores an enquiry and alerts the configured recipients. The alert never fails
// the request.
func (s *WebsiteLeadService) Create(ctx context.Context, input *websiteleaddto.WebsiteLeadCreateInput) (models.WebsiteLead, error) {
	lead := NewWebsiteLead(input)
	alloc, err := s.allocators(sequence.EntityWebsiteLead)
	if err != nil {
		return models.WebsiteLead{}, err
	}
	created, err := sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.WebsiteLead, error) {
		lead.WebsiteLeadID = id
		return s.InsertOne(ctx, lead)
	})
	if err != nil {
		return created, err
	}
	s.alert(created)
	return created, nil
}

func (s *WebsiteLeadService) alert(lead models.WebsiteLead) {
	if len(s.recipients) == 0 || s.mailer == nil {
		return
	}
	msg, err := notification.RenderLeadAlert(notification.LeadAlert{
		ID:           lead.WebsiteLeadID,
		Name:         lead.Name,
		MobileNumber: lead.MobileNumber,
		Email:        lead.Email,
		Service:      lead.Service,
		Message:      lead.Message,
	}, s.recipients)
	if err != nil {
		logger.WithModule("websitelead").WithError(err).Warn("failed to render lead alert")
		return
	}
	s.notify(s.mailer, msg)
}

// Update changes the status or notes of the lead matching key.
func (s *WebsiteLeadService) Update(ctx context.Context, key string, input *websiteleaddto.WebsiteLeadUpdateInput) (models.WebsiteLead, error) {
	filter := basesvc.KeyFilter(KeyField, key)
	set := bson.M{}
	if input.Status != "" {
		set["status"] = input.Status
	}
	if input.Notes != "" {
		set["notes"] = input.Notes
	}
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}
