package contentsvc

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// WhatsAppKeyField is the human-readable identifier of a WhatsApp template.
const WhatsAppKeyField = "whatsappId"

// WhatsAppService manages the WhatsApp templates collection.
type WhatsAppService struct {
	*basesvc.BaseServiceMongoImpl[models.WhatsAppTemplate]
	allocators func(entity string) (sequence.Allocator, error)
	uploader   media.Uploader
}

// NewWhatsAppService creates the service over the registered collection.
func NewWhatsAppService() (*WhatsAppService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WhatsAppTemplates)
	if !exist {
		return nil, fmt.Errorf("failed to get whatsapp templates collection: %w", common.ErrNotFound)
	}
	return &WhatsAppService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.WhatsAppTemplate](collection),
		allocators:           sequence.For,
		uploader:             media.Default(),
	}, nil
}

// Create stores a template with its optional media file.
func (s *WhatsAppService) Create(ctx context.Context, input *contentdto.WhatsAppTemplateInput, file *multipart.FileHeader) (models.WhatsAppTemplate, error) {
	tpl := models.WhatsAppTemplate{
		Title:    strings.TrimSpace(input.Title),
		Message:  input.Message,
		Category: utility.String2ObjectID(input.Category),
		Active:   input.Active == nil || *input.Active,
	}
	if file != nil {
		asset, err := media.UploadFile(ctx, s.uploader, file, "whatsapp", media.AssetExtensions)
		if err != nil {
			return models.WhatsAppTemplate{}, err
		}
		tpl.Media = &asset
	}
	alloc, err := s.allocators(sequence.EntityWhatsApp)
	if err != nil {
		media.DestroyQuietly(s.uploader, tpl.Media)
		return models.WhatsAppTemplate{}, err
	}
	created, err := sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.WhatsAppTemplate, error) {
		tpl.WhatsAppID = id
		return s.InsertOne(ctx, tpl)
	})
	if err != nil {
		media.DestroyQuietly(s.uploader, tpl.Media)
	}
	return created, err
}

// WhatsAppUpdateSet collects the changes of input.
func WhatsAppUpdateSet(input *contentdto.WhatsAppTemplateUpdateInput) bson.M {
	set := setStrings(bson.M{}, field{"title", input.Title})
	if strings.TrimSpace(input.Message) != "" {
		set["message"] = input.Message
	}
	if id := utility.String2ObjectID(input.Category); !id.IsZero() {
		set["category"] = id
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	return set
}

// Update applies input to the template matching key; new media replaces the old file.
func (s *WhatsAppService) Update(ctx context.Context, key string, input *contentdto.WhatsAppTemplateUpdateInput, file *multipart.FileHeader) (models.WhatsAppTemplate, error) {
	current, err := s.FindByKey(ctx, WhatsAppKeyField, key)
	if err != nil {
		return models.WhatsAppTemplate{}, err
	}
	set := WhatsAppUpdateSet(input)
	if file != nil {
		asset, err := media.UploadFile(ctx, s.uploader, file, "whatsapp", media.AssetExtensions)
		if err != nil {
			return models.WhatsAppTemplate{}, err
		}
		set["media"] = asset
	}
	if len(set) == 0 {
		return current, nil
	}
	updated, err := s.UpdateById(ctx, current.ID, &basesvc.UpdateData{Set: set})
	if a, ok := set["media"].(media.Asset); ok {
		if err != nil {
			media.DestroyQuietly(s.uploader, &a)
		} else {
			media.DestroyQuietly(s.uploader, current.Media)
		}
	}
	return updated, err
}

// Delete removes the template matching key and its media.
func (s *WhatsAppService) Delete(ctx context.Context, key string) (models.WhatsAppTemplate, error) {
	deleted, err := s.DeleteOne(ctx, basesvc.KeyFilter(WhatsAppKeyField, key))
	if err == nil {
		media.DestroyQuietly(s.uploader, deleted.Media)
	}
	return deleted, err
}
