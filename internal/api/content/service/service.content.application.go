package contentsvc

import (
	"context"
	"errors"
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
)

// ApplicationKeyField is the human-readable identifier of an application.
const ApplicationKeyField = "applicationId"

// Application errors
var (
	ErrResumeRequired = common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest, map[string]string{"resume": "required"})
	ErrJobPostClosed  = common.NewError(common.ErrCodeBusinessOperation, "Job post is not open for applications", common.StatusBadRequest, nil)
)

// OpenPosts finds an open job post by key.
type OpenPosts interface {
	FindActive(ctx context.Context, key string) (models.JobPost, error)
}

// ApplicationService manages the applications collection.
type ApplicationService struct {
	*basesvc.BaseServiceMongoImpl[models.Application]
	posts      OpenPosts
	allocators func(entity string) (sequence.Allocator, error)
	uploader   media.Uploader
}

// NewApplicationService creates the service over the registered applications collection.
func NewApplicationService(posts OpenPosts) (*ApplicationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Applications)
	if !exist {
		return nil, fmt.Errorf("failed to get applications collection: %w", common.ErrNotFound)
	}
	return &ApplicationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Application](collection),
		posts:                posts,
		allocators:           sequence.For,
		uploader:             media.Default(),
	}, nil
}

// ResolvePost returns the open post an application targets.
func ResolvePost(ctx context.Context, posts OpenPosts, key string) (models.JobPost, error) {
	post, err := posts.FindActive(ctx, strings.TrimSpace(key))
	if errors.Is(err, common.ErrNotFound) {
		return models.JobPost{}, ErrJobPostClosed
	}
	return post, err
}

// Create stores an application for an open job post. The resume is mandatory.
func (s *ApplicationService) Create(ctx context.Context, input *contentdto.ApplicationCreateInput, resume *multipart.FileHeader) (models.Application, error) {
	if resume == nil {
		return models.Application{}, ErrResumeRequired
	}
	post, err := ResolvePost(ctx, s.posts, input.JobPost)
	if err != nil {
		return models.Application{}, err
	}
	asset, err := media.UploadFile(ctx, s.uploader, resume, "applications", media.DocumentExtensions)
	if err != nil {
		return models.Application{}, err
	}

	app := models.Application{
		JobPost:      post.ID,
		JobTitle:     post.Title,
		Name:         strings.TrimSpace(input.Name),
		MobileNumber: strings.ReplaceAll(input.MobileNumber, " ", ""),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		CoverLetter:  strings.TrimSpace(input.CoverLetter),
		Resume:       &asset,
		Status:       models.ApplicationReceived,
	}
	alloc, err := s.allocators(sequence.EntityApplication)
	if err != nil {
		media.DestroyQuietly(s.uploader, app.Resume)
		return models.Application{}, err
	}
	created, err := sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.Application, error) {
		app.ApplicationID = id
		return s.InsertOne(ctx, app)
	})
	if err != nil {
		media.DestroyQuietly(s.uploader, app.Resume)
	}
	return created, err
}

// SetStatus changes the review status of the application matching key.
func (s *ApplicationService) SetStatus(ctx context.Context, key, status string) (models.Application, error) {
	return s.UpdateOne(ctx, basesvc.KeyFilter(ApplicationKeyField, key), &basesvc.UpdateData{Set: bson.M{"status": status}})
}

// Delete removes the application matching key and its resume.
func (s *ApplicationService) Delete(ctx context.Context, key string) (models.Application, error) {
	deleted, err := s.DeleteOne(ctx, basesvc.KeyFilter(ApplicationKeyField, key))
	if err == nil {
		media.DestroyQuietly(s.uploader, deleted.Resume)
	}
	return deleted, err
}
