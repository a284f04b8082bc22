package contentsvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// JobPostKeyField is the human-readable identifier of a job post.
const JobPostKeyField = "jobpostId"

// JobPostService manages the job posts collection.
type JobPostService struct {
	*basesvc.BaseServiceMongoImpl[models.JobPost]
	allocators func(entity string) (sequence.Allocator, error)
}

// NewJobPostService creates the service over the registered job posts collection.
func NewJobPostService() (*JobPostService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.JobPosts)
	if !exist {
		return nil, fmt.Errorf("failed to get job posts collection: %w", common.ErrNotFound)
	}
	return &JobPostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.JobPost](collection),
		allocators:           sequence.For,
	}, nil
}

// NewJobPost builds the job post described by input; posts are active by default.
func NewJobPost(input *contentdto.JobPostInput) models.JobPost {
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	return models.JobPost{
		Title:       strings.TrimSpace(input.Title),
		Location:    strings.TrimSpace(input.Location),
		Experience:  strings.TrimSpace(input.Experience),
		Salary:      strings.TrimSpace(input.Salary),
		Description: input.Description,
		Skills:      CleanList(input.Skills),
		Active:      active,
	}
}

// Create stores a job post.
func (s *JobPostService) Create(ctx context.Context, input *contentdto.JobPostInput) (models.JobPost, error) {
	post := NewJobPost(input)
	alloc, err := s.allocators(sequence.EntityJobPost)
	if err != nil {
		return models.JobPost{}, err
	}
	return sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.JobPost, error) {
		post.JobPostID = id
		return s.InsertOne(ctx, post)
	})
}

// JobPostUpdateSet collects the changes of input.
func JobPostUpdateSet(input *contentdto.JobPostUpdateInput) bson.M {
	set := setStrings(bson.M{},
		field{"title", input.Title},
		field{"location", input.Location},
		field{"experience", input.Experience},
		field{"salary", input.Salary},
	)
	if strings.TrimSpace(input.Description) != "" {
		set["description"] = input.Description
	}
	if input.Skills != nil {
		set["skills"] = CleanList(input.Skills)
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	return set
}

// Update applies input to the job post matching key.
func (s *JobPostService) Update(ctx context.Context, key string, input *contentdto.JobPostUpdateInput) (models.JobPost, error) {
	filter := basesvc.KeyFilter(JobPostKeyField, key)
	set := JobPostUpdateSet(input)
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}

// FindActive returns the open job post matching key.
func (s *JobPostService) FindActive(ctx context.Context, key string) (models.JobPost, error) {
	filter := basesvc.KeyFilter(JobPostKeyField, key)
	filter["active"] = true
	return s.FindOne(ctx, filter, nil)
}
