// Package candidatesvc manages candidates and their resumes.
package candidatesvc

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	candidatedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// KeyField is the human-readable identifier of a candidate.
const KeyField = "candidateId"

// ResumeFolder is the media folder of resumes.
const ResumeFolder = "resumes"

// CandidateService manages the candidates collection.
type CandidateService struct {
	*basesvc.BaseServiceMongoImpl[models.Candidate]
	allocators func(entity string) (sequence.Allocator, error)
	uploader   media.Uploader
}

// NewCandidateService creates the service over the registered candidates collection.
func NewCandidateService() (*CandidateService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Candidates)
	if !exist {
		return nil, fmt.Errorf("failed to get candidates collection: %w", common.ErrNotFound)
	}
	return &CandidateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Candidate](collection),
		allocators:           sequence.For,
		uploader:             media.Default(),
	}, nil
}

// NewCandidate builds the candidate described by input.
func NewCandidate(input *candidatedto.CandidateCreateInput) models.Candidate {
	return models.Candidate{
		Name:         strings.TrimSpace(input.Name),
		MobileNumber: strings.ReplaceAll(input.MobileNumber, " ", ""),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Position:     strings.TrimSpace(input.Position),
		Experience:   strings.TrimSpace(input.Experience),
		City:         utility.String2ObjectID(input.City),
		Remarks:      input.Remarks,
		Status:       models.StatusNew,
	}
}

// Create uploads the resume (when given) and stores the candidate. The upload is removed
// again if the insert fails.
func (s *CandidateService) Create(ctx context.Context, input *candidatedto.CandidateCreateInput, resume *multipart.FileHeader) (models.Candidate, error) {
	candidate := NewCandidate(input)
	if resume != nil {
		asset, err := media.UploadFile(ctx, s.uploader, resume, ResumeFolder, media.DocumentExtensions)
		if err != nil {
			return models.Candidate{}, err
		}
		candidate.Resume = &asset
	}

	alloc, err := s.allocators(sequence.EntityCandidate)
	if err != nil {
		media.DestroyQuietly(s.uploader, candidate.Resume)
		return models.Candidate{}, err
	}
	created, err := sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.Candidate, error) {
		candidate.CandidateID = id
		return s.InsertOne(ctx, candidate)
	})
	if err != nil {
		media.DestroyQuietly(s.uploader, candidate.Resume)
	}
	return created, err
}

// UpdateSet collects the non-empty fields of input.
func UpdateSet(input *candidatedto.CandidateUpdateInput) bson.M {
	set := bson.M{}
	for _, f := range []struct{ field, value string }{
		{"name", strings.TrimSpace(input.Name)},
		{"mobileNumber", strings.ReplaceAll(input.MobileNumber, " ", "")},
		{"email", strings.ToLower(strings.TrimSpace(input.Email))},
		{"position", strings.TrimSpace(input.Position)},
		{"experience", strings.TrimSpace(input.Experience)},
		{"status", input.Status},
		{"remarks", input.Remarks},
	} {
		if f.value != "" {
			set[f.field] = f.value
		}
	}
	if id := utility.String2ObjectID(input.City); !id.IsZero() {
		set["city"] = id
	}
	return set
}

// Update applies input to the candidate matching key. A new resume replaces the old one,
// which is then removed from storage.
func (s *CandidateService) Update(ctx context.Context, key string, input *candidatedto.CandidateUpdateInput, resume *multipart.FileHeader) (models.Candidate, error) {
	filter := basesvc.KeyFilter(KeyField, key)
	current, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return models.Candidate{}, err
	}

	set := UpdateSet(input)
	if resume != nil {
		asset, err := media.UploadFile(ctx, s.uploader, resume, ResumeFolder, media.DocumentExtensions)
		if err != nil {
			return models.Candidate{}, err
		}
		set["resume"] = asset
	}
	if len(set) == 0 {
		return current, nil
	}

	updated, err := s.UpdateById(ctx, current.ID, &basesvc.UpdateData{Set: set})
	if err != nil {
		if a, ok := set["resume"].(media.Asset); ok {
			media.DestroyQuietly(s.uploader, &a)
		}
		return models.Candidate{}, err
	}
	if _, replaced := set["resume"]; replaced {
		media.DestroyQuietly(s.uploader, current.Resume)
	}
	return updated, nil
}

// Delete removes the candidate matching key and its resume.
func (s *CandidateService) Delete(ctx context.Context, key string) (models.Candidate, error) {
	deleted, err := s.DeleteOne(ctx, basesvc.KeyFilter(KeyField, key))
	if err != nil {
		return deleted, err
	}
	media.DestroyQuietly(s.uploader, deleted.Resume)
	return deleted, nil
}
