package contentsvc

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// BlogKeyField is the human-readable identifier of a blog.
const BlogKeyField = "blogId"

// BlogService manages the blogs collection.
type BlogService struct {
	*basesvc.BaseServiceMongoImpl[models.Blog]
	allocators func(entity string) (sequence.Allocator, error)
	uploader   media.Uploader
	now        func() time.Time
}

// NewBlogService creates the service over the registered blogs collection.
func NewBlogService() (*BlogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Blogs)
	if !exist {
		return nil, fmt.Errorf("failed to get blogs collection: %w", common.ErrNotFound)
	}
	return &BlogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Blog](collection),
		allocators:           sequence.For,
		uploader:             media.Default(),
		now:                  time.Now,
	}, nil
}

// PublishedFilter selects the blogs visible on the website.
func PublishedFilter() bson.M {
	return bson.M{"published": true}
}

// NewBlog builds the blog described by input. The slug defaults to the slugified title.
func NewBlog(input *contentdto.BlogCreateInput, author primitive.ObjectID, now time.Time) models.Blog {
	slug := Slugify(input.Slug)
	if slug == "" {
		slug = Slugify(input.Title)
	}
	b := models.Blog{
		Title:     strings.TrimSpace(input.Title),
		Slug:      slug,
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Content:   input.Content,
		Tags:      CleanList(input.Tags),
		Published: input.Published,
		Author:    author,
	}
	if b.Published {
		b.PublishedAt = &now
	}
	return b
}

// Create stores a blog with its optional cover image. A slug already in use gets the blog
// id appended.
func (s *BlogService) Create(ctx context.Context, input *contentdto.BlogCreateInput, image *multipart.FileHeader, author primitive.ObjectID) (models.Blog, error) {
	blog := NewBlog(input, author, s.now())
	taken, err := s.DocumentExists(ctx, bson.M{"slug": blog.Slug})
	if err != nil {
		return models.Blog{}, err
	}
	if image != nil {
		asset, err := media.UploadFile(ctx, s.uploader, image, "blogs", media.ImageExtensions)
		if err != nil {
			return models.Blog{}, err
		}
		blog.Image = &asset
	}

	alloc, err := s.allocators(sequence.EntityBlog)
	if err != nil {
		media.DestroyQuietly(s.uploader, blog.Image)
		return models.Blog{}, err
	}
	base := blog.Slug
	created, err := sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.Blog, error) {
		blog.BlogID = id
		if taken {
			blog.Slug = base + "-" + strings.ToLower(id)
		}
		return s.InsertOne(ctx, blog)
	})
	if err != nil {
		media.DestroyQuietly(s.uploader, blog.Image)
	}
	return created, err
}

// BlogUpdateSet collects the changes of input. Publishing stamps publishedAt.
func BlogUpdateSet(input *contentdto.BlogUpdateInput, now time.Time) bson.M {
	set := setStrings(bson.M{},
		field{"title", input.Title},
		field{"excerpt", input.Excerpt},
	)
	if slug := Slugify(input.Slug); slug != "" {
		set["slug"] = slug
	}
	if strings.TrimSpace(input.Content) != "" {
		set["content"] = input.Content
	}
	if input.Tags != nil {
		set["tags"] = CleanList(input.Tags)
	}
	if input.Published != nil {
		set["published"] = *input.Published
		if *input.Published {
			set["publishedAt"] = now
		}
	}
	return set
}

// Update applies input to the blog matching key; a new image replaces the old one.
func (s *BlogService) Update(ctx context.Context, key string, input *contentdto.BlogUpdateInput, image *multipart.FileHeader) (models.Blog, error) {
	current, err := s.FindByKey(ctx, BlogKeyField, key)
	if err != nil {
		return models.Blog{}, err
	}
	set := BlogUpdateSet(input, s.now())
	if image != nil {
		asset, err := media.UploadFile(ctx, s.uploader, image, "blogs", media.ImageExtensions)
		if err != nil {
			return models.Blog{}, err
		}
		set["image"] = asset
	}
	if len(set) == 0 {
		return current, nil
	}
	updated, err := s.UpdateById(ctx, current.ID, &basesvc.UpdateData{Set: set})
	if a, ok := set["image"].(media.Asset); ok {
		if err != nil {
			media.DestroyQuietly(s.uploader, &a)
		} else {
			media.DestroyQuietly(s.uploader, current.Image)
		}
	}
	return updated, err
}

// FindPublished returns the published blog with slug.
func (s *BlogService) FindPublished(ctx context.Context, slug string) (models.Blog, error) {
	return s.FindOne(ctx, bson.M{"slug": slug, "published": true}, nil)
}

// Delete removes the blog matching key and its image.
func (s *BlogService) Delete(ctx context.Context, key string) (models.Blog, error) {
	deleted, err := s.DeleteOne(ctx, basesvc.KeyFilter(BlogKeyField, key))
	if err == nil {
		media.DestroyQuietly(s.uploader, deleted.Image)
	}
	return deleted, err
}
