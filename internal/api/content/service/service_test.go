package contentsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

type postsStub struct {
	post models.JobPost
	err  error
	key  string
}

func (p *postsStub) FindActive(_ context.Context, key string) (models.JobPost, error) {
	p.key = key
	return p.post, p.err
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":             "hello-world",
		"  10 Tips -- for SEO!! ": "10-tips-for-seo",
		"Already-a-slug":          "already-a-slug",
		"¿Qué?":                   "qu",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"seo", "web"}, CleanList([]string{" seo", "", "web", "seo ", "  "}))
	assert.Nil(t, CleanList(nil))
}

func TestNewBlog(t *testing.T) {
	author := primitive.NewObjectID()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	draft := NewBlog(&contentdto.BlogCreateInput{Title: " Local SEO Basics ", Content: "body", Tags: []string{"seo", "seo"}}, author, now)
	assert.Equal(t, "Local SEO Basics", draft.Title)
	assert.Equal(t, "local-seo-basics", draft.Slug)
	assert.Equal(t, []string{"seo"}, draft.Tags)
	assert.Equal(t, author, draft.Author)
	assert.False(t, draft.Published)
	assert.Nil(t, draft.PublishedAt)

	live := NewBlog(&contentdto.BlogCreateInput{Title: "x", Slug: "Custom Slug", Content: "body", Published: true}, author, now)
	assert.Equal(t, "custom-slug", live.Slug)
	require.NotNil(t, live.PublishedAt)
	assert.Equal(t, now, *live.PublishedAt)
}

func TestBlogUpdateSet(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, bson.M{}, BlogUpdateSet(&contentdto.BlogUpdateInput{Title: "  "}, now))

	on, off := true, false
	assert.Equal(t, bson.M{"title": "New", "slug": "new-slug", "published": true, "publishedAt": now},
		BlogUpdateSet(&contentdto.BlogUpdateInput{Title: " New", Slug: "New Slug", Published: &on}, now))
	assert.Equal(t, bson.M{"published": false, "tags": []string(nil)},
		BlogUpdateSet(&contentdto.BlogUpdateInput{Published: &off, Tags: []string{}}, now))
}

func TestNewJobPost(t *testing.T) {
	post := NewJobPost(&contentdto.JobPostInput{Title: " Go Developer ", Description: "d", Skills: []string{"go", " mongo ", "go"}})
	assert.Equal(t, "Go Developer", post.Title)
	assert.Equal(t, []string{"go", "mongo"}, post.Skills)
	assert.True(t, post.Active)

	off := false
	assert.False(t, NewJobPost(&contentdto.JobPostInput{Title: "x", Description: "d", Active: &off}).Active)
}

func TestJobPostUpdateSet(t *testing.T) {
	off := false
	assert.Equal(t, bson.M{"location": "Kolkata", "active": false},
		JobPostUpdateSet(&contentdto.JobPostUpdateInput{Location: " Kolkata ", Active: &off}))
	assert.Equal(t, bson.M{}, JobPostUpdateSet(&contentdto.JobPostUpdateInput{}))
}

func TestResolvePost(t *testing.T) {
	open := models.JobPost{ID: primitive.NewObjectID(), Title: "Telecaller"}
	p := &postsStub{post: open}
	got, err := ResolvePost(context.Background(), p, " jobpostId0001 ")
	require.NoError(t, err)
	assert.Equal(t, open, got)
	assert.Equal(t, "jobpostId0001", p.key)

	p.err = common.ErrNotFound
	_, err = ResolvePost(context.Background(), p, "jobpostId0002")
	assert.ErrorIs(t, err, ErrJobPostClosed)

	boom := errors.New("down")
	p.err = boom
	_, err = ResolvePost(context.Background(), p, "jobpostId0002")
	assert.ErrorIs(t, err, boom)
}

func TestApplicationRequiresResume(t *testing.T) {
	s := &ApplicationService{}
	_, err := s.Create(context.Background(), &contentdto.ApplicationCreateInput{JobPost: "jobpostId0001"}, nil)
	assert.ErrorIs(t, err, ErrResumeRequired)
}

func TestWhatsAppUpdateSet(t *testing.T) {
	cat := primitive.NewObjectID()
	on := true
	assert.Equal(t, bson.M{"title": "Offer", "message": "Hi {{name}} ", "category": cat, "active": true},
		WhatsAppUpdateSet(&contentdto.WhatsAppTemplateUpdateInput{Title: "Offer ", Message: "Hi {{name}} ", Category: cat.Hex(), Active: &on}))
	assert.Equal(t, bson.M{}, WhatsAppUpdateSet(&contentdto.WhatsAppTemplateUpdateInput{Category: "bad"}))
}
