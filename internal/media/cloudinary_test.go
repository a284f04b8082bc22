package media

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

func TestSign(t *testing.T) {
	// documented example of the signing scheme
	got := Sign(map[string]string{
		"eager":     "w_400,h_300,c_pad|w_260,h_200,c_crop",
		"public_id": "sample_image",
		"timestamp": "1315060510",
		"file":      "",
	}, "abcd")
	assert.Equal(t, "bfd09f95f331f558cbd1320e67aa8d488770583e", got)
}

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) *Cloudinary {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewCloudinary(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "crm", BaseURL: srv.URL})
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestUpload(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/auto/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		f, fh, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		body, _ := io.ReadAll(f)
		assert.Equal(t, "resume.pdf", fh.Filename)
		assert.Equal(t, "%PDF-1.4", string(body))

		assert.Equal(t, "crm/resumes", r.FormValue("folder"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "1700000000", r.FormValue("timestamp"))
		want := Sign(map[string]string{
			"folder":    r.FormValue("folder"),
			"public_id": r.FormValue("public_id"),
			"timestamp": r.FormValue("timestamp"),
		}, "secret")
		assert.Equal(t, want, r.FormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"crm/resumes/abc","secure_url":"https://cdn/abc.pdf","resource_type":"raw","bytes":8}`))
	})

	asset, err := c.Upload(context.Background(), strings.NewReader("%PDF-1.4"), "resume.pdf", "resumes")
	require.NoError(t, err)
	assert.Equal(t, Asset{PublicID: "crm/resumes/abc", URL: "https://cdn/abc.pdf", ResourceType: "raw", Bytes: 8}, asset)
}

func TestUploadError(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	})

	_, err := c.Upload(context.Background(), strings.NewReader("x"), "a.png", "blogs")
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadGateway, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "Invalid Signature")
}

func TestDestroy(t *testing.T) {
	var path string
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "crm/blogs/x", r.FormValue("public_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"not found"}`))
	})

	require.NoError(t, c.Destroy(context.Background(), Asset{PublicID: "crm/blogs/x", ResourceType: "raw"}))
	assert.Equal(t, "/demo/raw/destroy", path)
	require.NoError(t, c.Destroy(context.Background(), Asset{}))
}

func TestUnconfigured(t *testing.T) {
	_, err := unconfigured{}.Upload(context.Background(), strings.NewReader(""), "a", "b")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.True(t, (*Asset)(nil).IsZero())
}

func TestCheckFile(t *testing.T) {
	allowed := []string{".pdf", ".docx"}
	assert.NoError(t, CheckFile(&multipart.FileHeader{Filename: "cv.PDF", Size: 1024}, allowed))

	err := CheckFile(&multipart.FileHeader{Filename: "cv.exe", Size: 1024}, allowed)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"cv.exe": "allowed types: .pdf, .docx"}, appErr.Details)

	err = CheckFile(&multipart.FileHeader{Filename: "cv.pdf", Size: MaxUploadSize + 1}, allowed)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"cv.pdf": "file exceeds 10.0 MB"}, appErr.Details)
}
