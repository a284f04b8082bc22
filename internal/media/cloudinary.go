// Package media uploads files (images, resumes, WhatsApp assets) to Cloudinary and removes
// them again.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// DefaultBaseURL is the Cloudinary upload API.
const DefaultBaseURL = "https://api.cloudinary.com/v1_1"

// MaxUploadSize caps a single upload.
const MaxUploadSize = 10 << 20

// Extension sets accepted per upload kind
var (
	ImageExtensions    = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg"}
	DocumentExtensions = []string{".pdf", ".doc", ".docx"}
	AssetExtensions    = append(append([]string{".mp4", ".mp3", ".ogg"}, ImageExtensions...), DocumentExtensions...)
)

// ErrNotConfigured is returned when no Cloudinary credentials are set.
var ErrNotConfigured = common.NewError(common.ErrCodeUpstream, "Media storage is not configured", common.StatusServiceUnavailable, nil)

// Asset is an uploaded file as stored on the owning document.
type Asset struct {
	PublicID     string `json:"publicId" bson:"publicId"`
	URL          string `json:"url" bson:"url"`
	ResourceType string `json:"resourceType" bson:"resourceType"`
	Format       string `json:"format,omitempty" bson:"format,omitempty"`
	Bytes        int64  `json:"bytes,omitempty" bson:"bytes,omitempty"`
}

// IsZero reports whether no file is attached.
func (a *Asset) IsZero() bool {
	return a == nil || a.PublicID == ""
}

// Uploader stores and removes files.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (Asset, error)
	Destroy(ctx context.Context, asset Asset) error
}

// Config holds the Cloudinary credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
}

// Cloudinary implements Uploader with signed requests.
type Cloudinary struct {
	client *resty.Client
	cfg    Config
	now    func() time.Time
}

type uploadResult struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
	Bytes        int64  `json:"bytes"`
}

type destroyResult struct {
	Result string `json:"result"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewCloudinary creates a client for cfg.
func NewCloudinary(cfg Config) *Cloudinary {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"+cfg.CloudName).
		SetTimeout(60*time.Second).
		SetHeader("Accept", "application/json")
	return &Cloudinary{client: client, cfg: cfg, now: time.Now}
}

var (
	defaultOnce     sync.Once
	defaultUploader Uploader
)

// Default returns the uploader configured from the environment.
func Default() Uploader {
	defaultOnce.Do(func() {
		cfg := global.MongoDB_ServerConfig
		if cfg == nil || cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			defaultUploader = unconfigured{}
			return
		}
		defaultUploader = NewCloudinary(Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		})
	})
	return defaultUploader
}

type unconfigured struct{}

func (unconfigured) Upload(context.Context, io.Reader, string, string) (Asset, error) {
	return Asset{}, ErrNotConfigured
}

func (unconfigured) Destroy(context.Context, Asset) error { return ErrNotConfigured }

// Sign returns the request signature: the SHA-1 of the non-empty params sorted by name,
// joined as k=v with &, followed by secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func (c *Cloudinary) signed(params map[string]string) map[string]string {
	params["timestamp"] = strconv.FormatInt(c.now().Unix(), 10)
	params["signature"] = Sign(params, c.cfg.APISecret)
	params["api_key"] = c.cfg.APIKey
	return params
}

func upstreamError(op string, resp *resty.Response, e *apiError) error {
	msg := e.Error.Message
	if msg == "" {
		msg = resp.Status()
	}
	return common.NewError(common.ErrCodeUpstream, fmt.Sprintf("Media %s failed: %s", op, msg), common.StatusBadGateway, nil)
}

// Upload stores r under folder (below the configured root folder) with a random public id.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename, folder string) (Asset, error) {
	params := map[string]string{
		"folder":    strings.Trim(c.cfg.Folder+"/"+folder, "/"),
		"public_id": uuid.NewString(),
	}
	var result uploadResult
	var failure apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		SetFormData(c.signed(params)).
		SetResult(&result).
		SetError(&failure).
		Post("/auto/upload")
	if err != nil {
		return Asset{}, fmt.Errorf("media upload: %w", err)
	}
	if resp.IsError() {
		return Asset{}, upstreamError("upload", resp, &failure)
	}
	logger.WithModule("media").WithField("public_id", result.PublicID).Debug("uploaded")
	return Asset{
		PublicID:     result.PublicID,
		URL:          result.SecureURL,
		ResourceType: result.ResourceType,
		Format:       result.Format,
		Bytes:        result.Bytes,
	}, nil
}

// Destroy removes asset. A missing remote file is not an error.
func (c *Cloudinary) Destroy(ctx context.Context, asset Asset) error {
	if asset.PublicID == "" {
		return nil
	}
	resourceType := asset.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}
	var result destroyResult
	var failure apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signed(map[string]string{"public_id": asset.PublicID})).
		SetResult(&result).
		SetError(&failure).
		Post("/" + resourceType + "/destroy")
	if err != nil {
		return fmt.Errorf("media destroy: %w", err)
	}
	if resp.IsError() {
		return upstreamError("destroy", resp, &failure)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return common.NewError(common.ErrCodeUpstream, "Media destroy failed: "+result.Result, common.StatusBadGateway, nil)
	}
	return nil
}

// ====================================
// FORM UPLOADS
// ====================================

// CheckFile validates the size and extension of an uploaded form file.
func CheckFile(fh *multipart.FileHeader, allowed []string) error {
	if fh.Size > MaxUploadSize {
		return common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest,
			map[string]string{fh.Filename: "file exceeds " + utility.FormatBytes(MaxUploadSize)})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest,
		map[string]string{fh.Filename: "allowed types: " + strings.Join(allowed, ", ")})
}

// UploadFile checks and uploads a form file.
func UploadFile(ctx context.Context, u Uploader, fh *multipart.FileHeader, folder string, allowed []string) (Asset, error) {
	if err := CheckFile(fh, allowed); err != nil {
		return Asset{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Asset{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return u.Upload(ctx, f, fh.Filename, folder)
}

// DestroyQuietly removes asset in the background, logging failures.
func DestroyQuietly(u Uploader, asset *Asset) {
	if asset.IsZero() {
		return
	}
	a := *asset
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := u.Destroy(ctx, a); err != nil && !errors.Is(err, ErrNotConfigured) {
			logger.WithModule("media").WithError(err).WithField("public_id", a.PublicID).Warn("failed to destroy asset")
		}
	}()
}
