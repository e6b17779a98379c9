// Package media uploads product images to a Cloudinary-compatible CDN using
// unsigned upload presets.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("media cdn is not configured")

type Config struct {
	BaseURL      string        `envconfig:"CDN_BASE_URL" default:"https://api.cloudinary.com/v1_1"`
	CloudName    string        `envconfig:"CDN_CLOUD_NAME"`
	UploadPreset string        `envconfig:"CDN_UPLOAD_PRESET"`
	Timeout      time.Duration `envconfig:"CDN_TIMEOUT" default:"30s"`
}

// Image is one file from the admin product form.
type Image struct {
	Filename string
	Body     io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

type CDNUploader struct {
	endpoint string
	preset   string
	client   *http.Client
}

func NewCDNUploader(cfg Config) *CDNUploader {
	u := &CDNUploader{
		preset: cfg.UploadPreset,
		client: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.CloudName != "" {
		u.endpoint = fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(cfg.BaseURL, "/"), cfg.CloudName)
	}
	return u
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts img and returns the stable https URL the CDN assigned to it.
func (u *CDNUploader) Upload(ctx context.Context, img Image) (string, error) {
	if u.endpoint == "" || u.preset == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", img.Filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, img.Body); err != nil {
		return "", fmt.Errorf("copy image: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("write preset: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", img.Filename, err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("upload %s: %s", img.Filename, msg)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload %s: empty secure_url", img.Filename)
	}
	return out.SecureURL, nil
}

var _ Uploader = (*CDNUploader)(nil)
