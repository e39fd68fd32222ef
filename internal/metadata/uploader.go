// Package metadata uploads token metadata to an off-chain storage service
// and returns the URI referenced by the on-chain metadata account.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/lugondev/go-launchpad/internal/common"
	"github.com/lugondev/go-launchpad/internal/config"
	"github.com/lugondev/go-launchpad/internal/errors"
)

// TokenMetadata is the off-chain metadata document for a launched token.
type TokenMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
	Website     string `json:"website,omitempty"`
}

// uploadResponse is the storage service's reply.
type uploadResponse struct {
	URI string `json:"uri"`
}

// Uploader posts metadata documents and images to the configured endpoint.
type Uploader struct {
	common.LoggerMixin

	endpoint string
	client   *http.Client
}

// NewUploader creates an uploader from config. Returns nil when no upload
// endpoint is configured; callers treat a nil uploader as "URI must be
// provided by hand".
func NewUploader(cfg *config.Config) *Uploader {
	if cfg.Metadata.UploadURL == "" {
		return nil
	}

	timeout := time.Duration(cfg.Metadata.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Uploader{
		LoggerMixin: common.NewLoggerMixin(),
		endpoint:    cfg.Metadata.UploadURL,
		client:      &http.Client{Timeout: timeout},
	}
}

// Upload posts the metadata document, with an optional image, as a
// multipart form and returns the URI the service assigned.
func (u *Uploader) Upload(ctx context.Context, meta TokenMetadata, image []byte, imageName string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	doc, err := json.Marshal(meta)
	if err != nil {
		return "", errors.MetadataUploadFailed(err)
	}
	if err := form.WriteField("metadata", string(doc)); err != nil {
		return "", errors.MetadataUploadFailed(err)
	}

	if len(image) > 0 {
		if imageName == "" {
			imageName = "token.png"
		}
		part, err := form.CreateFormFile("image", imageName)
		if err != nil {
			return "", errors.MetadataUploadFailed(err)
		}
		if _, err := part.Write(image); err != nil {
			return "", errors.MetadataUploadFailed(err)
		}
	}
	if err := form.Close(); err != nil {
		return "", errors.MetadataUploadFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", errors.MetadataUploadFailed(err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", errors.MetadataUploadFailed(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.MetadataUploadFailed(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.MetadataUploadFailed(fmt.Errorf("status %d: %s", resp.StatusCode, payload))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", errors.MetadataUploadFailed(fmt.Errorf("malformed response: %w", err))
	}
	if parsed.URI == "" {
		return "", errors.MetadataUploadFailed(fmt.Errorf("response missing uri"))
	}

	u.GetLogger().Info("metadata uploaded", "name", meta.Name, "uri", parsed.URI)
	return parsed.URI, nil
}
