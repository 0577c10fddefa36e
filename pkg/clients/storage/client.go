// Package storage wraps the external object-store HTTP API that holds
// payment slips and delivery challans.
package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhconstruction/backoffice/internal/config"
)

// MaxUploadBytes caps accepted payment-slip and challan files.
const MaxUploadBytes = 5 << 20

// Client exposes the object-store operations used by the application.
type Client interface {
	Upload(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context) ([]StoredObject, error)
}

// UploadResult identifies a stored object on the owning record.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// StoredObject is one object as returned by the store's listing API.
type StoredObject struct {
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
}

// APIClient is a resty-backed implementation of Client speaking the
// Cloudinary-style upload/admin API.
type APIClient struct {
	httpClient *resty.Client
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
}

// NewClient builds a storage client using the provided configuration values.
func NewClient(cfg config.StorageConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.CloudName)).
		SetTimeout(30 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		folder:     cfg.Folder,
	}
}

// apiError represents an error payload from the store.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign produces the request signature: the sha1 of the sorted form
// parameters concatenated with the API secret.
func (c *APIClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// Upload stores a file and returns its URL and public identifier.
func (c *APIClient) Upload(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error) {
	params := map[string]string{
		"folder":    c.folder,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}

	result := new(UploadResult)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", fileName, file).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.apiKey,
			"signature": c.sign(params),
		}).
		SetResult(result).
		SetError(apiErr).
		Post("/auto/upload")
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fileName, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("storage api error: code=%d, message=%s", resp.StatusCode(), apiErr.Error.Message)
	}

	return result, nil
}

// Delete removes a stored object by its public identifier.
func (c *APIClient) Delete(ctx context.Context, publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}

	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.apiKey,
			"signature": c.sign(params),
		}).
		SetError(apiErr).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("delete %s: %w", publicID, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("storage api error: code=%d, message=%s", resp.StatusCode(), apiErr.Error.Message)
	}

	return nil
}

// listResponse mirrors the admin listing payload.
type listResponse struct {
	Resources []StoredObject `json:"resources"`
}

// List returns the objects under the configured folder.
func (c *APIClient) List(ctx context.Context) ([]StoredObject, error) {
	result := new(listResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(c.apiKey, c.apiSecret).
		SetQueryParam("prefix", c.folder+"/").
		SetQueryParam("max_results", "500").
		SetResult(result).
		SetError(apiErr).
		Get("/resources/image")
	if err != nil {
		return nil, fmt.Errorf("list stored objects: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("storage api error: code=%d, message=%s", resp.StatusCode(), apiErr.Error.Message)
	}

	return result.Resources, nil
}
