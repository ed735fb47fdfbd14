package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Content represents an uploaded media item.
type Content struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Filename  string  `json:"filename"`
	SizeBytes int64   `json:"size_bytes"`
	SizeGB    float64 `json:"sizeGB"`
	MIMEType  string  `json:"mime_type"`
	Kind      string  `json:"kind"`
	CreatedAt string  `json:"created_at"`
}

// UploadResult is the response from a content upload.
type UploadResult struct {
	Content        Content         `json:"content"`
	StorageCleanup *StorageCleanup `json:"storageCleanup,omitempty"`
}

// StorageUsage is the detailed storage usage report for a tenant.
type StorageUsage struct {
	Storage struct {
		UsedBytes       int64   `json:"usedBytes"`
		UsedGB          float64 `json:"usedGB"`
		LimitGB         float64 `json:"limitGB"`
		AvailableGB     float64 `json:"availableGB"`
		UsagePercentage float64 `json:"usagePercentage"`
		IsOverLimit     bool    `json:"isOverLimit"`
	} `json:"storage"`
}

// StorageInfo is the compact storage summary for a tenant.
type StorageInfo struct {
	UsedStorage     float64 `json:"usedStorage"`
	StorageLimit    float64 `json:"storageLimit"`
	UsagePercentage float64 `json:"usagePercentage"`
}

// tenantQuery appends a tenant_id query parameter when tenantID is set.
// Tenant-scoped users omit it; platform users must name the tenant.
func tenantQuery(path, tenantID string) string {
	if tenantID == "" {
		return path
	}
	return path + "?tenant_id=" + url.QueryEscape(tenantID)
}

// ListContents returns the tenant's contents, oldest first.
func (c *Client) ListContents(tenantID string) ([]Content, error) {
	return listResources[Content](c, tenantQuery("/api/contents", tenantID))
}

// GetContent returns a content item by ID.
func (c *Client) GetContent(id string) (*Content, error) {
	return getResource[Content](c, resourcePath("/api/contents/%s", id))
}

// DeleteContent deletes a content item and its media blob.
func (c *Client) DeleteContent(id string) error {
	return deleteResource(c, resourcePath("/api/contents/%s", id))
}

// GetStorageUsage returns the tenant's detailed storage usage.
func (c *Client) GetStorageUsage(tenantID string) (*StorageUsage, error) {
	return getResource[StorageUsage](c, tenantQuery("/api/contents/storage-usage", tenantID))
}

// GetStorageInfo returns the tenant's compact storage summary.
func (c *Client) GetStorageInfo(tenantID string) (*StorageInfo, error) {
	return getResource[StorageInfo](c, tenantQuery("/api/contents/storage-info", tenantID))
}

// UploadContent uploads a media file for the tenant.
//
// A *QuotaExceededError is returned when the file cannot fit within the
// tenant's storage limit, even after oldest-first cleanup. On success the
// result may carry a StorageCleanup report describing files evicted to
// make room.
func (c *Client) UploadContent(tenantID, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+tenantQuery("/api/contents", tenantID), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// DownloadContent streams a content item's media payload.
// The caller must close the returned reader.
func (c *Client) DownloadContent(id string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+resourcePath("/api/contents/%s/download", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, decodeError(resp.StatusCode, body)
	}

	return resp.Body, nil
}
