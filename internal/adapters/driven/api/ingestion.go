package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure IngestionClient implements the interface.
var _ driven.IngestionAPI = (*IngestionClient)(nil)

// IngestionClient transfers regulatory documents to the backend's
// ingestion endpoints.
type IngestionClient struct {
	client *Client
}

// NewIngestionClient creates an ingestion adapter over the shared
// backend client.
func NewIngestionClient(client *Client) *IngestionClient {
	return &IngestionClient{client: client}
}

// uploadResponse is the /api/ingestion/upload response format: one result
// entry per submitted file.
type uploadResponse struct {
	Results []struct {
		Filename string `json:"filename"`
		Status   string `json:"status"`
		Chunks   int    `json:"chunks"`
		Message  string `json:"message"`
	} `json:"results"`
}

// Upload submits one local file as a multipart request tagged with the
// scope's territorial fields and level.
func (c *IngestionClient) Upload(ctx context.Context, token, path string, scope domain.Scope) (domain.IngestReceipt, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("read %s: %w", path, err)
	}

	fields := map[string]string{
		"normative_level": string(scope.Level),
		"region":          scope.Region,
		"province":        scope.Province,
		"municipality":    scope.Municipality,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return domain.IngestReceipt{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("build upload form: %w", err)
	}

	req, err := c.client.newRequest(ctx, http.MethodPost, "/api/ingestion/upload", token, &buf)
	if err != nil {
		return domain.IngestReceipt{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.do(req)
	if err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("upload: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.IngestReceipt{}, statusError("upload", resp)
	}

	var upResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upResp); err != nil {
		return domain.IngestReceipt{}, fmt.Errorf("decode upload response: %w", err)
	}
	if len(upResp.Results) == 0 {
		return domain.IngestReceipt{}, fmt.Errorf("upload: %w: empty result list", domain.ErrServiceUnavailable)
	}

	// One file goes out per request, so the first result is ours.
	result := upResp.Results[0]
	if result.Status != "success" {
		reason := result.Message
		if reason == "" {
			reason = "unspecified server-side failure"
		}
		return domain.IngestReceipt{}, fmt.Errorf("upload %s: %w: %s", result.Filename, domain.ErrTransferRejected, reason)
	}

	return domain.IngestReceipt{Filename: result.Filename, Chunks: result.Chunks}, nil
}

// ListFiles returns the backend's record of ingested documents, most
// recent first.
func (c *IngestionClient) ListFiles(ctx context.Context, token string) ([]domain.RemoteFile, error) {
	req, err := c.client.newRequest(ctx, http.MethodGet, "/api/ingestion/files", token, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.do(req)
	if err != nil {
		return nil, fmt.Errorf("list files: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list files", resp)
	}

	var entries []struct {
		Name string  `json:"name"`
		Size int64   `json:"size"`
		Date float64 `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode file list: %w", err)
	}

	files := make([]domain.RemoteFile, 0, len(entries))
	for _, e := range entries {
		files = append(files, domain.RemoteFile{Name: e.Name, Size: e.Size, Modified: e.Date})
	}
	return files, nil
}
