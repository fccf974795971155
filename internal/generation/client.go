package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"legaldraft/drafter/internal/models"
)

// Client talks to the remote document generation service
type Client interface {
	DraftDocument(ctx context.Context, req models.GenerationRequest, requestID string) (*models.GenerationResult, error)
	FetchDocument(ctx context.Context, downloadURL string) ([]byte, error)
	Health(ctx context.Context) (*models.HealthStatus, error)
	Templates(ctx context.Context) (*models.TemplateList, error)
	ServiceInfo(ctx context.Context) (*models.ServiceInfo, error)
	DocumentURL(downloadURL string) string
}

// HTTPClient is the net/http implementation of Client
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the given origin. A zero timeout means
// calls wait until the service answers or the context ends.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the origin every path is appended to
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// DocumentURL joins the service origin with a server-relative download path
func (c *HTTPClient) DocumentURL(downloadURL string) string {
	if downloadURL != "" && !strings.HasPrefix(downloadURL, "/") {
		downloadURL = "/" + downloadURL
	}
	return c.baseURL + downloadURL
}

// DraftDocument calls POST /draft-document
func (c *HTTPClient) DraftDocument(ctx context.Context, req models.GenerationRequest, requestID string) (*models.GenerationResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &APIError{Code: ErrCodeInvalidRequest, Err: err}
	}

	var result models.GenerationResult
	if err := c.doJSON(ctx, http.MethodPost, "/draft-document", payload, requestID, &result); err != nil {
		return nil, err
	}
	// a null or empty body decodes cleanly but names no document
	if result.DownloadURL == "" {
		return nil, &APIError{
			Code: ErrCodeInvalidResponse,
			Err:  errors.New("draft response has no download_url"),
		}
	}
	return &result, nil
}

// FetchDocument downloads the raw bytes behind a download URL; any non-2xx is an error
func (c *HTTPClient) FetchDocument(ctx context.Context, downloadURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DocumentURL(downloadURL), nil)
	if err != nil {
		return nil, &APIError{Code: ErrCodeInvalidRequest, Err: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Code: ErrCodeUnavailable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Code: ErrCodeUnavailable, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromBody(resp.StatusCode, body)
	}
	return body, nil
}

// Health calls GET /health
func (c *HTTPClient) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Templates calls GET /templates
func (c *HTTPClient) Templates(ctx context.Context) (*models.TemplateList, error) {
	var list models.TemplateList
	if err := c.doJSON(ctx, http.MethodGet, "/templates", nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ServiceInfo calls GET /
func (c *HTTPClient) ServiceInfo(ctx context.Context) (*models.ServiceInfo, error) {
	var info models.ServiceInfo
	if err := c.doJSON(ctx, http.MethodGet, "/", nil, "", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload []byte, requestID string, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Code: ErrCodeInvalidRequest, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &APIError{Code: ErrCodeUnavailable, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Code: ErrCodeUnavailable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{
			Status: resp.StatusCode,
			Code:   ErrCodeInvalidResponse,
			Err:    fmt.Errorf("decode %s %s: %w", method, path, err),
		}
	}
	return nil
}

// errorFromBody keeps the service's string detail when the body carries one
func errorFromBody(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Code: ErrCodeHTTP}

	var errBody models.ErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil {
		apiErr.Detail = errBody.DetailText()
	}
	return apiErr
}

var _ Client = (*HTTPClient)(nil)
