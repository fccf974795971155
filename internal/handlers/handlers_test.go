package handlers

import (
	"context"
	"errors"

	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/models"
	"legaldraft/drafter/internal/status"
)

type mockClient struct {
	draftFn     func(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
	fetchFn     func(ctx context.Context, downloadURL string) ([]byte, error)
	templatesFn func(ctx context.Context) (*models.TemplateList, error)
}

func (m *mockClient) DraftDocument(ctx context.Context, req models.GenerationRequest, requestID string) (*models.GenerationResult, error) {
	if m.draftFn != nil {
		return m.draftFn(ctx, req)
	}
	return &models.GenerationResult{
		Success:      true,
		Message:      "Document successfully generated",
		DocumentType: "rental_agreement",
		FilePath:     "./outputs/rental_agreement_20250101.docx",
		DownloadURL:  "/download/rental_agreement_20250101.docx",
	}, nil
}

func (m *mockClient) FetchDocument(ctx context.Context, downloadURL string) ([]byte, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, downloadURL)
	}
	return []byte("PK\x03\x04"), nil
}

func (m *mockClient) Health(context.Context) (*models.HealthStatus, error) {
	return &models.HealthStatus{Status: "healthy"}, nil
}

func (m *mockClient) Templates(ctx context.Context) (*models.TemplateList, error) {
	if m.templatesFn != nil {
		return m.templatesFn(ctx)
	}
	return &models.TemplateList{Success: true, Templates: []string{"nda"}, Count: 1}, nil
}

func (m *mockClient) ServiceInfo(context.Context) (*models.ServiceInfo, error) {
	return nil, errors.New("connection refused")
}

func (m *mockClient) DocumentURL(downloadURL string) string {
	return "https://drafts.example.com" + downloadURL
}

type fixedUpstream struct {
	upstream status.Upstream
}

func (f fixedUpstream) Status() status.Upstream { return f.upstream }

func upstreamWith(state, reason string) fixedUpstream {
	return fixedUpstream{upstream: status.Upstream{Status: state, Reason: reason}}
}

var (
	_ generation.Client = (*mockClient)(nil)
	_ UpstreamStatus    = fixedUpstream{}
)
