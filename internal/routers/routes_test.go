package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"legaldraft/drafter/internal/config"
	"legaldraft/drafter/internal/handlers"
	"legaldraft/drafter/internal/models"
	"legaldraft/drafter/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type stubClient struct{}

func (stubClient) DraftDocument(context.Context, models.GenerationRequest, string) (*models.GenerationResult, error) {
	return &models.GenerationResult{Success: true, DocumentType: "nda", DownloadURL: "/download/nda.docx"}, nil
}

func (stubClient) FetchDocument(context.Context, string) ([]byte, error) { return []byte("PK"), nil }

func (stubClient) Health(context.Context) (*models.HealthStatus, error) {
	return &models.HealthStatus{Status: "healthy"}, nil
}

func (stubClient) Templates(context.Context) (*models.TemplateList, error) {
	return &models.TemplateList{}, nil
}

func (stubClient) ServiceInfo(context.Context) (*models.ServiceInfo, error) {
	return &models.ServiceInfo{}, nil
}

func (stubClient) DocumentURL(path string) string { return "http://upstream" + path }

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(stubClient{}, nil, &config.Config{BaseURL: "http://upstream"})

	HealthRoutes(router, handler)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s route not registered correctly, got status %d", path, rec.Code)
		}
	}
}

func TestConsoleRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	v := view.New(stubClient{}, zap.NewNop())
	consoleHandler := handlers.NewConsoleHandler(v, stubClient{}, nil, zap.NewNop())

	ConsoleRoutes(router, consoleHandler)
	WebRoutes(router, http.NotFoundHandler())

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"GET /api/v1/state",
		"PUT /api/v1/prompt",
		"POST /api/v1/submit",
		"GET /api/v1/document",
		"GET /api/v1/templates",
		"GET /api/v1/service",
		"GET /*",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
