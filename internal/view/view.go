package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"legaldraft/drafter/internal/download"
	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/metrics"
	"legaldraft/drafter/internal/models"
	"legaldraft/drafter/internal/utils"
)

// View owns one client's state. The lock is held only while applying events,
// never across a network call; the submitting phase is what keeps a second
// submission out.
type View struct {
	mu     sync.Mutex
	state  State
	client generation.Client
	logger *zap.Logger
	newID  func() string
}

func New(client generation.Client, logger *zap.Logger) *View {
	return &View{
		state:  State{Phase: PhaseIdle},
		client: client,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Snapshot returns a copy of the current state
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) SetPrompt(prompt, documentType string) {
	v.dispatch(PromptChanged{Prompt: prompt, DocumentType: utils.NormalizeDocumentType(documentType)})
}

func (v *View) dispatch(e Event) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Reduce(v.state, e)
	return v.state
}

// Submit sends the current prompt and waits for the outcome. It returns false
// without doing anything when the prompt is blank or a submission is in flight.
func (v *View) Submit(ctx context.Context) bool {
	requestID := v.newID()

	v.mu.Lock()
	if !v.state.CanSubmit() {
		v.mu.Unlock()
		return false
	}
	v.state = Reduce(v.state, SubmitStarted{RequestID: requestID})
	req := models.NewGenerationRequest(v.state.Prompt, v.state.DocumentType)
	v.mu.Unlock()

	v.logger.Info("Submitting draft request",
		zap.String("request_id", requestID),
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("document_type", req.DocumentType))

	start := time.Now()
	result, err := v.client.DraftDocument(ctx, req, requestID)
	elapsed := time.Since(start)

	if err == nil && (result == nil || result.DownloadURL == "") {
		err = &generation.APIError{Code: generation.ErrCodeInvalidResponse}
	}
	if err != nil {
		v.logger.Error("Draft request failed", zap.Error(err), zap.String("request_id", requestID))
		metrics.ObserveSubmission(string(PhaseError), elapsed)
		v.dispatch(SubmitFailed{RequestID: requestID, Message: FailureMessage(err)})
		return true
	}

	v.logger.Info("Draft generated",
		zap.String("request_id", requestID),
		zap.String("document_type", result.DocumentType),
		zap.String("download_url", result.DownloadURL),
		zap.Duration("elapsed", elapsed))
	metrics.ObserveSubmission(string(PhaseResult), elapsed)
	v.dispatch(SubmitSucceeded{RequestID: requestID, Result: result})
	return true
}

// FailureMessage is the text shown for a failed submission: the service's
// detail when it sent one, otherwise the generic message.
func FailureMessage(err error) string {
	var apiErr *generation.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return models.GenericFailureMessage
}

type DownloadStatus string

const (
	DownloadSkipped  DownloadStatus = "skipped"
	DownloadSaved    DownloadStatus = "saved"
	DownloadFallback DownloadStatus = "fallback"
	// the sink had already started delivering when it failed
	DownloadFailed DownloadStatus = "failed"
)

type DownloadOutcome struct {
	Status      DownloadStatus `json:"status"`
	FileName    string         `json:"file_name,omitempty"`
	Location    string         `json:"location,omitempty"`
	FallbackURL string         `json:"fallback_url,omitempty"`
	Err         error          `json:"-"`
}

// Download fetches the active result's document into sink. When that fails the
// download URL is handed to opener instead, unless the sink had already begun
// delivering. The view state is never touched.
func (v *View) Download(ctx context.Context, sink download.Sink, opener download.Opener) DownloadOutcome {
	snapshot := v.Snapshot()
	if !snapshot.CanDownload() {
		return DownloadOutcome{Status: DownloadSkipped}
	}
	result := snapshot.Result

	name := utils.FileNameFromPath(result.FilePath)
	data, err := v.client.FetchDocument(ctx, result.DownloadURL)
	if err == nil {
		var location string
		location, err = sink.Save(name, data)
		if err == nil {
			v.logger.Info("Document downloaded",
				zap.String("request_id", snapshot.RequestID),
				zap.String("file_name", name),
				zap.Int("bytes", len(data)))
			metrics.ObserveDownload(string(DownloadSaved))
			return DownloadOutcome{Status: DownloadSaved, FileName: name, Location: location}
		}
	}

	if errors.Is(err, download.ErrDeliveryStarted) {
		v.logger.Warn("Download interrupted after delivery started",
			zap.Error(err),
			zap.String("request_id", snapshot.RequestID),
			zap.String("file_name", name))
		metrics.ObserveDownload(string(DownloadFailed))
		return DownloadOutcome{Status: DownloadFailed, FileName: name, Err: err}
	}

	fallbackURL := v.client.DocumentURL(result.DownloadURL)
	v.logger.Warn("Download failed, opening URL directly",
		zap.Error(err),
		zap.String("request_id", snapshot.RequestID),
		zap.String("url", fallbackURL))
	metrics.ObserveDownload(string(DownloadFallback))

	if openErr := opener.Open(fallbackURL); openErr != nil {
		v.logger.Warn("Failed to open download URL", zap.Error(openErr), zap.String("url", fallbackURL))
	}
	return DownloadOutcome{Status: DownloadFallback, FileName: name, FallbackURL: fallbackURL, Err: err}
}
