package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"legaldraft/drafter/internal/download"
	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/middleware"
	"legaldraft/drafter/internal/models"
	"legaldraft/drafter/internal/status"
	"legaldraft/drafter/internal/utils"
	"legaldraft/drafter/internal/view"
)

// UpstreamStatus reports the last known state of the generation service
type UpstreamStatus interface {
	Status() status.Upstream
}

// StateResponse is the view state plus the values the page derives from it
type StateResponse struct {
	view.State
	Loading       bool            `json:"loading"`
	CanSubmit     bool            `json:"can_submit"`
	CanDownload   bool            `json:"can_download"`
	DocumentLabel string          `json:"document_label,omitempty"`
	Upstream      status.Upstream `json:"upstream"`
}

type ConsoleHandler struct {
	view     *view.View
	client   generation.Client
	upstream UpstreamStatus
	logger   *zap.Logger
}

func NewConsoleHandler(v *view.View, client generation.Client, upstream UpstreamStatus, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		view:     v,
		client:   client,
		upstream: upstream,
		logger:   logger,
	}
}

func (h *ConsoleHandler) stateResponse() StateResponse {
	state := h.view.Snapshot()
	resp := StateResponse{
		State:       state,
		Loading:     state.Loading(),
		CanSubmit:   state.CanSubmit(),
		CanDownload: state.CanDownload(),
		Upstream:    status.Upstream{Status: models.UpstreamUnknown},
	}
	if state.Result != nil {
		resp.DocumentLabel = utils.DocumentTypeLabel(state.Result.DocumentType)
	}
	if h.upstream != nil {
		resp.Upstream = h.upstream.Status()
	}
	return resp
}

func (h *ConsoleHandler) StateHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.stateResponse())
}

func (h *ConsoleHandler) PromptHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.PromptRequest](r)

	prompt := ""
	if req.Prompt != nil {
		prompt = *req.Prompt
	}
	h.view.SetPrompt(prompt, req.DocumentType)

	utils.JSON(w, http.StatusOK, h.stateResponse())
}

// SubmitHandler blocks until the generation service answers. The submission is
// detached from the request context so a closed tab does not abort it.
// A refused submission leaves the stored prompt and document type untouched.
func (h *ConsoleHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.PromptRequest](r)

	current := h.view.Snapshot()
	if current.Loading() {
		writeInFlight(w)
		return
	}

	prompt, documentType := current.Prompt, current.DocumentType
	if req.Prompt != nil {
		prompt = *req.Prompt
	}
	if req.DocumentType != "" {
		documentType = req.DocumentType
	}
	if models.IsBlankPrompt(prompt) {
		writeEmptyPrompt(w)
		return
	}
	if req.Prompt != nil || req.DocumentType != "" {
		h.view.SetPrompt(prompt, documentType)
	}

	if !h.view.Submit(context.WithoutCancel(r.Context())) {
		if h.view.Snapshot().Loading() {
			writeInFlight(w)
			return
		}
		writeEmptyPrompt(w)
		return
	}

	utils.JSON(w, http.StatusOK, h.stateResponse())
}

func writeInFlight(w http.ResponseWriter) {
	utils.JSON(w, http.StatusConflict, models.ErrorResponse{
		Code:    "submission_in_flight",
		Message: "A draft is already being generated",
	})
}

func writeEmptyPrompt(w http.ResponseWriter) {
	utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
		Code:    "empty_prompt",
		Message: "Prompt must not be empty",
	})
}

// DocumentHandler streams the active result's document as an attachment, or
// redirects to the service's own download URL when the fetch fails.
func (h *ConsoleHandler) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	outcome := h.view.Download(r.Context(), download.ResponseSink{W: w}, download.RedirectOpener{W: w, R: r})
	if outcome.Status == view.DownloadSkipped {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "no_result",
			Message: "No generated document to download",
		})
	}
}

func (h *ConsoleHandler) TemplatesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.client.Templates(r.Context())
	if err != nil {
		h.logger.Error("Failed to list templates", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "upstream_error",
			Message: view.FailureMessage(err),
		})
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *ConsoleHandler) ServiceHandler(w http.ResponseWriter, r *http.Request) {
	info, err := h.client.ServiceInfo(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch service info", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "upstream_error",
			Message: "Generation service is unreachable",
		})
		return
	}
	utils.JSON(w, http.StatusOK, info)
}
