package handlers

import (
	"net/http"

	"legaldraft/drafter/internal/config"
	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/models"
	"legaldraft/drafter/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	client   generation.Client
	upstream UpstreamStatus
	config   *config.Config
}

func NewHealthHandler(client generation.Client, upstream UpstreamStatus, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		client:   client,
		upstream: upstream,
		config:   cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "drafter",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{Status: "failed", Message: "Configuration not loaded"}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	if handler.client == nil {
		checks["generation_client"] = ReadinessCheck{Status: "failed", Message: "Generation client not initialized"}
		allChecksPass = false
	} else {
		checks["generation_client"] = ReadinessCheck{Status: "ok"}
	}

	// an unchecked upstream does not block readiness, a failed check does
	if handler.upstream != nil {
		upstream := handler.upstream.Status()
		switch upstream.Status {
		case models.UpstreamOffline:
			checks["generation_service"] = ReadinessCheck{Status: "failed", Message: upstream.Reason}
			allChecksPass = false
		case models.UpstreamUnknown:
			checks["generation_service"] = ReadinessCheck{Status: "ok", Message: "not checked yet"}
		default:
			checks["generation_service"] = ReadinessCheck{Status: "ok"}
		}
	}

	response := ReadinessResponse{
		Service: "drafter",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
