package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/hashburst.net/internal/config"
	"gitlab.com/hashburst.net/internal/core/ports/primary"
	batch2 "gitlab.com/hashburst.net/internal/core/services/batch"
	"gitlab.com/hashburst.net/internal/handlers/response"
	"gitlab.com/hashburst.net/internal/static/errs"
)

// BatchHandler handles batch compute API requests
type BatchHandler struct {
	batchService batch2.IBatchService
	poolCfg      *config.WorkerPoolConfig
	logger       primary.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batchService batch2.IBatchService, poolCfg *config.WorkerPoolConfig, logger primary.Logger) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
		poolCfg:      poolCfg,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for BatchHandler
func (h *BatchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/process", h.ProcessBatch).Methods("POST")
	router.HandleFunc("/api/health", h.Health).Methods("GET")
}

// ProcessBatch handles one batch invocation
func (h *BatchHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	invocationID := uuid.New()

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "invocationId", invocationID, "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    decodeErrorMessage(err),
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	job, err := batch2.Validate(req.Count, req.Mode)
	if err != nil {
		h.logger.Error("Invalid batch request", "invocationId", invocationID, "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	h.logger.Info("Processing batch", "invocationId", invocationID, "count", job.Count, "mode", job.Mode)

	report, err := h.batchService.Run(r.Context(), job)
	if err != nil {
		h.logger.Error("Failed to run batch", "invocationId", invocationID, "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "failed to process batch",
			StatusCode: http.StatusInternalServerError,
		})
		return
	}

	if failed := report.FailedIndices(); len(failed) > 0 {
		h.logger.Error("Batch completed with item failures", "invocationId", invocationID, "failedIndices", failed)
		response.WriteError(w, response.ErrorMessage{
			Message:    fmt.Sprintf("%d of %d items failed: indices %v", len(failed), job.Count, failed),
			StatusCode: http.StatusInternalServerError,
		})
		return
	}

	response.WriteSuccess(w, newProcessResponse(report.Metrics))
}

// Health reports the resolved pool configuration
func (h *BatchHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, HealthResponse{
		Status:       "ok",
		Workers:      h.poolCfg.Workers,
		DetectedCPUs: h.poolCfg.DetectedCPUs,
	})
}

// decodeErrorMessage maps a JSON decode failure on the count field to the
// domain's InvalidCount error so non-numeric counts fail with the specific
// kind rather than a generic message.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "count" {
		return errs.InvalidCount.Error()
	}
	return "invalid request body"
}
