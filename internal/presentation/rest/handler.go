package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/application/usecase"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// ProjectionHandler exposes the projection use cases over HTTP.
type ProjectionHandler struct {
	createUC      *usecase.CreateProjectionUseCase
	getUC         *usecase.GetProjectionUseCase
	listUC        *usecase.ListClientProjectionsUseCase
	recalculateUC *usecase.RecalculateProjectionUseCase
	deleteUC      *usecase.DeleteProjectionUseCase
	previewUC     *usecase.PreviewCalculationUseCase
	totalsUC      *usecase.GetPaymentTotalsUseCase
	analysisUC    *usecase.GetScenarioAnalysisUseCase
	logger        *slog.Logger
}

// NewProjectionHandler wires the handler with its use cases.
func NewProjectionHandler(
	createUC *usecase.CreateProjectionUseCase,
	getUC *usecase.GetProjectionUseCase,
	listUC *usecase.ListClientProjectionsUseCase,
	recalculateUC *usecase.RecalculateProjectionUseCase,
	deleteUC *usecase.DeleteProjectionUseCase,
	previewUC *usecase.PreviewCalculationUseCase,
	totalsUC *usecase.GetPaymentTotalsUseCase,
	analysisUC *usecase.GetScenarioAnalysisUseCase,
	logger *slog.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		createUC:      createUC,
		getUC:         getUC,
		listUC:        listUC,
		recalculateUC: recalculateUC,
		deleteUC:      deleteUC,
		previewUC:     previewUC,
		totalsUC:      totalsUC,
		analysisUC:    analysisUC,
		logger:        logger,
	}
}

// RegisterRoutes registers the projection endpoints on the mux.
func (h *ProjectionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/projections", h.createProjection)
	mux.HandleFunc("GET /api/v1/projections/{id}", h.getProjection)
	mux.HandleFunc("POST /api/v1/projections/{id}/recalculate", h.recalculateProjection)
	mux.HandleFunc("DELETE /api/v1/projections/{id}", h.deleteProjection)
	mux.HandleFunc("GET /api/v1/projections/{id}/totals", h.paymentTotals)
	mux.HandleFunc("GET /api/v1/projections/{id}/analysis", h.scenarioAnalysis)
	mux.HandleFunc("GET /api/v1/clients/{clientID}/projections", h.listClientProjections)
	mux.HandleFunc("POST /api/v1/calculations/preview", h.previewCalculation)
}

func (h *ProjectionHandler) createProjection(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.createUC.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ProjectionHandler) getProjection(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectionHandler) listClientProjections(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listUC.Execute(r.Context(), r.PathValue("clientID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projections": resp,
		"count":       len(resp),
	})
}

func (h *ProjectionHandler) recalculateProjection(w http.ResponseWriter, r *http.Request) {
	var input dto.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	req := dto.RecalculateProjectionRequest{
		ProjectionID: r.PathValue("id"),
		Input:        input,
	}

	resp, err := h.recalculateUC.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectionHandler) deleteProjection(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteUC.Execute(r.Context(), r.PathValue("id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectionHandler) previewCalculation(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.previewUC.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectionHandler) paymentTotals(w http.ResponseWriter, r *http.Request) {
	req := dto.PaymentTotalsRequest{
		ProjectionID: r.PathValue("id"),
		Scenario:     r.URL.Query().Get("scenario"),
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 0 {
			h.writeError(w, r, http.StatusBadRequest, "invalid month parameter", err)
			return
		}
		req.SaleMonth = month
	}

	resp, err := h.totalsUC.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectionHandler) scenarioAnalysis(w http.ResponseWriter, r *http.Request) {
	req := dto.ScenarioAnalysisRequest{
		ProjectionID: r.PathValue("id"),
		Scenario:     r.URL.Query().Get("scenario"),
	}

	resp, err := h.analysisUC.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, valueobject.ErrUnknownScenario):
		h.writeError(w, r, http.StatusBadRequest, "unknown scenario", err)
	case errors.Is(err, port.ErrProjectionNotFound):
		h.writeError(w, r, http.StatusNotFound, "projection not found", err)
	case errors.Is(err, port.ErrVersionConflict):
		h.writeError(w, r, http.StatusConflict, "projection was modified concurrently", err)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		h.writeError(w, r, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *ProjectionHandler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil && status < http.StatusInternalServerError {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
