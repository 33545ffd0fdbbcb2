package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/textstore/internal/model"
	"github.com/vyrodovalexey/textstore/internal/store"
)

// Version is the application version.
const Version = "1.0.0"

// formatText selects the plain-text rendering of a random resource.
const formatText = "text"

// ResourceHandler handles REST API requests for resources.
type ResourceHandler struct {
	store  store.Store
	logger *zap.Logger
}

// NewResourceHandler creates a new ResourceHandler instance.
func NewResourceHandler(s store.Store, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		store:  s,
		logger: logger,
	}
}

// RegisterRoutes registers the REST API routes with the router.
// The literal /api/resource/random route must come before the {id}
// pattern so "random" is never captured as an id.
func (h *ResourceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/resources", h.ListResources).Methods(http.MethodGet)
	router.HandleFunc("/api/resources", h.CreateResource).Methods(http.MethodPost)
	router.HandleFunc("/api/resources/search", h.SearchResources).Methods(http.MethodGet)
	router.HandleFunc("/api/resource/random", h.RandomResource).Methods(http.MethodGet)
	router.HandleFunc("/api/resource/{id}", h.GetResource).Methods(http.MethodGet)
	router.HandleFunc("/api/resource/{id}", h.UpdateResource).Methods(http.MethodPut)
	router.HandleFunc("/api/resource/{id}", h.DeleteResource).Methods(http.MethodDelete)
}

// HealthCheck handles GET /health requests.
func (h *ResourceHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, response)
}

// ReadyCheck handles GET /ready requests.
func (h *ResourceHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	response := ReadyResponse{
		Status:    "ready",
		Resources: h.store.Len(),
	}
	h.writeJSON(w, http.StatusOK, response)
}

// ListResources handles GET /api/resources requests.
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := parseLimit(r.URL.Query().Get("limit"))

	resources, err := h.store.List(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list resources", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve resources")
		return
	}

	h.writeJSON(w, http.StatusOK, resources)
}

// SearchResources handles GET /api/resources/search requests.
func (h *ResourceHandler) SearchResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	resources, err := h.store.Search(ctx, query)
	if err != nil {
		h.handleStoreError(w, err, "search resources")
		return
	}

	h.writeJSON(w, http.StatusOK, resources)
}

// GetResource handles GET /api/resource/{id} requests.
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	id := vars["id"]

	resource, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "get resource")
		return
	}

	h.writeJSON(w, http.StatusOK, resource)
}

// RandomResource handles GET /api/resource/random requests. With
// format=text the response is the raw text body, without a JSON envelope.
func (h *ResourceHandler) RandomResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resource, err := h.store.Random(ctx)
	if err != nil {
		h.handleStoreError(w, err, "random resource")
		return
	}

	if r.URL.Query().Get("format") == formatText {
		h.writeText(w, http.StatusOK, resource.Text)
		return
	}

	h.writeJSON(w, http.StatusOK, resource)
}

// CreateResource handles POST /api/resources requests.
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input model.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := h.store.Create(ctx, input.Creator, input.Text)
	if err != nil {
		h.handleStoreError(w, err, "create resource")
		return
	}

	h.writeJSON(w, http.StatusCreated, resource)
}

// UpdateResource handles PUT /api/resource/{id} requests. The store checks
// existence before validating, so an unknown id yields 404 even when the
// body is invalid.
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	id := vars["id"]

	var input model.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := h.store.Update(ctx, id, input.Text)
	if err != nil {
		h.handleStoreError(w, err, "update resource")
		return
	}

	h.writeJSON(w, http.StatusOK, resource)
}

// DeleteResource handles DELETE /api/resource/{id} requests. The removed
// resource is returned in the response body.
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	id := vars["id"]

	resource, err := h.store.Delete(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "delete resource")
		return
	}

	h.writeJSON(w, http.StatusOK, resource)
}

// handleStoreError handles store errors and writes appropriate HTTP responses.
func (h *ResourceHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, store.ErrEmptyQuery):
		h.writeError(w, http.StatusBadRequest, "search query cannot be empty")
	case errors.Is(err, store.ErrInvalidText):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrSearchFailed):
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "search failed")
	default:
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseLimit parses the limit query parameter. Absent, non-numeric and
// non-positive values normalize to zero, which the store replaces with
// its default.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}

// writeJSON writes a JSON response with the given status code.
func (h *ResourceHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeText writes a plain-text response with the given status code.
func (h *ResourceHandler) writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func (h *ResourceHandler) writeError(w http.ResponseWriter, status int, message string) {
	response := model.ErrorResponse{
		Code:    status,
		Message: message,
	}
	h.writeJSON(w, status, response)
}
