package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService catalog.CatalogService
}

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandlerImpl{
		catalogService: catalogService,
	}
}

// List handles GET /services
func (h *catalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /services
func (h *catalogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateService decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.catalogService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Service created successfully", result)
}

// Delete handles DELETE /services/{id}
func (h *catalogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service deleted successfully", nil)
}
