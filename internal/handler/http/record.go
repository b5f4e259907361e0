package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RecordHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type recordHandlerImpl struct {
	recordService record.RecordService
}

func NewRecordHandler(recordService record.RecordService) RecordHandler {
	return &recordHandlerImpl{
		recordService: recordService,
	}
}

// Create handles POST /records
func (h *recordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req record.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Service recorded successfully", result)
}

// List handles GET /records
func (h *recordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter record.RecordFilter
	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}
	if from := r.URL.Query().Get("from"); from != "" {
		filter.StartFrom = &from
	}

	result, err := h.recordService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /records/{id}
func (h *recordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
