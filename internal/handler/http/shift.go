package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// CheckIn handles POST /shifts/check-in
func (h *shiftHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req shift.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut handles POST /shifts/check-out
func (h *shiftHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req shift.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// List handles GET /shifts
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter shift.ShiftFilter

	status, err := shift.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Status = status

	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}

	result, err := h.shiftService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
