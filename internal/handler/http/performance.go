package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
	perfsvc "github.com/cmlabs-hris/staffperf-backend-go/internal/service/performance"
	"github.com/go-chi/chi/v5"
)

type PerformanceHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	Leaderboard(w http.ResponseWriter, r *http.Request)
	Warnings(w http.ResponseWriter, r *http.Request)
	StaffDetail(w http.ResponseWriter, r *http.Request)
	SalaryEstimates(w http.ResponseWriter, r *http.Request)
	Snapshots(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
	now                func() time.Time
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: performanceService,
		now:                time.Now,
	}
}

// asOf reads the optional as_of query parameter; it writes the error response itself.
func (h *performanceHandlerImpl) asOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	asOf, err := perfsvc.ParseAsOf(r.URL.Query().Get("as_of"), h.now())
	if err != nil {
		response.HandleError(w, err)
		return time.Time{}, false
	}
	return asOf, true
}

// Dashboard handles GET /performance/dashboard
func (h *performanceHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.performanceService.Dashboard(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Leaderboard handles GET /performance/leaderboard
func (h *performanceHandlerImpl) Leaderboard(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.performanceService.Leaderboard(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Warnings handles GET /performance/warnings
func (h *performanceHandlerImpl) Warnings(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.performanceService.Warnings(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StaffDetail handles GET /performance/staff/{id}
func (h *performanceHandlerImpl) StaffDetail(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.performanceService.StaffDetail(r.Context(), chi.URLParam(r, "id"), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SalaryEstimates handles GET /performance/salary
func (h *performanceHandlerImpl) SalaryEstimates(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	result, err := h.performanceService.SalaryEstimates(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Snapshots handles GET /performance/snapshots. Without week_end the latest stored week is returned.
func (h *performanceHandlerImpl) Snapshots(w http.ResponseWriter, r *http.Request) {
	var weekEnd *time.Time
	if value := r.URL.Query().Get("week_end"); value != "" {
		d, ok := validator.IsValidDate(value)
		if !ok {
			response.HandleError(w, performance.ErrInvalidWeekEnd)
			return
		}
		weekEnd = &d
	}

	result, err := h.performanceService.Snapshots(r.Context(), weekEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
