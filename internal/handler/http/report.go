package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	perfsvc "github.com/cmlabs-hris/staffperf-backend-go/internal/service/performance"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// PerformanceWorkbook streams the leaderboard and salary sheets as xlsx.
	PerformanceWorkbook(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		now:           time.Now,
	}
}

// PerformanceWorkbook handles GET /reports/performance.xlsx
func (h *reportHandlerImpl) PerformanceWorkbook(w http.ResponseWriter, r *http.Request) {
	asOf, err := perfsvc.ParseAsOf(r.URL.Query().Get("as_of"), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, filename, err := h.reportService.PerformanceWorkbook(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, xlsxContentType, filename, buf)
}
