package report

import (
	"bytes"
	"context"
	"time"
)

// ReportService renders downloadable reports.
type ReportService interface {
	// PerformanceWorkbook builds an xlsx with a leaderboard sheet and a salary sheet.
	PerformanceWorkbook(ctx context.Context, asOf time.Time) (*bytes.Buffer, string, error)
}
