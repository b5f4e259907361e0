package report

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	perfsvc "github.com/cmlabs-hris/staffperf-backend-go/internal/service/performance"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	leaderboardSheet = "Leaderboard"
	salarySheet      = "Salary"
)

type reportServiceImpl struct {
	performance performance.PerformanceService
	engine      *perfsvc.Engine
	logger      *zap.Logger
}

func NewReportService(performanceService performance.PerformanceService, engine *perfsvc.Engine, logger *zap.Logger) report.ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportServiceImpl{
		performance: performanceService,
		engine:      engine,
		logger:      logger,
	}
}

// PerformanceWorkbook implements report.ReportService.
func (s *reportServiceImpl) PerformanceWorkbook(ctx context.Context, asOf time.Time) (*bytes.Buffer, string, error) {
	asOf = s.engine.Local(asOf)
	cards, err := s.performance.Scorecards(ctx, asOf)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leaderboardSheet); err != nil {
		return nil, "", s.fail(err)
	}
	if _, err := f.NewSheet(salarySheet); err != nil {
		return nil, "", s.fail(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.fail(err)
	}

	title := fmt.Sprintf("Staff performance %s to %s",
		timeutil.DateKey(s.engine.WindowStart(asOf)), timeutil.DateKey(asOf))

	leaderboardHeader := []interface{}{
		"Rank", "Staff", "Role", "Revenue", "Worked (min)", "Scheduled (min)",
		"Labor cost", "Utilization %", "Margin %", "KPI", "Tier", "Warnings",
	}
	if err := s.writeHeader(f, leaderboardSheet, title, leaderboardHeader, headerStyle); err != nil {
		return nil, "", s.fail(err)
	}
	for i, c := range cards {
		causes := s.engine.DetectWarnings(c)
		warnings := make([]string, 0, len(causes))
		for _, cause := range causes {
			warnings = append(warnings, string(cause))
		}
		row := []interface{}{
			i + 1, c.Staff.Name, c.Staff.Role, c.TotalRevenue, c.WorkedMinutes, c.ScheduledMinutes,
			round2(c.LaborCost), round2(c.UtilizationRate), round2(c.ProfitMargin), round2(c.KPIScore),
			c.Classification, strings.Join(warnings, ", "),
		}
		if err := f.SetSheetRow(leaderboardSheet, cell("A", i+3), &row); err != nil {
			return nil, "", s.fail(err)
		}
	}

	salaryHeader := []interface{}{
		"Staff", "Salary type", "Base salary", "Revenue", "Commission rate", "Commission", "Estimated total", "Exceeds revenue",
	}
	if err := s.writeHeader(f, salarySheet, title, salaryHeader, headerStyle); err != nil {
		return nil, "", s.fail(err)
	}
	for i, c := range cards {
		est := s.engine.EstimateSalary(c)
		row := []interface{}{
			c.Staff.Name, string(c.Staff.SalaryType), est.BaseSalary.InexactFloat64(), est.TotalRevenue.InexactFloat64(),
			est.CommissionRate.InexactFloat64(), est.Commission.InexactFloat64(), est.EstimatedTotal.InexactFloat64(),
			yesNo(est.ExceedsRevenue),
		}
		if err := f.SetSheetRow(salarySheet, cell("A", i+3), &row); err != nil {
			return nil, "", s.fail(err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	filename := fmt.Sprintf("performance_%s.xlsx", timeutil.DateKey(asOf))
	s.logger.Info("performance report generated", zap.String("filename", filename), zap.Int("staff", len(cards)))
	return buf, filename, nil
}

func (s *reportServiceImpl) writeHeader(f *excelize.File, sheet, title string, header []interface{}, style int) error {
	last := colName(len(header) - 1)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", last+"1"); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", last+"2", style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 16)
}

func (s *reportServiceImpl) fail(err error) error {
	s.logger.Error("failed to build performance workbook", zap.Error(err))
	return fmt.Errorf("%w: %v", performance.ErrReportGenerate, err)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
