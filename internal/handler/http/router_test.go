package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/auth"
	catalogService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/catalog"
	perfService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/performance"
	recordService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/record"
	reportService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/shift"
	staffService "github.com/cmlabs-hris/staffperf-backend-go/internal/service/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPasscode = "246810"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, memory.NewStore(), time.UTC)
}

// newTestServerWith serves store with offset-less timestamps read in loc.
func newTestServerWith(t *testing.T, store *memory.Store, loc *time.Location) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()

	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h", nil)
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPasscode), bcrypt.MinCost)
	require.NoError(t, err)

	engine, err := perfService.NewEngine(performance.DefaultPolicy())
	require.NoError(t, err)
	engine = engine.WithLocation(loc)
	perf := perfService.NewPerformanceService(store.Staff(), store.Records(), store.Shifts(), store.Services(), store.Snapshots(), engine, logger)

	router := NewRouter(RouterConfig{AllowedOrigins: []string{"*"}, Env: "test", Version: "test"}, jwtService, Handlers{
		Auth:        NewAuthHandler(authService.NewAuthService(jwtService, string(hash), logger)),
		Staff:       NewStaffHandler(staffService.NewStaffService(store.Staff(), logger)),
		Catalog:     NewCatalogHandler(catalogService.NewCatalogService(store.Services(), store.Records())),
		Shift:       NewShiftHandler(shiftService.NewShiftService(store.Shifts(), store.Staff(), logger)),
		Record:      NewRecordHandler(recordService.NewRecordService(store.Records(), store.Staff(), store.Services(), store.Shifts(), logger)),
		Performance: NewPerformanceHandler(perf),
		Report:      NewReportHandler(reportService.NewReportService(perf, engine, logger)),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, env := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": handlerTestPasscode})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, jwt.RoleManager, token.Role)
	return token.AccessToken
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// ===== AUTH TESTS =====

func TestAuth_Login(t *testing.T) {
	srv := newTestServer(t)

	t.Run("wrong passcode", func(t *testing.T) {
		resp, env := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": "111111"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("malformed passcode", func(t *testing.T) {
		resp, env := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": "abc"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "passcode")
	})

	t.Run("success", func(t *testing.T) {
		login(t, srv)
	})
}

func TestAuth_ProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/v1/staff", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/staff", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_Logout(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/staff", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ===== OPERATIONS TESTS =====

func TestOperations_Flow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, env := doRequest(t, srv, http.MethodPost, "/api/v1/staff", token, map[string]interface{}{
		"staff_name":  "Ayu",
		"role":        "Therapist",
		"salary_base": 3000000,
		"salary_type": "commission",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"staff_id"`
	}
	decodeData(t, env, &created)

	resp, env = doRequest(t, srv, http.MethodPost, "/api/v1/services", token, map[string]interface{}{
		"service_name":      "Massage",
		"default_price":     200000,
		"standard_duration": 60,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var service struct {
		ID string `json:"service_id"`
	}
	decodeData(t, env, &service)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/v1/shifts/check-in", token, map[string]string{"staff_id": created.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/v1/shifts/check-in", token, map[string]string{"staff_id": created.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = doRequest(t, srv, http.MethodGet, "/api/v1/shifts?status=active", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []map[string]interface{}
	decodeData(t, env, &active)
	assert.Len(t, active, 1)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/shifts?status=paused", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	resp, env = doRequest(t, srv, http.MethodPost, "/api/v1/records", token, map[string]interface{}{
		"staff_id":   created.ID,
		"service_id": service.ID,
		"date":       yesterday,
		"start_time": "09:00",
		"end_time":   "10:30",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec struct {
		ID             string  `json:"record_id"`
		ServicePrice   float64 `json:"service_price"`
		ActualDuration int     `json:"actual_duration"`
	}
	decodeData(t, env, &rec)
	assert.Equal(t, 200000.0, rec.ServicePrice)
	assert.Equal(t, 90, rec.ActualDuration)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/records/"+rec.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/v1/services/"+service.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = doRequest(t, srv, http.MethodGet, "/api/v1/performance/leaderboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var board []performance.ScorecardResponse
	decodeData(t, env, &board)
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 200000.0, board[0].TotalRevenue)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/v1/shifts/check-out", token, map[string]string{"staff_id": created.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/v1/shifts/check-out", token, map[string]string{"staff_id": created.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPut, "/api/v1/staff/"+created.ID+"/status", token, map[string]string{"status": "INACTIVE"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/v1/shifts/check-in", token, map[string]string{"staff_id": created.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStaff_NotFoundAndValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/v1/staff/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env := doRequest(t, srv, http.MethodPost, "/api/v1/staff", token, map[string]interface{}{
		"staff_name":  "",
		"salary_type": "hourly",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "staff_name")
	assert.Contains(t, env.Error.Details, "salary_type")

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/staff?status=retired", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ===== PERFORMANCE TESTS =====

func TestPerformance_AsOfOffsetIndependent(t *testing.T) {
	ctx := context.Background()
	wib := time.FixedZone("WIB", 7*60*60)
	store := memory.NewStore()

	ayu, err := store.Staff().Create(ctx, staff.Staff{Name: "Ayu", Status: staff.StatusActive, BaseSalary: 3_000_000, SalaryType: staff.SalaryTypeFixed})
	require.NoError(t, err)
	_, err = store.Shifts().Create(ctx, shift.Shift{StaffID: ayu.ID, Status: shift.StatusActive, CheckInTime: "2026-10-14T08:00:00"})
	require.NoError(t, err)
	_, err = store.Records().Create(ctx, record.ServiceRecord{
		StaffID: ayu.ID, ServiceID: "svc-1", ServiceName: "Massage", ServicePrice: 100_000,
		ServiceStartTime: "2026-10-14T09:00:00", ActualDuration: 60,
	})
	require.NoError(t, err)

	srv := newTestServerWith(t, store, wib)
	token := login(t, srv)

	// Both values name 12:00 UTC.
	asOfs := []string{"2026-10-14T19:00:00%2B07:00", "2026-10-14T12:00:00Z"}
	boards := make([][]performance.ScorecardResponse, len(asOfs))
	for i, asOf := range asOfs {
		resp, env := doRequest(t, srv, http.MethodGet, "/api/v1/performance/leaderboard?as_of="+asOf, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeData(t, env, &boards[i])

		resp, env = doRequest(t, srv, http.MethodGet, "/api/v1/performance/dashboard?as_of="+asOf, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var dash performance.DashboardResponse
		decodeData(t, env, &dash)
		assert.Equal(t, "2026-10-14T19:00:00+07:00", dash.AsOf)
		assert.Equal(t, 100_000.0, dash.TodayRevenue)
	}

	require.Len(t, boards[0], 1)
	assert.Equal(t, 660, boards[0][0].ScheduledMinutes)
	assert.Equal(t, boards[0], boards[1])
}

func TestPerformance_Queries(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, env := doRequest(t, srv, http.MethodGet, "/api/v1/performance/dashboard?as_of=2024-05-08T18:00:00Z", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash performance.DashboardResponse
	decodeData(t, env, &dash)
	assert.Equal(t, "2024-05-08T18:00:00Z", dash.AsOf)
	assert.Empty(t, dash.Leaderboard)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/performance/dashboard?as_of=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/performance/staff/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/performance/snapshots", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/v1/performance/snapshots?week_end=05/08/2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/api/v1/performance/warnings", "/api/v1/performance/salary"} {
		resp, env = doRequest(t, srv, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.True(t, env.Success, path)
	}
}

func TestReport_PerformanceWorkbook(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/v1/reports/performance.xlsx?as_of=2024-05-08T18:00:00Z", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="performance_2024-05-08.xlsx"`, resp.Header.Get("Content-Disposition"))
}
