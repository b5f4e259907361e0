package record

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordFixture struct {
	svc     *recordServiceImpl
	store   *memory.Store
	member  staff.Staff
	service catalog.Service
}

func setupRecordService(t *testing.T) recordFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	member, err := store.Staff().Create(ctx, staff.Staff{Name: "Budi", Status: staff.StatusActive, SalaryType: staff.SalaryTypeCommission})
	require.NoError(t, err)
	svc, err := store.Services().Create(ctx, catalog.Service{Name: "Hot Stone", DefaultPrice: 250_000, StandardDuration: 90})
	require.NoError(t, err)

	return recordFixture{
		svc: &recordServiceImpl{
			recordRepo:  store.Records(),
			staffRepo:   store.Staff(),
			serviceRepo: store.Services(),
			shiftRepo:   store.Shifts(),
			logger:      zap.NewNop(),
			now:         func() time.Time { return time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC) },
		},
		store:   store,
		member:  member,
		service: svc,
	}
}

func TestRecordService_Create_DefaultPrice(t *testing.T) {
	f := setupRecordService(t)

	resp, err := f.svc.Create(context.Background(), record.CreateRecordRequest{
		StaffID:   f.member.ID,
		ServiceID: f.service.ID,
		Date:      "2024-05-08",
		StartTime: "09:15",
		EndTime:   "10:50",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 250_000.0, resp.ServicePrice)
	assert.Equal(t, "Hot Stone", resp.ServiceName)
	assert.Equal(t, "2024-05-08T09:15:00", resp.ServiceStartTime)
	assert.Equal(t, "2024-05-08T10:50:00", resp.ServiceEndTime)
	assert.Equal(t, 95, resp.ActualDuration)
	assert.Equal(t, "2024-05-08T12:00:00Z", resp.TimeRecorded)
	assert.Empty(t, resp.ShiftID)
}

func TestRecordService_Create_PriceOverrideAndShiftLink(t *testing.T) {
	ctx := context.Background()
	f := setupRecordService(t)
	open, err := f.store.Shifts().Create(ctx, shift.Shift{StaffID: f.member.ID, Status: shift.StatusActive, CheckInTime: "2024-05-08T08:00:00"})
	require.NoError(t, err)

	price := 200_000.0
	resp, err := f.svc.Create(ctx, record.CreateRecordRequest{
		StaffID:   f.member.ID,
		ServiceID: f.service.ID,
		Price:     &price,
		Date:      "2024-05-08",
		StartTime: "09:00",
		EndTime:   "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, 200_000.0, resp.ServicePrice)
	assert.Equal(t, open.ID, resp.ShiftID)

	stored, err := f.svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, stored)
}

func TestRecordService_Create_EndBeforeStart(t *testing.T) {
	f := setupRecordService(t)

	_, err := f.svc.Create(context.Background(), record.CreateRecordRequest{
		StaffID:   f.member.ID,
		ServiceID: f.service.ID,
		Date:      "2024-05-08",
		StartTime: "10:00",
		EndTime:   "10:00",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "end_time", verrs[0].Field)
	assert.Equal(t, record.ErrEndBeforeStart.Error(), verrs[0].Message)
}

func TestRecordService_Create_Rejects(t *testing.T) {
	ctx := context.Background()
	f := setupRecordService(t)

	base := record.CreateRecordRequest{StaffID: f.member.ID, ServiceID: f.service.ID, Date: "2024-05-08", StartTime: "09:00", EndTime: "09:30"}

	req := base
	req.ServiceID = "missing"
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)

	req = base
	req.StaffID = "missing"
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	require.NoError(t, f.store.Staff().UpdateStatus(ctx, f.member.ID, staff.StatusInactive))
	_, err = f.svc.Create(ctx, base)
	assert.ErrorIs(t, err, staff.ErrStaffInactive)

	req = base
	req.Date = "08/05/2024"
	req.StartTime = "9am"
	_, err = f.svc.Create(ctx, req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{
		"date":       "date must be in YYYY-MM-DD format",
		"start_time": "start_time must be in HH:MM format",
	}, verrs.ToMap())
}

func TestRecordService_List(t *testing.T) {
	ctx := context.Background()
	f := setupRecordService(t)
	for _, start := range []string{"11:00", "09:00"} {
		_, err := f.svc.Create(ctx, record.CreateRecordRequest{
			StaffID: f.member.ID, ServiceID: f.service.ID, Date: "2024-05-08", StartTime: start, EndTime: "12:00",
		})
		require.NoError(t, err)
	}

	list, err := f.svc.List(ctx, record.RecordFilter{StaffID: &f.member.ID})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-05-08T09:00:00", list[0].ServiceStartTime)
	assert.Equal(t, 180, list[0].ActualDuration)
}
