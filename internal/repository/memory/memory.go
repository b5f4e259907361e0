// Package memory holds map-backed implementations of the repository
// interfaces. They follow the same contracts as the postgresql package,
// including the one-active-shift rule and result ordering, and back the
// service tests as well as DB_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/google/uuid"
)

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Store shares one lock across every table so cascades stay consistent.
type Store struct {
	mu        sync.RWMutex
	staff     map[string]staff.Staff
	services  map[string]catalog.Service
	records   map[string]record.ServiceRecord
	shifts    map[string]shift.Shift
	snapshots map[string]performance.Snapshot // keyed by week_end|staff_id
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		staff:     make(map[string]staff.Staff),
		services:  make(map[string]catalog.Service),
		records:   make(map[string]record.ServiceRecord),
		shifts:    make(map[string]shift.Shift),
		snapshots: make(map[string]performance.Snapshot),
		now:       time.Now,
	}
}

func (s *Store) Staff() staff.StaffRepository { return &staffRepository{s} }
func (s *Store) Services() catalog.ServiceRepository { return &serviceRepository{s} }
func (s *Store) Records() record.RecordRepository { return &recordRepository{s} }
func (s *Store) Shifts() shift.ShiftRepository { return &shiftRepository{s} }
func (s *Store) Snapshots() performance.SnapshotRepository { return &snapshotRepository{s} }

// ===== staff =====

type staffRepository struct{ *Store }

func (r *staffRepository) Create(ctx context.Context, newStaff staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newStaff.ID == "" {
		newStaff.ID = newID()
	}
	now := r.now()
	newStaff.CreatedAt, newStaff.UpdatedAt = now, now
	r.staff[newStaff.ID] = newStaff
	return newStaff, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (r *staffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]staff.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *staffRepository) UpdateStatus(ctx context.Context, id string, status staff.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.staff[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	s.Status = status
	s.UpdatedAt = r.now()
	r.staff[id] = s
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[id]; !ok {
		return staff.ErrStaffNotFound
	}
	delete(r.staff, id)
	for rid, rec := range r.records {
		if rec.StaffID == id {
			delete(r.records, rid)
		}
	}
	for sid, sh := range r.shifts {
		if sh.StaffID == id {
			delete(r.shifts, sid)
		}
	}
	return nil
}

// ===== services =====

type serviceRepository struct{ *Store }

func (r *serviceRepository) Create(ctx context.Context, newService catalog.Service) (catalog.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newService.ID == "" {
		newService.ID = newID()
	}
	r.services[newService.ID] = newService
	return newService, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	return s, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]catalog.Service, 0, len(r.services))
	for _, s := range r.services {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return catalog.ErrServiceNotFound
	}
	for _, rec := range r.records {
		if rec.ServiceID == id {
			return catalog.ErrServiceInUse
		}
	}
	delete(r.services, id)
	return nil
}

// ===== service records =====

type recordRepository struct{ *Store }

func (r *recordRepository) Create(ctx context.Context, newRecord record.ServiceRecord) (record.ServiceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newRecord.ID == "" {
		newRecord.ID = newID()
	}
	r.records[newRecord.ID] = newRecord
	return newRecord, nil
}

func (r *recordRepository) GetByID(ctx context.Context, id string) (record.ServiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return record.ServiceRecord{}, record.ErrRecordNotFound
	}
	return rec, nil
}

func (r *recordRepository) List(ctx context.Context, filter record.RecordFilter) ([]record.ServiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]record.ServiceRecord, 0, len(r.records))
	for _, rec := range r.records {
		if filter.StaffID != nil && rec.StaffID != *filter.StaffID {
			continue
		}
		if filter.StartFrom != nil && rec.ServiceStartTime < *filter.StartFrom {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ServiceStartTime != result[j].ServiceStartTime {
			return result[i].ServiceStartTime < result[j].ServiceStartTime
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *recordRepository) CountByServiceID(ctx context.Context, serviceID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, rec := range r.records {
		if rec.ServiceID == serviceID {
			count++
		}
	}
	return count, nil
}

// ===== shifts =====

type shiftRepository struct{ *Store }

func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newShift.IsActive() {
		for _, sh := range r.shifts {
			if sh.StaffID == newShift.StaffID && sh.IsActive() {
				return shift.Shift{}, shift.ErrAlreadyCheckedIn
			}
		}
	}
	if newShift.ID == "" {
		newShift.ID = newID()
	}
	r.shifts[newShift.ID] = newShift
	return newShift, nil
}

func (r *shiftRepository) GetActiveByStaffID(ctx context.Context, staffID string) (shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sh := range r.shifts {
		if sh.StaffID == staffID && sh.IsActive() {
			return sh, nil
		}
	}
	return shift.Shift{}, shift.ErrNotCheckedIn
}

func (r *shiftRepository) Close(ctx context.Context, id string, checkOutTime string) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sh, ok := r.shifts[id]
	if !ok || !sh.IsActive() {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	sh.Status = shift.StatusClosed
	sh.CheckOutTime = &checkOutTime
	r.shifts[id] = sh
	return sh, nil
}

func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	return r.filter(func(sh shift.Shift) bool {
		if filter.StaffID != nil && sh.StaffID != *filter.StaffID {
			return false
		}
		if filter.Status != nil && sh.Status != *filter.Status {
			return false
		}
		if filter.CheckInFrom != nil && sh.CheckInTime < *filter.CheckInFrom {
			return false
		}
		return true
	}), nil
}

func (r *shiftRepository) ListActiveCheckedInBefore(ctx context.Context, before string) ([]shift.Shift, error) {
	return r.filter(func(sh shift.Shift) bool {
		return sh.IsActive() && sh.CheckInTime < before
	}), nil
}

func (r *shiftRepository) filter(keep func(shift.Shift) bool) []shift.Shift {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]shift.Shift, 0)
	for _, sh := range r.shifts {
		if keep(sh) {
			result = append(result, sh)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CheckInTime != result[j].CheckInTime {
			return result[i].CheckInTime < result[j].CheckInTime
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// ===== performance snapshots =====

type snapshotRepository struct{ *Store }

func snapshotKey(weekEnd time.Time, staffID string) string {
	return weekEnd.Format("2006-01-02") + "|" + staffID
}

func (r *snapshotRepository) Upsert(ctx context.Context, snapshots []performance.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	weeks := make(map[string]struct{}, 1)
	for _, s := range snapshots {
		weeks[s.WeekEnd.Format("2006-01-02")] = struct{}{}
	}
	for key, s := range r.snapshots {
		if _, ok := weeks[s.WeekEnd.Format("2006-01-02")]; ok {
			delete(r.snapshots, key)
		}
	}
	for _, s := range snapshots {
		r.snapshots[snapshotKey(s.WeekEnd, s.StaffID)] = s
	}
	return nil
}

func (r *snapshotRepository) ListByWeekEnd(ctx context.Context, weekEnd time.Time) ([]performance.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := weekEnd.Format("2006-01-02")
	result := make([]performance.Snapshot, 0)
	for _, s := range r.snapshots {
		if s.WeekEnd.Format("2006-01-02") == day {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].KPIScore != result[j].KPIScore {
			return result[i].KPIScore > result[j].KPIScore
		}
		return result[i].StaffID < result[j].StaffID
	})
	return result, nil
}

func (r *snapshotRepository) LatestWeekEnd(ctx context.Context) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest time.Time
	for _, s := range r.snapshots {
		if s.WeekEnd.After(latest) {
			latest = s.WeekEnd
		}
	}
	if latest.IsZero() {
		return time.Time{}, performance.ErrSnapshotMissing
	}
	return latest, nil
}
