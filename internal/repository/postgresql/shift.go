package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, staff_id, status, check_in_time, check_out_time`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.StaffID, &s.Status, &s.CheckInTime, &s.CheckOutTime)
	return s, err
}

// Create implements shift.ShiftRepository. The partial unique index on
// (staff_id) WHERE status = 'active' rejects a second open shift.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, staff_id, status, check_in_time, check_out_time)
		VALUES (uuidv7(), $1, $2, $3, $4)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		newShift.StaffID,
		newShift.Status,
		newShift.CheckInTime,
		newShift.CheckOutTime,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return shift.Shift{}, shift.ErrAlreadyCheckedIn
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return created, nil
}

// GetActiveByStaffID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetActiveByStaffID(ctx context.Context, staffID string) (shift.Shift, error) {
	if !validID(staffID) {
		return shift.Shift{}, shift.ErrNotCheckedIn
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE staff_id = $1 AND status = 'active'`

	s, err := scanShift(q.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrNotCheckedIn
		}
		return shift.Shift{}, fmt.Errorf("failed to get active shift: %w", err)
	}

	return s, nil
}

// Close implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Close(ctx context.Context, id string, checkOutTime string) (shift.Shift, error) {
	if !validID(id) {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = 'closed', check_out_time = $1
		WHERE id = $2 AND status = 'active'
		RETURNING ` + shiftColumns

	s, err := scanShift(q.QueryRow(ctx, query, checkOutTime, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to close shift: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.StaffID != nil {
		if !validID(*filter.StaffID) {
			return []shift.Shift{}, nil
		}
		args = append(args, *filter.StaffID)
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CheckInFrom != nil {
		args = append(args, *filter.CheckInFrom)
		conditions = append(conditions, fmt.Sprintf("check_in_time >= $%d", len(args)))
	}

	query := `SELECT ` + shiftColumns + ` FROM shifts`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY check_in_time ASC, id ASC`

	return r.query(ctx, query, args...)
}

// ListActiveCheckedInBefore implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActiveCheckedInBefore(ctx context.Context, before string) ([]shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE status = 'active' AND check_in_time < $1
		ORDER BY check_in_time ASC, id ASC
	`
	return r.query(ctx, query, before)
}

func (r *shiftRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}
