package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) record.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

const recordColumns = `id, shift_id, staff_id, service_id, service_name, service_price,
	service_start_time, service_end_time, actual_duration, time_recorded`

func scanRecord(row pgx.Row) (record.ServiceRecord, error) {
	var (
		r       record.ServiceRecord
		shiftID *string
	)
	err := row.Scan(
		&r.ID,
		&shiftID,
		&r.StaffID,
		&r.ServiceID,
		&r.ServiceName,
		&r.ServicePrice,
		&r.ServiceStartTime,
		&r.ServiceEndTime,
		&r.ActualDuration,
		&r.TimeRecorded,
	)
	if shiftID != nil {
		r.ShiftID = *shiftID
	}
	return r, err
}

// Create implements record.RecordRepository.
func (r *recordRepositoryImpl) Create(ctx context.Context, newRecord record.ServiceRecord) (record.ServiceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO service_records (id, shift_id, staff_id, service_id, service_name, service_price,
			service_start_time, service_end_time, actual_duration, time_recorded)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		nullable(newRecord.ShiftID),
		newRecord.StaffID,
		newRecord.ServiceID,
		newRecord.ServiceName,
		newRecord.ServicePrice,
		newRecord.ServiceStartTime,
		newRecord.ServiceEndTime,
		newRecord.ActualDuration,
		newRecord.TimeRecorded,
	))
	if err != nil {
		return record.ServiceRecord{}, fmt.Errorf("failed to create service record: %w", err)
	}

	return created, nil
}

// GetByID implements record.RecordRepository.
func (r *recordRepositoryImpl) GetByID(ctx context.Context, id string) (record.ServiceRecord, error) {
	if !validID(id) {
		return record.ServiceRecord{}, record.ErrRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM service_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.ServiceRecord{}, record.ErrRecordNotFound
		}
		return record.ServiceRecord{}, fmt.Errorf("failed to get service record: %w", err)
	}

	return rec, nil
}

// List implements record.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter record.RecordFilter) ([]record.ServiceRecord, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.StaffID != nil {
		if !validID(*filter.StaffID) {
			return []record.ServiceRecord{}, nil
		}
		args = append(args, *filter.StaffID)
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", len(args)))
	}
	if filter.StartFrom != nil {
		args = append(args, *filter.StartFrom)
		conditions = append(conditions, fmt.Sprintf("service_start_time >= $%d", len(args)))
	}

	query := `SELECT ` + recordColumns + ` FROM service_records`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY service_start_time ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}
	defer rows.Close()

	records := make([]record.ServiceRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// CountByServiceID implements record.RecordRepository.
func (r *recordRepositoryImpl) CountByServiceID(ctx context.Context, serviceID string) (int64, error) {
	if !validID(serviceID) {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM service_records WHERE service_id = $1`, serviceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count service records: %w", err)
	}

	return count, nil
}
