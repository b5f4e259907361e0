package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `id, name, role, status, phone, joined_at, base_salary, salary_type, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Role,
		&s.Status,
		&s.Phone,
		&s.JoinedAt,
		&s.BaseSalary,
		&s.SalaryType,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, newStaff staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (id, name, role, status, phone, joined_at, base_salary, salary_type, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + staffColumns

	created, err := scanStaff(q.QueryRow(ctx, query,
		newStaff.Name,
		newStaff.Role,
		newStaff.Status,
		newStaff.Phone,
		newStaff.JoinedAt,
		newStaff.BaseSalary,
		newStaff.SalaryType,
	))
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}

	return created, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	if !validID(id) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return s, nil
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff`
	var args []interface{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	result := make([]staff.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus implements staff.StaffRepository.
func (r *staffRepositoryImpl) UpdateStatus(ctx context.Context, id string, status staff.Status) error {
	if !validID(id) {
		return staff.ErrStaffNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update staff status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// Delete implements staff.StaffRepository.
func (r *staffRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return staff.ErrStaffNotFound
	}
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}
