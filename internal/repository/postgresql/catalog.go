package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type serviceRepositoryImpl struct {
	db *database.DB
}

func NewServiceRepository(db *database.DB) catalog.ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

// Create implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Create(ctx context.Context, newService catalog.Service) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO services (id, name, default_price, standard_duration)
		VALUES (uuidv7(), $1, $2, $3)
		RETURNING id, name, default_price, standard_duration
	`

	var result catalog.Service
	err := q.QueryRow(ctx, query, newService.Name, newService.DefaultPrice, newService.StandardDuration).Scan(
		&result.ID,
		&result.Name,
		&result.DefaultPrice,
		&result.StandardDuration,
	)
	if err != nil {
		return catalog.Service{}, fmt.Errorf("failed to create service: %w", err)
	}

	return result, nil
}

// GetByID implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	if !validID(id) {
		return catalog.Service{}, catalog.ErrServiceNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, default_price, standard_duration
		FROM services
		WHERE id = $1
	`

	var result catalog.Service
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.DefaultPrice,
		&result.StandardDuration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to get service: %w", err)
	}

	return result, nil
}

// List implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) List(ctx context.Context) ([]catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, default_price, standard_duration
		FROM services
		ORDER BY name ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]catalog.Service, 0)
	for rows.Next() {
		var s catalog.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DefaultPrice, &s.StandardDuration); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return services, nil
}

// Delete implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return catalog.ErrServiceNotFound
	}
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrServiceInUse
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}

	return nil
}
