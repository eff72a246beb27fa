package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// PostgresServiceRepository implements ServiceRepository using PostgreSQL
type PostgresServiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresServiceRepository creates a new PostgreSQL catalog repository
func NewPostgresServiceRepository(db *pgxpool.Pool) *PostgresServiceRepository {
	return &PostgresServiceRepository{db: db}
}

// ListServices returns the whole catalog ordered by description
func (r *PostgresServiceRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, description, price, category, created_at, updated_at
		FROM services
		ORDER BY description
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	return services, nil
}

// GetServiceByID retrieves a catalog entry by its ID
func (r *PostgresServiceRepository) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, description, price, category, created_at, updated_at
		FROM services
		WHERE id = $1
	`, serviceID)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// CreateService saves a new catalog entry
func (r *PostgresServiceRepository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO services (description, price, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, service.Description, service.Price.Float(), service.Category).Scan(
		&service.ID, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", conflictError(err))
	}
	return service, nil
}

// UpdateService updates an existing catalog entry
func (r *PostgresServiceRepository) UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE services
		SET description = $1, price = $2, category = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`, service.Description, service.Price.Float(), service.Category, service.ID).Scan(
		&service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update service: %w", conflictError(err))
	}
	return service, nil
}

// DeleteService removes a catalog entry. Existing invoice items keep
// their own copy of description and price, so no reference check is
// needed.
func (r *PostgresServiceRepository) DeleteService(ctx context.Context, serviceID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindServiceByDescription resolves an exact description match,
// oldest entry first.
func (r *PostgresServiceRepository) FindServiceByDescription(ctx context.Context, description string) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, description, price, category, created_at, updated_at
		FROM services
		WHERE description = $1
		ORDER BY created_at
		LIMIT 1
	`, description)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanService(row pgx.Row) (domain.Service, error) {
	var s domain.Service
	var price float64
	if err := row.Scan(&s.ID, &s.Description, &price, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("failed to scan service: %w", err)
	}
	s.Price = domain.Number(price)
	return s, nil
}
