package repository

import (
	"context"

	"github.com/01infinito/facturacion-api/internal/domain"
)

// ServiceRepository defines the interface for catalog data operations
type ServiceRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)

	// CreateService and UpdateService return ErrConflict when the
	// description is already taken by another catalog entry.
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, serviceID string) error

	// FindServiceByDescription resolves an exact-match description
	// lookup used to auto-fill invoice item prices. When more than one
	// entry matches (which the unique constraint should prevent), the
	// oldest one wins.
	FindServiceByDescription(ctx context.Context, description string) (*domain.Service, error)
}
