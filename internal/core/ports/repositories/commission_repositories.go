package repositories

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// CommissionReader defines read operations for commission profiles
type CommissionReader interface {
	FindProfileByID(ctx context.Context, profileID string) (*domain.CommissionProfile, error)
	ListProfiles(ctx context.Context, activeOnly bool) ([]domain.CommissionProfile, error)
}

// CommissionWriter defines write operations for commission profiles
type CommissionWriter interface {
	InsertProfile(ctx context.Context, profile domain.CommissionProfile) error
	UpdateProfile(ctx context.Context, profile domain.CommissionProfile) error
}

// CommissionRepositoryFacade combines all commission-related repository interfaces
type CommissionRepositoryFacade interface {
	CommissionReader
	CommissionWriter
}
