package services

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// CommissionReaderSvc defines read operations for commission profiles
type CommissionReaderSvc interface {
	GetProfile(ctx context.Context, profileID string) (*domain.CommissionProfile, error)
	ListProfiles(ctx context.Context, activeOnly bool) ([]domain.CommissionProfile, error)
}

// CommissionWriterSvc defines admin write operations for commission profiles
type CommissionWriterSvc interface {
	CreateProfile(ctx context.Context, actor domain.Actor, req dto.CreateCommissionProfileRequest) (*domain.CommissionProfile, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, profileID string, req dto.UpdateCommissionProfileRequest) (*domain.CommissionProfile, error)
	DeactivateProfile(ctx context.Context, actor domain.Actor, profileID string) error
}

// CommissionSvcFacade combines all commission-related service interfaces
type CommissionSvcFacade interface {
	CommissionReaderSvc
	CommissionWriterSvc
}
