package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/accounting"
)

type commissionService struct {
	BaseService
	store portsrepo.Store
}

// NewCommissionService creates the admin service for commission profiles.
func NewCommissionService(store portsrepo.Store, clock func() time.Time) portssvc.CommissionSvcFacade {
	return &commissionService{
		BaseService: BaseService{Authorizer: NewAuthorizer(), Clock: clock},
		store:       store,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func (s *commissionService) GetProfile(ctx context.Context, profileID string) (*domain.CommissionProfile, error) {
	return s.store.Commission().FindProfileByID(ctx, profileID)
}

func (s *commissionService) ListProfiles(ctx context.Context, activeOnly bool) ([]domain.CommissionProfile, error) {
	return s.store.Commission().ListProfiles(ctx, activeOnly)
}

func validateProfile(p domain.CommissionProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile name is required", apperrors.ErrValidation)
	}
	if !p.DeliveryMethod.IsValid() {
		return fmt.Errorf("%w: unknown delivery method %q", apperrors.ErrValidation, p.DeliveryMethod)
	}
	if err := validate.Var(p.SourceCurrency, "required,iso4217"); err != nil {
		return fmt.Errorf("%w: source currency %q is not an ISO 4217 code", apperrors.ErrValidation, p.SourceCurrency)
	}
	if err := validate.Var(p.TargetCurrency, "required,iso4217"); err != nil {
		return fmt.Errorf("%w: target currency %q is not an ISO 4217 code", apperrors.ErrValidation, p.TargetCurrency)
	}
	return accounting.ValidateTerms(p.CommissionTerms)
}

func (s *commissionService) CreateProfile(ctx context.Context, actor domain.Actor, req dto.CreateCommissionProfileRequest) (*domain.CommissionProfile, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCommission, nil); err != nil {
		return nil, err
	}
	profile := domain.CommissionProfile{
		ProfileID:      uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		SourceCurrency: strings.ToUpper(req.SourceCurrency),
		TargetCurrency: strings.ToUpper(req.TargetCurrency),
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		IsActive:       true,
		CommissionTerms: domain.CommissionTerms{
			ExchangeRate:         req.ExchangeRate,
			CommissionPercentage: req.CommissionPercentage,
			CommissionFixed:      req.CommissionFixed,
			MinAmount:            req.MinAmount,
			MaxAmount:            req.MaxAmount,
		},
		AuditFields: domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.store.Commission().InsertProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to create commission profile")
		return nil, err
	}
	s.LogInfo(ctx, "Commission profile created", slog.String("profile_id", profile.ProfileID))
	return &profile, nil
}

// UpdateProfile changes a profile for future remittances. Existing remittances keep their snapshot.
func (s *commissionService) UpdateProfile(ctx context.Context, actor domain.Actor, profileID string, req dto.UpdateCommissionProfileRequest) (*domain.CommissionProfile, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCommission, nil); err != nil {
		return nil, err
	}
	var updated domain.CommissionProfile
	err := s.store.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		current, err := st.Commission().FindProfileByID(ctx, profileID)
		if err != nil {
			return err
		}
		p := *current
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.DeliveryMethod != nil {
			p.DeliveryMethod = domain.DeliveryMethod(*req.DeliveryMethod)
		}
		if req.ExchangeRate != nil {
			p.ExchangeRate = *req.ExchangeRate
		}
		if req.CommissionPercentage != nil {
			p.CommissionPercentage = *req.CommissionPercentage
		}
		if req.CommissionFixed != nil {
			p.CommissionFixed = *req.CommissionFixed
		}
		if req.MinAmount != nil {
			p.MinAmount = *req.MinAmount
		}
		if req.MaxAmount != nil {
			p.MaxAmount = *req.MaxAmount
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		if err := validateProfile(p); err != nil {
			return err
		}
		p.Touch(actor.UserID, s.Now())
		if err := st.Commission().UpdateProfile(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *commissionService) DeactivateProfile(ctx context.Context, actor domain.Actor, profileID string) error {
	inactive := false
	_, err := s.UpdateProfile(ctx, actor, profileID, dto.UpdateCommissionProfileRequest{IsActive: &inactive})
	return err
}
