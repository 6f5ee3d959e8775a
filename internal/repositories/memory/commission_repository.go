package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

type commissionRepo struct{ s *Store }

func (r commissionRepo) FindProfileByID(_ context.Context, profileID string) (*domain.CommissionProfile, error) {
	var out domain.CommissionProfile
	err := r.s.read("FindProfileByID", func(d *dataset) error {
		p, ok := d.profiles[profileID]
		if !ok {
			return fmt.Errorf("%w: commission profile %s", apperrors.ErrNotFound, profileID)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r commissionRepo) ListProfiles(_ context.Context, activeOnly bool) ([]domain.CommissionProfile, error) {
	var out []domain.CommissionProfile
	err := r.s.read("ListProfiles", func(d *dataset) error {
		for _, p := range d.profiles {
			if activeOnly && !p.IsActive {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r commissionRepo) InsertProfile(ctx context.Context, profile domain.CommissionProfile) error {
	return r.s.write(ctx, "InsertProfile", func(d *dataset) error {
		if _, ok := d.profiles[profile.ProfileID]; ok {
			return fmt.Errorf("%w: commission profile %s", apperrors.ErrDuplicate, profile.ProfileID)
		}
		d.profiles[profile.ProfileID] = profile
		return nil
	})
}

func (r commissionRepo) UpdateProfile(ctx context.Context, profile domain.CommissionProfile) error {
	return r.s.write(ctx, "UpdateProfile", func(d *dataset) error {
		current, ok := d.profiles[profile.ProfileID]
		if !ok {
			return fmt.Errorf("%w: commission profile %s", apperrors.ErrNotFound, profile.ProfileID)
		}
		profile.CreatedAt = current.CreatedAt
		profile.CreatedBy = current.CreatedBy
		d.profiles[profile.ProfileID] = profile
		return nil
	})
}
