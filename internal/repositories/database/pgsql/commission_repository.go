package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/mapping"
)

type PgxCommissionRepository struct {
	BaseRepository
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

const profileColumns = `profile_id, name, source_currency, target_currency, delivery_method,
	exchange_rate, commission_percentage, commission_fixed, min_amount, max_amount, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProfile(row pgx.Row) (models.CommissionProfile, error) {
	var m models.CommissionProfile
	err := row.Scan(&m.ProfileID, &m.Name, &m.SourceCurrency, &m.TargetCurrency, &m.DeliveryMethod,
		&m.ExchangeRate, &m.CommissionPercentage, &m.CommissionFixed, &m.MinAmount, &m.MaxAmount, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxCommissionRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.CommissionProfile, error) {
	m, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM commission_profiles WHERE profile_id = $1`, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: commission profile %s", apperrors.ErrNotFound, profileID)
		}
		return nil, apperrors.NewAppError(500, "failed to find commission profile "+profileID, err)
	}
	p := mapping.ToDomainCommissionProfile(m)
	return &p, nil
}

func (r *PgxCommissionRepository) ListProfiles(ctx context.Context, activeOnly bool) ([]domain.CommissionProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM commission_profiles
		WHERE is_active OR NOT $1
		ORDER BY name`, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list commission profiles", err)
	}
	defer rows.Close()

	var out []domain.CommissionProfile
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commission profile", err)
		}
		out = append(out, mapping.ToDomainCommissionProfile(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commission profiles", err)
	}
	return out, nil
}

func (r *PgxCommissionRepository) InsertProfile(ctx context.Context, profile domain.CommissionProfile) error {
	m := mapping.ToModelCommissionProfile(profile)
	_, err := r.db.Exec(ctx, `
		INSERT INTO commission_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ProfileID, m.Name, m.SourceCurrency, m.TargetCurrency, m.DeliveryMethod,
		m.ExchangeRate, m.CommissionPercentage, m.CommissionFixed, m.MinAmount, m.MaxAmount, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return classify(err, "failed to insert commission profile "+m.Name)
	}
	return nil
}

func (r *PgxCommissionRepository) UpdateProfile(ctx context.Context, profile domain.CommissionProfile) error {
	m := mapping.ToModelCommissionProfile(profile)
	tag, err := r.db.Exec(ctx, `
		UPDATE commission_profiles SET
			name = $2, source_currency = $3, target_currency = $4, delivery_method = $5,
			exchange_rate = $6, commission_percentage = $7, commission_fixed = $8,
			min_amount = $9, max_amount = $10, is_active = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE profile_id = $1`,
		m.ProfileID, m.Name, m.SourceCurrency, m.TargetCurrency, m.DeliveryMethod,
		m.ExchangeRate, m.CommissionPercentage, m.CommissionFixed,
		m.MinAmount, m.MaxAmount, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return classify(err, "failed to update commission profile "+m.ProfileID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commission profile %s", apperrors.ErrNotFound, m.ProfileID)
	}
	return nil
}
