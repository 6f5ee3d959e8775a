package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/statemachine"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils/accounting"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// QuoteRemittance prices amount against an active profile. Nothing is persisted.
func (s *transactionService) QuoteRemittance(ctx context.Context, profileID string, amount string) (*dto.QuoteResponse, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrValidation, amount)
	}
	profile, err := s.activeProfile(ctx, s.store, profileID)
	if err != nil {
		return nil, err
	}
	q, err := accounting.Calculate(profile.CommissionTerms, value)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		ProfileID:       profile.ProfileID,
		Amount:          q.Amount,
		Commission:      q.Commission,
		Total:           q.Total,
		DeliveredAmount: q.DeliveredAmount,
		ExchangeRate:    q.ExchangeRate,
		SourceCurrency:  profile.SourceCurrency,
		TargetCurrency:  profile.TargetCurrency,
	}, nil
}

func (s *transactionService) activeProfile(ctx context.Context, st portsrepo.Store, profileID string) (*domain.CommissionProfile, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: commission profile is required", apperrors.ErrValidation)
	}
	profile, err := st.Commission().FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: commission profile %s is inactive", apperrors.ErrValidation, profileID)
	}
	return profile, nil
}

// validateRecipient checks the account handle the delivery method needs.
func validateRecipient(method domain.DeliveryMethod, r dto.RecipientRequest) error {
	if err := validate.Var(r.Name, "required"); err != nil {
		return fmt.Errorf("%w: recipient name is required", apperrors.ErrValidation)
	}
	if err := validate.Var(r.Phone, "required,e164"); err != nil {
		return fmt.Errorf("%w: recipient phone must be in E.164 format", apperrors.ErrValidation)
	}

	account := ""
	if r.Account != nil {
		account = *r.Account
	}
	var rule string
	switch method {
	case domain.DeliveryCard:
		rule = "required,credit_card"
	case domain.DeliveryTransfer, domain.DeliveryWallet:
		rule = "required,min=4,max=64"
	case domain.DeliveryCash:
		return nil
	default:
		return fmt.Errorf("%w: unknown delivery method %s", apperrors.ErrValidation, method)
	}
	if err := validate.Var(account, rule); err != nil {
		return fmt.Errorf("%w: recipient account is not valid for %s delivery", apperrors.ErrValidation, method)
	}
	return nil
}

// CreateRemittance snapshots the profile into the remittance and recomputes all figures.
// A client-supplied delivered amount is only compared, never stored.
func (s *transactionService) CreateRemittance(ctx context.Context, actor domain.Actor, req dto.CreateRemittanceRequest) (*domain.Transaction, error) {
	if err := s.Authorize(ctx, actor, domain.ActionCreate, nil); err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx)

	var created *domain.Transaction
	queued := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		profile, err := s.activeProfile(ctx, st, req.ProfileID)
		if err != nil {
			return err
		}

		var q accounting.Quote
		if req.ExpectedDeliveredAmount != nil {
			q, err = accounting.VerifyDeliveredAmount(profile.CommissionTerms, req.Amount, *req.ExpectedDeliveredAmount)
		} else {
			q, err = accounting.Calculate(profile.CommissionTerms, req.Amount)
		}
		if err != nil {
			return err
		}
		if err := validateRecipient(profile.DeliveryMethod, req.Recipient); err != nil {
			return err
		}

		now := s.Now()
		txn := &domain.Transaction{
			TransactionID:  s.newID(),
			Kind:           domain.KindRemittance,
			OwnerID:        actor.UserID,
			ContactPhone:   req.ContactPhone,
			Status:         statemachine.RemittanceStatus.Initial(),
			PaymentStatus:  statemachine.Payment.Initial(),
			InventoryState: domain.InventoryNone,
			Amount:         q.Amount,
			CurrencyCode:   profile.SourceCurrency,
			Remittance: &domain.RemittanceDetails{
				ProfileID:        profile.ProfileID,
				Terms:            profile.CommissionTerms,
				DeliveryMethod:   profile.DeliveryMethod,
				TargetCurrency:   profile.TargetCurrency,
				Commission:       q.Commission,
				Total:            q.Total,
				DeliveredAmount:  q.DeliveredAmount,
				RecipientName:    req.Recipient.Name,
				RecipientPhone:   req.Recipient.Phone,
				RecipientUserID:  req.Recipient.UserID,
				RecipientAccount: req.Recipient.Account,
			},
			AuditFields: domain.NewAuditFields(actor.UserID, now),
		}

		queued, err = s.persistNew(ctx, st, txn, actor)
		if err != nil {
			return err
		}
		created = txn
		return nil
	})
	if err != nil {
		s.logFailure(ctx, logger.With(slog.String("operation", "create_remittance")), err)
		return nil, err
	}

	logger.Info("Remittance created",
		slog.String("transaction_id", created.TransactionID),
		slog.String("sequence_number", created.SequenceNumber),
		slog.String("delivered_amount", created.Remittance.DeliveredAmount.String()))
	if queued {
		s.wake()
	}
	return created, nil
}
