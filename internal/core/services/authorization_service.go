package services

import (
	"fmt"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
)

// roleAuthorizer implements the role matrix. It runs in addition to any row-level
// policy the store may enforce and never assumes the store already checked.
type roleAuthorizer struct{}

// NewAuthorizer returns the default role-based authorizer.
func NewAuthorizer() portssvc.Authorizer {
	return roleAuthorizer{}
}

var _ portssvc.Authorizer = roleAuthorizer{}

func (roleAuthorizer) Authorize(actor domain.Actor, action domain.Action, txn *domain.Transaction) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: no caller identity", apperrors.ErrUnauthorized)
	}

	isOwner := txn != nil && txn.OwnerID == actor.UserID
	isRecipient := txn != nil && txn.IsRemittance() && txn.IsRecipient(actor.UserID)

	allowed := false
	switch action {
	case domain.ActionCreate:
		allowed = true
	case domain.ActionSubmitProof:
		allowed = isOwner
	case domain.ActionCancel:
		allowed = isOwner || actor.IsAdmin()
	case domain.ActionView:
		allowed = isOwner || actor.IsAdmin() || isRecipient
	case domain.ActionConfirmDelivery:
		allowed = actor.IsAdmin() || isRecipient
	case domain.ActionValidatePayment,
		domain.ActionRejectPayment,
		domain.ActionStartProcessing,
		domain.ActionMarkShipped,
		domain.ActionComplete,
		domain.ActionManageCatalog,
		domain.ActionManageCommission,
		domain.ActionListAll:
		allowed = actor.IsAdmin()
	}

	if !allowed {
		return fmt.Errorf("%w: user %s (%s) may not %s", apperrors.ErrForbidden, actor.UserID, actor.Role, action)
	}
	return nil
}
