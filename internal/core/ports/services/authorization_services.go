package services

import "github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"

// Authorizer decides whether actor may perform action on txn. txn is nil for actions
// that do not target an existing transaction. Denials wrap apperrors.ErrForbidden.
type Authorizer interface {
	Authorize(actor domain.Actor, action domain.Action, txn *domain.Transaction) error
}
