package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
)

func requireText(field, value string) (*string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	return &v, nil
}

// requireProofRef accepts only references the proof store issued for transactionID.
func requireProofRef(field, transactionID, value string) (*string, error) {
	ref, err := requireText(field, value)
	if err != nil {
		return nil, err
	}
	name, ok := strings.CutPrefix(*ref, transactionID+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %s must be a file stored for transaction %s", apperrors.ErrValidation, field, transactionID)
	}
	return ref, nil
}

// heldClaims loads the reservation rows written when stock was claimed.
func heldClaims(ctx context.Context, st portsrepo.Store, txn *domain.Transaction) ([]domain.Reservation, error) {
	claims, err := st.Transactions().FindReservations(ctx, txn.TransactionID)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 && len(txn.Lines) > 0 {
		return nil, fmt.Errorf("%w: order %s has no reservation rows", apperrors.ErrInventoryInvariant, txn.TransactionID)
	}
	return claims, nil
}

// SubmitPaymentProof attaches the owner's proof. For an order whose stock was released
// by a rejection, the same constituents are reserved again first.
func (s *transactionService) SubmitPaymentProof(ctx context.Context, actor domain.Actor, transactionID, proofRef string) (*domain.Transaction, error) {
	ref, err := requireProofRef("proof reference", transactionID, proofRef)
	if err != nil {
		return nil, err
	}
	return s.runTransition(ctx, "submit_payment_proof", actor, domain.ActionSubmitProof, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			txn := t.txn
			if txn.IsOrder() && txn.Status != domain.StatusPending {
				return fmt.Errorf("%w: payment proof can only be submitted while the order is %s", apperrors.ErrInvalidTransition, domain.StatusPending)
			}
			if txn.IsRemittance() {
				if err := t.moveStatus(domain.StatusPaymentProofUploaded, nil); err != nil {
					return err
				}
			}
			if err := t.movePayment(domain.PaymentProofUploaded, nil); err != nil {
				return err
			}

			if txn.IsOrder() && txn.InventoryState == domain.InventoryReleased {
				claims, err := heldClaims(ctx, st, txn)
				if err != nil {
					return err
				}
				if err := s.ledger.Reserve(ctx, st.Inventory(), claims); err != nil {
					return err
				}
				txn.InventoryState = domain.InventoryReserved
			}

			txn.PaymentProofRef = ref
			t.event = eventProofSubmitted
			return nil
		})
}

// ValidatePayment confirms the proof. For an order this is the only point where
// stock is permanently depleted, and the order moves to PROCESSING.
func (s *transactionService) ValidatePayment(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return s.runTransition(ctx, "validate_payment", actor, domain.ActionValidatePayment, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			txn := t.txn
			if err := t.movePayment(domain.PaymentValidated, nil); err != nil {
				return err
			}
			next := domain.StatusPaymentValidated
			if txn.IsOrder() {
				next = domain.StatusProcessing
			}
			if err := t.moveStatus(next, nil); err != nil {
				return err
			}

			if txn.IsOrder() {
				if txn.InventoryState != domain.InventoryReserved {
					return fmt.Errorf("%w: order %s holds no reservation to commit (state %s)", apperrors.ErrInventoryInvariant, txn.TransactionID, txn.InventoryState)
				}
				claims, err := heldClaims(ctx, st, txn)
				if err != nil {
					return err
				}
				if err := s.ledger.Commit(ctx, st.Inventory(), claims); err != nil {
					return err
				}
				txn.InventoryState = domain.InventoryCommitted
				txn.ProcessingStartedAt = &t.now
				txn.ProcessedBy = &actor.UserID
			}

			txn.PaymentValidatedAt = &t.now
			txn.PaymentValidatedBy = &actor.UserID
			t.event = eventPaymentValidated
			return nil
		})
}

// RejectPayment sends the payment back to PENDING for a new proof and releases
// any stock held by an order.
func (s *transactionService) RejectPayment(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error) {
	why, err := requireText("rejection reason", reason)
	if err != nil {
		return nil, err
	}
	return s.runTransition(ctx, "reject_payment", actor, domain.ActionRejectPayment, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			txn := t.txn
			if txn.IsRemittance() {
				if err := t.moveStatus(domain.StatusRejected, why); err != nil {
					return err
				}
			} else if txn.Status != domain.StatusPending {
				return fmt.Errorf("%w: payment of a %s order cannot be rejected", apperrors.ErrInvalidTransition, txn.Status)
			}
			if err := t.movePayment(domain.PaymentRejected, why); err != nil {
				return err
			}
			if err := t.movePayment(domain.PaymentPending, nil); err != nil {
				return err
			}

			if txn.IsOrder() && txn.InventoryState == domain.InventoryReserved {
				claims, err := heldClaims(ctx, st, txn)
				if err != nil {
					return err
				}
				if err := s.ledger.Release(ctx, st.Inventory(), claims); err != nil {
					return err
				}
				txn.InventoryState = domain.InventoryReleased
			}

			txn.RejectionReason = why
			t.event = eventPaymentRejected
			return nil
		})
}

// StartProcessing moves a validated remittance to PROCESSING. Orders reach PROCESSING
// through ValidatePayment, so for them this only succeeds on a PENDING order whose payment is already validated.
func (s *transactionService) StartProcessing(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return s.runTransition(ctx, "start_processing", actor, domain.ActionStartProcessing, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			txn := t.txn
			if txn.PaymentStatus != domain.PaymentValidated {
				return fmt.Errorf("%w: payment of %s is %s, not %s", apperrors.ErrInvalidTransition, txn.TransactionID, txn.PaymentStatus, domain.PaymentValidated)
			}
			if err := t.moveStatus(domain.StatusProcessing, nil); err != nil {
				return err
			}
			txn.ProcessingStartedAt = &t.now
			txn.ProcessedBy = &actor.UserID
			t.event = eventProcessing
			return nil
		})
}

// MarkShipped records that an order left the warehouse. Remittances have no shipping edge.
func (s *transactionService) MarkShipped(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return s.runTransition(ctx, "mark_shipped", actor, domain.ActionMarkShipped, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			if err := t.moveStatus(domain.StatusShipped, nil); err != nil {
				return err
			}
			t.txn.ShippedAt = &t.now
			t.txn.ShippedBy = &actor.UserID
			t.event = eventShipped
			return nil
		})
}

// ConfirmDelivery marks the goods or money as delivered, optionally with a proof.
// The registered recipient of a remittance may confirm it themselves.
func (s *transactionService) ConfirmDelivery(ctx context.Context, actor domain.Actor, transactionID string, proofRef *string) (*domain.Transaction, error) {
	var ref *string
	if proofRef != nil {
		v, err := requireProofRef("delivery proof reference", transactionID, *proofRef)
		if err != nil {
			return nil, err
		}
		ref = v
	}
	return s.runTransition(ctx, "confirm_delivery", actor, domain.ActionConfirmDelivery, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			if err := t.moveStatus(domain.StatusDelivered, nil); err != nil {
				return err
			}
			if ref != nil {
				t.txn.DeliveryProofRef = ref
			}
			t.txn.DeliveredAt = &t.now
			t.txn.DeliveredBy = &actor.UserID
			t.event = eventDelivered
			return nil
		})
}

// Complete closes a delivered transaction.
func (s *transactionService) Complete(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	return s.runTransition(ctx, "complete", actor, domain.ActionComplete, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			if err := t.moveStatus(domain.StatusCompleted, nil); err != nil {
				return err
			}
			t.txn.CompletedAt = &t.now
			t.txn.CompletedBy = &actor.UserID
			t.event = eventCompleted
			return nil
		})
}

// Cancel ends a transaction before shipment. Held stock is released; stock already
// committed by a validated payment is put back on the shelf.
func (s *transactionService) Cancel(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error) {
	why, err := requireText("cancellation reason", reason)
	if err != nil {
		return nil, err
	}
	return s.runTransition(ctx, "cancel", actor, domain.ActionCancel, transactionID,
		func(ctx context.Context, st portsrepo.Store, t *transition) error {
			txn := t.txn
			if err := t.moveStatus(domain.StatusCancelled, why); err != nil {
				return err
			}

			if txn.IsOrder() {
				switch txn.InventoryState {
				case domain.InventoryReserved:
					claims, err := heldClaims(ctx, st, txn)
					if err != nil {
						return err
					}
					if err := s.ledger.Release(ctx, st.Inventory(), claims); err != nil {
						return err
					}
					txn.InventoryState = domain.InventoryReleased
				case domain.InventoryCommitted:
					claims, err := heldClaims(ctx, st, txn)
					if err != nil {
						return err
					}
					if err := s.ledger.Restock(ctx, st.Inventory(), claims); err != nil {
						return err
					}
					txn.InventoryState = domain.InventoryRestocked
				}
			}

			txn.CancellationReason = why
			txn.CancelledAt = &t.now
			txn.CancelledBy = &actor.UserID
			t.event = eventCancelled
			return nil
		})
}
