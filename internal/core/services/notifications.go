package services

import (
	"fmt"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils"
)

type lifecycleEvent string

const (
	eventCreated          lifecycleEvent = "created"
	eventProofSubmitted   lifecycleEvent = "proof_submitted"
	eventPaymentValidated lifecycleEvent = "payment_validated"
	eventPaymentRejected  lifecycleEvent = "payment_rejected"
	eventProcessing       lifecycleEvent = "processing"
	eventShipped          lifecycleEvent = "shipped"
	eventDelivered        lifecycleEvent = "delivered"
	eventCompleted        lifecycleEvent = "completed"
	eventCancelled        lifecycleEvent = "cancelled"
)

type notice struct {
	destination string
	body        string
}

// noticeComposer turns lifecycle events into text messages for admins, owners and recipients.
type noticeComposer struct {
	adminPhone string
}

func (n noticeComposer) compose(txn *domain.Transaction, event lifecycleEvent, actor domain.Actor) []notice {
	ref := txn.SequenceNumber
	amount := utils.FormatMoney(txn.Amount, txn.CurrencyCode)

	var out []notice
	add := func(dest, format string, args ...any) {
		if dest == "" {
			return
		}
		out = append(out, notice{destination: dest, body: fmt.Sprintf(format, args...)})
	}
	recipientPhone := ""
	if txn.Remittance != nil {
		recipientPhone = txn.Remittance.RecipientPhone
	}

	switch event {
	case eventCreated:
		add(n.adminPhone, "New %s %s for %s awaiting payment proof.", kindLabel(txn.Kind), ref, amount)
		add(txn.ContactPhone, "We received %s for %s. Upload your payment proof to continue.", ref, amount)
	case eventProofSubmitted:
		add(n.adminPhone, "Payment proof uploaded for %s (%s). Review required.", ref, amount)
	case eventPaymentValidated:
		add(txn.ContactPhone, "Your payment for %s was confirmed.", ref)
	case eventPaymentRejected:
		reason := ""
		if txn.RejectionReason != nil {
			reason = *txn.RejectionReason
		}
		add(txn.ContactPhone, "Your payment proof for %s was rejected: %s. Please upload a new one.", ref, reason)
	case eventProcessing:
		add(txn.ContactPhone, "%s is being processed.", ref)
		if txn.Remittance != nil {
			add(recipientPhone, "A transfer of %s is on its way to you (%s).",
				utils.FormatMoney(txn.Remittance.DeliveredAmount, txn.Remittance.TargetCurrency), ref)
		}
	case eventShipped:
		add(txn.ContactPhone, "%s has shipped.", ref)
	case eventDelivered:
		add(txn.ContactPhone, "%s was delivered.", ref)
		if !actor.IsAdmin() {
			add(n.adminPhone, "Recipient confirmed delivery of %s.", ref)
		}
	case eventCompleted:
		add(txn.ContactPhone, "%s is complete. Thank you.", ref)
	case eventCancelled:
		reason := ""
		if txn.CancellationReason != nil {
			reason = *txn.CancellationReason
		}
		add(txn.ContactPhone, "%s was cancelled: %s", ref, reason)
		if actor.UserID == txn.OwnerID {
			add(n.adminPhone, "Customer cancelled %s: %s", ref, reason)
		}
	}
	return out
}

func kindLabel(kind domain.TransactionKind) string {
	if kind == domain.KindRemittance {
		return "remittance"
	}
	return "order"
}
