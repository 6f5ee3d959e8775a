package statemachine

import "github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"

// OrderStatus is the product order lifecycle.
var OrderStatus = NewMachine("order", domain.StatusPending, map[domain.TransactionStatus][]domain.TransactionStatus{
	domain.StatusPending:    {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing: {domain.StatusShipped, domain.StatusCancelled},
	domain.StatusShipped:    {domain.StatusDelivered},
	domain.StatusDelivered:  {domain.StatusCompleted},
})

// RemittanceStatus is the money remittance lifecycle. REJECTED loops back on a new proof.
var RemittanceStatus = NewMachine("remittance", domain.StatusPaymentPending, map[domain.TransactionStatus][]domain.TransactionStatus{
	domain.StatusPaymentPending:       {domain.StatusPaymentProofUploaded, domain.StatusCancelled},
	domain.StatusPaymentProofUploaded: {domain.StatusPaymentValidated, domain.StatusRejected, domain.StatusCancelled},
	domain.StatusRejected:             {domain.StatusPaymentProofUploaded, domain.StatusCancelled},
	domain.StatusPaymentValidated:     {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing:           {domain.StatusDelivered},
	domain.StatusDelivered:            {domain.StatusCompleted},
})

// Payment is shared by both variants.
var Payment = NewMachine("payment", domain.PaymentPending, map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentPending:       {domain.PaymentProofUploaded},
	domain.PaymentProofUploaded: {domain.PaymentValidated, domain.PaymentRejected},
	domain.PaymentRejected:      {domain.PaymentPending},
})

// StatusMachineFor returns the lifecycle graph for kind, or nil for an unknown kind.
func StatusMachineFor(kind domain.TransactionKind) *Machine[domain.TransactionStatus] {
	switch kind {
	case domain.KindOrder:
		return OrderStatus
	case domain.KindRemittance:
		return RemittanceStatus
	}
	return nil
}
