package domain

import "time"

// OutboxStatus is the delivery state of a pending notification.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSending OutboxStatus = "SENDING" // claimed by a dispatcher until ClaimedUntil
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// OutboxMessage is a notification recorded in the same unit of work as the state change it reports.
type OutboxMessage struct {
	MessageID     string       `json:"messageID"`
	TransactionID string       `json:"transactionID"`
	Destination   string       `json:"destination"` // phone-number-like handle
	Body          string       `json:"body"`
	Status        OutboxStatus `json:"status"`
	Attempts      int          `json:"attempts"`
	LastError     *string      `json:"lastError,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	SentAt        *time.Time   `json:"sentAt,omitempty"`
	ClaimedUntil  *time.Time   `json:"claimedUntil,omitempty"`
}
