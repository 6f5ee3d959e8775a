package domain

import "time"

// MachineName identifies which transition graph a history entry belongs to.
type MachineName string

const (
	MachineStatus  MachineName = "STATUS"
	MachinePayment MachineName = "PAYMENT"
)

// StatusHistoryEntry is an append-only record of one transition. FromState is empty for the creation entry.
type StatusHistoryEntry struct {
	EntryID       string      `json:"entryID"`
	TransactionID string      `json:"transactionID"`
	Machine       MachineName `json:"machine"`
	FromState     string      `json:"fromState"`
	ToState       string      `json:"toState"`
	ActorID       string      `json:"actorID"`
	Reason        *string     `json:"reason,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	Sequence      int         `json:"sequence"` // order within one transaction
}
