package models

import "time"

// StatusHistory is one row of status_history.
type StatusHistory struct {
	EntryID       string    `db:"entry_id"`
	TransactionID string    `db:"transaction_id"`
	Machine       string    `db:"machine"`
	FromState     string    `db:"from_state"`
	ToState       string    `db:"to_state"`
	ActorID       string    `db:"actor_id"`
	Reason        *string   `db:"reason"`
	CreatedAt     time.Time `db:"created_at"`
	Sequence      int       `db:"sequence"`
}

// OutboxMessage is one row of notification_outbox.
type OutboxMessage struct {
	MessageID     string     `db:"message_id"`
	TransactionID string     `db:"transaction_id"`
	Destination   string     `db:"destination"`
	Body          string     `db:"body"`
	Status        string     `db:"status"`
	Attempts      int        `db:"attempts"`
	LastError     *string    `db:"last_error"`
	CreatedAt     time.Time  `db:"created_at"`
	SentAt        *time.Time `db:"sent_at"`
	ClaimedUntil  *time.Time `db:"claimed_until"`
}
