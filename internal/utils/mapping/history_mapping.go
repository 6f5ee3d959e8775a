package mapping

import (
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
)

func ToModelStatusHistory(d domain.StatusHistoryEntry) models.StatusHistory {
	return models.StatusHistory{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		Machine:       string(d.Machine),
		FromState:     d.FromState,
		ToState:       d.ToState,
		ActorID:       d.ActorID,
		Reason:        d.Reason,
		CreatedAt:     d.CreatedAt,
		Sequence:      d.Sequence,
	}
}

func ToDomainStatusHistory(m models.StatusHistory) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		Machine:       domain.MachineName(m.Machine),
		FromState:     m.FromState,
		ToState:       m.ToState,
		ActorID:       m.ActorID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
		Sequence:      m.Sequence,
	}
}

func ToModelOutboxMessage(d domain.OutboxMessage) models.OutboxMessage {
	return models.OutboxMessage{
		MessageID:     d.MessageID,
		TransactionID: d.TransactionID,
		Destination:   d.Destination,
		Body:          d.Body,
		Status:        string(d.Status),
		Attempts:      d.Attempts,
		LastError:     d.LastError,
		CreatedAt:     d.CreatedAt,
		SentAt:        d.SentAt,
		ClaimedUntil:  d.ClaimedUntil,
	}
}

func ToDomainOutboxMessage(m models.OutboxMessage) domain.OutboxMessage {
	return domain.OutboxMessage{
		MessageID:     m.MessageID,
		TransactionID: m.TransactionID,
		Destination:   m.Destination,
		Body:          m.Body,
		Status:        domain.OutboxStatus(m.Status),
		Attempts:      m.Attempts,
		LastError:     m.LastError,
		CreatedAt:     m.CreatedAt,
		SentAt:        m.SentAt,
		ClaimedUntil:  m.ClaimedUntil,
	}
}
