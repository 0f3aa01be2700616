package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionUpdated = "transaction.updated"
	EventTypeTransactionDeleted = "transaction.deleted"
	EventTypeBatchesExpired     = "batches.expired"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeProduct     = "product"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionEventPayload builds the payload shared by transaction events.
func TransactionEventPayload(t *Transaction) map[string]any {
	payload := map[string]any{
		"transaction_id":    t.ID,
		"type":              string(t.Type),
		"total_amount":      t.TotalAmount.String(),
		"paid_amount":       t.PaidAmount.String(),
		"remaining_payment": t.RemainingPayment.String(),
		"payment_status":    string(t.PaymentStatus()),
		"date":              t.Date.UTC().Format(time.RFC3339),
		"line_count":        len(t.Lines),
	}
	if t.ProfitLoss != nil {
		payload["profit_loss"] = t.ProfitLoss.String()
	}
	if t.ReferenceID != nil {
		payload["reference_id"] = *t.ReferenceID
	}
	return payload
}

// NewTransactionEvent wraps a transaction change in an unpublished outbox event.
func NewTransactionEvent(id, eventType string, t *Transaction, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   t.ID,
		AggregateType: AggregateTypeTransaction,
		EventType:     eventType,
		Payload:       TransactionEventPayload(t),
		CreatedAt:     at,
	}
}
