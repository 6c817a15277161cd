package ports

import (
	"context"
	"time"
)

// QueueItem is handed off after a membership change has been applied.
type QueueItem struct {
	SiteTag   string
	AccountID string
	Usernames []string
	// Hash is set when plaintext passwords were hashed before storage.
	Hash bool
	// Method is the command verb that produced the change.
	Method string
}

// PaymentVerified describes a hosted payment return that passed verification.
type PaymentVerified struct {
	SiteTag       string
	AccountID     string
	TransactionID string
	StatusCode    string
	Amount        string
	VerifiedAt    time.Time
}

// EventPublisher hands membership and payment events to downstream consumers.
type EventPublisher interface {
	PublishQueueItem(ctx context.Context, item QueueItem) error
	PublishPaymentVerified(ctx context.Context, event PaymentVerified) error
}
