package notify

import (
	"context"
	"time"
)

// InquiryPayload captures the canonical data we emit when a new contact
// inquiry arrives.
type InquiryPayload struct {
	InquiryID  string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

// Sink describes a destination capable of consuming inquiry notifications.
type Sink interface {
	SendInquiry(ctx context.Context, payload InquiryPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload InquiryPayload) error

// SendInquiry implements the Sink interface.
func (f SinkFunc) SendInquiry(ctx context.Context, payload InquiryPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
