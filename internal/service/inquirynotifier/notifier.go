// Package inquirynotifier fans out new-inquiry notifications to the
// configured delivery sinks.
package inquirynotifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/edunexa/academy-api/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the inquiry notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
}

// Service dispatches inquiry events to all registered sinks.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
}

// NewService constructs an inquiry notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "inquiry_notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	return &Service{
		logger: logger,
		sinks:  sinks,
	}
}

// NotifyInquiry fans the inquiry payload out to all sinks. Delivery failures
// are logged, never returned; notifications must not fail the write that
// triggered them.
func (s *Service) NotifyInquiry(ctx context.Context, payload notify.InquiryPayload) {
	if len(s.sinks) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendInquiry(ctx, payload); err != nil {
				s.logger.Error("inquiry notifier delivery error",
					"sink", entry.Name,
					"inquiry_id", payload.InquiryID,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
