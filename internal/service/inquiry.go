package service

import (
	"context"
	"time"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/observability/notify"
	"github.com/edunexa/academy-api/internal/service/inquirynotifier"
)

// inquiryNotifyTimeout bounds outbound webhook delivery once the request that
// created the inquiry has already been answered.
const inquiryNotifyTimeout = 10 * time.Second

// InquiryServiceOptions groups dependencies for InquiryService. Notifier is
// optional; without it new inquiries are stored silently.
type InquiryServiceOptions struct {
	Repo     core.InquiryRepository
	Notifier *inquirynotifier.Service
}

// InquiryService orchestrates contact inquiry CRUD. Inquiries never appear in
// a public catalog, so writes skip cache invalidation entirely.
type InquiryService struct {
	repo     core.InquiryRepository
	notifier *inquirynotifier.Service
}

// NewInquiryService constructs a new InquiryService.
func NewInquiryService(opts InquiryServiceOptions) *InquiryService {
	if opts.Repo == nil {
		panic("inquiry service requires a repository")
	}
	return &InquiryService{repo: opts.Repo, notifier: opts.Notifier}
}

// Create records a new inquiry. This is the one write reachable without a
// session, so it is deliberately thin. Notification fan-out happens in the
// background; the submitter never waits on a webhook.
func (s *InquiryService) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error) {
	inquiry, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && s.notifier.Enabled() {
		notifyCtx := context.WithoutCancel(ctx)
		go func() {
			nctx, cancel := context.WithTimeout(notifyCtx, inquiryNotifyTimeout)
			defer cancel()
			s.notifier.NotifyInquiry(nctx, notify.InquiryPayload{
				InquiryID:  inquiry.ID,
				Name:       inquiry.Name,
				Email:      inquiry.Email,
				Phone:      inquiry.Phone,
				Subject:    inquiry.Subject,
				Message:    inquiry.Message,
				ReceivedAt: inquiry.CreatedAt,
			})
		}()
	}

	return inquiry, nil
}

// GetByID retrieves an inquiry by ID.
func (s *InquiryService) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns inquiries matching the options.
func (s *InquiryService) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.Inquiry, error) {
	return s.repo.List(ctx, opts)
}

// Update applies follow-up changes such as status transitions and notes.
func (s *InquiryService) Update(ctx context.Context, id string, req model.UpdateInquiryRequest) (*model.Inquiry, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
