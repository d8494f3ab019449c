package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/observability/notify"
	"github.com/edunexa/academy-api/internal/service/inquirynotifier"
)

type stubInquiryRepo struct {
	inquiries map[string]*model.Inquiry
	nextID    int
}

func newStubInquiryRepo() *stubInquiryRepo {
	return &stubInquiryRepo{inquiries: make(map[string]*model.Inquiry)}
}

func (r *stubInquiryRepo) Create(_ context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error) {
	r.nextID++
	inq := &model.Inquiry{
		ID:        fmt.Sprintf("inq-%d", r.nextID),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    model.InquiryStatusNew,
		CreatedAt: time.Now(),
	}
	r.inquiries[inq.ID] = inq
	return inq, nil
}

func (r *stubInquiryRepo) GetByID(_ context.Context, id string) (*model.Inquiry, error) {
	if inq, ok := r.inquiries[id]; ok {
		return inq, nil
	}
	return nil, fmt.Errorf("inquiry %s not found", id)
}

func (r *stubInquiryRepo) List(_ context.Context, _ model.InquiriesListOptions) ([]*model.Inquiry, error) {
	out := make([]*model.Inquiry, 0, len(r.inquiries))
	for _, inq := range r.inquiries {
		out = append(out, inq)
	}
	return out, nil
}

func (r *stubInquiryRepo) Update(_ context.Context, id string, req model.UpdateInquiryRequest) (*model.Inquiry, error) {
	inq, ok := r.inquiries[id]
	if !ok {
		return nil, fmt.Errorf("inquiry %s not found", id)
	}
	if req.Status != nil {
		inq.Status = *req.Status
	}
	return inq, nil
}

func (r *stubInquiryRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.inquiries[id]
	delete(r.inquiries, id)
	return ok, nil
}

func TestInquiryServiceRequiresRepo(t *testing.T) {
	assert.Panics(t, func() {
		NewInquiryService(InquiryServiceOptions{})
	})
}

func TestInquiryServiceCreateNotifies(t *testing.T) {
	delivered := make(chan notify.InquiryPayload, 1)
	notifier := inquirynotifier.NewService(inquirynotifier.Options{
		Sinks: []inquirynotifier.SinkRegistration{
			{
				Name: "capture",
				Sink: notify.SinkFunc(func(_ context.Context, payload notify.InquiryPayload) error {
					delivered <- payload
					return nil
				}),
			},
		},
	})

	svc := NewInquiryService(InquiryServiceOptions{
		Repo:     newStubInquiryRepo(),
		Notifier: notifier,
	})

	inq, err := svc.Create(context.Background(), &model.CreateInquiryRequest{
		Name:    "Priya Shah",
		Email:   "priya@example.com",
		Subject: "Course fees",
		Message: "What are the fees for the summer batch?",
	})
	require.NoError(t, err)
	require.NotNil(t, inq)

	select {
	case payload := <-delivered:
		assert.Equal(t, inq.ID, payload.InquiryID)
		assert.Equal(t, "Priya Shah", payload.Name)
		assert.Equal(t, "Course fees", payload.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification delivery")
	}
}

func TestInquiryServiceCreateWithoutNotifier(t *testing.T) {
	svc := NewInquiryService(InquiryServiceOptions{Repo: newStubInquiryRepo()})

	inq, err := svc.Create(context.Background(), &model.CreateInquiryRequest{
		Name:    "Ade Bello",
		Email:   "ade@example.com",
		Message: "Do you offer evening classes?",
	})
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusNew, inq.Status)
}

func TestInquiryServiceStatusWorkflow(t *testing.T) {
	svc := NewInquiryService(InquiryServiceOptions{Repo: newStubInquiryRepo()})

	inq, err := svc.Create(context.Background(), &model.CreateInquiryRequest{
		Name:    "Ade Bello",
		Email:   "ade@example.com",
		Message: "Do you offer evening classes?",
	})
	require.NoError(t, err)

	contacted := model.InquiryStatusContacted
	updated, err := svc.Update(context.Background(), inq.ID, model.UpdateInquiryRequest{Status: &contacted})
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusContacted, updated.Status)

	ok, err := svc.Delete(context.Background(), inq.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(context.Background(), inq.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
