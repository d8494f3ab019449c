package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/mocks"
)

const testEventID = "event-1"

func TestEventService_Create_BumpsCatalogVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockEventRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)

	starts := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := &model.CreateEventRequest{Title: "Open Day", StartsAt: starts}
	created := &model.Event{ID: testEventID, Title: req.Title, StartsAt: starts}

	mockRepo.EXPECT().Create(gomock.Any(), req).Return(created, nil)
	mockCache.EXPECT().Increment(gomock.Any(), "catalog:version:events").Return(int64(1), nil)

	svc := NewEventService(EventServiceOptions{
		Repo:  mockRepo,
		Cache: core.NewCatalogCache(mockCache, core.DefaultCatalogCacheConfig()),
	})

	out, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, out)
}

func TestEventService_Update_BumpsCatalogVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockEventRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)

	published := true
	updated := &model.Event{ID: testEventID, Title: "Open Day", Published: published}
	mockRepo.EXPECT().Update(gomock.Any(), testEventID, gomock.Any()).Return(updated, nil)
	mockCache.EXPECT().Increment(gomock.Any(), "catalog:version:events").Return(int64(2), nil)

	svc := NewEventService(EventServiceOptions{
		Repo:  mockRepo,
		Cache: core.NewCatalogCache(mockCache, core.DefaultCatalogCacheConfig()),
	})

	out, err := svc.Update(context.Background(), testEventID, model.UpdateEventRequest{Published: &published})
	require.NoError(t, err)
	assert.True(t, out.Published)
}

func TestEventService_Delete_BumpsOnlyWhenDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockEventRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)

	gone := mockRepo.EXPECT().Delete(gomock.Any(), "missing").Return(false, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), testEventID).Return(true, nil).After(gone)
	mockCache.EXPECT().Increment(gomock.Any(), "catalog:version:events").Return(int64(3), nil)

	svc := NewEventService(EventServiceOptions{
		Repo:  mockRepo,
		Cache: core.NewCatalogCache(mockCache, core.DefaultCatalogCacheConfig()),
	})

	ok, err := svc.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(context.Background(), testEventID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEventService_ListPropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockEventRepository(ctrl)
	repoErr := errors.New("query failed")
	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, repoErr)

	svc := NewEventService(EventServiceOptions{Repo: mockRepo})

	_, err := svc.List(context.Background(), model.EventsListOptions{})
	require.ErrorIs(t, err, repoErr)
}

func TestNewEventService_PanicsWithoutRepo(t *testing.T) {
	require.Panics(t, func() {
		NewEventService(EventServiceOptions{})
	})
}
