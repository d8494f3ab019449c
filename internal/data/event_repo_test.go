package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEventRepo(db)
		branch := createTestBranch(t, db)

		starts := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
		ends := starts.Add(2 * time.Hour)
		title := fmt.Sprintf("Open Day %d", time.Now().UnixNano())

		ev, err := repo.Create(ctx, &model.CreateEventRequest{
			Title:    title,
			Location: "Main Hall",
			BranchID: &branch.ID,
			StartsAt: starts,
			EndsAt:   &ends,
		})
		require.NoError(t, err)
		require.NotEmpty(t, ev.ID)
		assert.False(t, ev.Published)
		assert.WithinDuration(t, starts, ev.StartsAt, time.Second)
		require.NotNil(t, ev.EndsAt)
		assert.WithinDuration(t, ends, *ev.EndsAt, time.Second)

		// get by id
		got, err := repo.GetByID(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)

		// publish
		published, err := repo.Update(ctx, ev.ID, model.UpdateEventRequest{
			Published: testutil.BoolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, published.Published)

		// list published only
		lst, err := repo.List(ctx, model.EventsListOptions{Published: testutil.BoolPtr(true)})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, ev.ID, lst[0].ID)

		// delete
		deleted, err := repo.Delete(ctx, ev.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, ev.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventRepo_List_AfterFilter(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEventRepo(db)

		now := time.Now().UTC().Truncate(time.Second)
		_, err := repo.Create(ctx, &model.CreateEventRequest{
			Title:    "Past Workshop",
			StartsAt: now.Add(-72 * time.Hour),
		})
		require.NoError(t, err)

		upcoming, err := repo.Create(ctx, &model.CreateEventRequest{
			Title:    "Upcoming Seminar",
			StartsAt: now.Add(72 * time.Hour),
		})
		require.NoError(t, err)

		after := now
		lst, err := repo.List(ctx, model.EventsListOptions{After: &after})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, upcoming.ID, lst[0].ID)

		all, err := repo.List(ctx, model.EventsListOptions{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestEventRepo_Create_RejectsEndBeforeStart(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewEventRepo(db)
		starts := time.Now().UTC().Add(24 * time.Hour)
		ends := starts.Add(-time.Hour)

		_, err := repo.Create(context.Background(), &model.CreateEventRequest{
			Title:    "Backwards",
			StartsAt: starts,
			EndsAt:   &ends,
		})
		require.Error(t, err)
	})
}
