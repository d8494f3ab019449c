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

func createTestBranch(t *testing.T, db *sql.DB) *model.Branch {
	t.Helper()
	repo := NewBranchRepo(db)
	b, err := repo.Create(context.Background(), testutil.NewBranchRequest().Build())
	require.NoError(t, err)
	return b
}

func TestCourseRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCourseRepo(db)
		branch := createTestBranch(t, db)

		name := fmt.Sprintf("course-%d", time.Now().UnixNano())
		c, err := repo.Create(ctx, &model.CreateCourseRequest{
			Name:           name,
			Description:    "Full stack development",
			DurationMonths: 6,
			FeeCents:       250000,
			BranchID:       &branch.ID,
		})
		require.NoError(t, err)
		require.NotEmpty(t, c.ID)
		assert.Equal(t, name, c.Name)
		assert.True(t, c.Active)
		require.NotNil(t, c.BranchID)
		assert.Equal(t, branch.ID, *c.BranchID)
		assert.NotZero(t, c.CreatedAt)

		// get by id
		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Name, got.Name)

		// list with branch filter
		lst, err := repo.List(ctx, model.CoursesListOptions{BranchID: &branch.ID})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, c.ID, lst[0].ID)

		// search
		q := name[:10]
		found, err := repo.List(ctx, model.CoursesListOptions{Q: &q})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(found), 1)

		// update fee and deactivate
		updated, err := repo.Update(ctx, c.ID, model.UpdateCourseRequest{
			FeeCents: int64Ptr(300000),
			Active:   testutil.BoolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(300000), updated.FeeCents)
		assert.False(t, updated.Active)

		// clearing the branch association with an empty id
		cleared, err := repo.Update(ctx, c.ID, model.UpdateCourseRequest{
			BranchID: testutil.StringPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, cleared.BranchID)

		// delete
		deleted, err := repo.Delete(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseRepo_DuplicateName(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCourseRepo(db)

		name := fmt.Sprintf("dup-course-%d", time.Now().UnixNano())
		_, err := repo.Create(ctx, &model.CreateCourseRequest{Name: name, DurationMonths: 3})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.CreateCourseRequest{Name: name, DurationMonths: 3})
		assert.ErrorIs(t, err, ErrCourseNameExists)
	})
}

func TestCourseRepo_Update_NoFields(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCourseRepo(db)

		c, err := repo.Create(ctx, testutil.NewCourseRequest().Build())
		require.NoError(t, err)

		// empty update returns the current row untouched
		same, err := repo.Update(ctx, c.ID, model.UpdateCourseRequest{})
		require.NoError(t, err)
		assert.Equal(t, c.ID, same.ID)
		assert.Equal(t, c.UpdatedAt.Unix(), same.UpdatedAt.Unix())
	})
}

func int64Ptr(v int64) *int64 { return &v }
