package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewStudentRepo(db)

		branch := createTestBranch(t, db)
		course, err := NewCourseRepo(db).Create(ctx, testutil.NewCourseRequest().WithBranchID(branch.ID).Build())
		require.NoError(t, err)

		enrolled := time.Now().UTC().Truncate(time.Second)
		req := testutil.NewStudentRequest().
			WithBranchID(branch.ID).
			WithCourseID(course.ID).
			WithEnrolledAt(enrolled).
			Build()
		s, err := repo.Create(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, s.ID)
		assert.True(t, s.Active)
		require.NotNil(t, s.BranchID)
		assert.Equal(t, branch.ID, *s.BranchID)
		require.NotNil(t, s.CourseID)
		assert.Equal(t, course.ID, *s.CourseID)
		require.NotNil(t, s.EnrolledAt)
		assert.WithinDuration(t, enrolled, *s.EnrolledAt, time.Second)

		// get by id
		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Email, got.Email)

		// list filtered by course
		lst, err := repo.List(ctx, model.StudentsListOptions{CourseID: &course.ID})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, s.ID, lst[0].ID)

		// unenroll by clearing the course association
		updated, err := repo.Update(ctx, s.ID, model.UpdateStudentRequest{
			CourseID: testutil.StringPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.CourseID)

		lst, err = repo.List(ctx, model.StudentsListOptions{CourseID: &course.ID})
		require.NoError(t, err)
		assert.Empty(t, lst)

		// delete
		deleted, err := repo.Delete(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, s.ID)
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}

func TestStudentRepo_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewStudentRepo(db)

		req := testutil.NewStudentRequest().Build()
		_, err := repo.Create(ctx, req)
		require.NoError(t, err)

		dup := testutil.NewStudentRequest().WithEmail(req.Email).Build()
		_, err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrStudentEmailExists)
	})
}
