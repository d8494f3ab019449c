// Package devseed populates a development database with demo accounts and
// catalog content so the admin portal and public site have something to show.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edunexa/academy-api/internal/data"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/security"
	"github.com/edunexa/academy-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB           *sql.DB
	users        *service.UserService
	branches     *service.BranchService
	courses      *service.CourseService
	faculty      *service.FacultyService
	events       *service.EventService
	testimonials *service.TestimonialService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	// Minimum bcrypt cost keeps repeated seeding fast; these are throwaway
	// development credentials.
	userService := service.NewUserService(service.UserServiceOptions{
		Repo:   data.NewUserRepo(db),
		Hasher: security.NewHasher(bcrypt.MinCost),
	})

	return Services{
		DB:           db,
		users:        userService,
		branches:     service.NewBranchService(service.BranchServiceOptions{Repo: data.NewBranchRepo(db)}),
		courses:      service.NewCourseService(service.CourseServiceOptions{Repo: data.NewCourseRepo(db)}),
		faculty:      service.NewFacultyService(service.FacultyServiceOptions{Repo: data.NewFacultyRepo(db)}),
		events:       service.NewEventService(service.EventServiceOptions{Repo: data.NewEventRepo(db)}),
		testimonials: service.NewTestimonialService(service.TestimonialServiceOptions{Repo: data.NewTestimonialRepo(db)}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	failures += seedUsers(ctx, svcs.users, logger)

	branchID, branchFailures := seedBranches(ctx, svcs.branches, logger)
	failures += branchFailures

	courseID, courseFailures := seedCourses(ctx, svcs.courses, branchID, logger)
	failures += courseFailures

	failures += seedFaculty(ctx, svcs.faculty, branchID, logger)
	failures += seedEvents(ctx, svcs.events, branchID, logger)
	failures += seedTestimonials(ctx, svcs.testimonials, courseID, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedUsers(ctx context.Context, svc *service.UserService, logger *slog.Logger) int {
	failures := 0
	accounts := []model.CreateUserRequest{
		{Name: "Dev Admin", Email: "admin@academy.test", Password: "admin-dev-123", Role: domainauth.RoleAdmin},
		{Name: "Dev Faculty", Email: "faculty@academy.test", Password: "faculty-dev-123", Role: domainauth.RoleFaculty},
		{Name: "Dev Student", Email: "student@academy.test", Password: "student-dev-123", Role: domainauth.RoleStudent},
	}

	for _, req := range accounts {
		_, err := svc.Create(ctx, req)
		if errors.Is(err, data.ErrUserEmailExists) {
			logInfo(ctx, logger, "account already exists", "email", req.Email)
			continue
		}
		if err != nil {
			logError(ctx, logger, "failed to create account", "email", req.Email, "error", err)
			failures++
			continue
		}
		logInfo(ctx, logger, "account created", "email", req.Email, "role", req.Role)
	}
	return failures
}

// seedBranches creates the demo branches and returns the main branch ID so
// dependent records can reference it.
func seedBranches(ctx context.Context, svc *service.BranchService, logger *slog.Logger) (*string, int) {
	failures := 0
	var mainBranchID *string

	branches := []model.CreateBranchRequest{
		{
			Name:    "Main Campus",
			Address: "12 College Road",
			City:    "Pune",
			Phone:   "020-555-0101",
			Email:   "main@academy.test",
		},
		{
			Name:    "City Centre",
			Address: "3 Station Street",
			City:    "Pune",
			Phone:   "020-555-0102",
			Email:   "city@academy.test",
		},
	}

	for i, req := range branches {
		branch, err := svc.Create(ctx, &req)
		if errors.Is(err, data.ErrBranchNameExists) {
			logInfo(ctx, logger, "branch already exists", "name", req.Name)
			continue
		}
		if err != nil {
			logError(ctx, logger, "failed to create branch", "name", req.Name, "error", err)
			failures++
			continue
		}
		if i == 0 {
			mainBranchID = &branch.ID
		}
		logInfo(ctx, logger, "branch created", "name", branch.Name, "id", branch.ID)
	}

	return mainBranchID, failures
}

func seedCourses(
	ctx context.Context,
	svc *service.CourseService,
	branchID *string,
	logger *slog.Logger,
) (*string, int) {
	failures := 0
	var firstCourseID *string

	courses := []model.CreateCourseRequest{
		{
			Name:           "Full Stack Web Development",
			Description:    "HTML, CSS, JavaScript, and a server-side capstone project.",
			DurationMonths: 6,
			FeeCents:       4500000,
			BranchID:       branchID,
		},
		{
			Name:           "Data Analytics Foundation",
			Description:    "Spreadsheets, SQL, and introductory statistics.",
			DurationMonths: 4,
			FeeCents:       3200000,
			BranchID:       branchID,
		},
		{
			Name:           "Spoken English",
			Description:    "Conversation practice for working professionals.",
			DurationMonths: 3,
			FeeCents:       1500000,
			BranchID:       branchID,
		},
	}

	for i, req := range courses {
		course, err := svc.Create(ctx, &req)
		if errors.Is(err, data.ErrCourseNameExists) {
			logInfo(ctx, logger, "course already exists", "name", req.Name)
			continue
		}
		if err != nil {
			logError(ctx, logger, "failed to create course", "name", req.Name, "error", err)
			failures++
			continue
		}
		if i == 0 {
			firstCourseID = &course.ID
		}
		logInfo(ctx, logger, "course created", "name", course.Name, "id", course.ID)
	}

	return firstCourseID, failures
}

func seedFaculty(
	ctx context.Context,
	svc *service.FacultyService,
	branchID *string,
	logger *slog.Logger,
) int {
	failures := 0
	members := []model.CreateFacultyRequest{
		{
			Name:          "Meera Kulkarni",
			Email:         "meera.kulkarni@academy.test",
			Designation:   "Senior Instructor",
			Qualification: "M.Sc. Computer Science",
			Bio:           "Teaches the web development track.",
			BranchID:      branchID,
		},
		{
			Name:          "Rohit Deshmukh",
			Email:         "rohit.deshmukh@academy.test",
			Designation:   "Instructor",
			Qualification: "M.A. English",
			Bio:           "Leads the spoken English batches.",
			BranchID:      branchID,
		},
	}

	for _, req := range members {
		member, err := svc.Create(ctx, &req)
		if errors.Is(err, data.ErrFacultyEmailExists) {
			logInfo(ctx, logger, "faculty member already exists", "email", req.Email)
			continue
		}
		if err != nil {
			logError(ctx, logger, "failed to create faculty member", "email", req.Email, "error", err)
			failures++
			continue
		}
		logInfo(ctx, logger, "faculty member created", "name", member.Name, "id", member.ID)
	}
	return failures
}

func seedEvents(
	ctx context.Context,
	svc *service.EventService,
	branchID *string,
	logger *slog.Logger,
) int {
	failures := 0
	published := true
	openDay := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)

	events := []model.CreateEventRequest{
		{
			Title:       "Open Day",
			Description: "Campus tour and course counselling for new admissions.",
			Location:    "Main Campus",
			BranchID:    branchID,
			StartsAt:    openDay,
			Published:   &published,
		},
		{
			Title:       "Alumni Meet",
			Description: "Annual get-together for past batches.",
			Location:    "City Centre",
			StartsAt:    openDay.AddDate(0, 1, 0),
			Published:   &published,
		},
	}

	for _, req := range events {
		event, err := svc.Create(ctx, &req)
		if err != nil {
			logError(ctx, logger, "failed to create event", "title", req.Title, "error", err)
			failures++
			continue
		}
		logInfo(ctx, logger, "event created", "title", event.Title, "id", event.ID)
	}
	return failures
}

func seedTestimonials(
	ctx context.Context,
	svc *service.TestimonialService,
	courseID *string,
	logger *slog.Logger,
) int {
	failures := 0
	published := true

	testimonials := []model.CreateTestimonialRequest{
		{
			Author:    "Sunita Patil",
			Relation:  "Parent",
			Quote:     "My daughter landed her first job straight out of the web development batch.",
			Rating:    5,
			CourseID:  courseID,
			Published: &published,
		},
		{
			Author:    "Arjun Nair",
			Relation:  "Alumnus",
			Quote:     "The evening batches made it possible to study while working.",
			Rating:    4,
			Published: &published,
		},
	}

	for _, req := range testimonials {
		testimonial, err := svc.Create(ctx, &req)
		if err != nil {
			logError(ctx, logger, "failed to create testimonial", "author", req.Author, "error", err)
			failures++
			continue
		}
		logInfo(ctx, logger, "testimonial created", "author", testimonial.Author, "id", testimonial.ID)
	}
	return failures
}

func logInfo(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, msg, args...)
	}
}

func logError(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.ErrorContext(ctx, msg, args...)
	}
}
