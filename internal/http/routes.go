package httpx

import (
	"log/slog"
	"net/http"

	"github.com/edunexa/academy-api/internal/core"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/observability/statsd"
	"github.com/edunexa/academy-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth                *service.AuthService
	Users               *service.UserService
	Branches            *service.BranchService
	Courses             *service.CourseService
	Faculty             *service.FacultyService
	Students            *service.StudentService
	OutstandingStudents *service.OutstandingStudentService
	Events              *service.EventService
	Testimonials        *service.TestimonialService
	Inquiries           *service.InquiryService

	// Catalog, when set, serves public list endpoints from the versioned
	// response cache.
	Catalog *core.CatalogCache

	// Metrics, when set, receives catalog cache hit/miss counters.
	Metrics statsd.Sink

	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every route carries the
// guard the authorization matrix assigns it; catalog reads stay public.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	if services.Auth == nil {
		panic("router requires an auth service") //nolint:forbidigo // Fail fast during server setup.
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	guard := AuthGuard{Svc: services.Auth, CookieDomain: services.CookieDomain}
	registerAuthRoutes(mux, authHandlers, guard)

	guards := routeGuards{guard: guard}
	registerHomeRoute(mux, services, guards)
	registerCatalogRoutes(mux, services, guards)
	registerStudentRoutes(mux, services, guards)
	registerInquiryRoutes(mux, services, guards)
	registerUserRoutes(mux, services, guards)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return SectionDetection()(mux)
}

// routeGuards builds the middleware wrappers used across route groups.
type routeGuards struct {
	guard AuthGuard
}

func (g routeGuards) public(h http.Handler) http.Handler { return h }

func (g routeGuards) adminOnly(h http.Handler) http.Handler {
	return g.guard.RequireRole(domainauth.RoleAdmin)(h)
}

func (g routeGuards) staffOnly(h http.Handler) http.Handler {
	return g.guard.RequireRole(domainauth.RoleAdmin, domainauth.RoleFaculty)(h)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, guard AuthGuard) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
	mux.Handle("PATCH /api/auth/profile", guard.RequireAuth()(http.HandlerFunc(h.UpdateProfile)))

	// SSO endpoints are harmless under password mode: BeginLogin reports the
	// flow as unconfigured.
	mux.HandleFunc("GET /auth/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/callback", h.SSOCallback)
}

// registerHomeRoute wires the aggregated landing payload. It is public and
// reads only active/published entries, so it needs no guard.
func registerHomeRoute(mux *http.ServeMux, services RouterServices, g routeGuards) {
	home := &HomeHandlers{
		Branches:            services.Branches.List,
		Courses:             services.Courses.List,
		Events:              services.Events.List,
		Testimonials:        services.Testimonials.List,
		OutstandingStudents: services.OutstandingStudents.List,
	}
	mux.Handle("GET /api/home", g.public(http.HandlerFunc(home.Home)))
}

// registerCatalogRoutes wires the publicly readable resources. Writes stay
// admin-only and list responses go through the catalog cache.
func registerCatalogRoutes(mux *http.ServeMux, services RouterServices, g routeGuards) {
	branches := NewBranchHandlers(services.Branches)
	branches.Cache, branches.Resource = services.Catalog, service.CatalogBranches
	branches.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/branches",
		Create:  branches.Create,
		List:    branches.List,
		GetByID: branches.GetByID,
		Update:  branches.Update,
		Delete:  branches.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})

	courses := NewCourseHandlers(services.Courses)
	courses.Cache, courses.Resource = services.Catalog, service.CatalogCourses
	courses.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/courses",
		Create:  courses.Create,
		List:    courses.List,
		GetByID: courses.GetByID,
		Update:  courses.Update,
		Delete:  courses.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})

	faculty := NewFacultyHandlers(services.Faculty)
	faculty.Cache, faculty.Resource = services.Catalog, service.CatalogFaculty
	faculty.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/faculty",
		Create:  faculty.Create,
		List:    faculty.List,
		GetByID: faculty.GetByID,
		Update:  faculty.Update,
		Delete:  faculty.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})

	outstanding := NewOutstandingStudentHandlers(services.OutstandingStudents)
	outstanding.Cache, outstanding.Resource = services.Catalog, service.CatalogOutstandingStudents
	outstanding.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/outstanding-students",
		Create:  outstanding.Create,
		List:    outstanding.List,
		GetByID: outstanding.GetByID,
		Update:  outstanding.Update,
		Delete:  outstanding.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})

	events := NewEventHandlers(services.Events)
	events.Cache, events.Resource = services.Catalog, service.CatalogEvents
	events.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/events",
		Create:  events.Create,
		List:    events.List,
		GetByID: events.GetByID,
		Update:  events.Update,
		Delete:  events.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})

	testimonials := NewTestimonialHandlers(services.Testimonials)
	testimonials.Cache, testimonials.Resource = services.Catalog, service.CatalogTestimonials
	testimonials.Metrics = services.Metrics
	registerCRUD(mux, crudRoutes{
		Base:    "/api/testimonials",
		Create:  testimonials.Create,
		List:    testimonials.List,
		GetByID: testimonials.GetByID,
		Update:  testimonials.Update,
		Delete:  testimonials.Delete,
		Read:    g.public,
		Write:   g.adminOnly,
	})
}

// registerStudentRoutes wires student records: reads for staff, writes for
// admins. Student PII never goes through the public catalog cache.
func registerStudentRoutes(mux *http.ServeMux, services RouterServices, g routeGuards) {
	students := NewStudentHandlers(services.Students)
	registerCRUD(mux, crudRoutes{
		Base:    "/api/students",
		Create:  students.Create,
		List:    students.List,
		GetByID: students.GetByID,
		Update:  students.Update,
		Delete:  students.Delete,
		Read:    g.staffOnly,
		Write:   g.adminOnly,
	})
}

// registerInquiryRoutes wires contact inquiries: anyone may submit one, but
// only admins read and work the queue.
func registerInquiryRoutes(mux *http.ServeMux, services RouterServices, g routeGuards) {
	inquiries := NewInquiryHandlers(services.Inquiries)
	mux.Handle("POST /api/inquiries", g.public(http.HandlerFunc(inquiries.Create)))
	mux.Handle("GET /api/inquiries", g.adminOnly(http.HandlerFunc(inquiries.List)))
	mux.Handle("GET /api/inquiries/{id}", g.adminOnly(http.HandlerFunc(inquiries.GetByID)))
	mux.Handle("PUT /api/inquiries/{id}", g.adminOnly(http.HandlerFunc(inquiries.Update)))
	mux.Handle("DELETE /api/inquiries/{id}", g.adminOnly(http.HandlerFunc(inquiries.Delete)))
}

func registerUserRoutes(mux *http.ServeMux, services RouterServices, g routeGuards) {
	users := NewUserHandlers(services.Users)
	registerCRUD(mux, crudRoutes{
		Base:    "/api/users",
		Create:  users.Create,
		List:    users.List,
		GetByID: users.GetByID,
		Update:  users.Update,
		Delete:  users.Delete,
		Read:    g.adminOnly,
		Write:   g.adminOnly,
	})
}

// crudRoutes registers standard CRUD routes for a resource base path with
// separate guards for reads and writes.
type crudRoutes struct {
	Base    string
	Create  http.HandlerFunc
	List    http.HandlerFunc
	GetByID http.HandlerFunc
	Update  http.HandlerFunc
	Delete  http.HandlerFunc
	Read    func(http.Handler) http.Handler
	Write   func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	read := cfg.Read
	if read == nil {
		read = func(h http.Handler) http.Handler { return h }
	}
	write := cfg.Write
	if write == nil {
		write = read
	}
	mux.Handle("POST "+cfg.Base, write(cfg.Create))
	mux.Handle("GET "+cfg.Base, read(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", read(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", write(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", write(cfg.Delete))
}
