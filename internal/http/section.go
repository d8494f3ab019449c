package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Section identifies which portal a request belongs to. The admin dashboard
// and the public site share one API but sign in through different pages, so
// unauthenticated requests must be sent back to the right one.
type Section int

const (
	SectionGeneral Section = iota
	SectionAdmin
)

func (s Section) String() string {
	if s == SectionAdmin {
		return "admin"
	}
	return "general"
}

// LoginPath returns the sign-in page for the section.
func (s Section) LoginPath() string {
	if s == SectionAdmin {
		return "/admin/login"
	}
	return "/login"
}

type sectionKey struct{}

// SectionDetection returns a middleware that classifies the request once and
// stores the Section in the context for downstream guards.
func SectionDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), sectionKey{}, detectSection(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SectionFromRequest returns the section stored by SectionDetection, falling
// back to direct detection when the middleware was not applied.
func SectionFromRequest(r *http.Request) Section {
	if s, ok := r.Context().Value(sectionKey{}).(Section); ok {
		return s
	}
	return detectSection(r)
}

// detectSection classifies a request as admin or general. API calls carry no
// /admin prefix of their own, so the Referer decides for them.
func detectSection(r *http.Request) Section {
	if isAdminPath(r.URL.Path) {
		return SectionAdmin
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		if ref, err := url.Parse(r.Header.Get("Referer")); err == nil && isAdminPath(ref.Path) {
			return SectionAdmin
		}
	}
	return SectionGeneral
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}
