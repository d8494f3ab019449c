package authroles

import (
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups by simple string membership rules.
// Admin wins over faculty, faculty over student; unknown groups get guest,
// which no route guard accepts.
type StaticRoleMapper struct {
	AdminGroup   string
	FacultyGroup string
	StudentGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.FacultyGroup != "" && g == m.FacultyGroup {
			return domainauth.RoleFaculty
		}
	}
	for _, g := range groups {
		if m.StudentGroup != "" && g == m.StudentGroup {
			return domainauth.RoleStudent
		}
	}
	return domainauth.RoleGuest
}
