package policy

import (
	"net/http"
	"strings"
)

// Role values recognized at the boundary. They arrive from the upstream
// authentication layer via the X-User-Roles header; this package never
// authenticates anything itself.
const (
	RoleUser  = "USER"
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"

	HeaderUserID = "X-User-ID"
	HeaderRoles  = "X-User-Roles"
)

// Policy gates boundary-layer operations. The booking core stays
// authorization-agnostic; handlers consult the policy before calling in.
type Policy interface {
	// CanSetStatus reports whether the caller may set arbitrary booking
	// statuses (confirm, complete). Cancellation is deliberately not
	// gated here - owners may cancel their own bookings.
	CanSetStatus(roles []string) bool
	// CanViewAll reports whether the caller may list bookings across all users.
	CanViewAll(roles []string) bool
	// CanManageFacilities reports whether the caller may mutate the catalog.
	CanManageFacilities(roles []string) bool
}

type rolePolicy struct{}

func NewRolePolicy() Policy {
	return rolePolicy{}
}

func (rolePolicy) CanSetStatus(roles []string) bool {
	return hasAny(roles, RoleStaff, RoleAdmin)
}

func (rolePolicy) CanViewAll(roles []string) bool {
	return hasAny(roles, RoleStaff, RoleAdmin)
}

func (rolePolicy) CanManageFacilities(roles []string) bool {
	return hasAny(roles, RoleAdmin)
}

func hasAny(roles []string, wanted ...string) bool {
	for _, role := range roles {
		for _, w := range wanted {
			if strings.EqualFold(strings.TrimSpace(role), w) {
				return true
			}
		}
	}
	return false
}

// RolesFromRequest parses the comma-separated roles header.
func RolesFromRequest(r *http.Request) []string {
	raw := r.Header.Get(HeaderRoles)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, strings.ToUpper(p))
		}
	}
	return roles
}

// UserIDFromRequest returns the authenticated caller identity set by the
// upstream gateway.
func UserIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderUserID))
}
