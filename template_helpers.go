package lrs

import (
	"github.com/goliatone/go-router"
)

// TemplateUserKey is the view context key under which the current identity is
// exposed to templates.
var TemplateUserKey = "current_user"

// TemplateHelpers returns helper functions and data for the view engine's
// global context.
//
// In templates:
//
//	{% if current_user %}
//	{% if has_role(current_user, "lecturer") %}
//	{% for entry in nav_entries(current_user) %}
func TemplateHelpers() map[string]any {
	return map[string]any{
		"is_authenticated": isAuthenticated,
		"has_role":         hasRole,
		"nav_entries":      navEntriesFor,

		// Role constants for easy template access
		"roles": map[string]string{
			"student":     string(RoleStudent),
			"lecturer":    string(RoleLecturer),
			"super_admin": string(RoleSuperAdmin),
		},
	}
}

// MergeTemplateData layers the auth helpers and the guard provided identity
// under the request data so every view renders the same shell.
func MergeTemplateData(ctx router.Context, data router.ViewContext) router.ViewContext {
	merged := router.ViewContext{}

	for key, value := range TemplateHelpers() {
		merged[key] = value
	}

	if identity, ok := IdentityFromRouter(ctx); ok {
		merged[TemplateUserKey] = identity
		merged["nav"] = NavEntries(identity.Role)
	}

	for key, value := range data {
		merged[key] = value
	}

	return merged
}

// isAuthenticated checks if the provided user object carries an identity
func isAuthenticated(user any) bool {
	switch u := user.(type) {
	case *Identity:
		return u != nil
	case Identity:
		return true
	default:
		return false
	}
}

// hasRole checks if the user has the specified role
func hasRole(user any, role string) bool {
	target := Role(role)

	switch u := user.(type) {
	case *Identity:
		if u == nil {
			return false
		}
		return u.Role == target
	case Identity:
		return u.Role == target
	default:
		return false
	}
}

// navEntriesFor resolves the navigation entries for a user object, empty for
// anything unauthenticated
func navEntriesFor(user any) []NavEntry {
	switch u := user.(type) {
	case *Identity:
		if u == nil {
			return nil
		}
		return NavEntries(u.Role)
	case Identity:
		return NavEntries(u.Role)
	default:
		return nil
	}
}
