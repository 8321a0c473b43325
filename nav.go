package lrs

// NavEntry is one link in the authenticated navigation shell.
type NavEntry struct {
	Label string
	Path  string
}

// NavEntries returns the navigation links visible to a role. Visibility is a
// pure function of the role: every authenticated role sees the dashboard and
// the public schedule list, lecturers additionally manage courses,
// enrollments, schedules and notification preferences, and super admins
// create user accounts.
func NavEntries(role Role) []NavEntry {
	entries := []NavEntry{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Public Schedules", Path: "/"},
	}

	switch role {
	case RoleLecturer:
		entries = append(entries,
			NavEntry{Label: "Manage Courses", Path: "/courses"},
			NavEntry{Label: "Manage Enrollments", Path: "/enrollments"},
			NavEntry{Label: "Manage Schedules", Path: "/schedules"},
			NavEntry{Label: "Notification Preferences", Path: "/notifications"},
		)
	case RoleSuperAdmin:
		entries = append(entries,
			NavEntry{Label: "Create User Accounts", Path: "/users"},
		)
	}

	return entries
}
