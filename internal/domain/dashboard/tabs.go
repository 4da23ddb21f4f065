package dashboard

import "portal/internal/domain/role"

// Tab identifies one named view within a post-login dashboard. Exactly one
// tab is active at a time by construction: the dashboard state is a single
// Tab value, never a set of independent visibility flags.
type Tab string

// Tab constants shared across roles.
const (
	TabProfile    Tab = "profile"
	TabAttendance Tab = "attendance"
	TabCourses    Tab = "courses"
	TabStudents   Tab = "students"
	TabSchedule   Tab = "schedule"
)

// DefaultTab is the tab shown when none is requested.
const DefaultTab = TabProfile

// studentTabs and facultyTabs fix the tab sets per role, in sidebar order.
var studentTabs = []Tab{TabProfile, TabAttendance, TabCourses, TabSchedule}
var facultyTabs = []Tab{TabProfile, TabStudents, TabAttendance, TabSchedule}

// TabsFor returns the ordered tab set for a role.
func TabsFor(r role.Role) []Tab {
	if r.Name == role.NameFaculty {
		return facultyTabs
	}
	return studentTabs
}

// ParseTab resolves a raw tab parameter against the role's tab set,
// falling back to the default tab for anything unknown.
// PRE: none
// POST: Returned tab is always a member of TabsFor(r)
func ParseTab(r role.Role, raw string) Tab {
	for _, t := range TabsFor(r) {
		if string(t) == raw {
			return t
		}
	}
	return DefaultTab
}

// Label returns the sidebar label for a tab.
func (t Tab) Label() string {
	switch t {
	case TabProfile:
		return "Profile"
	case TabAttendance:
		return "Attendance"
	case TabCourses:
		return "Courses"
	case TabStudents:
		return "Students"
	case TabSchedule:
		return "Schedule"
	default:
		return string(t)
	}
}

// RemoteBacked reports whether activating the tab requires data fetched
// from the upstream API for the given role.
func RemoteBacked(r role.Role, t Tab) bool {
	switch {
	case r.Name == role.NameStudent && t == TabCourses:
		return true
	case r.Name == role.NameFaculty && t == TabStudents:
		return true
	default:
		return false
	}
}
