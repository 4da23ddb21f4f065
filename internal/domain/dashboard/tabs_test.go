package dashboard

import (
	"testing"

	"portal/internal/domain/role"
)

func TestParseTabDefaults(t *testing.T) {
	cases := []struct {
		role role.Role
		raw  string
		want Tab
	}{
		{role.Student, "", TabProfile},
		{role.Student, "courses", TabCourses},
		{role.Student, "nonsense", TabProfile},
		{role.Student, "students", TabProfile}, // faculty-only tab
		{role.Faculty, "students", TabStudents},
		{role.Faculty, "courses", TabProfile}, // student-only tab
		{role.Faculty, "schedule", TabSchedule},
	}
	for _, c := range cases {
		if got := ParseTab(c.role, c.raw); got != c.want {
			t.Errorf("ParseTab(%s, %q) = %q, want %q", c.role.Name, c.raw, got, c.want)
		}
	}
}

func TestTabsForRole(t *testing.T) {
	for _, tab := range TabsFor(role.Student) {
		if tab == TabStudents {
			t.Error("student tab set includes the faculty students tab")
		}
	}
	for _, tab := range TabsFor(role.Faculty) {
		if tab == TabCourses {
			t.Error("faculty tab set includes the student courses tab")
		}
	}
}

func TestRemoteBacked(t *testing.T) {
	if !RemoteBacked(role.Student, TabCourses) {
		t.Error("student courses tab should be remote backed")
	}
	if !RemoteBacked(role.Faculty, TabStudents) {
		t.Error("faculty students tab should be remote backed")
	}
	if RemoteBacked(role.Student, TabProfile) {
		t.Error("profile tab is rendered from the session record")
	}
	if RemoteBacked(role.Student, TabAttendance) {
		t.Error("attendance rows come from the provider, not the cache")
	}
}
