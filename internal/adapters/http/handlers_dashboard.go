package web

import (
	"errors"
	"net/http"

	"portal/internal/adapters/api"
	"portal/internal/application/listutil"
	"portal/internal/application/projections"
	"portal/internal/domain/course"
	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
	"portal/internal/domain/student"
)

// tabLink is one entry of the dashboard tab bar.
type tabLink struct {
	Tab    dashboard.Tab
	Label  string
	URL    string
	Active bool
}

// dashboardPage is the data for both dashboard templates. Tab-specific
// slices are populated only for the active tab; TabError is scoped to the
// active tab and never poisons the others.
type dashboardPage struct {
	Role          role.Role
	DisplayName   string
	ActiveTab     string // plain string so templates can compare with eq
	Tabs          []tabLink
	ProfileFields []projections.ProfileField
	TabError      string

	// Student tabs
	Courses    []course.Course
	Attendance []api.AttendanceRow

	// Faculty students tab
	Students []student.Student
	Sections []string
	Total    int
	Query    listutil.ListQuery
}

// handleDashboard renders the role's dashboard with exactly one active tab.
// Remote-backed tabs go through their projection; a tab fetch failure
// renders inline inside the tab while the rest of the page stays usable.
func handleDashboard(ro role.Role) http.HandlerFunc {
	templateName := "student_dashboard.html"
	if ro.Name == role.NameFaculty {
		templateName = "faculty_dashboard.html"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := browserID(r)
		dash, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
			Role:      ro,
			BrowserID: id,
			RawTab:    r.URL.Query().Get("tab"),
		}, projections.GetDashboardDeps{Records: deps.Records})
		if errors.Is(err, projections.ErrNotLoggedIn) {
			http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		page := dashboardPage{
			Role:          ro,
			DisplayName:   dash.Record.Field("name"),
			ActiveTab:     string(dash.ActiveTab),
			ProfileFields: dash.ProfileFields,
		}
		for _, t := range dash.Tabs {
			page.Tabs = append(page.Tabs, tabLink{
				Tab:    t,
				Label:  t.Label(),
				URL:    ro.ProfilePath + "?tab=" + string(t),
				Active: t == dash.ActiveTab,
			})
		}

		if done := loadActiveTab(w, r, ro, id, &page); done {
			return
		}
		renderTemplate(w, r, templateName, page)
	}
}

// loadActiveTab fills the page with the active tab's data. It reports true
// when it already wrote a response (the logged-out redirect).
func loadActiveTab(w http.ResponseWriter, r *http.Request, ro role.Role, id string, page *dashboardPage) bool {
	switch {
	case ro.Name == role.NameStudent && page.ActiveTab == string(dashboard.TabCourses):
		result, err := projections.QueryGetCourses(r.Context(), projections.GetCoursesQuery{BrowserID: id},
			projections.GetCoursesDeps{Records: deps.Records, Cache: deps.Cache, API: deps.API})
		if errors.Is(err, projections.ErrNotLoggedIn) {
			http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
			return true
		}
		if err != nil {
			page.TabError = tabMessage(err, "Error loading courses. Please try again later.")
			return false
		}
		page.Courses = result.Courses

	case ro.Name == role.NameStudent && page.ActiveTab == string(dashboard.TabAttendance):
		result, err := projections.QueryGetAttendance(r.Context(), projections.GetAttendanceQuery{BrowserID: id},
			projections.GetAttendanceDeps{Records: deps.Records, Provider: deps.Attendance})
		if errors.Is(err, projections.ErrNotLoggedIn) {
			http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
			return true
		}
		if err != nil {
			page.TabError = tabMessage(err, "Error loading attendance. Please try again later.")
			return false
		}
		page.Attendance = result.Rows

	case ro.Name == role.NameFaculty && page.ActiveTab == string(dashboard.TabStudents):
		result, err := projections.QueryGetStudentList(r.Context(), projections.GetStudentListQuery{
			BrowserID: id,
			List:      listutil.ParseListQuery(r.URL.Query()),
		}, projections.GetStudentListDeps{Records: deps.Records, Cache: deps.Cache, API: deps.API})
		if errors.Is(err, projections.ErrNotLoggedIn) {
			http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
			return true
		}
		if err != nil {
			page.TabError = tabMessage(err, "Failed to fetch students")
			page.Query = listutil.ParseListQuery(r.URL.Query())
			return false
		}
		page.Students = result.Students
		page.Sections = result.Sections
		page.Total = result.Total
		page.Query = result.Query
	}
	return false
}

// tabMessage maps a tab fetch error to its inline text. Projection
// sentinels carry their own wording; upstream errors surface the server's
// message; everything else falls back to the tab's generic text.
func tabMessage(err error, fallback string) string {
	if errors.Is(err, projections.ErrSectionMissing) || errors.Is(err, projections.ErrFacultyIDMissing) {
		return err.Error()
	}
	return api.UserMessage(err, fallback)
}
