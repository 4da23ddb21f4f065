package role

// Role name constants
const (
	NameStudent = "student"
	NameFaculty = "faculty"
)

// Role describes everything that differs between the student and faculty
// flows: where session records are persisted, which screens belong to the
// role, and which upstream API endpoints serve it. Guard, auth flow, and
// dashboard logic are all parameterized by a Role value instead of being
// duplicated per role.
type Role struct {
	Name string

	// StorageKey is the key under which this role's session record is
	// persisted in the browser-scoped key-value store.
	StorageKey string

	// Screen routes.
	LoginPath   string
	SignupPath  string
	ProfilePath string
	LogoutPath  string

	// Upstream API endpoints (relative to the API base URL).
	LoginEndpoint  string
	SignupEndpoint string

	// EnvelopeKey is the field of the login response body that carries the
	// session record ({"student": {...}} / {"faculty": {...}}).
	EnvelopeKey string

	// IDField is the record field holding the role-specific identifier used
	// to key dashboard fetches.
	IDField string

	// Display label for screens ("Student" / "Faculty").
	Label string
}

// Student is the student role descriptor.
var Student = Role{
	Name:           NameStudent,
	StorageKey:     "userData",
	LoginPath:      "/student-login",
	SignupPath:     "/student-signup",
	ProfilePath:    "/student-profile",
	LogoutPath:     "/student-logout",
	LoginEndpoint:  "/api/students/login",
	SignupEndpoint: "/api/students/register",
	EnvelopeKey:    "student",
	IDField:        "registration_number",
	Label:          "Student",
}

// Faculty is the faculty role descriptor.
var Faculty = Role{
	Name:           NameFaculty,
	StorageKey:     "facultyData",
	LoginPath:      "/faculty-login",
	SignupPath:     "/faculty-signup",
	ProfilePath:    "/faculty-profile",
	LogoutPath:     "/faculty-logout",
	LoginEndpoint:  "/api/faculty/login",
	SignupEndpoint: "/api/faculty/signup",
	EnvelopeKey:    "faculty",
	IDField:        "faculty_id",
	Label:          "Faculty",
}

// All lists the supported roles.
var All = []Role{Student, Faculty}

// ByName looks up a role descriptor by its name.
// PRE: none
// POST: Returns the role and true, or a zero Role and false
func ByName(name string) (Role, bool) {
	for _, r := range All {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// CacheKey returns the key-value store key for a tab's cached collection,
// derived from the role's storage key so logout can clear it alongside the
// session record.
func (r Role) CacheKey(tab string) string {
	return r.StorageKey + "." + tab
}
