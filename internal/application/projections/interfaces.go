package projections

import (
	"context"
	"errors"

	"portal/internal/domain/course"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
	"portal/internal/domain/student"
)

// ErrNotLoggedIn signals that the role has no session record. Handlers
// redirect to the role's login screen; nothing is rendered.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionRecords defines the session store surface the projections need.
// Every Load is a fresh read of the store.
type SessionRecords interface {
	Load(ctx context.Context, browserID string, ro role.Role) (session.Record, bool, error)
}

// CollectionCache stores fetched tab collections per browser, keyed by the
// role's cache key for the tab.
type CollectionCache interface {
	Get(ctx context.Context, browserID, key string) (string, bool, error)
	Set(ctx context.Context, browserID, key, value string) error
}

// StudentAPI defines the upstream surface for the faculty student listing.
type StudentAPI interface {
	Students(ctx context.Context, facultyID string) ([]student.Student, error)
}

// CourseAPI defines the upstream surface for the section course listing.
type CourseAPI interface {
	Courses(ctx context.Context, section string) ([]course.Course, error)
}
