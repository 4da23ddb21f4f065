package projections

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"portal/internal/domain/course"
	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
)

// ErrSectionMissing signals a session record without the section field the
// course fetch needs. The message is shown verbatim inside the tab.
var ErrSectionMissing = errors.New("User section not found. Please login again.")

// GetCoursesQuery carries input for the student course listing.
type GetCoursesQuery struct {
	BrowserID string
}

// GetCoursesResult carries the section's courses.
type GetCoursesResult struct {
	Section   string
	Courses   []course.Course
	FromCache bool
}

// GetCoursesDeps holds dependencies for the course listing.
type GetCoursesDeps struct {
	Records SessionRecords
	Cache   CollectionCache
	API     CourseAPI
}

// QueryGetCourses returns the courses for the student's section, fetching
// on first view and reusing the cached collection afterwards.
// PRE: BrowserID is non-empty
// POST: ErrNotLoggedIn when no student record exists, before and after the
// fetch; ErrSectionMissing when the record has no section field
// INVARIANT: Only successful fetches are cached; errors are never cached
func QueryGetCourses(ctx context.Context, query GetCoursesQuery, deps GetCoursesDeps) (GetCoursesResult, error) {
	rec, ok, err := deps.Records.Load(ctx, query.BrowserID, role.Student)
	if err != nil {
		return GetCoursesResult{}, err
	}
	if !ok {
		return GetCoursesResult{}, ErrNotLoggedIn
	}

	section := rec.Field("section")
	if section == "" {
		return GetCoursesResult{}, ErrSectionMissing
	}

	cacheKey := role.Student.CacheKey(string(dashboard.TabCourses))
	raw, ok, err := deps.Cache.Get(ctx, query.BrowserID, cacheKey)
	if err != nil {
		return GetCoursesResult{}, err
	}
	if ok {
		var courses []course.Course
		if err := json.Unmarshal([]byte(raw), &courses); err == nil {
			return GetCoursesResult{Section: section, Courses: courses, FromCache: true}, nil
		}
		slog.Warn("tab_cache_malformed", "key", cacheKey)
	}

	courses, err := deps.API.Courses(ctx, section)
	if err != nil {
		return GetCoursesResult{}, err
	}

	// Discard a fetch that completed after logout.
	if _, ok, err := deps.Records.Load(ctx, query.BrowserID, role.Student); err != nil {
		return GetCoursesResult{}, err
	} else if !ok {
		return GetCoursesResult{}, ErrNotLoggedIn
	}

	if encoded, err := json.Marshal(courses); err == nil {
		if err := deps.Cache.Set(ctx, query.BrowserID, cacheKey, string(encoded)); err != nil {
			slog.Warn("tab_cache_write_failed", "key", cacheKey, "error", err)
		}
	}

	return GetCoursesResult{Section: section, Courses: courses}, nil
}
