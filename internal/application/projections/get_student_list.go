package projections

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"portal/internal/application/listutil"
	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
	"portal/internal/domain/student"
)

// ErrFacultyIDMissing signals a session record without the faculty ID the
// listing fetch needs. The stored session is unusable for this tab.
var ErrFacultyIDMissing = errors.New("Failed to fetch students")

// GetStudentListQuery carries input for the faculty student listing.
type GetStudentListQuery struct {
	BrowserID string
	List      listutil.ListQuery
}

// GetStudentListResult carries the filtered listing and its filter state.
type GetStudentListResult struct {
	Students  []student.Student // filtered, upstream order preserved
	Sections  []string          // distinct sections of the full collection
	Total     int               // size of the unfiltered collection
	Query     listutil.ListQuery
	FromCache bool
}

// GetStudentListDeps holds dependencies for the student listing.
type GetStudentListDeps struct {
	Records SessionRecords
	Cache   CollectionCache
	API     StudentAPI
}

// QueryGetStudentList returns the faculty's students, fetching from the
// upstream on first view and reusing the cached collection afterwards.
// Filtering always runs over the full collection.
// PRE: BrowserID is non-empty
// POST: ErrNotLoggedIn when no faculty record exists, before and after the
// fetch; a fetch that lands after logout is discarded, not cached
// INVARIANT: Only successful fetches are cached; errors are never cached
func QueryGetStudentList(ctx context.Context, query GetStudentListQuery, deps GetStudentListDeps) (GetStudentListResult, error) {
	rec, ok, err := deps.Records.Load(ctx, query.BrowserID, role.Faculty)
	if err != nil {
		return GetStudentListResult{}, err
	}
	if !ok {
		return GetStudentListResult{}, ErrNotLoggedIn
	}

	facultyID := rec.Field(role.Faculty.IDField)
	if facultyID == "" {
		return GetStudentListResult{}, ErrFacultyIDMissing
	}

	cacheKey := role.Faculty.CacheKey(string(dashboard.TabStudents))
	students, fromCache, err := loadStudents(ctx, query.BrowserID, cacheKey, facultyID, deps)
	if err != nil {
		return GetStudentListResult{}, err
	}

	// The fetch may have raced a logout; a result arriving for a session
	// that no longer exists is thrown away.
	if !fromCache {
		if _, ok, err := deps.Records.Load(ctx, query.BrowserID, role.Faculty); err != nil {
			return GetStudentListResult{}, err
		} else if !ok {
			return GetStudentListResult{}, ErrNotLoggedIn
		}
		cacheStudents(ctx, query.BrowserID, cacheKey, students, deps.Cache)
	}

	return GetStudentListResult{
		Students:  listutil.FilterStudents(students, query.List.Search, query.List.Section),
		Sections:  listutil.DistinctSections(students),
		Total:     len(students),
		Query:     query.List,
		FromCache: fromCache,
	}, nil
}

// loadStudents returns the cached collection when present and decodable,
// otherwise fetches from the upstream. A corrupt cache entry counts as a
// miss.
func loadStudents(ctx context.Context, browserID, cacheKey, facultyID string, deps GetStudentListDeps) ([]student.Student, bool, error) {
	raw, ok, err := deps.Cache.Get(ctx, browserID, cacheKey)
	if err != nil {
		return nil, false, err
	}
	if ok {
		var students []student.Student
		if err := json.Unmarshal([]byte(raw), &students); err == nil {
			return students, true, nil
		}
		slog.Warn("tab_cache_malformed", "key", cacheKey)
	}

	students, err := deps.API.Students(ctx, facultyID)
	if err != nil {
		return nil, false, err
	}
	return students, false, nil
}

// cacheStudents stores the fetched collection; a cache write failure is
// logged and swallowed because the listing itself already succeeded.
func cacheStudents(ctx context.Context, browserID, cacheKey string, students []student.Student, cache CollectionCache) {
	raw, err := json.Marshal(students)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, browserID, cacheKey, string(raw)); err != nil {
		slog.Warn("tab_cache_write_failed", "key", cacheKey, "error", err)
	}
}
