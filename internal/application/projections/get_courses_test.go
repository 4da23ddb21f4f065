package projections

import (
	"context"
	"errors"
	"testing"

	"portal/internal/domain/course"
	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
)

var listCourses = []course.Course{
	{CourseCode: "CS301", CourseName: "Data Structures"},
	{CourseCode: "CS302", CourseName: "Database Management"},
}

func TestQueryGetCourses_FetchesForRecordSection(t *testing.T) {
	records := studentRecords()
	cache := newMockCache()
	apiClient := &mockListAPI{courses: listCourses}

	result, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"},
		GetCoursesDeps{Records: records, Cache: cache, API: apiClient})
	if err != nil {
		t.Fatalf("QueryGetCourses: %v", err)
	}

	if result.Section != "A" {
		t.Errorf("Section = %q, want the record's section", result.Section)
	}
	if len(result.Courses) != 2 || result.FromCache {
		t.Errorf("Courses = %v, FromCache = %v", result.Courses, result.FromCache)
	}
	key := "b1:" + role.Student.CacheKey(string(dashboard.TabCourses))
	if _, ok := cache.values[key]; !ok {
		t.Error("successful fetch must be cached")
	}
}

func TestQueryGetCourses_SecondViewUsesCache(t *testing.T) {
	records := studentRecords()
	cache := newMockCache()
	apiClient := &mockListAPI{courses: listCourses}
	deps := GetCoursesDeps{Records: records, Cache: cache, API: apiClient}

	if _, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"}, deps); err != nil {
		t.Fatalf("first view: %v", err)
	}
	result, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"}, deps)
	if err != nil {
		t.Fatalf("second view: %v", err)
	}

	if !result.FromCache {
		t.Error("second view must come from the cache")
	}
	if apiClient.fetches != 1 {
		t.Errorf("fetches = %d, want 1", apiClient.fetches)
	}
}

func TestQueryGetCourses_MissingSection(t *testing.T) {
	records := &mockSessionRecords{records: map[string]session.Record{
		role.Student.StorageKey: {"registration_number": "21BCE100", "name": "Ann"},
	}}
	apiClient := &mockListAPI{}

	_, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"},
		GetCoursesDeps{Records: records, Cache: newMockCache(), API: apiClient})
	if !errors.Is(err, ErrSectionMissing) {
		t.Errorf("err = %v, want ErrSectionMissing", err)
	}
	if apiClient.fetches != 0 {
		t.Error("a record without a section must not trigger a fetch")
	}
}

func TestQueryGetCourses_NotLoggedIn(t *testing.T) {
	_, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"},
		GetCoursesDeps{Records: &mockSessionRecords{}, Cache: newMockCache(), API: &mockListAPI{}})
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestQueryGetCourses_LogoutDuringFetchDiscardsResult(t *testing.T) {
	records := studentRecords()
	records.dropAfter = 1
	cache := newMockCache()

	_, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"},
		GetCoursesDeps{Records: records, Cache: cache, API: &mockListAPI{courses: listCourses}})
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
	if len(cache.values) != 0 {
		t.Error("a fetch landing after logout must not be cached")
	}
}

func TestQueryGetCourses_FetchErrorNotCached(t *testing.T) {
	records := studentRecords()
	cache := newMockCache()
	apiClient := &mockListAPI{coursesErr: errors.New("Error loading courses. Please try again later.")}

	_, err := QueryGetCourses(context.Background(), GetCoursesQuery{BrowserID: "b1"},
		GetCoursesDeps{Records: records, Cache: cache, API: apiClient})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(cache.values) != 0 {
		t.Error("errors must never be cached")
	}
}
