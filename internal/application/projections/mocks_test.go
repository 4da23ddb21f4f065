package projections

import (
	"context"

	"portal/internal/domain/course"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
	"portal/internal/domain/student"
)

// mockSessionRecords serves scripted records per role. Setting dropAfter
// makes the record disappear after that many Loads, simulating a logout
// racing an in-flight fetch.
type mockSessionRecords struct {
	records   map[string]session.Record // keyed by storage key
	loadErr   error
	loads     int
	dropAfter int // 0 means never drop
}

func (m *mockSessionRecords) Load(ctx context.Context, browserID string, ro role.Role) (session.Record, bool, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	if m.dropAfter > 0 && m.loads > m.dropAfter {
		return nil, false, nil
	}
	rec, ok := m.records[ro.StorageKey]
	return rec, ok, nil
}

// mockCache is an in-memory CollectionCache.
type mockCache struct {
	values map[string]string // keyed by browserID + ":" + key
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string]string)}
}

func (m *mockCache) Get(ctx context.Context, browserID, key string) (string, bool, error) {
	v, ok := m.values[browserID+":"+key]
	return v, ok, nil
}

func (m *mockCache) Set(ctx context.Context, browserID, key, value string) error {
	m.sets++
	m.values[browserID+":"+key] = value
	return nil
}

// mockListAPI serves scripted collections and counts fetches.
type mockListAPI struct {
	students    []student.Student
	studentsErr error
	courses     []course.Course
	coursesErr  error
	fetches     int
}

func (m *mockListAPI) Students(ctx context.Context, facultyID string) ([]student.Student, error) {
	m.fetches++
	return m.students, m.studentsErr
}

func (m *mockListAPI) Courses(ctx context.Context, section string) ([]course.Course, error) {
	m.fetches++
	return m.courses, m.coursesErr
}

func facultyRecords() *mockSessionRecords {
	return &mockSessionRecords{records: map[string]session.Record{
		role.Faculty.StorageKey: {"faculty_id": "F42", "name": "Dr. Bob"},
	}}
}

func studentRecords() *mockSessionRecords {
	return &mockSessionRecords{records: map[string]session.Record{
		role.Student.StorageKey: {"registration_number": "21BCE100", "name": "Ann", "section": "A"},
	}}
}
