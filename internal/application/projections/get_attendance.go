package projections

import (
	"context"

	"portal/internal/adapters/api"
	"portal/internal/domain/role"
)

// GetAttendanceQuery carries input for the student attendance summary.
type GetAttendanceQuery struct {
	BrowserID string
}

// GetAttendanceResult carries the per-subject attendance rows.
type GetAttendanceResult struct {
	Rows []api.AttendanceRow
}

// GetAttendanceDeps holds dependencies for the attendance summary.
type GetAttendanceDeps struct {
	Records  SessionRecords
	Provider api.AttendanceProvider
}

// QueryGetAttendance returns the logged-in student's attendance summary.
// PRE: BrowserID is non-empty
// POST: ErrNotLoggedIn when no student record exists
func QueryGetAttendance(ctx context.Context, query GetAttendanceQuery, deps GetAttendanceDeps) (GetAttendanceResult, error) {
	rec, ok, err := deps.Records.Load(ctx, query.BrowserID, role.Student)
	if err != nil {
		return GetAttendanceResult{}, err
	}
	if !ok {
		return GetAttendanceResult{}, ErrNotLoggedIn
	}

	rows, err := deps.Provider.Attendance(ctx, rec.Field(role.Student.IDField))
	if err != nil {
		return GetAttendanceResult{}, err
	}
	return GetAttendanceResult{Rows: rows}, nil
}
