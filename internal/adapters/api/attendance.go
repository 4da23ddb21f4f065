package api

import "context"

// AttendanceRow is one subject's attendance summary.
type AttendanceRow struct {
	Subject    string
	Total      int
	Present    int
	Percentage float64
}

// AttendanceProvider supplies a student's attendance summary. The upstream
// API exposes no attendance endpoint, so the contract stays behind this
// port; SampleAttendanceProvider is the shipped implementation.
type AttendanceProvider interface {
	Attendance(ctx context.Context, registrationNumber string) ([]AttendanceRow, error)
}

// SampleAttendanceProvider returns fixed demo rows for every student.
type SampleAttendanceProvider struct{}

// Compile-time check that SampleAttendanceProvider satisfies AttendanceProvider.
var _ AttendanceProvider = SampleAttendanceProvider{}

// NewSampleAttendanceProvider creates the demo provider.
func NewSampleAttendanceProvider() SampleAttendanceProvider {
	return SampleAttendanceProvider{}
}

// Attendance returns the demo summary regardless of student.
// PRE: none
// POST: Returns a non-empty slice; never fails
func (SampleAttendanceProvider) Attendance(_ context.Context, _ string) ([]AttendanceRow, error) {
	return []AttendanceRow{
		{Subject: "Data Structures", Total: 45, Present: 42, Percentage: 93.33},
		{Subject: "Database Management", Total: 40, Present: 38, Percentage: 95},
		{Subject: "Web Development", Total: 35, Present: 32, Percentage: 91.43},
		{Subject: "Computer Networks", Total: 42, Present: 39, Percentage: 92.86},
		{Subject: "Operating Systems", Total: 38, Present: 35, Percentage: 92.11},
	}, nil
}
