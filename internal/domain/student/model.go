package student

// Student is one row of the faculty's student listing as returned by the
// upstream API. Optional fields render as "N/A" or a default at the view
// layer; the portal never fills them in.
type Student struct {
	StudentID      string `json:"student_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Section        string `json:"section"`
	Department     string `json:"department"`
	Phone          string `json:"phone,omitempty"`
	EnrollmentDate string `json:"enrollmentDate,omitempty"`
	Status         string `json:"status,omitempty"`
}

// DisplayStatus returns the status badge text, defaulting to "Active" the
// way the listing has always rendered rows without a status.
func (s Student) DisplayStatus() string {
	if s.Status == "" {
		return "Active"
	}
	return s.Status
}
