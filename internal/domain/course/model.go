package course

// Course is one enrolled course as returned by the upstream API for a
// student's section.
type Course struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
}
