package catalog

import (
	"strings"
	"time"
)

// InstructorSeparator separates names in the instructors field
const InstructorSeparator = ", "

// Course is one course offering (one dataset row)
type Course struct {
	Institution string
	Number      string
	LaunchDate  time.Time
	Title       string
	Instructors string
	Subject     string

	Year      int
	HonorCode int

	Participants int
	Audited      int
	Certified    int

	// Percentages on a 0-100 scale
	PercentAudited     float64
	PercentCertified   float64
	PercentCertified50 float64
	PercentVideo       float64
	PercentForum       float64
	GradeHigherZero    float64

	TotalHours               float64
	MedianHoursCertification float64
	MedianAge                float64
	PercentMale              float64
	PercentFemale            float64
	PercentDegree            float64
}

// InstructorNames splits the instructors field into individual names
func (c *Course) InstructorNames() []string {
	return strings.Split(c.Instructors, InstructorSeparator)
}

// IsIndependentlyResponsible reports whether the offering is credited to exactly one instructor
func (c *Course) IsIndependentlyResponsible() bool {
	return len(c.InstructorNames()) == 1
}

// stripQuotes removes one pair of surrounding double quotes, if present
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
