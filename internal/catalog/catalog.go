package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/franz/course-analyzer/internal/util"
)

// Columns of the dataset, in file order
var Columns = []string{
	"Institution",
	"Course Number",
	"Launch Date",
	"Course Title",
	"Instructors",
	"Course Subject",
	"Year",
	"Honor Code Certificates",
	"Participants (Course Content Accessed)",
	"Audited (> 50% Course Content Accessed)",
	"Certified",
	"% Audited",
	"% Certified",
	"% Certified of > 50% Course Content Accessed",
	"% Played Video",
	"% Posted in Forum",
	"% Grade Higher Than Zero",
	"Total Course Hours (Thousands)",
	"Median Hours for Certification",
	"Median Age",
	"% Male",
	"% Female",
	"% Bachelor's Degree or Higher",
}

// NumColumns is the fixed arity of a dataset row
var NumColumns = len(Columns)

// Launch date layouts accepted by the loader, tried in order
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
}

// LoadPolicy decides what happens to a malformed row
type LoadPolicy int

const (
	// PolicyAbort fails the whole load on the first malformed row
	PolicyAbort LoadPolicy = iota
	// PolicySkip drops malformed rows and records them on the catalog
	PolicySkip
)

func (p LoadPolicy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("LoadPolicy(%d)", int(p))
	}
}

// LoadOptions configures Load
type LoadOptions struct {
	Policy LoadPolicy
}

// Catalog is the immutable set of course offerings of one loaded dataset.
// It is safe for concurrent readers.
type Catalog struct {
	courses []Course
	skipped []*MalformedRecordError
}

// Load builds a Catalog from parsed field rows. Record order equals input order.
// With PolicyAbort (the default) the first malformed row fails the load and no
// catalog is returned.
func Load(rows [][]string, opts *LoadOptions) (*Catalog, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	cat := &Catalog{
		courses: make([]Course, 0, len(rows)),
	}

	for i, fields := range rows {
		course, err := parseRow(i+1, fields)
		if err != nil {
			var mre *MalformedRecordError
			if opts.Policy == PolicySkip && errors.As(err, &mre) {
				util.WarnLog("Skipping malformed row: %v", mre)
				cat.skipped = append(cat.skipped, mre)
				continue
			}
			return nil, err
		}
		cat.courses = append(cat.courses, course)
	}

	util.DebugLog("Loaded %d courses (%d rows skipped, policy=%s)", len(cat.courses), len(cat.skipped), opts.Policy)

	return cat, nil
}

// New builds a Catalog directly from records (test fixtures, adapters)
func New(courses []Course) *Catalog {
	cp := make([]Course, len(courses))
	copy(cp, courses)
	return &Catalog{courses: cp}
}

// Len returns the number of loaded courses
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Courses returns a copy of all records in load order
func (c *Catalog) Courses() []Course {
	cp := make([]Course, len(c.courses))
	copy(cp, c.courses)
	return cp
}

// Each calls fn for every record in load order. fn receives a copy.
func (c *Catalog) Each(fn func(Course)) {
	for _, course := range c.courses {
		fn(course)
	}
}

// Skipped returns the rows dropped under PolicySkip
func (c *Catalog) Skipped() []*MalformedRecordError {
	cp := make([]*MalformedRecordError, len(c.skipped))
	copy(cp, c.skipped)
	return cp
}

// Institutions returns the distinct institutions in first-seen order
func (c *Catalog) Institutions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, course := range c.courses {
		if !seen[course.Institution] {
			seen[course.Institution] = true
			out = append(out, course.Institution)
		}
	}
	return out
}

// rowParser accumulates the first field error while a row is decoded
type rowParser struct {
	row    int
	fields []string
	err    error
}

func (p *rowParser) fail(col int, err error) {
	if p.err == nil {
		p.err = &MalformedRecordError{
			Row:   p.row,
			Field: Columns[col],
			Value: p.fields[col],
			Err:   err,
		}
	}
}

func (p *rowParser) text(col int) string {
	s := stripQuotes(p.fields[col])
	if s == "" {
		p.fail(col, errors.New("empty value"))
	}
	return s
}

func (p *rowParser) int(col int) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.fields[col]))
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *rowParser) float(col int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.fields[col]), 64)
	if err != nil {
		p.fail(col, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(col, errors.New("not a finite number"))
		return 0
	}
	return v
}

func (p *rowParser) date(col int) time.Time {
	raw := strings.TrimSpace(p.fields[col])
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	p.fail(col, fmt.Errorf("unrecognized date format"))
	return time.Time{}
}

func parseRow(row int, fields []string) (Course, error) {
	if len(fields) != NumColumns {
		return Course{}, &MalformedRecordError{
			Row: row,
			Err: fmt.Errorf("expected %d fields, got %d", NumColumns, len(fields)),
		}
	}

	p := &rowParser{row: row, fields: fields}
	c := Course{
		Institution: p.text(0),
		Number:      p.text(1),
		LaunchDate:  p.date(2),
		Title:       p.text(3),
		Instructors: p.text(4),
		Subject:     p.text(5),

		Year:         p.int(6),
		HonorCode:    p.int(7),
		Participants: p.int(8),
		Audited:      p.int(9),
		Certified:    p.int(10),

		PercentAudited:     p.float(11),
		PercentCertified:   p.float(12),
		PercentCertified50: p.float(13),
		PercentVideo:       p.float(14),
		PercentForum:       p.float(15),
		GradeHigherZero:    p.float(16),

		TotalHours:               p.float(17),
		MedianHoursCertification: p.float(18),
		MedianAge:                p.float(19),
		PercentMale:              p.float(20),
		PercentFemale:            p.float(21),
		PercentDegree:            p.float(22),
	}
	if p.err != nil {
		return Course{}, p.err
	}
	return c, nil
}
