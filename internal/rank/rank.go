// Package rank produces ordered, de-duplicated course title lists:
// top-K rankings and filtered searches.
package rank

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/util"
)

// Metric selects the value TopCourses ranks by
type Metric string

const (
	MetricHours        Metric = "hours"
	MetricParticipants Metric = "participants"
)

// Metrics lists the accepted ranking metrics
var Metrics = []Metric{MetricHours, MetricParticipants}

type topQuery struct {
	K  int    `validate:"gte=0"`
	By Metric `validate:"oneof=hours participants"`
}

// value returns the metric of a course as a float for uniform comparison
func (m Metric) value(c *catalog.Course) float64 {
	if m == MetricHours {
		return c.TotalHours
	}
	return float64(c.Participants)
}

// TopCourses returns up to k distinct titles ordered by the metric
// descending, ties broken by title ascending. The first occurrence of a
// title decides its position.
func TopCourses(cat *catalog.Catalog, k int, by Metric) ([]string, error) {
	if err := util.ValidateStruct(&topQuery{K: k, By: by}); err != nil {
		return nil, err
	}

	courses := cat.Courses()
	sort.SliceStable(courses, func(i, j int) bool {
		vi, vj := by.value(&courses[i]), by.value(&courses[j])
		if vi != vj {
			return vi > vj
		}
		return courses[i].Title < courses[j].Title
	})

	return distinctTitles(courses, k), nil
}

// Search holds the conjunctive filters of SearchCourses
type Search struct {
	// Subject matches case-insensitively as a substring; empty matches all
	Subject           string
	MinPercentAudited float64
	MaxTotalHours     float64
}

// Matches reports whether a course passes every filter
func (s Search) Matches(c *catalog.Course) bool {
	return s.matches(c, cases.Fold())
}

func (s Search) matches(c *catalog.Course, fold cases.Caser) bool {
	if c.PercentAudited < s.MinPercentAudited || c.TotalHours > s.MaxTotalHours {
		return false
	}
	if s.Subject == "" {
		return true
	}
	return strings.Contains(fold.String(c.Subject), fold.String(s.Subject))
}

// SearchCourses returns the distinct titles of courses passing all filters,
// in ascending title order.
func SearchCourses(cat *catalog.Catalog, s Search) ([]string, error) {
	if math.IsNaN(s.MinPercentAudited) {
		return nil, &util.InvalidArgumentError{Param: "MinPercentAudited", Value: s.MinPercentAudited, Reason: "must be a number"}
	}
	if math.IsNaN(s.MaxTotalHours) {
		return nil, &util.InvalidArgumentError{Param: "MaxTotalHours", Value: s.MaxTotalHours, Reason: "must be a number"}
	}

	fold := cases.Fold()
	var matched []catalog.Course
	cat.Each(func(c catalog.Course) {
		if s.matches(&c, fold) {
			matched = append(matched, c)
		}
	})

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Title < matched[j].Title
	})

	return distinctTitles(matched, len(matched)), nil
}

// distinctTitles walks courses in order collecting up to limit unseen titles
func distinctTitles(courses []catalog.Course, limit int) []string {
	titles := make([]string, 0, min(limit, len(courses)))
	seen := make(map[string]struct{})
	for i := 0; i < len(courses) && len(titles) < limit; i++ {
		title := courses[i].Title
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}
