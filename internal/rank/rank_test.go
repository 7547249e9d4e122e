package rank

import (
	"errors"
	"reflect"
	"testing"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/util"
)

func fixture() *catalog.Catalog {
	return catalog.New([]catalog.Course{
		{Title: "Justice", Subject: "Humanities", Participants: 500, TotalHours: 20, PercentAudited: 30},
		{Title: "Circuits", Subject: "Computer Science", Participants: 900, TotalHours: 400, PercentAudited: 10},
		{Title: "Justice", Subject: "Humanities", Participants: 800, TotalHours: 90, PercentAudited: 25},
		{Title: "Algorithms", Subject: "Computer Science", Participants: 500, TotalHours: 300, PercentAudited: 40},
		{Title: "Biology", Subject: "Science", Participants: 100, TotalHours: 300, PercentAudited: 5},
	})
}

func TestTopCoursesByParticipants(t *testing.T) {
	cat := fixture()

	testCases := []struct {
		k        int
		expected []string
	}{
		{0, []string{}},
		{1, []string{"Circuits"}},
		{3, []string{"Circuits", "Justice", "Algorithms"}},
		{10, []string{"Circuits", "Justice", "Algorithms", "Biology"}},
	}

	for _, tc := range testCases {
		got, err := TopCourses(cat, tc.k, MetricParticipants)
		if err != nil {
			t.Fatalf("TopCourses(%d) failed: %v", tc.k, err)
		}
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("TopCourses(%d): expected %v, got %v", tc.k, tc.expected, got)
		}
	}
}

func TestTopCoursesByHoursTieBreak(t *testing.T) {
	got, err := TopCourses(fixture(), 3, MetricHours)
	if err != nil {
		t.Fatalf("TopCourses failed: %v", err)
	}
	// Algorithms and Biology tie at 300 hours; title order decides
	expected := []string{"Circuits", "Algorithms", "Biology"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestTopCoursesInvalidArguments(t *testing.T) {
	testCases := []struct {
		name string
		k    int
		by   Metric
	}{
		{"negative k", -1, MetricHours},
		{"unknown metric", 5, Metric("rating")},
		{"empty metric", 5, Metric("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TopCourses(fixture(), tc.k, tc.by)
			if !errors.Is(err, util.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no partial result, got %v", got)
			}
		})
	}
}

func TestSearchCourses(t *testing.T) {
	cat := fixture()

	testCases := []struct {
		name     string
		search   Search
		expected []string
	}{
		{"case-insensitive subject", Search{Subject: "computer", MinPercentAudited: 0, MaxTotalHours: 1000}, []string{"Algorithms", "Circuits"}},
		{"audited threshold", Search{Subject: "", MinPercentAudited: 25, MaxTotalHours: 1000}, []string{"Algorithms", "Justice"}},
		{"hours threshold", Search{Subject: "", MinPercentAudited: 0, MaxTotalHours: 90}, []string{"Justice"}},
		{"all filters", Search{Subject: "SCIENCE", MinPercentAudited: 6, MaxTotalHours: 350}, []string{"Algorithms"}},
		{"nothing matches", Search{Subject: "law", MinPercentAudited: 0, MaxTotalHours: 1000}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SearchCourses(cat, tc.search)
			if err != nil {
				t.Fatalf("SearchCourses failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
			for _, c := range cat.Courses() {
				if !tc.search.Matches(&c) {
					continue
				}
				found := false
				for _, title := range got {
					found = found || title == c.Title
				}
				if !found {
					t.Errorf("matching course %s missing from result", c.Title)
				}
			}
		})
	}
}

func TestSearchRelaxingFilterGrowsResult(t *testing.T) {
	cat := fixture()
	strict := Search{Subject: "science", MinPercentAudited: 20, MaxTotalHours: 350}
	relaxed := []Search{
		{Subject: "", MinPercentAudited: 20, MaxTotalHours: 350},
		{Subject: "science", MinPercentAudited: 0, MaxTotalHours: 350},
		{Subject: "science", MinPercentAudited: 20, MaxTotalHours: 1e9},
	}

	base, _ := SearchCourses(cat, strict)
	for _, r := range relaxed {
		got, _ := SearchCourses(cat, r)
		if len(got) < len(base) {
			t.Errorf("relaxing %+v shrank result: %v -> %v", r, base, got)
		}
	}
}
