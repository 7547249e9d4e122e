package recommend

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/util"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecommendCoursesExample(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Number: "C2", Title: "Advanced", MedianAge: 40, PercentMale: 70, PercentDegree: 60},
		{Number: "C1", Title: "Intro", MedianAge: 20, PercentMale: 50, PercentDegree: 30},
	})

	got, err := RecommendCourses(cat, Profile{Age: 20, Gender: 0, Degree: 0})
	if err != nil {
		t.Fatalf("RecommendCourses failed: %v", err)
	}
	expected := []string{"Intro", "Advanced"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestDistance(t *testing.T) {
	p := Profile{Age: 30, Gender: 1, Degree: 1}
	d := Demographics{MedianAge: 26, PercentMale: 88, PercentDegree: 60}
	expected := 4.0*4 + 12*12 + 40*40
	if got := p.Distance(d); math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected %.2f, got %.2f", expected, got)
	}
}

func TestAveragesSpanAllOfferings(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Number: "6.00x", Title: "Intro CS (2012)", LaunchDate: date(2012, 9, 26), MedianAge: 20, PercentMale: 80, PercentDegree: 40},
		{Number: "6.00x", Title: "Intro CS (2013)", LaunchDate: date(2013, 9, 26), MedianAge: 30, PercentMale: 60, PercentDegree: 60},
		{Number: "6.00x", Title: "Intro CS (2012b)", LaunchDate: date(2012, 2, 1), MedianAge: 40, PercentMale: 70, PercentDegree: 50},
	})

	r := New(cat)
	d, ok := r.Demographics("6.00x")
	if !ok {
		t.Fatal("course number missing")
	}
	expected := Demographics{MedianAge: 30, PercentMale: 70, PercentDegree: 50}
	if d != expected {
		t.Errorf("expected %+v, got %+v", expected, d)
	}

	rep, _ := r.Representative("6.00x")
	if rep.Title != "Intro CS (2013)" {
		t.Errorf("expected latest offering as representative, got %s", rep.Title)
	}
}

func TestRepresentativeTieKeepsFirstSeen(t *testing.T) {
	launch := date(2014, 1, 1)
	cat := catalog.New([]catalog.Course{
		{Number: "X", Title: "First", LaunchDate: launch},
		{Number: "X", Title: "Second", LaunchDate: launch},
	})

	rep, _ := New(cat).Representative("X")
	if rep.Title != "First" {
		t.Errorf("expected first-seen offering on equal launch dates, got %s", rep.Title)
	}
}

func TestExactProfileIsNearest(t *testing.T) {
	var courses []catalog.Course
	for i := 0; i < 15; i++ {
		courses = append(courses, catalog.Course{
			Number:        fmt.Sprintf("N%02d", i),
			Title:         fmt.Sprintf("Course %02d", i),
			MedianAge:     float64(20 + i*2),
			PercentMale:   float64(30 + i*4),
			PercentDegree: float64(10 + i*5),
		})
	}
	// Target audience matches a learner aged 32, male, with a degree
	courses = append(courses, catalog.Course{Number: "T", Title: "Target", MedianAge: 32, PercentMale: 100, PercentDegree: 100})
	cat := catalog.New(courses)

	recs, err := New(cat).Recommend(Profile{Age: 32, Gender: 1, Degree: 1}, DefaultLimit)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != DefaultLimit {
		t.Fatalf("expected %d recommendations, got %d", DefaultLimit, len(recs))
	}
	if recs[0].Title != "Target" || recs[0].Score != 0 {
		t.Errorf("expected exact match first with score 0, got %+v", recs[0])
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score < recs[i-1].Score {
			t.Errorf("recommendations not ascending at %d: %v < %v", i, recs[i].Score, recs[i-1].Score)
		}
	}
}

func TestRecommendDeduplicatesTitles(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Number: "A1", Title: "Shared", MedianAge: 25},
		{Number: "A2", Title: "Shared", MedianAge: 26},
		{Number: "B", Title: "Other", MedianAge: 40},
	})

	got, err := RecommendCourses(cat, Profile{Age: 25})
	if err != nil {
		t.Fatalf("RecommendCourses failed: %v", err)
	}
	expected := []string{"Shared", "Other"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestRankTieBreaksByTitle(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Number: "2", Title: "Beta", MedianAge: 30},
		{Number: "1", Title: "Alpha", MedianAge: 30},
	})

	ranked, err := New(cat).Rank(Profile{Age: 30})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if got := Titles(ranked); !reflect.DeepEqual(got, []string{"Alpha", "Beta"}) {
		t.Errorf("expected title tie-break, got %v", got)
	}
}

func TestInvalidProfile(t *testing.T) {
	cat := catalog.New([]catalog.Course{{Number: "1", Title: "A"}})

	testCases := []struct {
		name    string
		profile Profile
	}{
		{"negative age", Profile{Age: -3}},
		{"gender out of range", Profile{Age: 20, Gender: 2}},
		{"degree out of range", Profile{Age: 20, Degree: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RecommendCourses(cat, tc.profile)
			if !errors.Is(err, util.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	if _, err := RecommendN(cat, Profile{Age: 20}, -1); !errors.Is(err, util.ErrInvalidArgument) {
		t.Errorf("negative limit: expected ErrInvalidArgument, got %v", err)
	}
}
