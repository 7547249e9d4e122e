package instructor

import (
	"reflect"
	"sort"
	"testing"

	"github.com/franz/course-analyzer/internal/catalog"
)

func TestCourseListByInstructor(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Title: "Justice", Instructors: "Michael Sandel"},
		{Title: "Justice", Instructors: "Michael Sandel"},
		{Title: "Circuits", Instructors: "Anant Agarwal, Gerald Sussman"},
		{Title: "Ancient Greek Hero", Instructors: "Gregory Nagy"},
		{Title: "Circuits", Instructors: "Anant Agarwal, Gerald Sussman"},
		{Title: "Algorithms", Instructors: "Anant Agarwal"},
		{Title: "Archaeology", Instructors: "Michael Sandel, Gregory Nagy"},
	})

	index := CourseListByInstructor(cat)

	testCases := []struct {
		name      string
		primary   []string
		secondary []string
	}{
		{"Michael Sandel", []string{"Justice"}, []string{"Archaeology"}},
		{"Anant Agarwal", []string{"Algorithms"}, []string{"Circuits"}},
		{"Gerald Sussman", []string{}, []string{"Circuits"}},
		{"Gregory Nagy", []string{"Ancient Greek Hero"}, []string{"Archaeology"}},
	}

	if len(index) != len(testCases) {
		t.Errorf("expected %d instructors, got %d", len(testCases), len(index))
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			titles, ok := index[tc.name]
			if !ok {
				t.Fatalf("instructor %s missing", tc.name)
			}
			if titles.Primary == nil || titles.Secondary == nil {
				t.Fatal("both role lists must be present")
			}
			if !reflect.DeepEqual(titles.Primary, tc.primary) {
				t.Errorf("primary: expected %v, got %v", tc.primary, titles.Primary)
			}
			if !reflect.DeepEqual(titles.Secondary, tc.secondary) {
				t.Errorf("secondary: expected %v, got %v", tc.secondary, titles.Secondary)
			}
		})
	}
}

func TestCourseListsAreSortedAndUnique(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Title: "Zoology", Instructors: "Ada"},
		{Title: "Botany", Instructors: "Ada"},
		{Title: "Mycology", Instructors: "Ada"},
		{Title: "Botany", Instructors: "Ada"},
	})

	titles := CourseListByInstructor(cat)["Ada"]
	if !sort.StringsAreSorted(titles.Primary) {
		t.Errorf("primary titles not sorted: %v", titles.Primary)
	}
	seen := make(map[string]bool)
	for _, title := range titles.Primary {
		if seen[title] {
			t.Errorf("duplicate title %s", title)
		}
		seen[title] = true
	}
	if len(titles.Primary) != 3 {
		t.Errorf("expected 3 titles, got %v", titles.Primary)
	}
}

func TestNames(t *testing.T) {
	index := map[string]*Titles{"b": {}, "a": {}, "c": {}}
	if got := Names(index); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected order %v", got)
	}
}
