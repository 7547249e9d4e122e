// Package instructor builds the instructor -> course titles index.
package instructor

import (
	"sort"

	"github.com/franz/course-analyzer/internal/catalog"
)

// Titles holds the courses an instructor taught, split by role.
// Both lists are duplicate-free and sorted ascending.
type Titles struct {
	// Primary lists courses the instructor taught alone
	Primary []string `json:"primary"`
	// Secondary lists courses taught with co-instructors
	Secondary []string `json:"secondary"`
}

// titleSet keeps insertion-free membership for one role
type titleSet map[string]struct{}

func (s titleSet) sorted() []string {
	out := make([]string, 0, len(s))
	for title := range s {
		out = append(out, title)
	}
	sort.Strings(out)
	return out
}

// CourseListByInstructor maps every instructor named in the catalog to the
// titles they taught. Every key carries both lists, possibly empty.
func CourseListByInstructor(cat *catalog.Catalog) map[string]*Titles {
	primary := make(map[string]titleSet)
	secondary := make(map[string]titleSet)

	cat.Each(func(c catalog.Course) {
		solo := c.IsIndependentlyResponsible()
		for _, name := range c.InstructorNames() {
			if _, ok := primary[name]; !ok {
				primary[name] = make(titleSet)
				secondary[name] = make(titleSet)
			}
			if solo {
				primary[name][c.Title] = struct{}{}
			} else {
				secondary[name][c.Title] = struct{}{}
			}
		}
	})

	index := make(map[string]*Titles, len(primary))
	for name := range primary {
		index[name] = &Titles{
			Primary:   primary[name].sorted(),
			Secondary: secondary[name].sorted(),
		}
	}

	return index
}

// Names returns the instructors of an index in ascending order
func Names(index map[string]*Titles) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
