// Package recommend suggests courses whose audience resembles a learner.
//
// Every course number gets a demographic profile: the mean median age,
// percent male and percent holding a bachelor's degree over all of its
// offerings. A learner's profile is placed in the same three-dimensional
// space (gender and degree scaled to 0 or 100) and courses are ranked by
// squared Euclidean distance, nearest first. The title shown for a course
// number comes from its most recently launched offering.
package recommend

import (
	"sort"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/util"
)

// DefaultLimit is the number of titles RecommendCourses returns
const DefaultLimit = 10

// Profile describes the learner asking for recommendations
type Profile struct {
	Age int `validate:"gte=0"`
	// Gender is 1 for male, 0 otherwise
	Gender int `validate:"oneof=0 1"`
	// Degree is 1 when the learner holds a bachelor's degree or higher
	Degree int `validate:"oneof=0 1"`
}

// Demographics is the averaged audience of one course number
type Demographics struct {
	MedianAge     float64 `json:"median_age"`
	PercentMale   float64 `json:"percent_male"`
	PercentDegree float64 `json:"percent_degree"`
}

// Distance returns the squared Euclidean distance between the learner and
// an audience. Lower is more similar.
func (p Profile) Distance(d Demographics) float64 {
	age := float64(p.Age) - d.MedianAge
	male := float64(p.Gender)*100 - d.PercentMale
	degree := float64(p.Degree)*100 - d.PercentDegree
	return age*age + male*male + degree*degree
}

// Recommendation is one ranked course number
type Recommendation struct {
	Number       string       `json:"number"`
	Title        string       `json:"title"`
	Score        float64      `json:"score"`
	Demographics Demographics `json:"demographics"`
}

// candidate is the precomputed state of one course number
type candidate struct {
	number         string
	demographics   Demographics
	representative catalog.Course
}

// Recommender ranks course numbers against learner profiles.
// It is immutable once built and safe for concurrent use.
type Recommender struct {
	candidates []candidate
}

// New precomputes per-number averages and representatives from a catalog
func New(cat *catalog.Catalog) *Recommender {
	type accumulator struct {
		count             int
		age, male, degree float64
		representative    catalog.Course
	}

	var order []string
	acc := make(map[string]*accumulator)

	cat.Each(func(c catalog.Course) {
		a, ok := acc[c.Number]
		if !ok {
			a = &accumulator{representative: c}
			acc[c.Number] = a
			order = append(order, c.Number)
		} else if c.LaunchDate.After(a.representative.LaunchDate) {
			// strictly later only: first-seen wins on equal dates
			a.representative = c
		}
		a.count++
		a.age += c.MedianAge
		a.male += c.PercentMale
		a.degree += c.PercentDegree
	})

	candidates := make([]candidate, 0, len(order))
	for _, number := range order {
		a := acc[number]
		n := float64(a.count)
		candidates = append(candidates, candidate{
			number: number,
			demographics: Demographics{
				MedianAge:     a.age / n,
				PercentMale:   a.male / n,
				PercentDegree: a.degree / n,
			},
			representative: a.representative,
		})
	}

	util.DebugLog("Recommender built over %d course numbers", len(candidates))

	return &Recommender{candidates: candidates}
}

// Demographics returns the averaged audience of a course number
func (r *Recommender) Demographics(number string) (Demographics, bool) {
	for _, c := range r.candidates {
		if c.number == number {
			return c.demographics, true
		}
	}
	return Demographics{}, false
}

// Representative returns the latest-launched offering of a course number
func (r *Recommender) Representative(number string) (catalog.Course, bool) {
	for _, c := range r.candidates {
		if c.number == number {
			return c.representative, true
		}
	}
	return catalog.Course{}, false
}

// Rank scores every course number against the profile, ordered by score
// ascending then title ascending. Equal score and title keep first-seen
// number order.
func (r *Recommender) Rank(p Profile) ([]Recommendation, error) {
	if err := util.ValidateStruct(&p); err != nil {
		return nil, err
	}

	ranked := make([]Recommendation, 0, len(r.candidates))
	for _, c := range r.candidates {
		ranked = append(ranked, Recommendation{
			Number:       c.number,
			Title:        c.representative.Title,
			Score:        p.Distance(c.demographics),
			Demographics: c.demographics,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].Title < ranked[j].Title
	})

	return ranked, nil
}

// Recommend returns up to limit ranked courses with distinct titles
func (r *Recommender) Recommend(p Profile, limit int) ([]Recommendation, error) {
	if limit < 0 {
		return nil, &util.InvalidArgumentError{Param: "limit", Value: limit, Reason: "must be >= 0"}
	}

	ranked, err := r.Rank(p)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, min(limit, len(ranked)))
	seen := make(map[string]struct{})
	for _, rec := range ranked {
		if len(out) >= limit {
			break
		}
		if _, ok := seen[rec.Title]; ok {
			continue
		}
		seen[rec.Title] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

// RecommendN returns up to limit distinct course titles nearest to the profile
func RecommendN(cat *catalog.Catalog, p Profile, limit int) ([]string, error) {
	recs, err := New(cat).Recommend(p, limit)
	if err != nil {
		return nil, err
	}
	return Titles(recs), nil
}

// RecommendCourses returns the ten course titles nearest to the profile
func RecommendCourses(cat *catalog.Catalog, p Profile) ([]string, error) {
	return RecommendN(cat, p, DefaultLimit)
}

// Titles extracts the titles of recommendations in order
func Titles(recs []Recommendation) []string {
	titles := make([]string, len(recs))
	for i, rec := range recs {
		titles[i] = rec.Title
	}
	return titles
}
