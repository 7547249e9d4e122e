// Package aggregate computes participant totals grouped by institution and
// by institution+subject.
package aggregate

import (
	"sort"

	"github.com/franz/course-analyzer/internal/catalog"
)

// KeySeparator joins institution and subject in grouped keys
const KeySeparator = "-"

// Entry is one group total. Results are ordered slices of entries;
// the order is part of the contract.
type Entry struct {
	Key   string `json:"key"`
	Total int    `json:"total"`
}

// ParticipantsByInstitution sums participants per institution.
// Entries are ordered by institution name, the order a stable pass over
// name-sorted records first meets each institution.
func ParticipantsByInstitution(cat *catalog.Catalog) []Entry {
	courses := cat.Courses()
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Institution < courses[j].Institution
	})

	var entries []Entry
	index := make(map[string]int)
	for _, c := range courses {
		i, ok := index[c.Institution]
		if !ok {
			i = len(entries)
			index[c.Institution] = i
			entries = append(entries, Entry{Key: c.Institution})
		}
		entries[i].Total += c.Participants
	}

	return entries
}

// ParticipantsByInstitutionAndSubject sums participants per
// "institution-subject" key, ordered by total descending then key ascending.
func ParticipantsByInstitutionAndSubject(cat *catalog.Catalog) []Entry {
	totals := make(map[string]int)
	cat.Each(func(c catalog.Course) {
		totals[c.Institution+KeySeparator+c.Subject] += c.Participants
	})

	entries := make([]Entry, 0, len(totals))
	for key, total := range totals {
		entries = append(entries, Entry{Key: key, Total: total})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}

// Sum returns the sum of all entry totals
func Sum(entries []Entry) int {
	sum := 0
	for _, e := range entries {
		sum += e.Total
	}
	return sum
}
