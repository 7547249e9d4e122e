package aggregate

import (
	"reflect"
	"testing"

	"github.com/franz/course-analyzer/internal/catalog"
)

func TestParticipantsByInstitution(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Institution: "InstB", Subject: "Math", Participants: 10},
		{Institution: "InstA", Subject: "Math", Participants: 100},
		{Institution: "InstA", Subject: "History", Participants: 50},
	})

	got := ParticipantsByInstitution(cat)
	expected := []Entry{{"InstA", 150}, {"InstB", 10}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestParticipantsByInstitutionConservation(t *testing.T) {
	courses := []catalog.Course{
		{Institution: "MITx", Participants: 36105},
		{Institution: "HarvardX", Participants: 62709},
		{Institution: "MITx", Participants: 12},
		{Institution: "HarvardX", Participants: 0},
		{Institution: "BerkeleyX", Participants: 7},
	}
	cat := catalog.New(courses)

	total := 0
	for _, c := range courses {
		total += c.Participants
	}

	if got := Sum(ParticipantsByInstitution(cat)); got != total {
		t.Errorf("grouping lost participants: expected %d, got %d", total, got)
	}
	if got := Sum(ParticipantsByInstitutionAndSubject(cat)); got != total {
		t.Errorf("subject grouping lost participants: expected %d, got %d", total, got)
	}
}

func TestParticipantsByInstitutionAndSubject(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Institution: "MITx", Subject: "Computer Science", Participants: 30},
		{Institution: "HarvardX", Subject: "History", Participants: 40},
		{Institution: "MITx", Subject: "Computer Science", Participants: 10},
		{Institution: "HarvardX", Subject: "Computer Science", Participants: 5},
		{Institution: "HarvardX", Subject: "Biology", Participants: 40},
	})

	got := ParticipantsByInstitutionAndSubject(cat)
	expected := []Entry{
		{"HarvardX-Biology", 40},
		{"HarvardX-History", 40},
		{"MITx-Computer Science", 40},
		{"HarvardX-Computer Science", 5},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Total < cur.Total || (prev.Total == cur.Total && prev.Key > cur.Key) {
			t.Errorf("entries %d and %d out of order: %v, %v", i-1, i, prev, cur)
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	cat := catalog.New(nil)
	if got := ParticipantsByInstitution(cat); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
	if got := ParticipantsByInstitutionAndSubject(cat); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}
