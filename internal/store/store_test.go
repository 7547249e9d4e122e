package store

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/franz/course-analyzer/internal/aggregate"
	"github.com/franz/course-analyzer/internal/catalog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenAndMigrate(t *testing.T) {
	store := openTestStore(t)

	version, err := store.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	tables := []string{"exports", "courses", "participant_totals", "instructor_courses", "schema_version"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if err := store.CheckIntegrity(); err != nil {
		t.Errorf("integrity check failed: %v", err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer second.Close()

	var rows int
	if err := second.db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&rows); err != nil {
		t.Fatalf("failed to count versions: %v", err)
	}
	if rows != 1 {
		t.Errorf("migration applied %d times", rows)
	}
}

func TestExport(t *testing.T) {
	store := openTestStore(t)

	cat := catalog.New([]catalog.Course{
		{Institution: "MITx", Number: "6.002x", Title: "Circuits", Instructors: "Anant Agarwal, Gerald Sussman",
			Subject: "Engineering", Participants: 100, LaunchDate: time.Date(2012, 9, 5, 0, 0, 0, 0, time.UTC)},
		{Institution: "HarvardX", Number: "ER22x", Title: "Justice", Instructors: "Michael Sandel",
			Subject: "Humanities", Participants: 300, LaunchDate: time.Date(2013, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Institution: "MITx", Number: "6.00x", Title: "Intro CS", Instructors: "Anant Agarwal",
			Subject: "Engineering", Participants: 50, LaunchDate: time.Date(2012, 9, 26, 0, 0, 0, 0, time.UTC)},
	})

	id, err := store.Export(cat, "courses.csv")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	info, err := store.GetExport(id)
	if err != nil || info == nil {
		t.Fatalf("failed to get export: %v", err)
	}
	if info.CourseCount != 3 || info.DatasetPath != "courses.csv" {
		t.Errorf("unexpected export info %+v", info)
	}

	count, err := store.CountCourses(id)
	if err != nil {
		t.Fatalf("failed to count courses: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 stored courses, got %d", count)
	}

	totals, err := store.GetTotals(id, GroupingInstitution)
	if err != nil {
		t.Fatalf("failed to get totals: %v", err)
	}
	if !reflect.DeepEqual(totals, aggregate.ParticipantsByInstitution(cat)) {
		t.Errorf("stored totals %v differ from query result", totals)
	}

	subjects, err := store.GetTotals(id, GroupingInstitutionSubject)
	if err != nil {
		t.Fatalf("failed to get subject totals: %v", err)
	}
	if len(subjects) != 2 || subjects[0].Key != "HarvardX-Humanities" {
		t.Errorf("unexpected subject totals %v", subjects)
	}

	primary, err := store.GetInstructorTitles(id, "Anant Agarwal", RolePrimary)
	if err != nil {
		t.Fatalf("failed to get titles: %v", err)
	}
	if !reflect.DeepEqual(primary, []string{"Intro CS"}) {
		t.Errorf("unexpected primary titles %v", primary)
	}

	exports, err := store.ListExports()
	if err != nil {
		t.Fatalf("failed to list exports: %v", err)
	}
	if len(exports) != 1 || exports[0].ID != id {
		t.Errorf("unexpected exports %v", exports)
	}
}

func TestGetExportMissing(t *testing.T) {
	store := openTestStore(t)
	info, err := store.GetExport("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil for missing export, got %+v", info)
	}
}

func TestSQLiteVersion(t *testing.T) {
	if SQLiteVersion() == "" {
		t.Error("expected sqlite version")
	}
}
