package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/franz/course-analyzer/internal/aggregate"
	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/instructor"
	"github.com/franz/course-analyzer/internal/util"
)

// Grouping names stored in participant_totals
const (
	GroupingInstitution        = "institution"
	GroupingInstitutionSubject = "institution_subject"
)

// Instructor roles stored in instructor_courses
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
)

const dateLayout = "2006-01-02"

// ExportInfo describes one stored export run
type ExportInfo struct {
	ID           string
	DatasetPath  string
	CourseCount  int
	SkippedCount int
	ExportedAt   time.Time
}

// Export writes a catalog and its derived query results in a single
// transaction and returns the new export id.
func (s *Store) Export(cat *catalog.Catalog, datasetPath string) (string, error) {
	id := uuid.NewString()

	byInstitution := aggregate.ParticipantsByInstitution(cat)
	bySubject := aggregate.ParticipantsByInstitutionAndSubject(cat)
	index := instructor.CourseListByInstructor(cat)

	err := s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO exports (id, dataset_path, course_count, skipped_count)
			VALUES (?, ?, ?, ?)
		`, id, datasetPath, cat.Len(), len(cat.Skipped())); err != nil {
			return fmt.Errorf("failed to insert export: %w", err)
		}

		if err := insertCourses(tx, id, cat); err != nil {
			return err
		}
		if err := insertTotals(tx, id, GroupingInstitution, byInstitution); err != nil {
			return err
		}
		if err := insertTotals(tx, id, GroupingInstitutionSubject, bySubject); err != nil {
			return err
		}
		return insertInstructors(tx, id, index)
	})
	if err != nil {
		return "", err
	}

	util.DebugLog("Exported %d courses as %s", cat.Len(), id)

	return id, nil
}

func insertCourses(tx *sql.Tx, exportID string, cat *catalog.Catalog) error {
	stmt, err := tx.Prepare(`
		INSERT INTO courses (
			export_id, seq, institution, number, launch_date, title, instructors, subject,
			year, honor_code, participants, audited, certified,
			percent_audited, percent_certified, percent_certified_50, percent_video, percent_forum, grade_higher_zero,
			total_hours, median_hours_certification, median_age, percent_male, percent_female, percent_degree
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare course insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cat.Courses() {
		_, err := stmt.Exec(
			exportID, i, c.Institution, c.Number, c.LaunchDate.Format(dateLayout), c.Title, c.Instructors, c.Subject,
			c.Year, c.HonorCode, c.Participants, c.Audited, c.Certified,
			c.PercentAudited, c.PercentCertified, c.PercentCertified50, c.PercentVideo, c.PercentForum, c.GradeHigherZero,
			c.TotalHours, c.MedianHoursCertification, c.MedianAge, c.PercentMale, c.PercentFemale, c.PercentDegree,
		)
		if err != nil {
			return fmt.Errorf("failed to insert course %d: %w", i, err)
		}
	}

	return nil
}

func insertTotals(tx *sql.Tx, exportID, grouping string, entries []aggregate.Entry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO participant_totals (export_id, grouping, position, key, total)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare totals insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(exportID, grouping, i, e.Key, e.Total); err != nil {
			return fmt.Errorf("failed to insert %s total %s: %w", grouping, e.Key, err)
		}
	}

	return nil
}

func insertInstructors(tx *sql.Tx, exportID string, index map[string]*instructor.Titles) error {
	stmt, err := tx.Prepare(`
		INSERT INTO instructor_courses (export_id, instructor, role, title)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare instructor insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range instructor.Names(index) {
		titles := index[name]
		for _, title := range titles.Primary {
			if _, err := stmt.Exec(exportID, name, RolePrimary, title); err != nil {
				return fmt.Errorf("failed to insert instructor %s: %w", name, err)
			}
		}
		for _, title := range titles.Secondary {
			if _, err := stmt.Exec(exportID, name, RoleSecondary, title); err != nil {
				return fmt.Errorf("failed to insert instructor %s: %w", name, err)
			}
		}
	}

	return nil
}

// GetExport retrieves an export run by id. Returns nil if absent.
func (s *Store) GetExport(id string) (*ExportInfo, error) {
	info := &ExportInfo{}
	err := s.db.QueryRow(`
		SELECT id, COALESCE(dataset_path, ''), course_count, skipped_count, exported_at
		FROM exports WHERE id = ?
	`, id).Scan(&info.ID, &info.DatasetPath, &info.CourseCount, &info.SkippedCount, &info.ExportedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	return info, nil
}

// ListExports returns every export run, newest first
func (s *Store) ListExports() ([]*ExportInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(dataset_path, ''), course_count, skipped_count, exported_at
		FROM exports ORDER BY exported_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var exports []*ExportInfo
	for rows.Next() {
		info := &ExportInfo{}
		if err := rows.Scan(&info.ID, &info.DatasetPath, &info.CourseCount, &info.SkippedCount, &info.ExportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, info)
	}

	return exports, rows.Err()
}

// CountCourses returns the number of courses stored for an export
func (s *Store) CountCourses(exportID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM courses WHERE export_id = ?", exportID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

// GetTotals returns the stored totals of a grouping in their original order
func (s *Store) GetTotals(exportID, grouping string) ([]aggregate.Entry, error) {
	rows, err := s.db.Query(`
		SELECT key, total FROM participant_totals
		WHERE export_id = ? AND grouping = ?
		ORDER BY position
	`, exportID, grouping)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}
	defer rows.Close()

	var entries []aggregate.Entry
	for rows.Next() {
		var e aggregate.Entry
		if err := rows.Scan(&e.Key, &e.Total); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetInstructorTitles returns the stored titles of one instructor and role
func (s *Store) GetInstructorTitles(exportID, name, role string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT title FROM instructor_courses
		WHERE export_id = ? AND instructor = ? AND role = ?
		ORDER BY title
	`, exportID, name, role)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}

	return titles, rows.Err()
}
