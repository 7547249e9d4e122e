package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/franz/course-analyzer/internal/aggregate"
	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/instructor"
	"github.com/franz/course-analyzer/internal/rank"
	"github.com/franz/course-analyzer/internal/recommend"
	"github.com/franz/course-analyzer/internal/util"
)

// SummaryOptions selects the parameterised queries of a report
type SummaryOptions struct {
	TopK    int
	Search  rank.Search
	Profile recommend.Profile
	// SubjectLimit caps the institution-subject table, 0 for no cap
	SubjectLimit int
}

// DefaultSummaryOptions returns the options used by `oca report` without flags
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		TopK:         10,
		Search:       rank.Search{MinPercentAudited: 0, MaxTotalHours: math.Inf(1)},
		Profile:      recommend.Profile{Age: 25, Gender: 1, Degree: 1},
		SubjectLimit: 20,
	}
}

// SummaryReport holds the result of every query over one catalog
type SummaryReport struct {
	GeneratedAt time.Time
	Duration    time.Duration

	DatasetPath  string
	DatasetBytes int64
	Courses      int
	Skipped      int

	Options SummaryOptions

	ByInstitution        []aggregate.Entry
	ByInstitutionSubject []aggregate.Entry
	Instructors          map[string]*instructor.Titles
	TopByHours           []string
	TopByParticipants    []string
	SearchResults        []string
	Recommendations      []recommend.Recommendation
}

// TotalParticipants returns the participant sum across institutions
func (r *SummaryReport) TotalParticipants() int {
	return aggregate.Sum(r.ByInstitution)
}

// GenerateSummaryReport runs all queries over the catalog. The catalog is
// read-only, so the queries run concurrently.
func GenerateSummaryReport(cat *catalog.Catalog, opts SummaryOptions) (*SummaryReport, error) {
	start := time.Now()
	report := &SummaryReport{
		GeneratedAt: start,
		Courses:     cat.Len(),
		Skipped:     len(cat.Skipped()),
		Options:     opts,
	}

	p := pool.New().WithErrors()

	p.Go(func() error {
		report.ByInstitution = aggregate.ParticipantsByInstitution(cat)
		return nil
	})
	p.Go(func() error {
		entries := aggregate.ParticipantsByInstitutionAndSubject(cat)
		if opts.SubjectLimit > 0 && len(entries) > opts.SubjectLimit {
			entries = entries[:opts.SubjectLimit]
		}
		report.ByInstitutionSubject = entries
		return nil
	})
	p.Go(func() error {
		report.Instructors = instructor.CourseListByInstructor(cat)
		return nil
	})
	p.Go(func() error {
		titles, err := rank.TopCourses(cat, opts.TopK, rank.MetricHours)
		if err != nil {
			return fmt.Errorf("top by hours: %w", err)
		}
		report.TopByHours = titles
		return nil
	})
	p.Go(func() error {
		titles, err := rank.TopCourses(cat, opts.TopK, rank.MetricParticipants)
		if err != nil {
			return fmt.Errorf("top by participants: %w", err)
		}
		report.TopByParticipants = titles
		return nil
	})
	p.Go(func() error {
		titles, err := rank.SearchCourses(cat, opts.Search)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		report.SearchResults = titles
		return nil
	})
	p.Go(func() error {
		recs, err := recommend.New(cat).Recommend(opts.Profile, recommend.DefaultLimit)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		report.Recommendations = recs
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	return report, nil
}

// WriteMarkdownReport writes the summary report as Markdown
func WriteMarkdownReport(report *SummaryReport, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// RenderMarkdown formats the summary report as a Markdown document
func RenderMarkdown(report *SummaryReport) string {
	var md strings.Builder

	md.WriteString("# Online Course Analysis - Summary Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	if report.DatasetPath != "" {
		md.WriteString(fmt.Sprintf("**Dataset:** `%s`", report.DatasetPath))
		if report.DatasetBytes > 0 {
			md.WriteString(fmt.Sprintf(" (%s)", util.FormatBytes(report.DatasetBytes)))
		}
		md.WriteString("\n\n")
	}
	md.WriteString("---\n\n")

	// Overview
	md.WriteString("## Overview\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Course Offerings | %s |\n", util.FormatCount(report.Courses)))
	if report.Skipped > 0 {
		md.WriteString(fmt.Sprintf("| Skipped Rows | %d |\n", report.Skipped))
	}
	md.WriteString(fmt.Sprintf("| Institutions | %d |\n", len(report.ByInstitution)))
	md.WriteString(fmt.Sprintf("| Instructors | %d |\n", len(report.Instructors)))
	md.WriteString(fmt.Sprintf("| Total Participants | %s |\n", util.FormatCount(report.TotalParticipants())))
	md.WriteString("\n")

	// Participation
	if len(report.ByInstitution) > 0 {
		md.WriteString("## Participants by Institution\n\n")
		writeEntryTable(&md, "Institution", report.ByInstitution)
	}
	if len(report.ByInstitutionSubject) > 0 {
		md.WriteString("## Participants by Institution and Subject\n\n")
		writeEntryTable(&md, "Institution-Subject", report.ByInstitutionSubject)
	}

	// Rankings
	md.WriteString(fmt.Sprintf("## Top %d Courses by Total Hours\n\n", report.Options.TopK))
	writeTitleList(&md, report.TopByHours)
	md.WriteString(fmt.Sprintf("## Top %d Courses by Participants\n\n", report.Options.TopK))
	writeTitleList(&md, report.TopByParticipants)

	// Search
	s := report.Options.Search
	md.WriteString("## Search\n\n")
	md.WriteString(fmt.Sprintf("*subject contains %q, audited >= %s%%, total hours <= %s*\n\n",
		s.Subject, formatBound(s.MinPercentAudited), formatBound(s.MaxTotalHours)))
	writeTitleList(&md, report.SearchResults)

	// Recommendations
	p := report.Options.Profile
	md.WriteString("## Recommendations\n\n")
	md.WriteString(fmt.Sprintf("*age %d, male %d, bachelor's or higher %d*\n\n", p.Age, p.Gender, p.Degree))
	if len(report.Recommendations) == 0 {
		md.WriteString("*none*\n\n")
	} else {
		md.WriteString("| # | Course | Number | Distance |\n")
		md.WriteString("|---|--------|--------|----------|\n")
		for i, rec := range report.Recommendations {
			md.WriteString(fmt.Sprintf("| %d | %s | %s | %.2f |\n", i+1, escapeCell(rec.Title), rec.Number, rec.Score))
		}
		md.WriteString("\n")
	}

	// Instructors
	if len(report.Instructors) > 0 {
		md.WriteString("## Instructors\n\n")
		md.WriteString("| Instructor | Sole | Shared |\n")
		md.WriteString("|------------|------|--------|\n")
		for _, name := range instructor.Names(report.Instructors) {
			titles := report.Instructors[name]
			md.WriteString(fmt.Sprintf("| %s | %d | %d |\n", escapeCell(name), len(titles.Primary), len(titles.Secondary)))
		}
		md.WriteString("\n")
	}

	md.WriteString("---\n\n")
	md.WriteString(fmt.Sprintf("*Generated by oca in %s*\n", report.Duration.Round(time.Millisecond)))

	return md.String()
}

func writeEntryTable(md *strings.Builder, keyHeader string, entries []aggregate.Entry) {
	md.WriteString(fmt.Sprintf("| %s | Participants |\n", keyHeader))
	md.WriteString("|------|--------------|\n")
	for _, e := range entries {
		md.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(e.Key), util.FormatCount(e.Total)))
	}
	md.WriteString("\n")
}

func writeTitleList(md *strings.Builder, titles []string) {
	if len(titles) == 0 {
		md.WriteString("*none*\n\n")
		return
	}
	for i, title := range titles {
		md.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
	}
	md.WriteString("\n")
}

func formatBound(f float64) string {
	if math.IsInf(f, 0) {
		return "any"
	}
	return util.FormatFloat(f)
}

// escapeCell keeps pipes in titles from breaking table rows
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
