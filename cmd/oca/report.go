package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/rank"
	"github.com/franz/course-analyzer/internal/recommend"
	"github.com/franz/course-analyzer/internal/report"
	"github.com/franz/course-analyzer/internal/util"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a Markdown summary of every query",
	Long: `Generate a summary report in Markdown format.

The report includes:
- Participant totals per institution and per institution-subject
- Top K courses by hours and by participants
- Search results for the given filters
- Recommendations for the given learner profile
- Instructor course counts

The report is saved to artifacts/reports/<timestamp>/summary.md`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	defaults := report.DefaultSummaryOptions()

	reportCmd.Flags().String("out", "", "Output directory for report (default: artifacts/reports/<timestamp>)")
	reportCmd.Flags().IntP("top", "k", defaults.TopK, "number of titles in rankings")
	reportCmd.Flags().Int("subjects", defaults.SubjectLimit, "institution-subject rows to include (0 = all)")
	reportCmd.Flags().String("subject", defaults.Search.Subject, "search: subject substring")
	reportCmd.Flags().Float64("min-audited", defaults.Search.MinPercentAudited, "search: minimum % audited")
	reportCmd.Flags().Float64("max-hours", defaults.Search.MaxTotalHours, "search: maximum total course hours")
	reportCmd.Flags().Int("age", defaults.Profile.Age, "recommend: learner age")
	reportCmd.Flags().Int("gender", defaults.Profile.Gender, "recommend: 1 for male, 0 otherwise")
	reportCmd.Flags().Int("degree", defaults.Profile.Degree, "recommend: 1 if bachelor's degree or higher")
}

func runReport(cmd *cobra.Command, args []string) error {
	opts := report.SummaryOptions{}
	opts.TopK, _ = cmd.Flags().GetInt("top")
	opts.SubjectLimit, _ = cmd.Flags().GetInt("subjects")

	search := rank.Search{}
	search.Subject, _ = cmd.Flags().GetString("subject")
	search.MinPercentAudited, _ = cmd.Flags().GetFloat64("min-audited")
	search.MaxTotalHours, _ = cmd.Flags().GetFloat64("max-hours")
	opts.Search = search

	profile := recommend.Profile{}
	profile.Age, _ = cmd.Flags().GetInt("age")
	profile.Gender, _ = cmd.Flags().GetInt("gender")
	profile.Degree, _ = cmd.Flags().GetInt("degree")
	opts.Profile = profile

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	util.InfoLog("=== Generating Summary Report ===")
	util.InfoLog("Dataset: %s (%s, %s courses)", s.path, util.FormatBytes(s.bytes), util.FormatCount(s.catalog.Len()))

	start := time.Now()
	summary, err := report.GenerateSummaryReport(s.catalog, opts)
	if err != nil {
		s.logger.LogError(report.EventReport, s.path, err)
		return fmt.Errorf("failed to generate report: %w", err)
	}
	summary.DatasetPath = s.path
	summary.DatasetBytes = s.bytes

	outputDir, _ := cmd.Flags().GetString("out")
	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join("artifacts", "reports", timestamp)
	}
	outputPath := filepath.Join(outputDir, "summary.md")

	util.InfoLog("Writing report to: %s", outputPath)
	if err := report.WriteMarkdownReport(summary, outputPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	s.logger.LogReport(outputPath, time.Since(start))

	util.SuccessLog("Report generated successfully!")
	util.InfoLog("  Institutions: %d", len(summary.ByInstitution))
	util.InfoLog("  Instructors: %d", len(summary.Instructors))
	util.InfoLog("  Participants: %s", util.FormatCount(summary.TotalParticipants()))
	if summary.Skipped > 0 {
		util.WarnLog("  Skipped rows: %d", summary.Skipped)
	}

	return nil
}
