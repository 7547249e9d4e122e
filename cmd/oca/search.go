package main

import (
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/rank"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search courses by subject, audit rate and length",
	Long: `Find courses whose subject contains the given text (case-insensitive),
with at least the given percentage of audited learners and at most the given
total course hours. Distinct titles are listed alphabetically.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("subject", "", "subject substring (empty matches all)")
	searchCmd.Flags().Float64("min-audited", 0, "minimum % audited")
	searchCmd.Flags().Float64("max-hours", math.Inf(1), "maximum total course hours")
}

func runSearch(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	minAudited, _ := cmd.Flags().GetFloat64("min-audited")
	maxHours, _ := cmd.Flags().GetFloat64("max-hours")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	search := rank.Search{
		Subject:           subject,
		MinPercentAudited: minAudited,
		MaxTotalHours:     maxHours,
	}
	params := map[string]string{
		"subject":     subject,
		"min_audited": strconv.FormatFloat(minAudited, 'g', -1, 64),
		"max_hours":   strconv.FormatFloat(maxHours, 'g', -1, 64),
	}

	var titles []string
	err = s.query("search_courses", params, func() (int, error) {
		var err error
		titles, err = rank.SearchCourses(s.catalog, search)
		return len(titles), err
	})
	if err != nil {
		return err
	}

	return writeResult(cmd, titles, func(w io.Writer) {
		printTitles(w, titles)
	})
}
