package main

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/rank"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top K courses by hours or participants",
	Long: `Rank courses by total course hours or by participants (highest first,
ties by title) and show the first K distinct titles.`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntP("top", "k", 10, "number of distinct titles")
	topCmd.Flags().String("by", string(rank.MetricParticipants), "ranking metric: hours or participants")
}

func runTop(cmd *cobra.Command, args []string) error {
	k, _ := cmd.Flags().GetInt("top")
	by, _ := cmd.Flags().GetString("by")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var titles []string
	err = s.query("top_courses", map[string]string{"k": strconv.Itoa(k), "by": by}, func() (int, error) {
		var err error
		titles, err = rank.TopCourses(s.catalog, k, rank.Metric(by))
		return len(titles), err
	})
	if err != nil {
		return err
	}

	return writeResult(cmd, titles, func(w io.Writer) {
		printTitles(w, titles)
	})
}
