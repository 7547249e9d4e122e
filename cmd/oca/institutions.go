package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/aggregate"
	"github.com/franz/course-analyzer/internal/util"
)

var institutionsCmd = &cobra.Command{
	Use:   "institutions",
	Short: "Show participant totals per institution",
	Long: `Sum participants per institution, ordered by institution name.

With --by-subject, sum per "institution-subject" pair instead, ordered by
total (highest first) and then by key.`,
	RunE: runInstitutions,
}

func init() {
	rootCmd.AddCommand(institutionsCmd)

	institutionsCmd.Flags().Bool("by-subject", false, "group by institution and subject")
	institutionsCmd.Flags().IntP("limit", "n", 0, "show at most n entries (0 = all)")
}

func runInstitutions(cmd *cobra.Command, args []string) error {
	bySubject, _ := cmd.Flags().GetBool("by-subject")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return &util.InvalidArgumentError{Param: "limit", Value: limit, Reason: "must be >= 0"}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	name := "participants_by_institution"
	if bySubject {
		name = "participants_by_institution_subject"
	}

	var entries []aggregate.Entry
	s.query(name, map[string]string{"limit": strconv.Itoa(limit)}, func() (int, error) {
		if bySubject {
			entries = aggregate.ParticipantsByInstitutionAndSubject(s.catalog)
		} else {
			entries = aggregate.ParticipantsByInstitution(s.catalog)
		}
		return len(entries), nil
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return writeResult(cmd, entries, func(w io.Writer) {
		for _, e := range entries {
			fmt.Fprintf(w, "%-60s %12s\n", e.Key, util.FormatCount(e.Total))
		}
	})
}
