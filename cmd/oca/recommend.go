package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend courses for a learner profile",
	Long: `Recommend the courses whose average audience is closest to the learner.

Each course number is described by the mean median age, % male and % with a
bachelor's degree or higher over all of its offerings. The learner's age,
gender (1 = male) and degree (1 = bachelor's or higher) are compared by
squared Euclidean distance; the nearest distinct titles are shown, using the
title of each course's latest offering.`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().Int("age", 0, "learner age")
	recommendCmd.Flags().Int("gender", 0, "1 for male, 0 otherwise")
	recommendCmd.Flags().Int("degree", 0, "1 if bachelor's degree or higher, 0 otherwise")
	recommendCmd.Flags().IntP("limit", "n", recommend.DefaultLimit, "number of titles")
	recommendCmd.Flags().Bool("scores", false, "show course numbers and distances")
	recommendCmd.MarkFlagRequired("age")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	age, _ := cmd.Flags().GetInt("age")
	gender, _ := cmd.Flags().GetInt("gender")
	degree, _ := cmd.Flags().GetInt("degree")
	limit, _ := cmd.Flags().GetInt("limit")
	showScores, _ := cmd.Flags().GetBool("scores")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	profile := recommend.Profile{Age: age, Gender: gender, Degree: degree}
	params := map[string]string{
		"age":    strconv.Itoa(age),
		"gender": strconv.Itoa(gender),
		"degree": strconv.Itoa(degree),
		"limit":  strconv.Itoa(limit),
	}

	var recs []recommend.Recommendation
	err = s.query("recommend_courses", params, func() (int, error) {
		var err error
		recs, err = recommend.New(s.catalog).Recommend(profile, limit)
		return len(recs), err
	})
	if err != nil {
		return err
	}

	if !showScores {
		titles := recommend.Titles(recs)
		return writeResult(cmd, titles, func(w io.Writer) {
			printTitles(w, titles)
		})
	}

	return writeResult(cmd, recs, func(w io.Writer) {
		for i, rec := range recs {
			fmt.Fprintf(w, "%3d. %-12s %10.2f  %s\n", i+1, rec.Number, rec.Score, rec.Title)
		}
	})
}
