package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/instructor"
	"github.com/franz/course-analyzer/internal/util"
)

var instructorsCmd = &cobra.Command{
	Use:   "instructors",
	Short: "List the courses of every instructor",
	Long: `List, per instructor, the courses they taught alone and the courses
they taught together with co-instructors. Titles are unique and sorted.`,
	RunE: runInstructors,
}

func init() {
	rootCmd.AddCommand(instructorsCmd)

	instructorsCmd.Flags().String("name", "", "show only this instructor")
}

func runInstructors(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var index map[string]*instructor.Titles
	s.query("course_list_by_instructor", map[string]string{"name": name}, func() (int, error) {
		index = instructor.CourseListByInstructor(s.catalog)
		return len(index), nil
	})

	if name != "" {
		titles, ok := index[name]
		if !ok {
			return fmt.Errorf("instructor %q: %w", name, util.ErrNotFound)
		}
		index = map[string]*instructor.Titles{name: titles}
	}

	return writeResult(cmd, index, func(w io.Writer) {
		for _, n := range instructor.Names(index) {
			titles := index[n]
			fmt.Fprintf(w, "%s\n", n)
			fmt.Fprintf(w, "  sole:   %s\n", joinOrDash(titles.Primary))
			fmt.Fprintf(w, "  shared: %s\n", joinOrDash(titles.Secondary))
		}
	})
}

func joinOrDash(titles []string) string {
	if len(titles) == 0 {
		return "-"
	}
	return strings.Join(titles, "; ")
}
