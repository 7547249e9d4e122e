package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/store"
	"github.com/franz/course-analyzer/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset and its aggregates to SQLite",
	Long: `Write the loaded courses, the participant totals and the instructor
index into a SQLite database for ad-hoc SQL analysis.

Every run adds a new export (identified by a UUID); earlier exports in the
same database are kept.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath := GetConfigString("db", "oca-export.db")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	util.InfoLog("Opening database: %s", dbPath)
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	start := time.Now()
	id, err := db.Export(s.catalog, s.path)
	s.logger.LogExport(dbPath, s.catalog.Len(), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	util.SuccessLog("Exported %s courses in %v", util.FormatCount(s.catalog.Len()), time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(cmd.OutOrStdout(), id)

	return nil
}
