package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/dataset"
	"github.com/franz/course-analyzer/internal/store"
	"github.com/franz/course-analyzer/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the dataset and configuration",
	Long: `Run diagnostic checks to ensure oca can operate correctly.

This command checks:
- Configuration file in use
- Dataset file presence, header and row arity
- Malformed rows (reported individually, without aborting)
- SQLite driver availability
- Export database accessibility and integrity`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.SetVerbose(GetConfigBool("verbose"))
	util.SetQuiet(GetConfigBool("quiet"))

	util.InfoLog("=== OCA Doctor - Diagnostics ===")

	results := []checkResult{
		checkConfig(),
		checkDataset(GetConfigString("dataset", "")),
		checkSQLite(),
		checkDatabase(GetConfigString("db", "oca-export.db")),
	}

	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	util.InfoLog("")
	if hasErrors {
		return fmt.Errorf("diagnostics found errors")
	}
	if hasWarnings {
		util.WarnLog("Diagnostics completed with warnings")
	} else {
		util.SuccessLog("All checks passed")
	}

	return nil
}

func checkConfig() checkResult {
	result := checkResult{name: "Config"}
	if used := viper.ConfigFileUsed(); used != "" {
		result.message = used
	} else {
		result.message = "no config file (flags and OCA_* environment only)"
	}
	return result
}

func checkDataset(path string) checkResult {
	result := checkResult{name: "Dataset"}

	if path == "" {
		result.warning = true
		result.message = "not configured (use --dataset/-d)"
		return result
	}

	raw, err := dataset.ReadFile(path, nil)
	if err != nil {
		result.error = true
		if errors.Is(err, util.ErrNotFound) {
			result.message = fmt.Sprintf("%s does not exist", path)
		} else {
			result.message = err.Error()
		}
		return result
	}

	if len(raw.Header) != catalog.NumColumns {
		result.warning = true
		result.message = fmt.Sprintf("header has %d columns, expected %d", len(raw.Header), catalog.NumColumns)
		return result
	}

	cat, err := catalog.Load(raw.Rows, &catalog.LoadOptions{Policy: catalog.PolicySkip})
	if err != nil {
		result.error = true
		result.message = err.Error()
		return result
	}

	result.message = fmt.Sprintf("%s courses, %s", util.FormatCount(cat.Len()), util.FormatBytes(raw.SizeBytes))
	if n := len(cat.Skipped()); n > 0 {
		result.warning = true
		result.message += fmt.Sprintf(", %d malformed rows (first: %v)", n, cat.Skipped()[0])
	}

	return result
}

func checkSQLite() checkResult {
	result := checkResult{name: "SQLite"}

	version := store.SQLiteVersion()
	if version == "" {
		result.error = true
		result.message = "driver unavailable"
		return result
	}

	result.message = "version " + version
	return result
}

func checkDatabase(dbPath string) checkResult {
	result := checkResult{name: "Export database"}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		result.message = fmt.Sprintf("%s will be created by 'oca export'", dbPath)
		return result
	}

	db, err := store.Open(dbPath)
	if err != nil {
		result.error = true
		result.message = fmt.Sprintf("cannot open: %v", err)
		return result
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		result.error = true
		result.message = err.Error()
		return result
	}

	exports, err := db.ListExports()
	if err != nil {
		result.error = true
		result.message = err.Error()
		return result
	}

	result.message = fmt.Sprintf("%s (%d exports)", dbPath, len(exports))
	return result
}
