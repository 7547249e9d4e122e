package main

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/franz/course-analyzer/internal/catalog"
	"github.com/franz/course-analyzer/internal/dataset"
	"github.com/franz/course-analyzer/internal/report"
	"github.com/franz/course-analyzer/internal/util"
)

// session is one loaded dataset plus the run's event log
type session struct {
	path    string
	bytes   int64
	catalog *catalog.Catalog
	logger  *report.EventLogger
}

// openSession applies logging flags, reads the configured dataset and loads it
func openSession() (*session, error) {
	util.SetVerbose(GetConfigBool("verbose"))
	util.SetQuiet(GetConfigBool("quiet"))

	path := GetConfigString("dataset", "")
	if path == "" {
		return nil, fmt.Errorf("%w: dataset is required (use --dataset/-d, OCA_DATASET or set in config)", util.ErrInvalidConfig)
	}

	logger := report.NullLogger()
	if dir := GetConfigString("events", ""); dir != "" {
		minLevel := report.LevelInfo
		if GetConfigBool("verbose") {
			minLevel = report.LevelDebug
		}
		var err error
		logger, err = report.NewEventLogger(dir, minLevel)
		if err != nil {
			util.WarnLog("Failed to create event logger: %v", err)
			logger = report.NullLogger()
		} else {
			util.DebugLog("Event log: %s", logger.Path())
		}
	}

	s, err := loadSession(path, util.GetLenient(), logger)
	if err != nil {
		logger.LogError(report.EventLoad, path, err)
		logger.Close()
		return nil, err
	}
	return s, nil
}

func loadSession(path string, lenient bool, logger *report.EventLogger) (*session, error) {
	start := time.Now()

	opts := dataset.DefaultOptions()
	opts.Progress = true
	raw, err := dataset.ReadFile(path, opts)
	if err != nil {
		return nil, err
	}

	policy := catalog.PolicyAbort
	if lenient {
		policy = catalog.PolicySkip
	}

	cat, err := catalog.Load(raw.Rows, &catalog.LoadOptions{Policy: policy})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	for _, skipped := range cat.Skipped() {
		logger.LogSkip(path, skipped)
	}
	logger.LogLoad(path, cat.Len(), len(cat.Skipped()), time.Since(start))

	util.DebugLog("Loaded %s courses from %s in %v", util.FormatCount(cat.Len()), path, time.Since(start).Round(time.Millisecond))
	if n := len(cat.Skipped()); n > 0 {
		util.WarnLog("Skipped %d malformed rows", n)
	}

	return &session{
		path:    path,
		bytes:   raw.SizeBytes,
		catalog: cat,
		logger:  logger,
	}, nil
}

// Close flushes the event log
func (s *session) Close() error {
	return s.logger.Close()
}

// query times fn and records it on the event log
func (s *session) query(name string, params map[string]string, fn func() (int, error)) error {
	start := time.Now()
	count, err := fn()
	s.logger.LogQuery(name, params, count, time.Since(start), err)
	return err
}

// writeResult prints v as JSON when --json is set, otherwise calls text
func writeResult(cmd *cobra.Command, v interface{}, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if GetConfigBool("json") {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	text(w)
	return nil
}

// printTitles writes a numbered list of course titles
func printTitles(w io.Writer, titles []string) {
	if len(titles) == 0 {
		fmt.Fprintln(w, "(no courses)")
		return
	}
	for i, title := range titles {
		fmt.Fprintf(w, "%3d. %s\n", i+1, title)
	}
}
