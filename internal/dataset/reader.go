// Package dataset reads course dataset files into field rows for catalog.Load.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/course-analyzer/internal/util"
)

// Options controls how a dataset file is tokenized
type Options struct {
	// SkipHeader drops the first row (column names)
	SkipHeader bool
	// Comma is the field delimiter, ',' when zero
	Comma rune
	// Progress shows a progress bar on a terminal
	Progress bool
}

// DefaultOptions matches the published dataset: comma separated with a header row
func DefaultOptions() *Options {
	return &Options{SkipHeader: true, Comma: ','}
}

// Result is a tokenized dataset file
type Result struct {
	Rows      [][]string
	Header    []string
	SizeBytes int64
}

// ReadFile opens path and tokenizes every line into fields
func ReadFile(path string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dataset %s: %w", path, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	var r io.Reader = f
	if opts.Progress && util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetDescription("Reading dataset"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		pr := progressbar.NewReader(f, bar)
		r = &pr
	}

	result, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	result.SizeBytes = info.Size()

	util.DebugLog("Read %d rows (%s) from %s", len(result.Rows), util.FormatBytes(result.SizeBytes), path)

	return result, nil
}

// Parse tokenizes CSV text. Quoted fields may contain the delimiter; the
// enclosing quotes are removed. Row arity is not checked here.
func Parse(r io.Reader, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	result := &Result{}
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrMalformedRecord, err)
		}

		if first && opts.SkipHeader {
			result.Header = record
			first = false
			continue
		}
		first = false

		result.Rows = append(result.Rows, record)
	}

	return result, nil
}
