// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package upload runs the sequence upload pipeline: match input files,
// decode them, post the batch and write the report.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/cardinalhq/dataentry/internal/sequence"
)

// Matcher resolves the input file pattern.
type Matcher interface {
	Match(pattern string) ([]string, error)
}

// Uploader posts one batch of records and returns the server's reports.
type Uploader interface {
	Endpoint(opts sequence.UploadOptions) string
	Upload(ctx context.Context, records []sequence.Record, opts sequence.UploadOptions) ([]sequence.Report, error)
}

// Result summarizes a completed run.
type Result struct {
	Files   []string
	Records int
	Reports []sequence.Report
	Output  string
}

// Runner executes the pipeline stages strictly in order and stops at the
// first failure. Nothing is written unless the upload succeeds.
type Runner struct {
	Matcher  Matcher
	Uploader Uploader
	Logger   *slog.Logger
}

func (r *Runner) Run(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files, err := r.Matcher.Match(p.Pattern)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Found %d file(s) matching %s", len(files), p.Pattern))

	// Decode everything before touching the network.
	var records []sequence.Record
	for _, f := range files {
		recs, err := sequence.ReadFile(f)
		if err != nil {
			return nil, err
		}
		logger.Info(fmt.Sprintf("Read %d record(s) from %s", len(recs), f))
		records = append(records, recs...)
	}
	if len(records) == 0 {
		logger.Warn("Matched files contain no records; uploading an empty batch")
	}
	if p.Options.DryRun {
		logger.Warn("Dry run: the server will not persist this batch")
	}

	logger.Info(fmt.Sprintf("Uploading %d record(s) to %s", len(records), r.Uploader.Endpoint(p.Options)))
	reports, err := r.Uploader.Upload(ctx, records, p.Options)
	if err != nil {
		return nil, err
	}
	if len(reports) != len(records) {
		logger.Warn(fmt.Sprintf("Server returned %d report(s) for %d record(s)", len(reports), len(records)))
	}
	logger.Info(fmt.Sprintf("Received %d report(s)", len(reports)), statusCounts(reports))

	if err := sequence.WriteReportFile(p.Output, reports); err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Report written to %s", p.Output))

	return &Result{
		Files:   files,
		Records: len(records),
		Reports: reports,
		Output:  p.Output,
	}, nil
}

func statusCounts(reports []sequence.Report) slog.Attr {
	counts := map[string]int{}
	for _, r := range reports {
		status := r.Status
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}
	attrs := make([]any, 0, len(counts))
	for _, status := range slices.Sorted(maps.Keys(counts)) {
		attrs = append(attrs, slog.Int(status, counts[status]))
	}
	return slog.Group("status", attrs...)
}
