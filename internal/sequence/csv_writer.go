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

package sequence

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteReports writes the report header followed by one row per report.
func WriteReports(w io.Writer, reports []Report) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(ReportHeader()); err != nil {
		return err
	}
	for _, r := range reports {
		if err := csvWriter.Write(r.fields()); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteReportFile replaces the file at path with the encoded reports,
// creating parent directories as needed.
func WriteReportFile(path string, reports []Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Op: "mkdir", Err: err}
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return &WriteError{Path: path, Op: "remove", Err: errors.New("is a directory")}
	case err == nil:
		if err := os.Remove(path); err != nil {
			return &WriteError{Path: path, Op: "remove", Err: err}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return &WriteError{Path: path, Op: "stat", Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	if err := WriteReports(f, reports); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	return nil
}
