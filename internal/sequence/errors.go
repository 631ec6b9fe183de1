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
	"fmt"
)

// DecodeError reports input that could not be read as sequence records.
type DecodeError struct {
	Path string // empty when decoding a bare stream
	Line int    // 0 when unknown
	Err  error
}

func (e *DecodeError) Error() string {
	src := e.Path
	if src == "" {
		src = "input"
	}
	if e.Line > 0 {
		return fmt.Sprintf("decode %s: line %d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", src, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(path string, err error) *DecodeError {
	de := &DecodeError{Path: path, Err: err}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		de.Line = pe.Line
		de.Err = pe.Err
	}
	return de
}

// WriteError reports a failure to produce the report file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
