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
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"iter"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newCSVReader returns a reader for header-less sequence files.
// Rows may have any number of fields; short rows are padded when decoded.
func newCSVReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(br)
	csvReader.FieldsPerRecord = -1
	return csvReader
}

// Records returns a lazy sequence of the records in r, one per CSV row.
// The sequence stops after yielding the first error. It can only be
// restarted by reopening the underlying stream.
func Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		csvReader := newCSVReader(r)
		for {
			fields, err := csvReader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Record{}, newDecodeError("", err))
				return
			}
			if !yield(recordFromFields(fields), nil) {
				return
			}
		}
	}
}

// ReadRecords decodes every row of r.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	for rec, err := range Records(r) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile decodes every row of the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	records, err := ReadRecords(f)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Path = path
			return nil, de
		}
		return nil, newDecodeError(path, err)
	}
	return records, nil
}
