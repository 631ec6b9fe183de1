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

package cmd

import (
	"errors"

	"github.com/cardinalhq/dataentry/internal/filematch"
	"github.com/cardinalhq/dataentry/internal/sequence"
	"github.com/cardinalhq/dataentry/internal/sequenceclient"
	"github.com/cardinalhq/dataentry/internal/upload"
)

// UnexpectedError wraps any failure that is not one of the known
// upload error kinds.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "unexpected error: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// classify returns err unchanged when it is a known failure and wraps
// it in an UnexpectedError otherwise.
func classify(err error) error {
	var (
		ve *upload.ValidationError
		nm *filematch.NoMatchError
		de *sequence.DecodeError
		ue *sequenceclient.UploadError
		we *sequence.WriteError
		un *UnexpectedError
	)
	switch {
	case errors.As(err, &ve),
		errors.As(err, &nm),
		errors.As(err, &de),
		errors.As(err, &ue),
		errors.As(err, &we),
		errors.As(err, &un):
		return err
	}
	return &UnexpectedError{Err: err}
}
