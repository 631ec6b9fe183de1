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

package upload

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/cardinalhq/dataentry/internal/sequence"
)

// Argument names used in validation errors. They match the command line.
const (
	ArgPattern      = "FILENAME_PATTERN"
	ArgBaseURL      = "BASEURL"
	ArgOutput       = "--output"
	ArgClientID     = "--client-id"
	ArgClientSecret = "--client-secret"
)

// ValidationError names an argument that is missing or malformed.
type ValidationError struct {
	Argument string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Argument, e.Reason)
}

// Params is everything one upload run needs.
type Params struct {
	Pattern      string
	BaseURL      string
	Output       string
	ClientID     string
	ClientSecret string
	Options      sequence.UploadOptions
}

// Validate checks every argument and reports all violations at once.
// It performs no I/O.
func (p Params) Validate() error {
	var errs *multierror.Error
	fail := func(arg, reason string) {
		errs = multierror.Append(errs, &ValidationError{Argument: arg, Reason: reason})
	}

	if strings.TrimSpace(p.Pattern) == "" {
		fail(ArgPattern, "must not be empty")
	}

	if strings.TrimSpace(p.BaseURL) == "" {
		fail(ArgBaseURL, "must not be empty")
	} else if u, err := url.Parse(p.BaseURL); err != nil {
		fail(ArgBaseURL, fmt.Sprintf("not a valid URI: %v", err))
	} else if !u.IsAbs() || u.Host == "" {
		fail(ArgBaseURL, fmt.Sprintf("%q is not an absolute URI", p.BaseURL))
	}

	if p.ClientID == "" {
		fail(ArgClientID, "is required")
	}
	if p.ClientSecret == "" {
		fail(ArgClientSecret, "is required")
	}

	if strings.TrimSpace(p.Output) == "" {
		fail(ArgOutput, "is required")
	} else if !hasFileName(p.Output) {
		fail(ArgOutput, fmt.Sprintf("%q does not name a file", p.Output))
	}

	if errs == nil {
		return nil
	}
	errs.ErrorFormat = formatValidation
	return errs
}

func hasFileName(p string) bool {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		return false
	}
	name := filepath.Base(p)
	return name != "." && name != ".." && name != string(filepath.Separator)
}

func formatValidation(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
