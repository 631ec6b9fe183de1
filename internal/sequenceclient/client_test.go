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

package sequenceclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/dataentry/internal/sequence"
)

func testRecords() []sequence.Record {
	return []sequence.Record{
		{OrganizationIdentifier: "org1", PatientLocalIdentifier: "pat1", NCBISRAAccession: "sra1"},
		{OrganizationIdentifier: "org2", PatientLocalIdentifier: "pat2", NCBISRAAccession: "sra2"},
	}
}

// echoServer replies with every posted record marked accepted and hands the
// received request to inspect.
func echoServer(t *testing.T, inspect func(r *http.Request, body []byte)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if inspect != nil {
			inspect(r, body)
		}

		var records []sequence.Record
		require.NoError(t, json.Unmarshal(body, &records))
		reports := make([]sequence.Report, 0, len(records))
		for _, rec := range records {
			reports = append(reports, sequence.Report{Record: rec, Status: "accepted"})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reports)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpload(t *testing.T) {
	var gotReq *http.Request
	var gotBody []byte
	srv := echoServer(t, func(r *http.Request, body []byte) {
		gotReq = r
		gotBody = body
	})

	c, err := New(srv.URL, WithCredentials(HeaderCredentials{ClientID: "id", ClientSecret: "secret"}))
	require.NoError(t, err)

	reports, err := c.Upload(t.Context(), testRecords(), sequence.UploadOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "org1", reports[0].OrganizationIdentifier)
	assert.Equal(t, "accepted", reports[1].Status)

	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/api/sequence", gotReq.URL.Path)
	assert.Equal(t, "true", gotReq.URL.Query().Get("dryRun"))
	assert.Equal(t, "false", gotReq.URL.Query().Get("truncate"))
	assert.False(t, gotReq.URL.Query().Has("stopOnError"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "id", gotReq.Header.Get(DefaultIDHeader))
	assert.Equal(t, "secret", gotReq.Header.Get(DefaultSecretHeader))
	_, err = uuid.Parse(gotReq.Header.Get(requestIDHeader))
	assert.NoError(t, err)

	var sent []map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	require.Len(t, sent, 2)
	assert.Len(t, sent[0], sequence.RecordColumns)
	assert.Equal(t, "org1", sent[0]["organizationIdentifier"])
	assert.Equal(t, "sra2", sent[1]["ncbiSraAccession"])
}

func TestUpload_EmptyBatchSendsArray(t *testing.T) {
	var gotBody []byte
	srv := echoServer(t, func(_ *http.Request, body []byte) { gotBody = body })

	c, err := New(srv.URL)
	require.NoError(t, err)

	reports, err := c.Upload(t.Context(), nil, sequence.UploadOptions{})
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.JSONEq(t, "[]", string(gotBody))
}

func TestUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Contains(t, ue.Body, "database unavailable")
	assert.NotEmpty(t, ue.RequestID)
	assert.Contains(t, err.Error(), "500")
}

func TestUpload_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Equal(t, "upload rejected with status 401 Unauthorized", err.Error())
}

func TestUpload_BadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	var ue *UploadError
	assert.False(t, errors.As(err, &ue))
}

func TestUpload_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	reports, err := c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestUpload_EmptyBody(t *testing.T) {
	for _, body := range []string{"", " \n"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(body))
		}))

		c, err := New(srv.URL)
		require.NoError(t, err)

		reports, err := c.Upload(t.Context(), []sequence.Record{{}}, sequence.UploadOptions{})
		srv.Close()
		require.NoError(t, err, "body %q", body)
		assert.NotNil(t, reports)
		assert.Empty(t, reports)
	}
}

func TestUpload_ContextCanceled(t *testing.T) {
	srv := echoServer(t, nil)

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = c.Upload(ctx, testRecords(), sequence.UploadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpload_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post sequences")
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name string
		base string
		opts sequence.UploadOptions
		want string
	}{
		{"bare host", "http://localhost", sequence.UploadOptions{},
			"http://localhost/api/sequence?dryRun=false&truncate=false"},
		{"trailing slash", "https://example.org/", sequence.UploadOptions{DryRun: true, Truncate: true},
			"https://example.org/api/sequence?dryRun=true&truncate=true"},
		{"base path", "https://example.org/dataentry", sequence.UploadOptions{Truncate: true},
			"https://example.org/dataentry/api/sequence?dryRun=false&truncate=true"},
		{"stop on error", "http://localhost:5000", sequence.UploadOptions{StopOnError: true},
			"http://localhost:5000/api/sequence?dryRun=false&stopOnError=true&truncate=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Endpoint(tt.opts))
		})
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	for _, base := range []string{"", "localhost", "/api", "ftp://example.org"} {
		_, err := New(base)
		assert.Error(t, err, base)
	}
}
