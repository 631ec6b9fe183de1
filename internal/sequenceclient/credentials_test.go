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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/dataentry/internal/sequence"
)

func TestNewCredentials(t *testing.T) {
	tests := []struct {
		mode string
		want Credentials
	}{
		{"", HeaderCredentials{ClientID: "id", ClientSecret: "s"}},
		{"header", HeaderCredentials{ClientID: "id", ClientSecret: "s"}},
		{"Query", QueryCredentials{ClientID: "id", ClientSecret: "s"}},
		{" basic ", BasicCredentials{ClientID: "id", ClientSecret: "s"}},
	}
	for _, tt := range tests {
		got, err := NewCredentials(tt.mode, "id", "s", "", "")
		require.NoError(t, err, tt.mode)
		assert.Equal(t, tt.want, got, tt.mode)
	}

	_, err := NewCredentials("bearer", "id", "s", "", "")
	assert.ErrorContains(t, err, "unknown credentials mode")
}

func TestHeaderCredentials_CustomNames(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://localhost/api/sequence", nil)
	require.NoError(t, err)

	HeaderCredentials{ClientID: "id", ClientSecret: "s", IDHeader: "X-Api-Client", SecretHeader: "X-Api-Key"}.Apply(req)

	assert.Equal(t, "id", req.Header.Get("X-Api-Client"))
	assert.Equal(t, "s", req.Header.Get("X-Api-Key"))
	assert.Empty(t, req.Header.Get(DefaultIDHeader))
}

func TestQueryCredentials_KeepsExistingQuery(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://localhost/api/sequence?dryRun=true&truncate=false", nil)
	require.NoError(t, err)

	QueryCredentials{ClientID: "id", ClientSecret: "s"}.Apply(req)

	q := req.URL.Query()
	assert.Equal(t, "true", q.Get("dryRun"))
	assert.Equal(t, "false", q.Get("truncate"))
	assert.Equal(t, "id", q.Get(DefaultIDParam))
	assert.Equal(t, "s", q.Get(DefaultSecretParam))
}

func TestBasicCredentials(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://localhost/", nil)
	require.NoError(t, err)

	BasicCredentials{ClientID: "id", ClientSecret: "s"}.Apply(req)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "id", user)
	assert.Equal(t, "s", pass)
}

func TestUpload_QueryCredentialsReachServer(t *testing.T) {
	var gotID, gotSecret string
	srv := echoServer(t, func(r *http.Request, _ []byte) {
		gotID = r.URL.Query().Get(DefaultIDParam)
		gotSecret = r.URL.Query().Get(DefaultSecretParam)
	})

	c, err := New(srv.URL, WithCredentials(QueryCredentials{ClientID: "id", ClientSecret: "s"}))
	require.NoError(t, err)

	_, err = c.Upload(t.Context(), testRecords(), sequence.UploadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "id", gotID)
	assert.Equal(t, "s", gotSecret)
	assert.NotContains(t, c.Endpoint(sequence.UploadOptions{}), "client_secret")
}
