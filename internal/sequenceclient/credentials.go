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
	"fmt"
	"net/http"
	"strings"
)

// Credential transport modes accepted by NewCredentials.
const (
	ModeHeader = "header"
	ModeQuery  = "query"
	ModeBasic  = "basic"
)

const (
	DefaultIDHeader     = "X-Client-Id"
	DefaultSecretHeader = "X-Client-Secret"
	DefaultIDParam      = "client_id"
	DefaultSecretParam  = "client_secret"
)

// Credentials attaches the client id and secret to an outgoing request.
type Credentials interface {
	Apply(req *http.Request)
}

// HeaderCredentials sends the id and secret as request headers.
type HeaderCredentials struct {
	ClientID     string
	ClientSecret string
	IDHeader     string
	SecretHeader string
}

func (c HeaderCredentials) Apply(req *http.Request) {
	req.Header.Set(orDefault(c.IDHeader, DefaultIDHeader), c.ClientID)
	req.Header.Set(orDefault(c.SecretHeader, DefaultSecretHeader), c.ClientSecret)
}

// QueryCredentials sends the id and secret as query parameters.
type QueryCredentials struct {
	ClientID     string
	ClientSecret string
	IDParam      string
	SecretParam  string
}

func (c QueryCredentials) Apply(req *http.Request) {
	q := req.URL.Query()
	q.Set(orDefault(c.IDParam, DefaultIDParam), c.ClientID)
	q.Set(orDefault(c.SecretParam, DefaultSecretParam), c.ClientSecret)
	req.URL.RawQuery = q.Encode()
}

// BasicCredentials sends the id and secret using HTTP basic auth.
type BasicCredentials struct {
	ClientID     string
	ClientSecret string
}

func (c BasicCredentials) Apply(req *http.Request) {
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
}

// NewCredentials builds the Credentials for mode. idName and secretName
// override the header or parameter names and may be empty.
func NewCredentials(mode, clientID, clientSecret, idName, secretName string) (Credentials, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeHeader:
		return HeaderCredentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			IDHeader:     idName,
			SecretHeader: secretName,
		}, nil
	case ModeQuery:
		return QueryCredentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			IDParam:      idName,
			SecretParam:  secretName,
		}, nil
	case ModeBasic:
		return BasicCredentials{ClientID: clientID, ClientSecret: clientSecret}, nil
	default:
		return nil, fmt.Errorf("unknown credentials mode %q (want %s, %s or %s)", mode, ModeHeader, ModeQuery, ModeBasic)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
