// Copyright (C) 2025-2026 CardinalHQ, Inc
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

package config

const (
	// EnvPrefix is prepended to every environment variable, e.g. DE_CLIENT_ID.
	EnvPrefix = "DE"

	// ConfigName is the base name of the optional config file (de.yaml, de.toml, ...).
	ConfigName = "de"

	KeyClientID          = "client_id"
	KeyClientSecret      = "client_secret"
	KeyTimeout           = "timeout"
	KeyCredentialsMode   = "credentials.mode"
	KeyCredentialsID     = "credentials.id_name"
	KeyCredentialsSecret = "credentials.secret_name"
)
