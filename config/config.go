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

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings that may come from flags, the environment
// or a config file.
type Config struct {
	ClientID     string            `mapstructure:"client_id"`
	ClientSecret string            `mapstructure:"client_secret"`
	Timeout      time.Duration     `mapstructure:"timeout"`
	Credentials  CredentialsConfig `mapstructure:"credentials"`
}

// CredentialsConfig selects how the client id and secret are sent.
type CredentialsConfig struct {
	// Mode is one of "header", "query" or "basic".
	Mode       string `mapstructure:"mode"`
	IDName     string `mapstructure:"id_name"`
	SecretName string `mapstructure:"secret_name"`
}

// FlagBindings maps config keys to the command line flags that set them.
var FlagBindings = map[string]string{
	KeyClientID:        "client-id",
	KeyClientSecret:    "client-secret",
	KeyTimeout:         "timeout",
	KeyCredentialsMode: "credentials-mode",
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Minute,
		Credentials: CredentialsConfig{
			Mode: "header",
		},
	}
}

// Load reads configuration from flags, environment variables and an
// optional config file, in that order of precedence.
// Environment variables use the prefix "DE" and the dot character
// in keys is replaced by an underscore. For example, "credentials.mode"
// becomes "DE_CREDENTIALS_MODE".
func Load(flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/de")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	v.SetDefault(KeyTimeout, cfg.Timeout)
	v.SetDefault(KeyCredentialsMode, cfg.Credentials.Mode)

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
