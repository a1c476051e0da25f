// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"docdb/cli/internal/dsn"
	"docdb/cli/internal/xdg"
)

// Environment variables read by the CLI.
const (
	EnvHost       = "DOCDB_HOST"
	EnvKey        = "DOCDB_KEY"
	EnvDatabase   = "DOCDB_DATABASE"
	EnvCollection = "DOCDB_COLLECTION"
	EnvFormat     = "DOCDB_FORMAT"
	EnvVerbose    = "DOCDB_VERBOSE"
)

// Defaults applied to fields missing from the config file.
const (
	DefaultFormat                = "table"
	DefaultLogLevel              = "info"
	DefaultPageSize              = 100
	DefaultConnectTimeoutSeconds = 5
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel              string     `json:"log_level"`
	Format                string     `json:"format"`
	Connection            Connection `json:"connection"`
	PageSize              int        `json:"page_size"`
	ConnectTimeoutSeconds int        `json:"connect_timeout_seconds"`
	MaxColumnWidth        int        `json:"max_column_width"`
}

// Connection describes where and how to connect. Key is a secret and is
// never written to the config file.
type Connection struct {
	Host       string `json:"host,omitempty"`
	Key        string `json:"-"`
	Database   string `json:"database,omitempty"`
	Collection string `json:"collection,omitempty"`
}

// Source names where the connection host came from.
type Source string

const (
	SourceNone     Source = ""
	SourceFlag     Source = "command-line flag"
	SourceEnv      Source = "environment"
	SourceKeychain Source = "OS keychain"
	SourceFile     Source = "config file"
)

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{}.withDefaults()
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p; a missing file returns defaults.
func LoadFile(p string) (Config, error) {
	var c Config
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), err
	}
	return c.withDefaults(), nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes c to p with 0600 permissions.
func SaveFile(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c Config) withDefaults() Config {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.ConnectTimeoutSeconds <= 0 {
		c.ConnectTimeoutSeconds = DefaultConnectTimeoutSeconds
	}
	if c.MaxColumnWidth < 0 {
		c.MaxColumnWidth = 0
	}
	return c
}

// ResolveConnection merges connection settings. Host is the first non-empty
// value from flags, the environment, the keychain and the config file, in
// that order; the returned Source is where it came from. Key, Database and
// Collection are then taken, in the same order, only from layers that name
// no host or the same host, so credentials saved for one store are never
// sent to another.
func ResolveConnection(flags Connection, getenv func(string) string, stored, file Connection) (Connection, Source) {
	env := Connection{
		Host:       strings.TrimSpace(getenv(EnvHost)),
		Key:        getenv(EnvKey),
		Database:   strings.TrimSpace(getenv(EnvDatabase)),
		Collection: strings.TrimSpace(getenv(EnvCollection)),
	}
	file.Key = ""

	layers := []struct {
		conn   Connection
		source Source
	}{
		{flags, SourceFlag},
		{env, SourceEnv},
		{stored, SourceKeychain},
		{file, SourceFile},
	}

	var out Connection
	source := SourceNone
	for _, l := range layers {
		if host := strings.TrimSpace(l.conn.Host); host != "" {
			out.Host = host
			source = l.source
			break
		}
	}

	for _, l := range layers {
		if host := strings.TrimSpace(l.conn.Host); host != "" && !SameHost(host, out.Host) {
			continue
		}
		if out.Key == "" {
			out.Key = l.conn.Key
		}
		if out.Database == "" {
			out.Database = l.conn.Database
		}
		if out.Collection == "" {
			out.Collection = l.conn.Collection
		}
	}
	return out, source
}

// SameHost reports whether a and b address the same store as the same
// user over the same scheme. Passwords, paths and query parameters are
// ignored, as is the postgres/postgresql spelling.
func SameHost(a, b string) bool {
	ia, errA := dsn.Parse(a)
	ib, errB := dsn.Parse(b)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return ia.Kind == ib.Kind &&
		(ia.Kind == dsn.KindPostgres || ia.Scheme == ib.Scheme) &&
		strings.EqualFold(ia.Host, ib.Host) &&
		ia.Port == ib.Port &&
		ia.User == ib.User
}

// ResolveFormat picks the output format code: flag, then environment, then
// the config file.
func ResolveFormat(flag string, getenv func(string) string, file Config) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	if env := strings.TrimSpace(getenv(EnvFormat)); env != "" {
		return env
	}
	return file.Format
}
