// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the server. It is populated by merging defaults, a .env file,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds identification of the running binary and device.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local database and the server
	// backup directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address, timeouts and accepted tokens of the
	// backup server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote backup API endpoint and credential used by
	// the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the tunables of the sync coordinator.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the SHELF_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args holds the positional arguments left after flag parsing, e.g. the
	// client command.
	Args []string
}

// App holds application-level identification.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DeviceID identifies this installation inside uploaded snapshots.
	// Generated on first start when empty.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the server-side backup directory.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the SQLite database.
type DB struct {
	// DSN is the SQLite database file path (or DSN with query options).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files holds file-system settings of the backup server.
type Files struct {
	// BackupDir is the directory under which backups are stored, one
	// sub-directory per owner.
	// Env: STORAGE_FILES_BACKUP_DIR
	BackupDir string `env:"BACKUP_DIR"`
}

// Server holds network and timeout settings of the backup server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// Tokens lists accepted credentials as "owner:token" pairs.
	// Env: SERVER_TOKENS (comma separated)
	Tokens []string `env:"TOKENS" envSeparator:","`

	// MaxUploadBytes limits the size of one uploaded backup.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// Adapter holds the remote backup API settings used by the client.
type Adapter struct {
	// BaseURL is the backup API root, e.g. "https://backup.example.com".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer credential. When empty, sync is disabled.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds metadata and download requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeTimeout bounds the reachability probe of the network gate.
	// Env: ADAPTER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// Sync holds the sync coordinator tunables.
type Sync struct {
	// DisableAutoSync turns off opportunistic syncs. Forced syncs still run.
	// Env: SYNC_DISABLE_AUTO
	DisableAutoSync bool `env:"DISABLE_AUTO"`

	// LowBandwidth excludes large blobs from uploaded snapshots.
	// Env: SYNC_LOW_BANDWIDTH
	LowBandwidth bool `env:"LOW_BANDWIDTH"`

	// SaveData defers opportunistic syncs regardless of connection type.
	// Env: SYNC_SAVE_DATA
	SaveData bool `env:"SAVE_DATA"`

	// NetworkType is the configured connection class (unknown, unmetered,
	// metered, cellular, none).
	// Env: SYNC_NETWORK_TYPE
	NetworkType string `env:"NETWORK_TYPE"`

	// ConflictCollections lists the collections inspected for per-item
	// conflicts.
	// Env: SYNC_CONFLICT_COLLECTIONS (comma separated)
	ConflictCollections []string `env:"CONFLICT_COLLECTIONS" envSeparator:","`

	// Debounce is the quiet period collapsing bursts of sync requests.
	// Env: SYNC_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`

	// Tolerance is the clock-skew tolerance used by conflict detection.
	// Env: SYNC_TOLERANCE
	Tolerance time.Duration `env:"TOLERANCE"`

	// RetryBase is the first backoff delay after a failed sync.
	// Env: SYNC_RETRY_BASE
	RetryBase time.Duration `env:"RETRY_BASE"`

	// RetryJitter is the upper bound of the random delay added to each
	// backoff step.
	// Env: SYNC_RETRY_JITTER
	RetryJitter time.Duration `env:"RETRY_JITTER"`

	// MaxRetries caps automatic retries after consecutive failures.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// RerunDelay is the pause before a sync requested while another one was
	// in flight.
	// Env: SYNC_RERUN_DELAY
	RerunDelay time.Duration `env:"RERUN_DELAY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// NetworkPollInterval is the period of the network watcher.
	// Env: WORKERS_NETWORK_POLL_INTERVAL
	NetworkPollInterval time.Duration `env:"NETWORK_POLL_INTERVAL"`
}

// Log holds client log file rotation settings.
type Log struct {
	FilePath   string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"`
	MaxBackups int    `env:"MAX_BACKUPS"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS"`
}

// defaultConfig returns the built-in defaults, the lowest-priority source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB:    DB{DSN: "shelf-sync.db"},
			Files: Files{BackupDir: "backups"},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  64 << 20,
		},
		Adapter: Adapter{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
			ProbeTimeout:   3 * time.Second,
		},
		Sync: Sync{
			NetworkType:         "unknown",
			ConflictCollections: []string{"books", "documents"},
			Debounce:            1500 * time.Millisecond,
			Tolerance:           2 * time.Second,
			RetryBase:           5 * time.Second,
			RetryJitter:         time.Second,
			MaxRetries:          5,
			RerunDelay:          500 * time.Millisecond,
		},
		Workers: Workers{
			SyncInterval:        5 * time.Minute,
			NetworkPollInterval: 30 * time.Second,
		},
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources
// using the process arguments for flags.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(osArgs())
}

func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
