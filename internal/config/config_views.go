// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

var osArgs = func() []string { return os.Args[1:] }

// ClientApp holds client identification.
type ClientApp struct {
	Version  string
	DeviceID string
}

// ClientAdapter holds the remote backup API settings.
type ClientAdapter struct {
	BaseURL        string        `validate:"required,url"`
	Token          string
	RequestTimeout time.Duration `validate:"gt=0"`
	ProbeTimeout   time.Duration `validate:"gte=0"`
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	DSN string `validate:"required"`
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSync holds the coordinator tunables.
type ClientSync struct {
	DisableAutoSync     bool
	LowBandwidth        bool
	SaveData            bool
	NetworkType         string        `validate:"omitempty,oneof=unknown unmetered metered cellular none wifi ethernet"`
	ConflictCollections []string      `validate:"dive,required"`
	Debounce            time.Duration `validate:"gt=0"`
	Tolerance           time.Duration `validate:"gte=0"`
	RetryBase           time.Duration `validate:"gt=0"`
	RetryJitter         time.Duration `validate:"gte=0"`
	MaxRetries          int           `validate:"gte=0,lte=20"`
	RerunDelay          time.Duration `validate:"gte=0"`
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval        time.Duration `validate:"gt=0"`
	NetworkPollInterval time.Duration `validate:"gt=0"`
}

// ClientLog holds log file rotation settings.
type ClientLog struct {
	FilePath   string
	MaxSizeMB  int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
	MaxAgeDays int `validate:"gte=0"`
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
	Log     ClientLog

	// Args is the client command with its arguments.
	Args []string
}

// ServerApp holds server identification.
type ServerApp struct {
	Version string
}

// ServerHTTP holds the HTTP listener settings.
type ServerHTTP struct {
	HTTPAddress     string        `validate:"required,hostname_port"`
	RequestTimeout  time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Tokens          []string      `validate:"min=1,dive,contains=:"`
	MaxUploadBytes  int64         `validate:"gt=0"`
}

// ServerFiles holds the backup directory.
type ServerFiles struct {
	BackupDir string `validate:"required"`
}

// ServerStorage groups server storage settings.
type ServerStorage struct {
	Files ServerFiles
}

// ServerConfig is the backup server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  ServerHTTP
	Storage ServerStorage
}

// GetClientConfig builds and validates the client view of the merged
// configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientConfig()
	return clientCfg, clientCfg.validate()
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerConfig()
	return serverCfg, serverCfg.validate()
}

// ClientConfig maps the fields relevant to the client runtime.
func (cfg *StructuredConfig) ClientConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Version:  cfg.App.Version,
			DeviceID: cfg.App.DeviceID,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			Token:          cfg.Adapter.Token,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProbeTimeout:   cfg.Adapter.ProbeTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Sync: ClientSync{
			DisableAutoSync:     cfg.Sync.DisableAutoSync,
			LowBandwidth:        cfg.Sync.LowBandwidth,
			SaveData:            cfg.Sync.SaveData,
			NetworkType:         cfg.Sync.NetworkType,
			ConflictCollections: append([]string(nil), cfg.Sync.ConflictCollections...),
			Debounce:            cfg.Sync.Debounce,
			Tolerance:           cfg.Sync.Tolerance,
			RetryBase:           cfg.Sync.RetryBase,
			RetryJitter:         cfg.Sync.RetryJitter,
			MaxRetries:          cfg.Sync.MaxRetries,
			RerunDelay:          cfg.Sync.RerunDelay,
		},
		Workers: ClientWorkers{
			SyncInterval:        cfg.Workers.SyncInterval,
			NetworkPollInterval: cfg.Workers.NetworkPollInterval,
		},
		Log: ClientLog{
			FilePath:   cfg.Log.FilePath,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
		Args: append([]string(nil), cfg.Args...),
	}
}

// ServerConfig maps the fields relevant to the backup server.
func (cfg *StructuredConfig) ServerConfig() *ServerConfig {
	return &ServerConfig{
		App: ServerApp{Version: cfg.App.Version},
		Server: ServerHTTP{
			HTTPAddress:     cfg.Server.HTTPAddress,
			RequestTimeout:  cfg.Server.RequestTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			Tokens:          append([]string(nil), cfg.Server.Tokens...),
			MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		},
		Storage: ServerStorage{
			Files: ServerFiles{BackupDir: cfg.Storage.Files.BackupDir},
		},
	}
}
