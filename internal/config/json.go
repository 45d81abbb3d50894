package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations written as strings ("1.5s", "5m").
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		DeviceID string `json:"device_id"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BackupDir string `json:"backup_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		Tokens          []string `json:"tokens"`
		MaxUploadBytes  int64    `json:"max_upload_bytes"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
		ProbeTimeout   Duration `json:"probe_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		DisableAutoSync     bool     `json:"disable_auto_sync"`
		LowBandwidth        bool     `json:"low_bandwidth"`
		SaveData            bool     `json:"save_data"`
		NetworkType         string   `json:"network_type"`
		ConflictCollections []string `json:"conflict_collections"`
		Debounce            Duration `json:"debounce"`
		Tolerance           Duration `json:"tolerance"`
		RetryBase           Duration `json:"retry_base"`
		RetryJitter         Duration `json:"retry_jitter"`
		MaxRetries          int      `json:"max_retries"`
		RerunDelay          Duration `json:"rerun_delay"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval        Duration `json:"sync_interval"`
		NetworkPollInterval Duration `json:"network_poll_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		FilePath   string `json:"file"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
		MaxAgeDays int    `json:"max_age_days"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  j.App.Version,
			DeviceID: j.App.DeviceID,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Files: Files{BackupDir: j.Storage.Files.BackupDir},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
			Tokens:          j.Server.Tokens,
			MaxUploadBytes:  j.Server.MaxUploadBytes,
		},
		Adapter: Adapter{
			BaseURL:        j.Adapter.BaseURL,
			Token:          j.Adapter.Token,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			ProbeTimeout:   time.Duration(j.Adapter.ProbeTimeout),
		},
		Sync: Sync{
			DisableAutoSync:     j.Sync.DisableAutoSync,
			LowBandwidth:        j.Sync.LowBandwidth,
			SaveData:            j.Sync.SaveData,
			NetworkType:         j.Sync.NetworkType,
			ConflictCollections: j.Sync.ConflictCollections,
			Debounce:            time.Duration(j.Sync.Debounce),
			Tolerance:           time.Duration(j.Sync.Tolerance),
			RetryBase:           time.Duration(j.Sync.RetryBase),
			RetryJitter:         time.Duration(j.Sync.RetryJitter),
			MaxRetries:          j.Sync.MaxRetries,
			RerunDelay:          time.Duration(j.Sync.RerunDelay),
		},
		Workers: Workers{
			SyncInterval:        time.Duration(j.Workers.SyncInterval),
			NetworkPollInterval: time.Duration(j.Workers.NetworkPollInterval),
		},
		Log: Log{
			FilePath:   j.Log.FilePath,
			MaxSizeMB:  j.Log.MaxSizeMB,
			MaxBackups: j.Log.MaxBackups,
			MaxAgeDays: j.Log.MaxAgeDays,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
