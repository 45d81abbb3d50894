package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Full(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"version": "1.2.3", "device_id": "dev-9"},
		"storage": map[string]any{"db": map[string]any{"dsn": "x.db"}, "files": map[string]any{"backup_dir": "/b"}},
		"server": map[string]any{
			"http_address": "localhost:9000", "request_timeout": "20s",
			"shutdown_timeout": "3s", "tokens": []string{"a:b"}, "max_upload_bytes": 1024,
		},
		"adapter": map[string]any{"base_url": "http://h", "token": "t", "request_timeout": "9s", "probe_timeout": "1s"},
		"sync": map[string]any{
			"low_bandwidth": true, "network_type": "unmetered", "conflict_collections": []string{"books"},
			"debounce": "250ms", "retry_base": "2s", "retry_jitter": "500ms", "rerun_delay": "100ms",
		},
		"workers": map[string]any{"sync_interval": "10m", "network_poll_interval": "15s"},
		"log":     map[string]any{"file": "c.log", "max_size_mb": 5},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "dev-9", cfg.App.DeviceID)
	assert.Equal(t, "x.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/b", cfg.Storage.Files.BackupDir)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"a:b"}, cfg.Server.Tokens)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 9*time.Second, cfg.Adapter.RequestTimeout)
	assert.True(t, cfg.Sync.LowBandwidth)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.Debounce)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, "c.log", cfg.Log.FilePath)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestParseJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: `"1.5s"`, want: 1500 * time.Millisecond},
		{input: `1000000`, want: time.Millisecond},
		{input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
