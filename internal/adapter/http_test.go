// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/snapshot"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// newTestAdapter creates an httpBackupAPI pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpBackupAPI {
	t.Helper()
	adapterCfg := config.ClientAdapter{BaseURL: serverURL, Token: "secret"}
	appCfg := config.ClientApp{Version: "1.2.3"}

	a, err := NewHTTPBackupAPI(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpBackupAPI)
}

// ── Upload ───────────────────────────────────────────────────────────────────

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/backups", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "shelf-sync/1.2.3", r.Header.Get("User-Agent"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)

		assert.Equal(t, "latest.json", header.Filename)
		assert.Equal(t, `{"version":1}`, string(body))
		assert.Equal(t, utils.SHA256Hex(body), r.Header.Get("X-Content-SHA256"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Upload(context.Background(), "latest.json", []byte(`{"version":1}`)))
}

func TestUpload_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Upload(context.Background(), "latest.json", []byte("{}"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpload_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Upload(context.Background(), "latest.json", []byte("{}"))

	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestUpload_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	err := a.Upload(context.Background(), "latest.json", []byte("{}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload request")
}

// ── Latest ───────────────────────────────────────────────────────────────────

func TestLatest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/backups/latest", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("t"), "cache buster")
		assert.Empty(t, r.Header.Get("If-None-Match"))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", `W/"abc"`)
		_ = json.NewEncoder(w).Encode(models.BackupMeta{
			Modified:    1700000000000,
			DownloadURL: "/backups/latest.json",
			Filename:    "latest.json",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	meta, err := a.Latest(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), meta.Modified)
	assert.Equal(t, "/backups/latest.json", meta.DownloadURL)
	assert.Equal(t, "latest.json", meta.Filename)
	assert.Equal(t, `W/"abc"`, meta.ETag)
}

func TestLatest_NotModified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `W/"abc"`, r.Header.Get("If-None-Match"))
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Latest(context.Background(), `W/"abc"`)

	assert.ErrorIs(t, err, ErrNotModified)
}

func TestLatest_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no backup", http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Latest(context.Background(), "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatest_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Latest(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode latest backup response")
}

// ── Download / Fetch ─────────────────────────────────────────────────────────

func TestDownload_Plain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/backups/latest.json", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"version":1}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	data, err := a.Download(context.Background(), "/backups/latest.json", "latest.json")

	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))
}

func TestDownload_GzipByName(t *testing.T) {
	zipped, err := snapshot.Gzip([]byte(`{"version":1}`))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(zipped)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	data, err := a.Download(context.Background(), srv.URL+"/backups/backup-2026-10-17.json.gz", "")

	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))
}

func TestDownload_CorruptGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not gzip"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Download(context.Background(), "/x.json.gz", "x.json.gz")

	assert.ErrorIs(t, err, snapshot.ErrDecode)
}

func TestDownload_ForeignHostGetsNoToken(t *testing.T) {
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("{}"))
	}))
	defer foreign.Close()

	own := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer own.Close()

	a := newTestAdapter(t, own.URL)
	_, err := a.Download(context.Background(), foreign.URL+"/file.json", "file.json")
	require.NoError(t, err)
}

func TestDownload_EmptyURL(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	_, err := a.Download(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestFetch_EscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/backups/backup 1.json", r.URL.Path)
		_, _ = w.Write([]byte("content"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	data, err := a.Fetch(context.Background(), "backup 1.json")

	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

// ── List / Delete ────────────────────────────────────────────────────────────

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/backups/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.BackupList{Backups: []models.BackupInfo{
			{Filename: "latest.json", Modified: 2, Size: 10},
			{Filename: "backup-2026-10-16.json.gz", Modified: 1, Size: 5},
		}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	list, err := a.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "latest.json", list[0].Filename)
}

func TestList_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	list, err := a.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/backups/old.json", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.NoError(t, a.Delete(context.Background(), "old.json"))
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.ErrorIs(t, a.Delete(context.Background(), "old.json"), ErrNotFound)
}

// ── token / base url ─────────────────────────────────────────────────────────

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.SetToken("  abc \n")
	assert.Equal(t, "abc", a.Token())
}

func TestNoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("")
	require.NoError(t, a.Delete(context.Background(), "x.json"))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "with scheme", raw: "https://backup.example.com/", want: "https://backup.example.com"},
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "spaces", raw: "  http://a.b  ", want: "http://a.b"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPBackupAPI_InvalidURL(t *testing.T) {
	_, err := NewHTTPBackupAPI(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	assert.Error(t, err)
}
