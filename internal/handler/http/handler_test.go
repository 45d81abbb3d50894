package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

const (
	aliceToken = "alice-secret"
	bobToken   = "bob-secret"
)

var testHTTPConfig = config.ServerHTTP{
	HTTPAddress:    "localhost:0",
	Tokens:         []string{"alice:" + aliceToken, "bob:" + bobToken},
	MaxUploadBytes: 1024,
}

// ---- Stubs ----

type stubAppInfoService struct {
	version string
}

func (s stubAppInfoService) GetAppVersion(context.Context) string {
	return s.version
}

type stubBackupService struct {
	uploadFn func(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error)
	latestFn func(ctx context.Context, owner string) (models.BackupMeta, error)
	listFn   func(ctx context.Context, owner string) ([]models.BackupInfo, error)
	getFn    func(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error)
	deleteFn func(ctx context.Context, owner, name string) error
}

func (s *stubBackupService) Upload(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error) {
	return s.uploadFn(ctx, owner, name, data)
}

func (s *stubBackupService) Latest(ctx context.Context, owner string) (models.BackupMeta, error) {
	return s.latestFn(ctx, owner)
}

func (s *stubBackupService) List(ctx context.Context, owner string) ([]models.BackupInfo, error) {
	return s.listFn(ctx, owner)
}

func (s *stubBackupService) Get(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error) {
	return s.getFn(ctx, owner, name)
}

func (s *stubBackupService) Delete(ctx context.Context, owner, name string) error {
	return s.deleteFn(ctx, owner, name)
}

// ---- Helpers ----

func newTestHandler(t *testing.T, backups service.BackupService) *Handler {
	t.Helper()

	h, err := NewHandler(&service.Services{
		BackupService:  backups,
		AppInfoService: stubAppInfoService{version: "1.0.0"},
	}, testHTTPConfig, logger.Nop())
	require.NoError(t, err)
	return h
}

// newFileBackedServer serves the router over a real file backup store.
func newFileBackedServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage, err := store.NewBackupFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(newTestHandler(t, service.NewBackupService(storage, logger.Nop())).Init())
	t.Cleanup(srv.Close)
	return srv
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func upload(t *testing.T, srv *httptest.Server, token, name string, data []byte) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, "file", name, data)
	return doRequest(t, srv, http.MethodPut, "/backups", token, body, map[string]string{
		"Content-Type": contentType,
	})
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return data
}

// ---- NewHandler ----

func TestNewHandler(t *testing.T) {
	services := &service.Services{}
	log := logger.Nop()

	h, err := NewHandler(services, testHTTPConfig, log)
	require.NoError(t, err)

	assert.Same(t, services, h.services)
	assert.Same(t, log, h.logger)
	assert.Equal(t, int64(1024), h.maxUploadBytes)
	assert.Equal(t, []ownerToken{{owner: "alice", token: aliceToken}, {owner: "bob", token: bobToken}}, h.tokens)
}

func TestNewHandler_MalformedTokens(t *testing.T) {
	cfg := testHTTPConfig
	cfg.Tokens = []string{"alice:secret", ":nobody"}

	h, err := NewHandler(&service.Services{}, cfg, logger.Nop())
	require.ErrorIs(t, err, ErrMalformedTokenPair)
	assert.Nil(t, h)
}

// ---- Backup API ----

func TestBackupAPI_RoundTrip(t *testing.T) {
	srv := newFileBackedServer(t)
	content := []byte(`{"version":1,"collections":{}}`)

	resp := upload(t, srv, aliceToken, "latest.json", content)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info models.BackupInfo
	require.NoError(t, json.Unmarshal(readBody(t, resp), &info))
	assert.Equal(t, "latest.json", info.Filename)
	assert.Equal(t, int64(len(content)), info.Size)

	resp = doRequest(t, srv, http.MethodGet, "/backups/latest?t=1", aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	assert.Equal(t, utils.WeakETag(utils.SHA256Hex(content)), etag)

	var meta models.BackupMeta
	require.NoError(t, json.Unmarshal(readBody(t, resp), &meta))
	assert.Equal(t, "/backups/latest.json", meta.DownloadURL)
	assert.Equal(t, "latest.json", meta.Filename)
	assert.Equal(t, info.Modified, meta.Modified)

	resp = doRequest(t, srv, http.MethodGet, "/backups/latest", aliceToken, nil, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))

	resp = doRequest(t, srv, http.MethodGet, meta.DownloadURL, aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, readBody(t, resp))

	resp = doRequest(t, srv, http.MethodGet, "/backups/list", aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list models.BackupList
	require.NoError(t, json.Unmarshal(readBody(t, resp), &list))
	require.Len(t, list.Backups, 1)
	assert.Equal(t, "latest.json", list.Backups[0].Filename)

	resp = doRequest(t, srv, http.MethodDelete, "/backups/latest.json", aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodGet, "/backups/latest", aliceToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodDelete, "/backups/latest.json", aliceToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBackupAPI_GzipBackupServedAsStored(t *testing.T) {
	srv := newFileBackedServer(t)
	gz := []byte{0x1f, 0x8b, 0x08, 0x00, 0x01, 0x02}

	require.Equal(t, http.StatusOK, upload(t, srv, aliceToken, "backup-2026-01-01.json.gz", gz).StatusCode)

	resp := doRequest(t, srv, http.MethodGet, "/backups/backup-2026-01-01.json.gz", aliceToken, nil, map[string]string{
		"Accept-Encoding": "gzip",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contentTypeGzip, resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.Equal(t, gz, readBody(t, resp))
}

func TestBackupAPI_OwnersAreIsolated(t *testing.T) {
	srv := newFileBackedServer(t)

	require.Equal(t, http.StatusOK, upload(t, srv, aliceToken, "latest.json", []byte("{}")).StatusCode)

	resp := doRequest(t, srv, http.MethodGet, "/backups/latest", bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodGet, "/backups/list", bobToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"backups":[]}`, string(readBody(t, resp)))
}

func TestBackupAPI_UploadErrors(t *testing.T) {
	srv := newFileBackedServer(t)

	tests := []struct {
		name       string
		field      string
		filename   string
		data       []byte
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "missing file field",
			field:      "other",
			filename:   "latest.json",
			data:       []byte("{}"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty backup",
			field:      "file",
			filename:   "latest.json",
			data:       []byte{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "hidden file name",
			field:      "file",
			filename:   ".latest.json",
			data:       []byte("{}"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "above upload limit",
			field:      "file",
			filename:   "latest.json",
			data:       bytes.Repeat([]byte("x"), 4096),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "digest mismatch",
			field:      "file",
			filename:   "latest.json",
			data:       []byte("{}"),
			headers:    map[string]string{contentDigestHeader: utils.SHA256Hex([]byte("other"))},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.field, tt.filename, tt.data)
			headers := map[string]string{"Content-Type": contentType}
			for k, v := range tt.headers {
				headers[k] = v
			}

			resp := doRequest(t, srv, http.MethodPut, "/backups", aliceToken, body, headers)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	resp := doRequest(t, srv, http.MethodGet, "/backups/list", aliceToken, nil, nil)
	assert.JSONEq(t, `{"backups":[]}`, string(readBody(t, resp)))
}

func TestBackupAPI_UploadWithMatchingDigest(t *testing.T) {
	srv := newFileBackedServer(t)
	data := []byte(`{"version":1}`)

	body, contentType := multipartBody(t, "file", "latest.json", data)
	resp := doRequest(t, srv, http.MethodPut, "/backups", aliceToken, body, map[string]string{
		"Content-Type":      contentType,
		contentDigestHeader: utils.SHA256Hex(data),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBackupAPI_Authentication(t *testing.T) {
	srv := newFileBackedServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "basic scheme", header: "Basic YWxpY2U6c2VjcmV0"},
		{name: "empty bearer", header: "Bearer "},
		{name: "unknown token", header: "Bearer guess"},
		{name: "owner name as token", header: "Bearer alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			resp := doRequest(t, srv, http.MethodGet, "/backups/list", "", nil, headers)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestBackupAPI_InternalErrorHidesDetails(t *testing.T) {
	backups := &stubBackupService{
		latestFn: func(context.Context, string) (models.BackupMeta, error) {
			return models.BackupMeta{}, assert.AnError
		},
	}
	srv := httptest.NewServer(newTestHandler(t, backups).Init())
	defer srv.Close()

	resp := doRequest(t, srv, http.MethodGet, "/backups/latest", aliceToken, nil, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(readBody(t, resp)))
}

func TestBackupAPI_PassesOwnerAndName(t *testing.T) {
	var gotOwner, gotName string
	backups := &stubBackupService{
		deleteFn: func(_ context.Context, owner, name string) error {
			gotOwner, gotName = owner, name
			return nil
		},
	}
	srv := httptest.NewServer(newTestHandler(t, backups).Init())
	defer srv.Close()

	resp := doRequest(t, srv, http.MethodDelete, "/backups/backup-2026-03-04.json.gz", bobToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bob", gotOwner)
	assert.Equal(t, "backup-2026-03-04.json.gz", gotName)
}

// ---- Routing ----

func TestInit_Routing(t *testing.T) {
	srv := newFileBackedServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  []string
	}{
		{name: "version without auth", method: http.MethodGet, path: "/api/version", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantStatus: http.StatusNotFound},
		{name: "wrong method on static route", method: http.MethodPost, path: "/backups/latest", wantStatus: http.StatusMethodNotAllowed, wantAllow: []string{"GET"}},
		{name: "wrong method on upload route", method: http.MethodGet, path: "/backups", wantStatus: http.StatusMethodNotAllowed, wantAllow: []string{"PUT"}},
		{name: "wrong method on named route", method: http.MethodPatch, path: "/backups/latest.json", wantStatus: http.StatusMethodNotAllowed, wantAllow: []string{"GET", "DELETE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, srv, tt.method, tt.path, aliceToken, nil, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			allow := resp.Header.Get("Allow")
			if len(tt.wantAllow) == 0 {
				assert.Empty(t, allow)
			}
			for _, method := range tt.wantAllow {
				assert.Contains(t, allow, method)
			}
		})
	}
}

func TestGetServerVersion(t *testing.T) {
	srv := newFileBackedServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/version", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1.0.0", string(readBody(t, resp)))
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
}
