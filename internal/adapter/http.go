package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/snapshot"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

const (
	uploadPath = "/backups"
	latestPath = "/backups/latest"
	listPath   = "/backups/list"
	backupPath = "/backups/{name}"

	contentDigestHeader = "X-Content-SHA256"
)

type httpBackupAPI struct {
	client *utils.HTTPClient
	base   *url.URL

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPBackupAPI constructs the resty implementation of [BackupAPI].
// It normalises the base URL from adapterCfg.BaseURL, applies the request
// timeout and seeds the token from adapterCfg.Token.
//
// Returns an error if the base URL is empty or cannot be parsed.
func NewHTTPBackupAPI(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (BackupAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}
	base, _ := url.Parse(baseURL)

	userAgent := "shelf-sync"
	if appCfg.Version != "" {
		userAgent += "/" + appCfg.Version
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:   baseURL,
		Timeout:   adapterCfg.RequestTimeout,
		UserAgent: userAgent,
	})

	api := &httpBackupAPI{client: client, base: base, logger: logger}
	api.SetToken(adapterCfg.Token)
	return api, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpBackupAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBackupAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Upload implements [BackupAPI]. The content is sent as the multipart field
// "file" of PUT /backups together with its SHA-256 digest.
func (h *httpBackupAPI) Upload(ctx context.Context, filename string, data []byte) error {
	resp, err := h.authedRequest(ctx).
		SetHeader(contentDigestHeader, utils.SHA256Hex(data)).
		SetFileReader("file", filename, bytes.NewReader(data)).
		Put(uploadPath)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}

	return mapHTTPError(resp)
}

// Latest implements [BackupAPI]. A cache-busting "t" query parameter is
// added so intermediaries never answer from their own cache.
func (h *httpBackupAPI) Latest(ctx context.Context, etag string) (models.BackupMeta, error) {
	req := h.authedRequest(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	if etag != "" {
		req.SetHeader("If-None-Match", etag)
	}

	resp, err := req.Get(latestPath)
	if err != nil {
		return models.BackupMeta{}, fmt.Errorf("latest backup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BackupMeta{}, err
	}

	var meta models.BackupMeta
	if err = json.Unmarshal(resp.Body(), &meta); err != nil {
		return models.BackupMeta{}, fmt.Errorf("decode latest backup response: %w", err)
	}
	meta.ETag = resp.Header().Get("ETag")

	return meta, nil
}

// Download implements [BackupAPI]. Relative URLs resolve against the base
// URL. The bearer token is only sent to the backup host itself.
func (h *httpBackupAPI) Download(ctx context.Context, downloadURL, filename string) ([]byte, error) {
	if downloadURL == "" {
		return nil, fmt.Errorf("%w: empty download url", ErrBadRequest)
	}

	req := h.client.R().SetContext(ctx)
	if h.sameOrigin(downloadURL) {
		req = h.authedRequest(ctx)
	}

	resp, err := req.Get(downloadURL)
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if filename == "" {
		if u, perr := url.Parse(downloadURL); perr == nil {
			filename = path.Base(u.Path)
		}
	}
	return decompress(filename, resp.Body())
}

func (h *httpBackupAPI) List(ctx context.Context) ([]models.BackupInfo, error) {
	var list models.BackupList

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&list).
		Get(listPath)
	if err != nil {
		return nil, fmt.Errorf("list backups request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if list.Backups == nil {
		return []models.BackupInfo{}, nil
	}
	return list.Backups, nil
}

func (h *httpBackupAPI) Fetch(ctx context.Context, name string) ([]byte, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		Get(backupPath)
	if err != nil {
		return nil, fmt.Errorf("fetch backup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decompress(name, resp.Body())
}

func (h *httpBackupAPI) Delete(ctx context.Context, name string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		Delete(backupPath)
	if err != nil {
		return fmt.Errorf("delete backup request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpBackupAPI) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// sameOrigin reports whether raw is relative or points at the base host.
func (h *httpBackupAPI) sameOrigin(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return true
	}
	return strings.EqualFold(u.Scheme, h.base.Scheme) && strings.EqualFold(u.Host, h.base.Host)
}

func decompress(filename string, body []byte) ([]byte, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".gz") {
		return body, nil
	}

	data, err := snapshot.Gunzip(body)
	if err != nil {
		return nil, &snapshot.DecodeError{Reason: "decompress " + filename, Err: err}
	}
	return data, nil
}
