package client

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-shelf-sync/internal/handler/http"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/mock"
	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

const testToken = "secret-token"

func TestProbeAddress(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "explicit port", baseURL: "http://127.0.0.1:8080/api", want: "127.0.0.1:8080"},
		{name: "http default port", baseURL: "http://backup.example.com", want: "backup.example.com:80"},
		{name: "https default port", baseURL: "https://backup.example.com/", want: "backup.example.com:443"},
		{name: "no scheme", baseURL: "localhost:9000", want: "localhost:9000"},
		{name: "ipv6", baseURL: "http://[::1]:8080", want: "[::1]:8080"},
		{name: "no host", baseURL: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probeAddress(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDeviceID(t *testing.T) {
	ctx := context.Background()
	gen := utils.NewUUIDGenerator()

	t.Run("configured", func(t *testing.T) {
		meta := mock.NewMockSyncMetaRepository(gomock.NewController(t))

		id, err := resolveDeviceID(ctx, meta, "  tablet  ", gen)
		require.NoError(t, err)
		assert.Equal(t, "tablet", id)
	})

	t.Run("persisted", func(t *testing.T) {
		meta := mock.NewMockSyncMetaRepository(gomock.NewController(t))
		meta.EXPECT().GetDeviceID(ctx).Return("stored-id", nil)

		id, err := resolveDeviceID(ctx, meta, "", gen)
		require.NoError(t, err)
		assert.Equal(t, "stored-id", id)
	})

	t.Run("generated", func(t *testing.T) {
		meta := mock.NewMockSyncMetaRepository(gomock.NewController(t))
		var saved string
		gomock.InOrder(
			meta.EXPECT().GetDeviceID(ctx).Return("", nil),
			meta.EXPECT().SaveDeviceID(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, id string) error {
				saved = id
				return nil
			}),
		)

		id, err := resolveDeviceID(ctx, meta, "", gen)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, saved, id)
	})

	t.Run("load error", func(t *testing.T) {
		meta := mock.NewMockSyncMetaRepository(gomock.NewController(t))
		meta.EXPECT().GetDeviceID(ctx).Return("", errors.New("disk I/O error"))

		_, err := resolveDeviceID(ctx, meta, "", gen)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load device id")
	})
}

func newBackupServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage, err := store.NewBackupFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	services := &service.Services{BackupService: service.NewBackupService(storage, logger.Nop())}
	h, err := myHTTP.NewHandler(services, config.ServerHTTP{
		Tokens:         []string{"alice:" + testToken},
		MaxUploadBytes: 1 << 20,
	}, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)
	return srv
}

func testClientConfig(baseURL, dsn string, args ...string) config.ClientConfig {
	return config.ClientConfig{
		App: config.ClientApp{Version: "test"},
		Adapter: config.ClientAdapter{
			BaseURL:        baseURL,
			Token:          testToken,
			RequestTimeout: 5 * time.Second,
			ProbeTimeout:   time.Second,
		},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: dsn}},
		Sync: config.ClientSync{
			ConflictCollections: []string{models.CollectionBooks, models.CollectionDocuments},
			Debounce:            time.Hour,
			RetryBase:           time.Second,
			RerunDelay:          10 * time.Millisecond,
		},
		Workers: config.ClientWorkers{
			SyncInterval:        time.Hour,
			NetworkPollInterval: time.Hour,
		},
		Args: args,
	}
}

// runCommand opens a fresh app over dsn, runs one command and returns its
// output.
func runCommand(t *testing.T, baseURL, dsn string, args ...string) (string, *App, error) {
	t.Helper()

	out := &bytes.Buffer{}
	app, err := NewApp(context.Background(), testClientConfig(baseURL, dsn, args...), out, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	err = app.Run(context.Background())
	return out.String(), app, err
}

func TestApp_SyncPullListDelete(t *testing.T) {
	srv := newBackupServer(t)
	dsnA := filepath.Join(t.TempDir(), "device-a.db")
	dsnB := filepath.Join(t.TempDir(), "device-b.db")
	ctx := context.Background()

	out := &bytes.Buffer{}
	appA, err := NewApp(ctx, testClientConfig(srv.URL, dsnA, "sync"), out, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, appA.storages.Collections.Put(ctx, models.CollectionBooks,
		models.Item{ID: "b1", Title: "Dune", UpdatedAt: 1000}, store.PutOptions{SkipSync: true}))

	require.NoError(t, appA.Run(ctx))
	assert.Contains(t, out.String(), "status: synced")
	require.NoError(t, appA.Close())

	_, appB, err := runCommand(t, srv.URL, dsnB, "pull")
	require.NoError(t, err)
	books, err := appB.storages.Collections.GetAll(ctx, models.CollectionBooks)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)

	listed, _, err := runCommand(t, srv.URL, dsnA, "list")
	require.NoError(t, err)
	assert.Contains(t, listed, "latest.json")

	deleted, _, err := runCommand(t, srv.URL, dsnA, "delete", "latest.json")
	require.NoError(t, err)
	assert.Equal(t, "deleted: latest.json\n", deleted)

	listed, _, err = runCommand(t, srv.URL, dsnA, "list")
	require.NoError(t, err)
	assert.NotContains(t, listed, "latest.json")
}

func TestApp_DeviceIDIsPersisted(t *testing.T) {
	srv := newBackupServer(t)
	dsn := filepath.Join(t.TempDir(), "shelf.db")

	_, first, err := runCommand(t, srv.URL, dsn, "status")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	_, second, err := runCommand(t, srv.URL, dsn, "status")
	require.NoError(t, err)

	assert.NotEmpty(t, first.cfg.App.DeviceID)
	assert.Equal(t, first.cfg.App.DeviceID, second.cfg.App.DeviceID)
}

func TestApp_CommandErrors(t *testing.T) {
	srv := newBackupServer(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown command", args: []string{"frobnicate"}, want: ErrUnknownCommand},
		{name: "restore without name", args: []string{"restore"}, want: ErrMissingArgument},
		{name: "delete without name", args: []string{"delete", " "}, want: ErrMissingArgument},
		{name: "login without token", args: []string{"login"}, want: ErrMissingArgument},
		{name: "restore invalid name", args: []string{"restore", "../etc/passwd"}, want: service.ErrInvalidBackupName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := filepath.Join(t.TempDir(), "shelf.db")
			_, _, err := runCommand(t, srv.URL, dsn, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApp_LoginLogout(t *testing.T) {
	srv := newBackupServer(t)
	dsn := filepath.Join(t.TempDir(), "shelf.db")

	run := func(args ...string) (string, error) {
		cfg := testClientConfig(srv.URL, dsn, args...)
		cfg.Adapter.Token = ""

		out := &bytes.Buffer{}
		app, err := NewApp(context.Background(), cfg, out, logger.Nop())
		require.NoError(t, err)
		defer app.Close()

		err = app.Run(context.Background())
		return out.String(), err
	}

	_, err := run("sync")
	require.ErrorIs(t, err, service.ErrConfigurationMissing)

	_, err = run("login", testToken)
	require.NoError(t, err)

	out, err := run("sync")
	require.NoError(t, err)
	assert.Contains(t, out, "status: synced")

	_, err = run("logout")
	require.NoError(t, err)

	_, err = run("sync")
	require.ErrorIs(t, err, service.ErrConfigurationMissing)
}
