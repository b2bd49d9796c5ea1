package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/service"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{Port: "0", AllowedOrigins: []string{"http://widget.local"}},
		Storage: config.StorageConfig{
			Backend:    backend,
			Key:        storage.DefaultKey,
			FilePath:   filepath.Join(dir, "birthdays.json"),
			SQLitePath: filepath.Join(dir, "db", "birthdays.db"),
		},
	}
}

func TestOpenSlot_Backends(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	for _, backend := range []string{config.BackendFile, config.BackendSQLite, config.BackendRedis} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			cfg.Redis.Addr = mr.Addr()

			slot, closeFn, err := OpenSlot(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeFn()

			require.NoError(t, slot.Save(ctx, []byte(`[]`)))
			data, err := slot.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(data))
		})
	}
}

func TestOpenSlot_Errors(t *testing.T) {
	cfg := testConfig(t, "mongo")
	_, closeFn, err := OpenSlot(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg = testConfig(t, config.BackendRedis)
	cfg.Redis.Addr = addr
	_, _, err = OpenSlot(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n"})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", dsn)
}

func TestOpenPool_InvalidOptions(t *testing.T) {
	_, err := OpenPool(context.Background(), PoolOptions{})
	assert.ErrorContains(t, err, "DB_DSN is not set")

	_, err = OpenPool(context.Background(), PoolOptions{DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "parse DB_DSN")
}

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := testConfig(t, config.BackendFile)

	store, err := repository.Open(ctx, storage.NewFileSlot(cfg.Storage.FilePath), zap.NewNop())
	require.NoError(t, err)
	wc := NewWishClient(ctx, &config.GeminiConfig{}, zap.NewNop())

	router := BuildRouter(RouterDeps{
		ServiceName:    "cyberbirth",
		Version:        "test",
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         zap.NewNop(),
		Store:          store,
		Service:        service.NewBirthdayService(store, wc),
		Wishes:         wc,
	})

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/birthdays", nil)
		req.Header.Set("Origin", "http://widget.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://widget.local", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/birthdays", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"birthdays":[],"count":0}`, rr.Body.String())
	})
}
