package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/config"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:          8080,
		LogLevel:      "info",
		LogFormat:     "text",
		ServiceName:   "blueprintcost",
		Version:       "test",
		Environment:   "test",
		APIKey:        "secret",
		StorageDriver: config.StorageMemory,
		DBMaxConns:    1,
		CatalogPath:   "../../configs/blueprints.json",
		PricesPath:    "../../configs/prices.json",
		PricesTimeout: time.Second,
		CacheSize:     8,
		CacheTTL:      time.Minute,
	}
}

func TestInitializeStorage_Memory(t *testing.T) {
	storage, err := InitializeStorage(context.Background(), testConfig())
	require.NoError(t, err)

	assert.NotNil(t, storage.Repo)
	assert.Nil(t, storage.Pool)
	assert.Nil(t, storage.DB)
	assert.Nil(t, storage.Pinger())
	assert.NoError(t, storage.Close())
}

func TestBuildService_LoadsSampleDataset(t *testing.T) {
	storage, err := InitializeStorage(context.Background(), testConfig())
	require.NoError(t, err)

	svc, err := BuildService(testConfig(), storage.Repo)
	require.NoError(t, err)
	assert.False(t, svc.Ready(), "no dataset before the first reload")

	require.NoError(t, svc.Reload(context.Background()))
	assert.True(t, svc.Ready())

	info, ok := svc.Info()
	require.True(t, ok)
	assert.Positive(t, info.Blueprints)
	assert.NotEmpty(t, info.CatalogVersion)

	report, err := svc.Calculate(context.Background(), domain.RunParams{})
	require.NoError(t, err)
	assert.Equal(t, info.Blueprints, len(report.Results))
}

func TestBuildService_MissingCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPath = "does-not-exist.json"

	svc, err := BuildService(cfg, nil)
	require.NoError(t, err, "files are only read on reload")

	assert.Error(t, svc.Reload(context.Background()))
	assert.False(t, svc.Ready())
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf(LogFileNamePattern, base.Add(time.Duration(i)*time.Hour).Format(LogFileTimestampFormat))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		fmt.Sprintf(LogFileNamePattern, base.Add(3*time.Hour).Format(LogFileTimestampFormat)),
		fmt.Sprintf(LogFileNamePattern, base.Add(4*time.Hour).Format(LogFileTimestampFormat)),
		"notes.txt",
	}, names)
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	cfg := testConfig()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	f, err := SetupLogger(testConfig())
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

type countingReloader struct {
	calls chan struct{}
}

func (c *countingReloader) Reload(ctx context.Context) error {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return nil
}

func TestStartRefresher(t *testing.T) {
	assert.Nil(t, StartRefresher(&countingReloader{}, 0), "zero interval disables refresh")

	reloader := &countingReloader{calls: make(chan struct{}, 4)}
	r := StartRefresher(reloader, 10*time.Millisecond)
	require.NotNil(t, r)
	defer r.Stop()

	select {
	case <-reloader.calls:
	case <-time.After(time.Second):
		t.Fatal("refresh never ran")
	}
}
