package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name        string
		config      config.LoggingConfig
		override    string
		expectError bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "verbose"}, "warn", false},
		{"invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_ = logger.Sync()
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dealer.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("written")
	_ = logger.Sync()
	assert.FileExists(t, path)
}

func TestLoadConfigurationAllowMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	conf, err := loadConfiguration(missing, true)
	require.NoError(t, err)
	assert.True(t, conf.Seed.Catalog)
	assert.Empty(t, conf.Quotes)

	_, err = loadConfiguration(missing, false)
	assert.Error(t, err)
}

func TestBuildServicesSeeds(t *testing.T) {
	ctx := context.Background()
	backend, err := storage.Open(ctx, zap.NewNop(), storage.Config{})
	require.NoError(t, err)
	defer func() {
		_ = backend.Close()
	}()

	conf := &config.Configuration{Seed: config.SeedConfig{Catalog: true, Rules: true}}
	services, err := buildServices(ctx, zap.NewNop(), backend, conf)
	require.NoError(t, err)

	cars, err := services.Catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, 19)

	list, err := services.Rules.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	dealList, err := services.Deals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, dealList, "deal seeding is off")
}
