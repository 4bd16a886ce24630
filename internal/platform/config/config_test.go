// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blogapi/internal/platform/config"
)

/*
TestLoad_Defaults checks defaults when only the required variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "blog", cfg.DatabaseName)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_MissingDatabaseURL ensures network drivers demand a connection string.
*/
func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

/*
TestValidate covers the driver matrix.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"mongo_with_url", config.Config{StoreDriver: "mongo", DatabaseURL: "mongodb://x"}, false},
		{"postgres_without_url", config.Config{StoreDriver: "postgres"}, true},
		{"badger_with_path", config.Config{StoreDriver: "badger", BadgerPath: "/tmp/b"}, false},
		{"badger_without_path", config.Config{StoreDriver: "badger"}, true},
		{"unknown_driver", config.Config{StoreDriver: "sqlite", DatabaseURL: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestOriginSuffixes trims and drops blanks.
*/
func TestOriginSuffixes(t *testing.T) {
	cfg := config.Config{AllowedOrigins: " example.com, ,blog.example.org "}
	assert.Equal(t, []string{"example.com", "blog.example.org"}, cfg.OriginSuffixes())
	assert.Nil(t, (&config.Config{}).OriginSuffixes())
}
