package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8084", cfg.Address())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "supermarkt_sales.xlsx", cfg.Data.File)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Security.EnableRateLimit)
	assert.Equal(t, []string{"http://localhost:8084"}, cfg.Security.AllowedOrigins)
	assert.False(t, cfg.Tracing.Enabled)

	layout, err := cfg.Layout()
	require.NoError(t, err)
	assert.Equal(t, "Sales", layout.Sheet)
	assert.Equal(t, 4, layout.HeaderRow)
	assert.Equal(t, "B", layout.FirstColumn)
	assert.Equal(t, "R", layout.LastColumn)
	assert.Equal(t, 1000, layout.RowCap)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SALES_SERVER_PORT", "9090")
	t.Setenv("SALES_DATA_FILE", "/data/sales.xlsx")
	t.Setenv("SALES_DATA_COLUMNS", "c:s")
	t.Setenv("SALES_DATA_ROW_CAP", "50")
	t.Setenv("SALES_LOG_LEVEL", "debug")
	t.Setenv("SALES_SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SALES_TRACING_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/data/sales.xlsx", cfg.Data.File)
	assert.Equal(t, 50, cfg.Data.RowCap)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Tracing.Enabled)

	layout, err := cfg.Layout()
	require.NoError(t, err)
	assert.Equal(t, "C", layout.FirstColumn)
	assert.Equal(t, "S", layout.LastColumn)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALES_DATA_SHEET=Transactions\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SALES_DATA_SHEET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Transactions", cfg.Data.Sheet)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"port out of range", "SALES_SERVER_PORT", "70000", "server port"},
		{"unparseable port", "SALES_SERVER_PORT", "http", "parse environment"},
		{"log level", "SALES_LOG_LEVEL", "verbose", "invalid log level"},
		{"log format", "SALES_LOG_FORMAT", "xml", "invalid log format"},
		{"reversed columns", "SALES_DATA_COLUMNS", "R:B", "data layout"},
		{"bad columns", "SALES_DATA_COLUMNS", "B-R", "data columns"},
		{"zero row cap", "SALES_DATA_ROW_CAP", "0", "data layout"},
		{"empty data file", "SALES_DATA_FILE", "", "data file"},
		{"rate limit", "SALES_SECURITY_RATE_LIMIT_RPS", "0", "rate limit RPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}
