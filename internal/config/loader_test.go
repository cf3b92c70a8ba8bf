package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
app:
  env: dev
  name: go-fund-notice-test
backoffice:
  base_url: http://backoffice.local
  resource_suffix: Prod
  retry_count: 5
notice:
  fund_name_source: store
  fund_names:
    fund-1: Blum Renta Soles
report:
  concurrency: 4
  item_timeout: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Run("file values and defaults", func(t *testing.T) {
		cfg, err := Load(WithConfigFileSearchPaths(dir))
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.App.Env)
		assert.Equal(t, DEV_ENV, cfg.Environment())
		assert.Equal(t, "http://backoffice.local", cfg.Backoffice.BaseURL)
		assert.Equal(t, 5, cfg.Backoffice.RetryCount)
		assert.Equal(t, "Prod", cfg.Backoffice.ResourceSuffix)
		assert.Equal(t, FundNameSourceStore, cfg.Notice.FundNameSource)
		assert.Equal(t, "Blum Renta Soles", cfg.Notice.FundNames["fund-1"])
		assert.Equal(t, 4, cfg.Report.Concurrency)
		assert.Equal(t, 30*time.Second, cfg.Report.ItemTimeout)

		// defaults
		assert.Equal(t, "America/Lima", cfg.Notice.Timezone)
		assert.Equal(t, "Blum <noreply@miblum.com>", cfg.Report.Sender)
		assert.Equal(t, CSVEncodingWindows1252, cfg.Report.CSVEncoding)
		assert.Equal(t, ClassificationFailureUnclassified, cfg.Notice.ClassificationFailure)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("GO_FUND_NOTICE_APP_ENV", "prod")

		cfg, err := Load(WithConfigFileSearchPaths(dir))
		require.NoError(t, err)
		assert.Equal(t, PROD_ENV, cfg.Environment())
		assert.Equal(t, "Prod", cfg.Backoffice.ResourceSuffix)
	})

	t.Run("resource suffix follows the environment", func(t *testing.T) {
		t.Setenv("GO_FUND_NOTICE_APP_ENV", "uat")

		cfg, err := Load(WithConfigFileSearchPaths(t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, "Uat", cfg.Backoffice.ResourceSuffix)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(WithConfigFileSearchPaths(t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, "go-fund-notice", cfg.App.Name)
		assert.Equal(t, LOCAL_ENV, cfg.Environment())
		assert.Equal(t, "Dev", cfg.Backoffice.ResourceSuffix)
	})
}

func TestStringToEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{in: " LOCAL ", want: LOCAL_ENV},
		{in: "dev", want: DEV_ENV},
		{in: "uat", want: UAT_ENV},
		{in: "prod", want: PROD_ENV},
		{in: "staging", want: UNDEFINED_ENV},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StringToEnvironment(tt.in))
		})
	}
}
