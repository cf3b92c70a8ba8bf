package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const EnvPrefix = "GO_FUND_NOTICE"

type loaderOptions struct {
	fileName    string
	searchPaths []string
}

type LoaderOption func(*loaderOptions)

func WithConfigFileName(name string) LoaderOption {
	return func(o *loaderOptions) { o.fileName = name }
}

func WithConfigFileSearchPaths(paths ...string) LoaderOption {
	return func(o *loaderOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// Load reads the config file (when found) and overlays environment variables,
// e.g. GO_FUND_NOTICE_APP_ENV overrides app.env.
func Load(opts ...LoaderOption) (cfg Config, err error) {
	o := &loaderOptions{fileName: "config"}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.searchPaths) == 0 {
		o.searchPaths = []string{"/config", ".", "./config"}
	}

	v := viper.New()
	v.SetConfigName(o.fileName)
	for _, p := range o.searchPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Backoffice.ResourceSuffix == "" {
		cfg.Backoffice.ResourceSuffix = cfg.Environment().ResourceSuffix()
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-fund-notice")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.graceful_timeout", 10*time.Second)
	v.SetDefault("app.log_option", "stdout")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("backoffice.retry_count", 2)
	v.SetDefault("backoffice.retry_wait_time", 200)
	v.SetDefault("backoffice.timeout", 15*time.Second)
	v.SetDefault("backoffice.cache_ttl", 10*time.Minute)

	v.SetDefault("transaction_detail.retry_count", 2)
	v.SetDefault("transaction_detail.retry_wait_time", 200)
	v.SetDefault("transaction_detail.timeout", 15*time.Second)

	v.SetDefault("notice.fund_name_source", FundNameSourceTable)
	v.SetDefault("notice.classification_failure", ClassificationFailureUnclassified)
	v.SetDefault("notice.timezone", "America/Lima")

	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.images_dir", "images")
	v.SetDefault("report.csv_file_name", "output.csv")
	v.SetDefault("report.pdf_file_name", "output.pdf")
	v.SetDefault("report.csv_encoding", CSVEncodingWindows1252)
	v.SetDefault("report.sender", "Blum <noreply@miblum.com>")
	v.SetDefault("report.concurrency", 10)
	v.SetDefault("report.rate_per_second", 10)
	v.SetDefault("report.rate_burst", 10)
	v.SetDefault("report.item_timeout", 2*time.Minute)
	v.SetDefault("report.page_size", 500)
	v.SetDefault("report.image_width", 495)
	v.SetDefault("report.viewport_width", 600)
	v.SetDefault("report.render_timeout", time.Minute)

	v.SetDefault("local_storage.bucket", "go-fund-notice-failures")
	v.SetDefault("local_storage.dir", ".")

	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", 30*time.Second)
	v.SetDefault("exponential_backoff.backoff_multiplier", 2)
}
