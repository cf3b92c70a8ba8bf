package config

import (
	"time"
)

type (
	Config struct {
		App                App                      `json:"app" validate:"required"`
		Postgres           Database                 `json:"postgres"`
		Redis              Redis                    `json:"redis"`
		NewRelicLicenseKey string                   `json:"new_relic_license_key"`
		Backoffice         BackofficeConfig         `json:"backoffice" validate:"required"`
		TransactionDetail  TransactionDetailConfig  `json:"transaction_detail"`
		Notice             NoticeConfig             `json:"notice"`
		Report             ReportConfig             `json:"report"`
		CloudStorageConfig CloudStorageConfig       `json:"cloud_storage"`
		LocalStorage       LocalStorageConfig       `json:"local_storage"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`
		Metrics            MetricsConfig            `json:"metrics"`
	}

	// MetricsConfig.PushgatewayURL empty disables pushing at the end of a job.
	MetricsConfig struct {
		PushgatewayURL string `json:"pushgateway_url"`
	}

	App struct {
		Env             string        `json:"env" validate:"required"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name" validate:"required"`
		LogOption       string        `json:"log_option"`
		LogLevel        string        `json:"log_level"`
	}

	Database struct {
		DbHost            string `json:"db_host"`
		DbPort            string `json:"db_port"`
		DbUser            string `json:"db_user"`
		DbPass            string `json:"db_pass"`
		DbName            string `json:"db_name"`
		DbSchema          string `json:"db_schema"`
		MaxOpenConnection int    `json:"maxOpenConnections"`
		MaxIdleConnection int    `json:"maxIdleConnections"`
		ConnMaxLifetime   int    `json:"connMaxLifetime"`
	}

	// Redis is optional, when Host is empty reference data is cached in memory.
	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	HTTPConfiguration struct {
		BaseURL       string        `json:"base_url" validate:"required,url"`
		SecretKey     string        `json:"secret_key"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout"`
	}

	// BackofficeConfig points to the gateway that invokes the bank, account,
	// client, customer and employee functions.
	BackofficeConfig struct {
		HTTPConfiguration `json:",squash"`

		// ResourceSuffix selects the environment specific function names,
		// e.g. "Dev" resolves "BanksLambdaDev".
		ResourceSuffix string        `json:"resource_suffix"`
		CacheTTL       time.Duration `json:"cache_ttl"`
	}

	TransactionDetailConfig struct {
		BaseURL       string        `json:"base_url"`
		Username      string        `json:"username"`
		Password      string        `json:"password"`
		Token         string        `json:"token"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout"`
	}

	NoticeConfig struct {
		// FundNameSource is "store" (fund table lookup) or "table" (static names).
		FundNameSource string `json:"fund_name_source" validate:"omitempty,oneof=store table"`

		// ClassificationFailure is "unclassified" or "fail".
		ClassificationFailure string `json:"classification_failure" validate:"omitempty,oneof=unclassified fail"`

		DefaultCurrencySymbol string            `json:"default_currency_symbol"`
		Timezone              string            `json:"timezone"`
		FundNames             map[string]string `json:"fund_names"`
		StatusLabels          map[string]string `json:"status_labels"`
	}

	ReportConfig struct {
		OutputDir     string        `json:"output_dir"`
		ImagesDir     string        `json:"images_dir"`
		CSVFileName   string        `json:"csv_file_name"`
		PDFFileName   string        `json:"pdf_file_name"`
		CSVEncoding   string        `json:"csv_encoding" validate:"omitempty,oneof=utf-8 windows-1252"`
		Sender        string        `json:"sender"`
		Concurrency   int           `json:"concurrency"`
		RatePerSecond float64       `json:"rate_per_second"`
		RateBurst     int           `json:"rate_burst"`
		ItemTimeout   time.Duration `json:"item_timeout"`
		PageSize      int           `json:"page_size"`
		ImageWidth    float64       `json:"image_width"`
		ViewportWidth int           `json:"viewport_width"`
		ChromePath    string        `json:"chrome_path"`
		RenderTimeout time.Duration `json:"render_timeout"`
	}

	CloudStorageConfig struct {
		BaseURL    string `json:"base_url"`
		BucketName string `json:"bucket_name"`
	}

	// LocalStorageConfig locates the failure ledger, it must survive
	// between runs so Dir should not be a temp dir.
	LocalStorageConfig struct {
		Bucket string `json:"bucket"`
		Dir    string `json:"dir"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}
)

const (
	FundNameSourceStore = "store"
	FundNameSourceTable = "table"

	ClassificationFailureUnclassified = "unclassified"
	ClassificationFailureFail         = "fail"

	CSVEncodingUTF8        = "utf-8"
	CSVEncodingWindows1252 = "windows-1252"
)
