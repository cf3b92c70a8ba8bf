package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"

	_ "github.com/lib/pq"
	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/backoffice"
	genericCache "github.com/miblum/go-fund-notice/internal/common/cache"
	"github.com/miblum/go-fund-notice/internal/common/graceful"
	"github.com/miblum/go-fund-notice/internal/common/localstorage"
	cMetrics "github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/notice"
	"github.com/miblum/go-fund-notice/internal/common/rasterizer"
	"github.com/miblum/go-fund-notice/internal/common/reportwriter"
	"github.com/miblum/go-fund-notice/internal/common/txdetail"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/repositories"
	"github.com/miblum/go-fund-notice/internal/services"
)

const ledgerBucket = "failed_notices"

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load(
		config.WithConfigFileName("config"),
		config.WithConfigFileSearchPaths("/config", ".", "./config"),
	)
	if err != nil {
		return
	}

	if err = common.ValidateStructErr(cfg); err != nil {
		err = fmt.Errorf("invalid config: %w", err)
		return
	}

	logLevel := xlog.DebugLogLevel()
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}

	if slices.Contains(excludedDebugLevelOnEnvs, config.StringToEnvironment(cfg.App.Env)) {
		logLevel = xlog.InfoLogLevel()
	}
	if cfg.App.LogLevel != "" {
		logLevel = xlog.LevelFromString(cfg.App.LogLevel)
	}

	err = xlog.Init(cfg.App.Name,
		xlog.WithLogToOption(cfg.App.LogOption),
		xlog.WithLogEnvOption(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(2),
		logLevel)
	if err != nil {
		return
	}

	stopper = append(stopper, func(ctx context.Context) error {
		xlog.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)
	if newRelic != nil {
		stopper = append(stopper, func(ctx context.Context) error {
			newRelic.Shutdown(10 * time.Second)
			return nil
		})
	}

	// metrics
	mtc := cMetrics.New()

	// nrpgx reports queries as datastore segments, only worth it with an agent
	driver := "postgres"
	if newRelic != nil {
		driver = "nrpgx"
	}

	db, err := initDB(driver, cfg.Postgres)
	if err != nil {
		err = fmt.Errorf("failed connect to database: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error {
		if err := db.Close(); err != nil {
			return fmt.Errorf("failed to close db: %w", err)
		}
		return nil
	})

	if err = mtc.RegisterDB(db, cfg.App.Name+"-"+command, cfg.Postgres.DbName); err != nil {
		err = fmt.Errorf("failed register DB stat prometheus: %w", err)
		return
	}

	// redis is optional, reference data falls back to an in-memory cache
	var cache *redis.Client
	if cfg.Redis.Host != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Db,
		})
		if _, err = cache.Ping(ctx).Result(); err != nil {
			err = fmt.Errorf("failed connect to redis: %w", err)
			return
		}
		stopper = append(stopper, func(ctx context.Context) error { return cache.Close() })

		if err = mtc.RegisterRedis(cache, cfg.App.Name, command); err != nil {
			err = fmt.Errorf("failed register redis prometheus: %w", err)
			return
		}
	}

	bankCache := genericCache.New[[]models.Bank](cache, "banks")
	clientCache := genericCache.New[models.Client](cache, "clients")
	fundCache := genericCache.New[models.Fund](cache, "funds")
	stopper = append(stopper, closeInMemory(bankCache), closeInMemory(clientCache), closeInMemory(fundCache))

	backofficeClient := backoffice.New(cfg.Backoffice, mtc, backoffice.Caches{
		Banks:   bankCache,
		Clients: clientCache,
	})
	txDetailClient := txdetail.New(cfg.TransactionDetail, mtc)

	renderer, err := notice.NewRenderer(cfg.Report.Sender)
	if err != nil {
		err = fmt.Errorf("failed to parse notice templates: %w", err)
		return
	}

	imagesDir := cfg.Report.ImagesDir
	if !filepath.IsAbs(imagesDir) {
		imagesDir = filepath.Join(cfg.Report.OutputDir, imagesDir)
	}
	noticeRasterizer := rasterizer.New(rasterizer.Options{
		Dir:        imagesDir,
		Width:      cfg.Report.ViewportWidth,
		Timeout:    cfg.Report.RenderTimeout,
		ChromePath: cfg.Report.ChromePath,
	})
	stopper = append(stopper, func(ctx context.Context) error { return noticeRasterizer.Close() })

	bucket := cfg.LocalStorage.Bucket
	if bucket == "" {
		bucket = ledgerBucket
	}
	ledger, err := localstorage.NewBadgerStorage[models.FailureLedgerEntry](
		bucket, localstorage.WithDir(cfg.LocalStorage.Dir))
	if err != nil {
		err = fmt.Errorf("failed to open failure ledger: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return ledger.Close() })

	// register repository
	sqlRepo := repositories.NewSQLRepository(db)
	fileRepo := repositories.NewFileRepository()

	var cloudStorageRepo repositories.CloudStorageRepository
	if cfg.CloudStorageConfig.BucketName != "" {
		cloudStorageRepo, err = repositories.NewCloudStorageRepository(&cfg)
		if err != nil {
			err = fmt.Errorf("failed connect to cloud storage: %w", err)
			return
		}
		stopper = append(stopper, func(ctx context.Context) error { return cloudStorageRepo.Close() })
	}

	// register service
	srv := services.New(
		cfg,
		sqlRepo,
		cloudStorageRepo,
		fileRepo,
		backofficeClient,
		txDetailClient,
		renderer,
		noticeRasterizer,
		reportwriter.New(cfg.Report),
		ledger,
		fundCache,
		mtc,
	)

	return &Setup{
		Config:           cfg,
		NewRelic:         newRelic,
		DB:               db,
		Cache:            cache,
		RepoCloudStorage: cloudStorageRepo,
		Rasterizer:       noticeRasterizer,
		FailureLedger:    ledger,
		Service:          srv,
		Metrics:          mtc,
	}, stopper, nil
}

// closeInMemory stops the cleaner goroutine of in-memory caches.
func closeInMemory[T any](c genericCache.Client[T]) graceful.ProcessStopper {
	return func(ctx context.Context) error {
		if m, ok := c.(*genericCache.InMemoryClient[T]); ok {
			m.Close()
		}
		return nil
	}
}

func initDB(driver string, pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open(driver, dsName)
	if err != nil {
		return nil, err
	}

	if pgConf.MaxOpenConnection > 0 {
		db.SetMaxOpenConns(pgConf.MaxOpenConnection)
	} else {
		db.SetMaxOpenConns(DefaultMaxOpen)
	}

	if pgConf.MaxIdleConnection > 0 {
		db.SetMaxIdleConns(pgConf.MaxIdleConnection)
	} else {
		db.SetMaxIdleConns(DefaultMaxIdle)
	}

	if pgConf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(pgConf.ConnMaxLifetime) * time.Minute)
	} else {
		db.SetConnMaxLifetime(time.Duration(DefaultMaxLifetime) * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return db, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if env := config.StringToEnvironment(cfg.App.Env); env != config.PROD_ENV || cfg.NewRelicLicenseKey == "" {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		func(config *newrelic.Config) {
			config.Logger = nrzap.Transform(xlog.Logger())
		},
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		xlog.Errorf(ctx, "setupNR.NewApplication - %v", err)
		return nil
	}
	if err = app.WaitForConnection(15 * time.Second); nil != err {
		xlog.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
	}
	return app
}
