package setup

import (
	"database/sql"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/miblum/go-fund-notice/internal/common/localstorage"
	cMetrics "github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/rasterizer"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/repositories"
	"github.com/miblum/go-fund-notice/internal/services"
)

type Setup struct {
	Config           config.Config
	NewRelic         *newrelic.Application
	DB               *sql.DB
	Cache            *redis.Client
	RepoCloudStorage repositories.CloudStorageRepository
	Rasterizer       rasterizer.Rasterizer
	FailureLedger    localstorage.LocalStorage[models.FailureLedgerEntry]
	Service          *services.Services
	Metrics          cMetrics.Metrics
}
