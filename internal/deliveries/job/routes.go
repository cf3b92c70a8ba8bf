package job

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/miblum/go-fund-notice/internal/common/flag"
	"github.com/miblum/go-fund-notice/internal/common/log"
	"github.com/miblum/go-fund-notice/internal/common/xlog/ctxdata"
	v1report "github.com/miblum/go-fund-notice/internal/deliveries/job/v1/report"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/services"
)

var ErrUnknownJob = errors.New("invalid version or job name")

type JobRoutes map[string]map[string]func(ctx context.Context, flag flag.Job) (models.BatchSummary, error)

type Job struct {
	Routes   JobRoutes
	newRelic *newrelic.Application
}

func New(nr *newrelic.Application, reportSrv services.ReportService, selectorSrv services.SelectorService) *Job {
	v1group := "v1"

	jobRoutes := JobRoutes{
		v1group: v1report.Routes(reportSrv, selectorSrv),
		// add other version routes
	}

	return &Job{Routes: jobRoutes, newRelic: nr}
}

// List returns "version=..., name=..." lines sorted for display.
func (j *Job) List() []string {
	var lines []string
	for version, routes := range j.Routes {
		for name := range routes {
			lines = append(lines, fmt.Sprintf("version=%s, name=%s", version, name))
		}
	}
	sort.Strings(lines)
	return lines
}

// resolve finds the route for name written either as registered or in
// snake/kebab case, e.g. generate_notice_report_by_ids.
func (j *Job) resolve(version, name string) (string, func(context.Context, flag.Job) (models.BatchSummary, error), bool) {
	routes := j.Routes[version]
	if fn, ok := routes[name]; ok {
		return name, fn, true
	}

	camel := strcase.ToCamel(name)
	for routeName, fn := range routes {
		if strings.EqualFold(routeName, camel) {
			return routeName, fn, true
		}
	}
	return name, nil, false
}

func (j *Job) Start(ctx context.Context, flag flag.Job) (summary models.BatchSummary, err error) {
	name, fn, ok := j.resolve(flag.Version, flag.JobName)
	if !ok {
		err = fmt.Errorf("%w: version=%s, name=%s", ErrUnknownJob, flag.Version, flag.JobName)
		log.LogJob(ctx, flag.JobName, flag.Version, 0, summary, err)
		return summary, err
	}

	ctx = ctxdata.Sets(ctx,
		ctxdata.SetCorrelationId(uuid.New().String()),
		ctxdata.SetJobName(name))
	flag.JobName = name

	txn := j.newRelic.StartTransaction(fmt.Sprintf("job/%s/%s", flag.Version, name))
	ctx = newrelic.NewContext(ctx, txn)

	start := time.Now()
	defer func() {
		if err != nil {
			txn.NoticeError(err)
		}
		txn.End()
		log.LogJob(ctx, name, flag.Version, time.Since(start), summary, err)
	}()

	return fn(ctx, flag)
}
