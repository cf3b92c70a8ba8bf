package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/miblum/go-fund-notice/cmd/setup"
	helperFlag "github.com/miblum/go-fund-notice/internal/common/flag"
	"github.com/miblum/go-fund-notice/internal/common/graceful"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/deliveries/job"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker application to generate fund transaction notices",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runJobCmd)

	runJobCmd.Flags().StringP(runJobCmdName, "n", "", "job name")
	runJobCmd.MarkFlagRequired(runJobCmdName)
	runJobCmd.Flags().StringP(runJobCmdVersion, "v", "", "job version")
	runJobCmd.MarkFlagRequired(runJobCmdVersion)
	runJobCmd.Flags().String(runJobCmdStart, "", "window start, YYYY-MM-DD, YYYY-MM-DDTHH:mm:ss or YYYY-MM-DD HH:mm:ss")
	runJobCmd.Flags().String(runJobCmdEnd, "", "window end, a bare date includes the whole day")
	runJobCmd.Flags().StringSlice(runJobCmdIDs, nil, "transaction ids")
	runJobCmd.Flags().String(runJobCmdIDsFile, "", "file with one transaction id per line")
	runJobCmd.Flags().StringSlice(runJobCmdFunds, nil, "only notify these fund ids")
	runJobCmd.Flags().Bool(runJobCmdCSV, true, "write the csv report")
	runJobCmd.Flags().Bool(runJobCmdPDF, true, "write the pdf report")
	runJobCmd.Flags().Bool(runJobCmdUpload, false, "upload reports to cloud storage")
	runJobCmd.Flags().Bool(runJobCmdPreserveOrder, false, "keep the store order instead of newest first")
	runJobCmd.Flags().Bool(runJobCmdLenientPaging, false, "keep what was read when a page fails")
}

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List job name and version",
		Long:  ``,
		Run:   list,
	}
)

func list(ccmd *cobra.Command, args []string) {
	for _, route := range job.New(nil, nil, nil).List() {
		fmt.Println(route)
	}
}

var (
	runJobCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run execution job",
		Long:    ``,
		Example: "worker run -n=generate_notice_report -v=v1 --start=2024-07-01 --end=2024-07-31",
		Run:     runJob,
	}
	runJobCmdName          = "name"
	runJobCmdVersion       = "version"
	runJobCmdStart         = "start"
	runJobCmdEnd           = "end"
	runJobCmdIDs           = "ids"
	runJobCmdIDsFile       = "ids-file"
	runJobCmdFunds         = "funds"
	runJobCmdCSV           = "csv"
	runJobCmdPDF           = "pdf"
	runJobCmdUpload        = "upload"
	runJobCmdPreserveOrder = "preserve-order"
	runJobCmdLenientPaging = "lenient-paging"
)

func jobFlag(ccmd *cobra.Command) helperFlag.Job {
	f := ccmd.Flags()

	name, _ := f.GetString(runJobCmdName)
	version, _ := f.GetString(runJobCmdVersion)
	start, _ := f.GetString(runJobCmdStart)
	end, _ := f.GetString(runJobCmdEnd)
	ids, _ := f.GetStringSlice(runJobCmdIDs)
	idsFile, _ := f.GetString(runJobCmdIDsFile)
	funds, _ := f.GetStringSlice(runJobCmdFunds)
	csv, _ := f.GetBool(runJobCmdCSV)
	pdf, _ := f.GetBool(runJobCmdPDF)
	upload, _ := f.GetBool(runJobCmdUpload)
	preserveOrder, _ := f.GetBool(runJobCmdPreserveOrder)
	lenientPaging, _ := f.GetBool(runJobCmdLenientPaging)

	return helperFlag.Job{
		JobName:       name,
		Version:       version,
		Start:         start,
		End:           end,
		IDs:           ids,
		IDsFile:       idsFile,
		FundIDs:       funds,
		CSV:           csv,
		PDF:           pdf,
		Upload:        upload,
		PreserveOrder: preserveOrder,
		LenientPaging: lenientPaging,
	}
}

func runJob(ccmd *cobra.Command, args []string) {
	ctx, cancel := graceful.SignalContext(context.Background())
	defer cancel()

	s, stoppers, err := setup.Init("job")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup app: %v\n", err)
		graceful.StopProcess(10*time.Second, stoppers...)
		os.Exit(1)
	}

	j := job.New(s.NewRelic, s.Service.Report, s.Service.Selector)
	_, jobErr := j.Start(ctx, jobFlag(ccmd))

	if url := s.Config.Metrics.PushgatewayURL; url != "" {
		if err := s.Metrics.Push(context.WithoutCancel(ctx), url, s.Config.App.Name); err != nil {
			xlog.Warnf(ctx, "failed to push metrics: %v", err)
		}
	}

	xlog.Info(ctx, "job stopped!")
	for _, err := range graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...) {
		fmt.Fprintf(os.Stderr, "failed to stop process: %v\n", err)
	}

	if jobErr != nil {
		os.Exit(1)
	}
}
