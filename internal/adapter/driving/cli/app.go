package cli

import (
	"context"

	"github.com/diillson/aws-billing-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-billing-dashboard-go/internal/adapter/driving/httpapi"
	"github.com/diillson/aws-billing-dashboard-go/internal/application/usecase"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/logging"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"github.com/diillson/aws-billing-dashboard-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	version    string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{version: versionStr}

	rootCmd := &cobra.Command{
		Use:     "aws-billing",
		Short:   "AWS Billing Dashboard",
		Version: version.FormatVersion(),
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Billing Dashboard version: %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the billing dashboard HTTP server",
		RunE:  app.runServe,
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides config and PORT)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a cost report to the terminal, optionally exporting it",
		RunE:  app.runReport,
	}
	reportCmd.Flags().StringP("month", "m", "", "Billing month in YYYY-MM format (default: current month)")
	reportCmd.Flags().Bool("trend", false, "Report the trailing-month cost trend instead of a single month")
	reportCmd.Flags().Int("months", 0, "Number of trailing months for the trend report (clamped to 2-12, default 6)")
	reportCmd.Flags().StringSliceP("report-type", "y", nil, "Export formats: csv, json, pdf")
	reportCmd.Flags().StringP("report-name", "n", "", "Base name for exported report files (without extension)")
	reportCmd.Flags().StringP("dir", "d", "", "Directory for exported report files")
	reportCmd.Flags().Float64("currency-rate", 0, "USD to secondary currency rate for the dual display column")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify AWS credentials and Cost Explorer access",
		RunE:  app.runCheck,
	}

	rootCmd.AddCommand(serveCmd, reportCmd, checkCmd)
	app.rootCmd = rootCmd
	return app
}

// SetRepositories wires the driven adapters into the CLI application.
func (app *CLIApp) SetRepositories(
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) {
	app.configRepo = configRepo
	app.exportRepo = exportRepo
	app.console = console
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// loadConfig resolves configuration: defaults, then the optional config file,
// then environment overrides.
func (app *CLIApp) loadConfig(cmd *cobra.Command) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if configFile, _ := cmd.Flags().GetString("config-file"); configFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg = app.configRepo.LoadFromEnv(cfg)
	if err := logging.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *CLIApp) buildUseCase(ctx context.Context, cfg *types.Config) (*usecase.BillingUseCase, error) {
	billingRepo, err := aws.NewBillingRepository(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	return usecase.NewBillingUseCase(billingRepo, app.exportRepo, app.console, cfg.CurrencyRate), nil
}

// runServe starts the HTTP server and blocks until shutdown.
func (app *CLIApp) runServe(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ListenAddress = addr
	}

	ctx := context.Background()
	uc, err := app.buildUseCase(ctx, cfg)
	if err != nil {
		return err
	}

	server := httpapi.NewServer(cfg, uc)
	return server.Start(ctx)
}

// runReport renders a cost or trend report on the terminal.
func (app *CLIApp) runReport(cmd *cobra.Command, args []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	uc, err := app.buildUseCase(ctx, cfg)
	if err != nil {
		return err
	}

	month, _ := cmd.Flags().GetString("month")
	trend, _ := cmd.Flags().GetBool("trend")
	months, _ := cmd.Flags().GetInt("months")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	reportName, _ := cmd.Flags().GetString("report-name")
	dir, _ := cmd.Flags().GetString("dir")
	currencyRate, _ := cmd.Flags().GetFloat64("currency-rate")

	cliArgs := &types.CLIArgs{
		Month:        month,
		Trend:        trend,
		TrendMonths:  months,
		ReportName:   reportName,
		ReportType:   reportType,
		Dir:          dir,
		CurrencyRate: currencyRate,
	}

	if err := uc.RunReport(ctx, cliArgs); err != nil {
		app.console.LogError("%v", err)
		return err
	}
	return nil
}

// runCheck validates credentials and billing API access.
func (app *CLIApp) runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	uc, err := app.buildUseCase(ctx, cfg)
	if err != nil {
		return err
	}
	return uc.RunCheck(ctx)
}
