package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"registrydash/internal/config"
	apierrors "registrydash/internal/errors"
	"registrydash/internal/infrastructure"
	"registrydash/internal/services"
	"registrydash/pkg/contracts"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	dataFile   string
	sheet      string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the registry CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Diagnostics go to the command's
// error stream so stdout carries only results.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "registry",
		Short:         "Query the company registry from the command line",
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default config.yaml or configs/config.yaml)")
	root.PersistentFlags().StringVarP(&opts.dataFile, "file", "f", "", "registry workbook (overrides data.file)")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "worksheet name (default first sheet)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		summaryCmd(opts),
		exportCmd(opts),
		chartsCmd(opts),
		optionsCmd(opts),
		serveCmd(opts),
	)
	return root
}

func (o *rootOptions) setup(ctx context.Context, stderr io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFrom(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return apierrors.NewConfigError("invalid configuration", err)
	}

	if o.dataFile != "" {
		cfg.Data.File = config.ResolvePath(o.dataFile)
	}
	if o.sheet != "" {
		cfg.Data.Sheet = o.sheet
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	o.cfg = cfg
	// One trace ID per invocation ties together every line the run logs.
	o.logger = infrastructure.LoggerWithContext(
		infrastructure.EnsureTraceID(ctx),
		infrastructure.NewLogger(stderr, cfg.Logging.Level),
	)
	return nil
}

// loadService reads the configured registry. Load failures come back as a
// classified *errors.AppError.
func (o *rootOptions) loadService(ctx context.Context) (*services.DashboardService, error) {
	svc, err := services.LoadDashboardService(ctx, o.cfg.Data, o.logger)
	if err != nil {
		return nil, apierrors.ClassifyLoadError(o.cfg.Data.File, err)
	}
	return svc, nil
}

// criteriaFailure reports rejected filter flags as a validation AppError.
func criteriaFailure(err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return apierrors.NewAppValidationError(ve.Error())
	}
	return err
}
