package commands

import (
	"context"

	"github.com/ncobase/datatable/config"
	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/logging/observes"
	"github.com/ncobase/datatable/version"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        *config.Config
	cleanup    []func()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "datatable",
		Short:         "Serve and query server-paginated tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default datatable.yaml)")

	rootCmd.AddCommand(
		newServeCommand(a),
		newQueryCommand(a),
		newVersionCommand(),
	)
	return rootCmd
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.SetVersion(version.GetVersionInfo().Version)
	closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, closeLog)

	if t := cfg.Observes.Tracer; t.Enabled() {
		shutdown, err := observes.NewTracer(&observes.TracerOption{
			URL:          t.Endpoint,
			Name:         t.ServiceName,
			Version:      version.GetVersionInfo().Version,
			Environment:  t.Environment,
			SamplingRate: t.SamplingRate,
			BatchTimeout: t.BatchTimeout,
		})
		if err != nil {
			return err
		}
		a.cleanup = append(a.cleanup, func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Warnf(ctx, "tracer shutdown: %v", err)
			}
		})
	}
	return nil
}

func (a *app) teardown() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetVersionInfo()
			if !asJSON {
				cmd.Println(info.String())
				return nil
			}
			s, err := info.JSON()
			if err != nil {
				return err
			}
			cmd.Println(s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
