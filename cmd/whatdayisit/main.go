package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whatdayisit/internal/bootstrap"
	predictiondto "whatdayisit/internal/modules/prediction/dto"
	"whatdayisit/internal/platform/config"
	"whatdayisit/internal/platform/logging"
	uiapp "whatdayisit/internal/ui/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	overrides  config.Overrides
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "whatdayisit",
		Short:         "Predict what day it will be tomorrow",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, &flags)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file (default $WHATDAYISIT_CONFIG)")
	pf.StringVar(&flags.overrides.Timezone, "timezone", "", "IANA timezone used to work out tomorrow (default Local)")
	pf.StringVar(&flags.overrides.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flags.overrides.LogFile, "log-file", "", "write JSON logs to this file")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newPredictCmd(&flags))
	root.AddCommand(newVersionCmd())
	return root
}

func loadApp(flags *globalFlags, interactive bool) (*bootstrap.App, *zap.Logger, error) {
	cfg, err := config.Load(flags.configPath, flags.overrides)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log, interactive)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return app, log, nil
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	app, log, err := loadApp(flags, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer app.Close()
	return bootstrap.RunTUI(cmd.Context(), app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the oracle terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func newPredictCmd(flags *globalFlags) *cobra.Command {
	var quiet bool

	predict := &cobra.Command{
		Use:   "predict",
		Short: "Run one prediction and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, log, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer app.Close()

			out := cmd.OutOrStdout()
			last := -1
			snap, err := app.PredictionCLI.Predict(cmd.Context(), func(s predictiondto.Snapshot) {
				if quiet || s.Status != predictiondto.StatusCalculating || s.MessageIndex == last {
					return
				}
				last = s.MessageIndex
				_, _ = fmt.Fprintln(out, s.LoadingMessage)
			})
			if err != nil {
				return err
			}
			if quiet {
				_, _ = fmt.Fprintln(out, snap.PredictedDate)
				return nil
			}
			_, _ = fmt.Fprintf(out, "The Oracle Declares: %s\n", snap.PredictedDate)
			return nil
		},
	}
	predict.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the predicted date")
	return predict
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), uiapp.Version)
			return nil
		},
	}
}
