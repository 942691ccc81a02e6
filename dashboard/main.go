// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Command dashboard shows mortality statistics from a dataset of death records
// as a static web page. It can also print or export the aggregated tables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/derat/mortalidad/config"
	"github.com/derat/mortalidad/export"
	"github.com/derat/mortalidad/gnuplot"
	"github.com/derat/mortalidad/server"
)

func main() {
	cfg, err := config.Load(config.DefaultDotEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed loading config:", err)
		os.Exit(2)
	}
	a := &app{cfg: &cfg, out: os.Stdout}
	if err := newRootCmd(a).Execute(); err != nil {
		a.reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds state shared by the commands.
type app struct {
	cfg    *config.Config
	out    io.Writer
	logger *zap.Logger
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	lc := zap.NewProductionConfig()
	lc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return lc.Build()
}

// reportError logs err through a's logger. Errors that happen before the logger
// exists, e.g. bad flags, are written to w instead.
func (a *app) reportError(w io.Writer, err error) {
	if a.logger == nil {
		fmt.Fprintln(w, "Error:", err)
		return
	}
	a.logger.Error("Command failed", zap.Error(err))
	_ = a.logger.Sync()
}

func newRootCmd(a *app) *cobra.Command {
	cfg := a.cfg

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Mortality dashboard for Colombia",
		Long: `Loads a dataset of death records and department boundaries, aggregates
the records of one year and serves the results as a static web page.

Settings are read from a .env file, then from MORTALIDAD_* environment
variables, then from flags. Run without a subcommand to serve the page.`,
		SilenceUsage:  true,
		SilenceErrors: true, // reported by reportError
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			var err error
			if a.logger, err = newLogger(cfg.Debug); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.serve,
	}
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP (default)",
		Args:  cobra.NoArgs,
		RunE:  a.serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "summarize",
		Short: "Print the aggregated tables",
		Args:  cobra.NoArgs,
		RunE:  a.summarize,
	})

	var opts export.Options
	var plot bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the aggregated tables to CSV, XLSX and other files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plot {
				opts.Gnuplot = &gnuplot.Runner{}
			}
			return a.export(cmd.Context(), opts)
		},
	}
	exportCmd.Flags().StringVar(&opts.Dir, "out", "export", "Output directory")
	exportCmd.Flags().BoolVar(&opts.SQLite, "sqlite", false, "Also write a SQLite database")
	exportCmd.Flags().BoolVar(&plot, "gnuplot", false, "Also plot some tables to PNG files using gnuplot")
	root.AddCommand(exportCmd)

	return root
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	set, err := loadSet(a.cfg, a.logger)
	if err != nil {
		return err
	}
	page, err := buildPage(a.cfg, set, a.logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{HTTPAddr: a.cfg.HTTPAddr, Logger: a.logger}, page)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.logger.Info("Serving dashboard", zap.String("url", "http://"+srv.Addr()+"/"))
	return srv.ListenAndServe(ctx)
}

func (a *app) summarize(cmd *cobra.Command, args []string) error {
	set, err := loadSet(a.cfg, a.logger)
	if err != nil {
		return err
	}
	return writeSummary(a.out, set)
}

func (a *app) export(ctx context.Context, opts export.Options) error {
	set, err := loadSet(a.cfg, a.logger)
	if err != nil {
		return err
	}
	opts.Logger = a.logger
	paths, err := export.Write(ctx, set, opts)
	for _, p := range paths {
		fmt.Fprintln(a.out, p)
	}
	return err
}
