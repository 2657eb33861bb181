package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatewayinfo/internal/catalog"
	"gatewayinfo/internal/config"
	"gatewayinfo/internal/httpserver"
	"gatewayinfo/internal/logging"
	"gatewayinfo/internal/render"
	"gatewayinfo/internal/report"
	"gatewayinfo/internal/sysinfo"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// standaloneMarker is the single request variable of a command-line run.
const standaloneMarker = "gateway.standalone"

type cli struct {
	cfg     config.Config
	logger  *zap.Logger
	format  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "gatewayinfo",
		Short: "Print a server info report for this process",
		Long: `gatewayinfo introspects the Go runtime, the operating system, the platform,
the process environment and the request variables, and renders them as a report.

Run without arguments to print the plain-text report to stdout.
Run "gatewayinfo serve" to answer every HTTP request with the HTML report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.cfg = config.LoadFromEnv()
			level := c.cfg.LogLevel
			if c.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, c.cfg.LogFormat)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(c.format)
			if err != nil {
				return err
			}
			return c.runStandalone(cmd.OutOrStdout(), f)
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	root.Flags().StringVarP(&c.format, "format", "f", string(render.FormatText), "output format: text, html or yaml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML report over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runServe(ctx)
		},
	})

	return root
}

func (c *cli) newRegistry() *sysinfo.Registry {
	reg := sysinfo.NewRegistry(sysinfo.Options{})
	if missing := catalog.Default().Validate(reg.Has); len(missing) > 0 {
		c.logger.Warn("catalog names without accessor", zap.Strings("attributes", missing))
	}
	return reg
}

func (c *cli) runStandalone(w io.Writer, f render.Format) error {
	col := report.NewCollector(report.Options{
		Title:    c.cfg.ReportTitle,
		Catalog:  catalog.Default(),
		Resolver: c.newRegistry(),
		Escape:   f.Escaper(),
		Logger:   c.logger,
	})
	rep, err := col.Build(report.Vars{standaloneMarker: "true"})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	return render.Write(w, f, rep)
}

func (c *cli) runServe(ctx context.Context) error {
	r, err := httpserver.NewRouter(httpserver.RouterDeps{
		Config:   c.cfg,
		Logger:   c.logger,
		Resolver: c.newRegistry(),
		Catalog:  catalog.Default(),
	})
	if err != nil {
		return fmt.Errorf("router init: %w", err)
	}

	srv := &http.Server{
		Addr:              c.cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: c.cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    c.cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("gatewayinfo listening",
			zap.String("addr", c.cfg.ListenAddr),
			zap.String("mount", c.cfg.MountPath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
