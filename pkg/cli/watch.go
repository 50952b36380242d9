package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 200 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-evaluate a document whenever the file changes",
		Example: `  # Re-evaluate on every save and expose metrics
  chainlang watch prices.chain.yaml --metrics-addr :9090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if metricsAddr != "" {
				stop := a.serveMetrics(metricsAddr)
				defer stop()
			}
			return a.watch(ctx, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		res, err := a.load(cmd, abs, "")
		if err != nil {
			a.logger.Error().Err(err).Str("file", abs).Msg("evaluation failed")
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s (%s)\n", res.Document.Name, time.Now().Format(time.Kitchen))
		a.printStatements(cmd.OutOrStdout(), res.Result)
	}
	run()
	a.logger.Info().Str("file", abs).Msg("watching for changes")

	// Debounce reload events
	var (
		timer  *time.Timer
		reload = make(chan struct{}, 1)
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("document changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// serveMetrics exposes the metrics registry until the returned func is called.
func (a *app) serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	a.logger.Info().Str("addr", addr).Msg("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
