package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/dialogue-flow/internal/watcher"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and process subtitle files as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags.configPath, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			cfg, log := a.cfg, a.log

			log.Info(ctx, "========================================")
			log.Info(ctx, "Classroom Dialogue Pipeline")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
			log.Info(ctx, "Configuration loaded successfully")

			// Create watcher with processor as handler and concurrency control
			w, err := watcher.New(cfg.Paths.Input, a.proc.Process, log, watcher.Options{
				MaxConcurrent: cfg.Performance.MaxConcurrent,
				Backlog:       backlog,
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			// Create context with cancellation
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			// Setup graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			// Start watcher in goroutine
			errChan := make(chan error, 1)
			go func() {
				errChan <- w.Start(ctx)
			}()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Dialogue pipeline is ready!")
			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Extras: %v, docx: %v, refine: %v", cfg.Output.Extras, cfg.Output.Docx, cfg.Gemini.Enabled)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			// Wait for shutdown signal or error
			var runErr error
			select {
			case <-sigChan:
				log.Info(ctx, "Shutdown signal received")
				log.Info(ctx, "Shutting down gracefully...")
				cancel()
				<-errChan
			case err := <-errChan:
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error(ctx, "Watcher error: %v", err)
					runErr = err
				}
			}

			log.Info(ctx, "Dialogue pipeline stopped")
			return runErr
		},
	}
	cmd.Flags().BoolVar(&backlog, "backlog", true, "process files already in the input directory on start")
	return cmd
}
