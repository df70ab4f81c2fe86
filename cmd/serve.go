package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/auradecor/studio/internal/config"
	"github.com/auradecor/studio/internal/export"
	"github.com/auradecor/studio/internal/server"
	"github.com/auradecor/studio/internal/store"
	"github.com/auradecor/studio/prompts"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the studio HTTP API",
	Long: `Serve exposes the design engine over HTTP for the web frontend: floorplan
analysis, design sessions with chat refinement, export, supplier quotes, and
project persistence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appCfg := GetConfig()

		client, err := buildOracle(ctx)
		if err != nil {
			return err
		}

		projectStore, err := store.NewSQLiteStore(config.GetDataBasePath())
		if err != nil {
			return err
		}
		defer func() { _ = projectStore.Close() }()

		analytics := newTelemetryClient()
		defer func() { _ = analytics.Close() }()

		port := servePort
		if port == 0 {
			port = appCfg.Server.Port
		}

		srv := server.New(server.Config{
			Port:      port,
			AuthToken: appCfg.Server.AuthToken,
			Oracle:    client,
			Store:     projectStore,
			Exporter:  export.NewOsExporter(config.GetExportPath()),
			Telemetry: analytics,
		})

		// Reload prompt overrides live while the server runs.
		if dir := config.GetTemplatesPath(); dir != "" {
			watcher, err := prompts.WatchTemplates(dir, func(key prompts.PromptKey) {
				fmt.Fprintf(os.Stderr, "prompt override changed: %s\n", key)
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "prompt watcher disabled: %v\n", err)
			} else {
				defer func() { _ = watcher.Close() }()
			}
		}

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)
		fmt.Printf("AuraDecor API listening on :%d\n", port)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errChan:
			return err
		case <-sigChan:
			fmt.Println("\nShutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		wg.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
