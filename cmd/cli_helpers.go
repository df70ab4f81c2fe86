package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/auradecor/studio/internal/config"
	"github.com/auradecor/studio/internal/llm"
	"github.com/auradecor/studio/internal/oracle"
	"github.com/auradecor/studio/internal/telemetry"
	"github.com/auradecor/studio/internal/ui"
	"github.com/auradecor/studio/models"
)

// buildOracle assembles the oracle client from the resolved configuration,
// prompting for an API key interactively when one is required but missing.
func buildOracle(ctx context.Context) (*oracle.Client, error) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}

	if cfg.APIKey == "" && cfg.Provider != llm.ProviderOllama {
		fmt.Fprintf(os.Stderr, "No API key configured for provider %q.\n", cfg.Provider)
		key, err := ui.PromptAPIKey()
		if err != nil {
			return nil, err
		}
		cfg.APIKey = key
	}

	return oracle.New(ctx, cfg, config.GetTemplatesPath())
}

// newTelemetryClient builds the analytics client from config and consent state.
func newTelemetryClient() telemetry.Client {
	appCfg := GetConfig()
	if !appCfg.Telemetry.Enabled || appCfg.Telemetry.APIKey == "" {
		return telemetry.NewNoopClient()
	}
	consent, err := telemetry.Load()
	if err != nil || !consent.IsEnabled() {
		return telemetry.NewNoopClient()
	}
	client, err := telemetry.NewPostHogClient(telemetry.ClientConfig{
		APIKey:  appCfg.Telemetry.APIKey,
		Version: version,
		Config:  consent,
	})
	if err != nil {
		return telemetry.NewNoopClient()
	}
	return client
}

// readFloorplan loads a floorplan image and infers its mime type.
func readFloorplan(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read floorplan: %w", err)
	}
	mime := "image/jpeg"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".webp":
		mime = "image/webp"
	}
	return data, mime, nil
}

// printRoom writes one analyzed room to stdout.
func printRoom(room models.Room) {
	fmt.Println(ui.StyleHeader.Render(ui.DisplayRoomName(room.Name)) + ui.StyleSubtle.Render(" "+room.Size))
	fmt.Printf("  Entry: %s wall\n", room.Entry)
	fmt.Printf("  N: %s\n  S: %s\n  E: %s\n  W: %s\n", room.Walls.N, room.Walls.S, room.Walls.E, room.Walls.W)
	for _, f := range room.Features {
		fmt.Printf("  %s %s\n", ui.StylePrimary.Render(f.ID), f.Description)
	}
}
