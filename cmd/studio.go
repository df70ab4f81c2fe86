package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/auradecor/studio/internal/config"
	"github.com/auradecor/studio/internal/export"
	"github.com/auradecor/studio/internal/studio"
	"github.com/auradecor/studio/internal/telemetry"
	"github.com/auradecor/studio/internal/ui"
)

var studioStyle string

var studioCmd = &cobra.Command{
	Use:   "studio <floorplan-image>",
	Short: "Open the interactive design studio for a floorplan",
	Long: `Studio analyzes the floorplan, lets you pick a room and a base style, then
opens the interactive design loop: chat to refine the design or correct the
room's architecture, step through versions, select up to three, and export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		image, mime, err := readFloorplan(args[0])
		if err != nil {
			return err
		}

		client, err := buildOracle(ctx)
		if err != nil {
			return err
		}

		analytics := newTelemetryClient()
		defer func() { _ = analytics.Close() }()

		spinner := ui.NewSpinner("Analyzing floorplan...")
		spinner.Start()
		analysis, err := client.AnalyzeFloorplan(ctx, image, mime)
		spinner.Stop()
		if err != nil {
			return err
		}
		analytics.Track(telemetry.EventFloorplanAnalyzed, telemetry.Properties{
			"rooms": len(analysis.Rooms),
		})

		roomIdx, err := ui.PromptRoomSelection(analysis.Rooms)
		if err != nil {
			return err
		}

		style := studioStyle
		if style == "" {
			if style, err = ui.PromptDesignStyle(); err != nil {
				return err
			}
		}

		sess := studio.NewSession(client, analysis.Rooms[roomIdx])
		exporter := export.NewOsExporter(config.GetExportPath())

		model := ui.NewStudioModel(ctx, sess, exporter, style)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("studio: %w", err)
		}
		return nil
	},
}

func init() {
	studioCmd.Flags().StringVar(&studioStyle, "style", "", "base design style (skips the style picker)")
	rootCmd.AddCommand(studioCmd)
}
