package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auradecor/studio/internal/ui"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <floorplan-image>",
	Short: "Analyze a floorplan image into structured room models",
	Long: `Analyze reads a floorplan image and extracts every room as a structured
model: walls, entry wall, and labeled features (W1, D1, E1...). The result is
printed for review; use --json to get the raw room models for scripting.`,
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

		spinner := ui.NewSpinner("Analyzing floorplan...")
		spinner.Start()
		analysis, err := client.AnalyzeFloorplan(ctx, image, mime)
		spinner.Stop()
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		}

		fmt.Printf("Found %d room(s):\n\n", len(analysis.Rooms))
		for _, room := range analysis.Rooms {
			printRoom(room)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print room models as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
