package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/auradecor/studio/internal/telemetry"
	"github.com/auradecor/studio/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(viper.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set writes a configuration value to the config file. Secret keys can be
entered interactively: 'auradecor config set llm.apiKey' without a value opens
a hidden prompt instead of leaving the key in shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			if !isSecretKey(key) {
				return fmt.Errorf("value required for %s", key)
			}
			entered, err := ui.PromptAPIKey()
			if err != nil {
				return err
			}
			value = entered
		}
		return runConfigSet(key, value)
	},
}

var configTelemetryCmd = &cobra.Command{
	Use:   "telemetry [enable|disable]",
	Short: "Manage anonymous usage telemetry",
	Long: `View and manage anonymous usage telemetry.

AuraDecor collects anonymous usage counts to improve the product: operation
names, room and design counts, OS and architecture. Floorplan images, room
models, chat text, and designs are never collected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		consent, err := telemetry.Load()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			switch args[0] {
			case "enable":
				consent.Enabled = true
			case "disable":
				consent.Enabled = false
			default:
				return fmt.Errorf("unknown argument %q (want enable or disable)", args[0])
			}
			consent.ConsentAsked = true
			if err := consent.Save(); err != nil {
				return err
			}
		}
		state := "disabled"
		if consent.Enabled {
			state = "enabled"
		}
		fmt.Printf("Telemetry is %s\n", state)
		return nil
	},
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "apikey") || strings.Contains(lower, "authtoken")
}

func runConfigShow() error {
	cfg := GetConfig()
	out := *cfg
	// Never print secrets.
	if out.LLM.APIKey != "" {
		out.LLM.APIKey = "****"
	}
	if out.Server.AuthToken != "" {
		out.Server.AuthToken = "****"
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runConfigSet(key, value string) error {
	viper.Set(key, value)

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, configName+".yaml")
		viper.SetConfigFile(configFile)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	display := value
	if isSecretKey(key) {
		display = "****"
	}
	fmt.Printf("Set %s = %s in %s\n", key, display, configFile)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTelemetryCmd)
	rootCmd.AddCommand(configCmd)
}
