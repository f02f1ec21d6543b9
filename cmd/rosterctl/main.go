package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavshah/duty-roster-go/pkg/config"
	"github.com/arnavshah/duty-roster-go/pkg/logging"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "Generate and check duty rosters from a configuration file",
	Long: `rosterctl reads a roster configuration (staff, shifts, fixed assignments,
exceptions, continuity rules, leave and public holidays) from YAML or JSON and
generates a day-by-day duty roster for a date range.

Settings can also come from the environment with the ROSTER_ prefix,
e.g. ROSTER_CONFIG=ward7.yaml or ROSTER_LOG_LEVEL=debug.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	v = config.LoadPrefixed("ROSTER")
	bindFlags()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "roster configuration file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("leave-shift", "", "name of the leave shift (default \"Annual Leave\")")
}

func bindFlags() {
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("leave_shift_name", rootCmd.PersistentFlags().Lookup("leave-shift"))
}

func logger() *logging.SlogLogger {
	return logging.New(os.Stderr, v.GetString("log_level"))
}

// loadRosterConfig reads a configuration file, choosing the decoder by extension.
func loadRosterConfig(path string) (models.RosterConfig, error) {
	var cfg models.RosterConfig
	if path == "" {
		return cfg, fmt.Errorf("a configuration file is required (--config or ROSTER_CONFIG)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
