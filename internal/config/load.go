// Package config wires file, environment, and default settings into viper.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	Warmup             int
	TargetWindow       time.Duration
	MaxOuterIterations int
	ResultsDir         string
	HistoryPath        string
	Verbose            bool
}

// Load initializes the configuration from file and environment variables.
// Missing files are fine; defaults cover everything.
func Load(cfgFile string) {
	// explicit .env loading, ignored when absent
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("rexbench")
	}

	viper.SetEnvPrefix("REXBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("warmup", 3)
	viper.SetDefault("target_window_ms", 100)
	viper.SetDefault("max_outer_iterations", 100_000)
	viper.SetDefault("results_dir", "results")
	viper.SetDefault("history_path", "rexbench.db")
	viper.SetDefault("verbose", false)

	// Config file is optional.
	_ = viper.ReadInConfig()
}

// Current snapshots the active viper state into a Settings value.
func Current() Settings {
	return Settings{
		Warmup:             viper.GetInt("warmup"),
		TargetWindow:       time.Duration(viper.GetInt("target_window_ms")) * time.Millisecond,
		MaxOuterIterations: viper.GetInt("max_outer_iterations"),
		ResultsDir:         viper.GetString("results_dir"),
		HistoryPath:        viper.GetString("history_path"),
		Verbose:            viper.GetBool("verbose"),
	}
}
