// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the libgen-explorer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "libgen-explorer/0.1"

// rootCmd is the base command for the libgen-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "libgen-explorer",
	Short: "Search, rank, and analyze catalog search results",
	Long: `libgen-explorer queries catalog mirrors for book metadata, extracts
structured records from the result listings, ranks them by relevance with a
multi-factor weighted scoring model, and exports or analyzes the results.

Each stage is a subcommand: search, filter, and analyze.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./libgen-explorer.yaml or ~/.config/libgen-explorer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("libgen-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "libgen-explorer"))
		}
	}

	viper.SetEnvPrefix("LIBGEN_EXPLORER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the stage configurations from viper with
// defaults filled in.
func loadConfig() types.ExplorerConfig {
	cfg := types.ExplorerConfig{
		Mirror: types.MirrorConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: defaultUserAgent,
			},
			ProbeTimeout: 5 * time.Second,
			Limit:        25,
		},
		Rank:   types.RankConfig{TopN: 10},
		Store:  types.StoreConfig{Path: "explorer.db"},
		Export: types.ExportConfig{Format: "csv"},
	}

	if mirrors := viper.GetStringSlice("mirror.mirrors"); len(mirrors) > 0 {
		cfg.Mirror.Mirrors = mirrors
	}
	if d := viper.GetDuration("mirror.timeout"); d > 0 {
		cfg.Mirror.Timeout = d
	}
	if d := viper.GetDuration("mirror.probe_timeout"); d > 0 {
		cfg.Mirror.ProbeTimeout = d
	}
	if n := viper.GetInt("mirror.limit"); n > 0 {
		cfg.Mirror.Limit = n
	}
	if n := viper.GetInt("rank.top_n"); n > 0 {
		cfg.Rank.TopN = n
	}
	if w := viper.GetStringMap("rank.weights"); len(w) > 0 {
		cfg.Rank.Weights = make(map[string]float64, len(w))
		for name := range w {
			cfg.Rank.Weights[name] = viper.GetFloat64("rank.weights." + name)
		}
	}
	if p := viper.GetString("store.path"); p != "" {
		cfg.Store.Path = p
	}
	if d := viper.GetString("export.output_dir"); d != "" {
		cfg.Export.OutputDir = d
	}
	if f := viper.GetString("export.format"); f != "" {
		cfg.Export.Format = f
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
