// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the novelpack CLI, which packages
// scraped novel exports into EPUB books.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the novelpack CLI.
var rootCmd = &cobra.Command{
	Use:   "novelpack",
	Short: "Package scraped novel exports into EPUB books",
	Long: `novelpack turns a crawler's JSON series export, plain-text chapter bodies,
and image files into a single EPUB.

The build subcommand runs the full pipeline: the export fragments are merged
into one canonical series record, each chapter text is transformed into
structured markup with its embedded images re-linked, and the result is
packaged with a fixed reading order and table of contents. inspect prints
the canonical record without building.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./novelpack.yaml or ~/.config/novelpack/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("novelpack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "novelpack"))
		}
	}

	viper.SetEnvPrefix("NOVELPACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
