// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-sync CLI.
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

// rootCmd is the base command for the scholar-sync CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-sync",
	Short: "Sync a Google Scholar publication list into a Jekyll data file",
	Long: `scholar-sync fetches a researcher's publication list from their Google
Scholar profile, pages through the full listing, deduplicates entries, and
writes a sorted JSON data file for static-site rendering.

The profile URL comes from --scholar-url, the scholar_url config key, or
the googlescholar entry in the site's _config.yml. Each run can also be
recorded into a local SQLite archive for history across syncs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-sync.yaml or ~/.config/scholar-sync/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-sync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-sync"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_SYNC")
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
