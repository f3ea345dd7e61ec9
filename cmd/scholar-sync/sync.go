// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-sync/internal/archive"
	"github.com/pdiddy/scholar-sync/internal/datafile"
	"github.com/pdiddy/scholar-sync/internal/scholar"
	"github.com/pdiddy/scholar-sync/internal/siteconfig"
	"github.com/pdiddy/scholar-sync/pkg/types"
)

const (
	defaultSiteConfig = "_config.yml"
	defaultOutput     = "_data/scholar_publications.json"
	defaultArchiveDB  = ".scholar-sync/archive.db"
	defaultPageSize   = 100
	defaultDelay      = 1 * time.Second
	defaultTimeout    = 30 * time.Second

	// Scholar serves a degraded, selector-incompatible page to unknown
	// agents, so requests present a desktop browser.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "en-US,en;q=0.9"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the publication list and write the data file",
	Long: `Sync pages through the profile's citation listing, deduplicates
entries by (title, year), and writes them year-descending to the output
data file. The whole run aborts on any fetch failure; no partial file is
written. With --archive the run is also recorded in the local history
database.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("scholar-url", "", "Google Scholar profile URL (overrides config discovery)")
	syncCmd.Flags().String("site-config", defaultSiteConfig, "Jekyll config to scan for the googlescholar entry")
	syncCmd.Flags().String("output", defaultOutput, "path to write the data file")
	syncCmd.Flags().Int("pagesize", defaultPageSize, "rows requested per listing page")
	syncCmd.Flags().Duration("delay", defaultDelay, "courtesy pause between page fetches")
	syncCmd.Flags().Int("max-pages", 0, "cap on full pages fetched (0 = unlimited)")
	syncCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	syncCmd.Flags().String("format", string(types.OutputJSON), "output format: json, yaml, or csl")
	syncCmd.Flags().Bool("archive", false, "record this run in the history database")
	syncCmd.Flags().String("archive-db", defaultArchiveDB, "history database path")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	scholarURL := resolveScholarURL(cmd)
	if scholarURL == "" {
		return fmt.Errorf("missing Google Scholar URL: provide --scholar-url, set scholar_url in scholar-sync.yaml, or add googlescholar to %s", siteConfigPath(cmd))
	}

	userID, err := scholar.ExtractUserID(scholarURL)
	if err != nil {
		return fmt.Errorf("cannot determine user ID: %w", err)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	pagesize, _ := cmd.Flags().GetInt("pagesize")
	delay, _ := cmd.Flags().GetDuration("delay")
	maxPages, _ := cmd.Flags().GetInt("max-pages")

	cfg := types.CollectConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:        timeout,
			UserAgent:      defaultUserAgent,
			AcceptLanguage: defaultAcceptLanguage,
		},
		PageSize:  pagesize,
		PageDelay: delay,
		MaxPages:  maxPages,
	}

	client := &http.Client{Timeout: cfg.Timeout}

	fmt.Fprintf(os.Stdout, "syncing profile %s\n", userID)
	publications, err := scholar.Collect(context.Background(), client, userID, cfg, os.Stdout)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	doc := datafile.New(scholarURL, publications, time.Now())
	if err := datafile.Write(outputPath, doc, types.OutputFormat(format)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %d publications to %s\n", len(doc.Publications), outputPath)

	if record, _ := cmd.Flags().GetBool("archive"); record {
		dbPath, _ := cmd.Flags().GetString("archive-db")
		store, err := archive.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.RecordRun(context.Background(), scholarURL, doc.Publications)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "archived run %d: %d publications, %d new\n",
			summary.RunID, summary.Total, summary.Added)
	}

	return nil
}

// resolveScholarURL applies the profile URL precedence: flag, then viper
// config/env, then the site's _config.yml.
func resolveScholarURL(cmd *cobra.Command) string {
	if flagURL, _ := cmd.Flags().GetString("scholar-url"); flagURL != "" {
		return flagURL
	}
	if cfgURL := viper.GetString("scholar_url"); cfgURL != "" {
		return cfgURL
	}
	if url, ok := siteconfig.ScholarURLFromFile(siteConfigPath(cmd)); ok {
		return url
	}
	return ""
}

func siteConfigPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("site-config")
	if path == "" {
		path = defaultSiteConfig
	}
	return path
}
