// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-sync/internal/archive"
	"github.com/pdiddy/scholar-sync/internal/datafile"
	"github.com/pdiddy/scholar-sync/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the sync history database",
	Long: `Archive manages the local SQLite history written by sync --archive.
Use subcommands to list past runs or export the archived publications,
including entries that have since disappeared from the profile.`,
}

// --- history subcommand ---

var archiveHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sync runs, newest first",
	RunE:  runArchiveHistory,
}

func runArchiveHistory(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.History(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-6s  %-5s  %s\n", "Run", "Fetched", "Total", "New", "Source")
	for _, run := range runs {
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-6d  %-5d  %s\n",
			run.ID, run.FetchedAt.Local().Format("2006-01-02 15:04"), run.Total, run.Added, run.Source)
	}
	return nil
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the archived publications to a data file",
	Long: `Export writes every archived publication, including entries dropped
from the profile since they were first recorded, in the same document shape
the sync command produces.`,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	publications, err := store.Publications(ctx)
	if err != nil {
		return err
	}
	if len(publications) == 0 {
		return fmt.Errorf("archive is empty: run sync --archive first")
	}

	// The most recent run's source labels the export.
	source := ""
	if runs, err := store.History(ctx, 1); err == nil && len(runs) > 0 {
		source = runs[0].Source
	}

	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	doc := datafile.New(source, publications, time.Now())
	if err := datafile.Write(outputPath, doc, types.OutputFormat(format)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported %d publications to %s\n", len(doc.Publications), outputPath)
	return nil
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	path, _ := cmd.Flags().GetString("archive-db")
	if path == "" {
		path = defaultArchiveDB
	}
	return archive.NewStore(path)
}

func init() {
	archiveCmd.PersistentFlags().String("archive-db", defaultArchiveDB, "history database path")

	archiveHistoryCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")

	archiveExportCmd.Flags().String("output", "scholar_archive.json", "path to write the export")
	archiveExportCmd.Flags().String("format", string(types.OutputJSON), "output format: json, yaml, or csl")

	archiveCmd.AddCommand(archiveHistoryCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
