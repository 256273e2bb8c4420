package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mediascribe/internal/videocache"
)

func newCacheCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the durable video record cache",
	}
	cmd.AddCommand(newCacheListCommand(configPath), newCacheClearCommand(configPath))
	return cmd
}

func newCacheListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached video records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := videocache.Open(cfg.Paths.CacheDir)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Video ID", "Title", "Source", "Cached"})
			for _, entry := range entries {
				t.AppendRow(table.Row{
					entry.VideoID,
					entry.Record.Title,
					string(entry.Record.Source),
					entry.CachedAt.Local().Format(time.RFC3339),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newCacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached video records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := videocache.Open(cfg.Paths.CacheDir)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached records\n", removed)
			return nil
		},
	}
}
