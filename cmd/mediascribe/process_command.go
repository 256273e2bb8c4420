package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mediascribe/internal/media"
)

func newProcessCommand(configPath *string) *cobra.Command {
	var (
		id          string
		contentType string
		name        string
		sizeBytes   int64
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Process an attachment URL into a text-bearing record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			manager, cleanup, err := buildManager(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			record := manager.Process(cmd.Context(), media.Ref{
				ID:          id,
				URL:         args[0],
				ContentType: contentType,
				Name:        name,
				SizeBytes:   sizeBytes,
			})
			return renderRecord(cmd, record, jsonOutput)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "attachment identifier")
	cmd.Flags().StringVar(&contentType, "content-type", "", "declared content type (advisory)")
	cmd.Flags().StringVar(&name, "name", "", "attachment file name")
	cmd.Flags().Int64Var(&sizeBytes, "size", 0, "attachment size in bytes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the record as JSON")
	return cmd
}

func newVideoCommand(configPath *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "video <url>",
		Short: "Extract a transcript record for a hosted video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			manager, cleanup, err := buildManager(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			record := manager.ProcessVideo(cmd.Context(), args[0])
			return renderRecord(cmd, record, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the record as JSON")
	return cmd
}

func renderRecord(cmd *cobra.Command, record media.Record, jsonOutput bool) error {
	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(record)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	t.AppendRows([]table.Row{
		{"ID", record.ID},
		{"URL", record.URL},
		{"Title", record.Title},
		{"Source", string(record.Source)},
		{"Description", record.Description},
		{"Degraded", fmt.Sprintf("%t", record.Degraded)},
	})
	t.Render()

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), record.Text)
	return nil
}
