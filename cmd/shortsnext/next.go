package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconidentify/shortsnext/internal/service"
)

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <shorts-url>",
		Short: "Print the next videos for a Shorts URL",
		Args:  cobra.ExactArgs(1),
		RunE:  nextRun,
	}
}

// nextRun runs one extraction and prints the result as indented JSON.
func nextRun(cmd *cobra.Command, args []string) error {
	svc := service.NewShortsServiceFromConfig(cfg, httpClient, logger)

	result, err := svc.Next(cmd.Context(), service.NextRequest{URL: args[0]})
	if err != nil {
		return fmt.Errorf("extracting next videos: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
