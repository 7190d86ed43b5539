/*
Copyright © 2026 Pristine Seas Engineering

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/internal/iopipeline"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/spf13/cobra"
)

// getNormalizeCmd returns the normalize command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getNormalizeCmd() *cobra.Command {
	var (
		dataDir       string
		expeditionIDs []string
		methods       []string
	)

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Validate and stage expedition exports",
		Long: `Normalize raw expedition exports into staged warehouse tables.

This command:
  1. Reads expeditions.yaml to discover registered expeditions
  2. Locates the raw export files for each expedition and method
  3. Validates rows against the shared table schemas
  4. Derives ps_site_id, ps_station_id, transect and observation IDs
  5. Links observations to their stations
  6. Stages the normalized tables locally for later upload

Expeditions registered in: ~/.config/psdb/expeditions.yaml
Table schemas in:          ~/.config/psdb/schemas.yaml

One expedition failing does not stop the others; failures are
summarized at the end.

Examples:
  # Normalize all registered expeditions
  psdb normalize

  # Normalize specific expeditions only
  psdb normalize --expeditions CHL_2024,FJI_2025
  psdb normalize -e CHL_2024

  # Restrict to specific survey methods
  psdb normalize -e CHL_2024 --methods uvs,pbruv

  # Read raw exports from a non-default directory
  psdb normalize --data-dir /data/exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runNormalize(cmd, dataDir, expeditionIDs, methods)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	normalizeCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"directory with raw expedition exports",
	)
	normalizeCmd.Flags().StringSliceVarP(
		&expeditionIDs, "expeditions", "e", []string{},
		"expedition IDs to process (empty = all)",
	)
	normalizeCmd.Flags().StringSliceVarP(
		&methods, "methods", "m", []string{},
		"survey methods to process (empty = all)",
	)

	return normalizeCmd
}

func runNormalize(
	cmd *cobra.Command,
	dataDir string,
	expeditionIDs []string,
	methods []string,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var normOpts []config.Option

	if cmd.Flags().Changed("data-dir") {
		normOpts = append(normOpts, config.OptIngestDataDir(dataDir))
	}
	if cmd.Flags().Changed("expeditions") {
		normOpts = append(
			normOpts,
			config.OptIngestExpeditionIDs(expeditionIDs),
		)
	}
	if cmd.Flags().Changed("methods") {
		normOpts = append(normOpts, config.OptIngestMethods(methods))
	}

	if len(normOpts) > 0 {
		cfg.Update(normOpts)
	}

	pipeline := iopipeline.New()

	gn.Info("Starting normalization of expedition exports...")
	return pipeline.Run(ctx, cfg)
}
