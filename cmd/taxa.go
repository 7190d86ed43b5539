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
	"github.com/pristineseas/psdb/internal/iotaxa"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/spf13/cobra"
)

// getTaxaCmd returns the taxa command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getTaxaCmd() *cobra.Command {
	var dataDir string

	taxaCmd := &cobra.Command{
		Use:   "taxa",
		Short: "Build the taxonomic lookup table",
		Long: `Build the taxonomic lookup from the curated taxa CSV file.

This command:
  1. Locates the latest taxa CSV in the data directory
  2. Deduplicates taxon codes, preferring accepted names
  3. Parses scientific names with gnparser (cached between runs)
  4. Stages the lookup table for upload alongside expedition data

The lookup maps the short taxon codes used on dive slates to full
scientific names, trophic groups, and length-weight coefficients.

Examples:
  psdb taxa
  psdb taxa --data-dir /data/exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTaxa(cmd, dataDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	taxaCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"directory with the taxa CSV file",
	)

	return taxaCmd
}

func runTaxa(cmd *cobra.Command, dataDir string) error {
	ctx := context.Background()

	if cmd.Flags().Changed("data-dir") {
		cfg.Update([]config.Option{config.OptIngestDataDir(dataDir)})
	}

	builder := iotaxa.New()

	gn.Info("Building taxonomic lookup...")
	return builder.Build(ctx, cfg)
}
