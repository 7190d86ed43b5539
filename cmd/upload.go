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
	"github.com/pristineseas/psdb/internal/iodb"
	"github.com/pristineseas/psdb/internal/ioupload"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/spf13/cobra"
)

// getUploadCmd returns the upload command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getUploadCmd() *cobra.Command {
	var (
		replace       bool
		expeditionIDs []string
	)

	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Append staged tables to the warehouse",
		Long: `Upload staged expedition tables to the PostgreSQL warehouse.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Replaces the taxonomic lookup if one is staged
  3. Uploads each staged expedition: sites, then stations,
     then observations
  4. Refuses expeditions already present unless --replace is set

With --replace, previously uploaded rows for an expedition are
deleted before the staged tables are appended.

Examples:
  # Upload everything staged
  psdb upload

  # Upload specific expeditions only
  psdb upload --expeditions CHL_2024
  psdb upload -e CHL_2024,FJI_2025

  # Re-upload an expedition that is already in the warehouse
  psdb upload -e CHL_2024 --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpload(cmd, replace, expeditionIDs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	uploadCmd.Flags().BoolVarP(
		&replace, "replace", "r", false,
		"replace expeditions already in the warehouse",
	)
	uploadCmd.Flags().StringSliceVarP(
		&expeditionIDs, "expeditions", "e", []string{},
		"expedition IDs to upload (empty = all staged)",
	)

	return uploadCmd
}

func runUpload(
	cmd *cobra.Command,
	replace bool,
	expeditionIDs []string,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var uploadOpts []config.Option

	if cmd.Flags().Changed("replace") {
		uploadOpts = append(uploadOpts, config.OptUploadReplace(replace))
	}
	if cmd.Flags().Changed("expeditions") {
		uploadOpts = append(
			uploadOpts,
			config.OptIngestExpeditionIDs(expeditionIDs),
		)
	}

	if len(uploadOpts) > 0 {
		cfg.Update(uploadOpts)
	}

	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	// The warehouse schema must exist before rows are appended.
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'psdb create' first to initialize the schema.`)
		return nil
	}

	uploader := ioupload.New()

	gn.Info("Starting upload of staged tables...")
	return uploader.Upload(ctx, op, cfg)
}
