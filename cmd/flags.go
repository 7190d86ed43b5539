package cmd

import (
	"fmt"
	"os"

	psdb "github.com/pristineseas/psdb/pkg"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", psdb.Version, psdb.Build)
		os.Exit(0)
	}
}
