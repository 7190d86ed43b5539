// Package main provides the psdb CLI application.
// psdb manages the lifecycle of the Pristine Seas expedition warehouse.
package main

import (
	"github.com/pristineseas/psdb/cmd"
)

func main() {
	cmd.Execute()
}
