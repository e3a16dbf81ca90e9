// Command shaderdemo draws simple scenes with the shaderpipe wrappers.
//
// Usage:
//
//	shaderdemo [flags] triangle|quad|sierpinski|info
//
// Settings are read from shaderdemo.yaml in the working directory, or the
// file given with --config, and can be overridden with SHADERDEMO_*
// environment variables and flags.
//
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
