// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "define",
		Short: "Compile entity definition documents to SQL and validate records against them",
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	registerInitCmd(rootCmd)
	registerGenerateCmd(rootCmd)
	registerValidateCmd(rootCmd)
	registerLintCmd(rootCmd)
	registerDescribeCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}
