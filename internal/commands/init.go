// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/config"
	"github.com/ouroboroscoding/define-cli/internal/prompts"
)

type initOptions struct {
	path string
}

func registerInitCmd(parent *cobra.Command) {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new define project",
		Long:  `Initialize a new define project with a define.yaml configuration file and a definitions directory.`,
		Example: `  # Initialize with the default layout
  define init

  # Keep definitions somewhere else
  define init --path ./schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", config.DefaultPath, "Path to the definitions folder")

	parent.AddCommand(cmd)
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, "define.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("define.yaml already exists; project already initialized")
	}

	defDir := opts.path
	if !filepath.IsAbs(defDir) {
		defDir = filepath.Join(cwd, defDir)
	}
	if err := os.MkdirAll(defDir, 0o750); err != nil {
		return fmt.Errorf("failed to create definitions directory: %w", err)
	}

	cfg := &config.Config{
		Version: config.CurrentConfigVersion,
		Path:    opts.path,
	}
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to write define.yaml: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: configPath},
		{Label: "Definitions", Value: defDir},
	}, "Project initialized")
	return nil
}
