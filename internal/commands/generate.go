// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/generate"
	"github.com/ouroboroscoding/define-cli/internal/plan"
	"github.com/ouroboroscoding/define-cli/internal/prompts"
	"github.com/ouroboroscoding/define-cli/internal/session"

	// Import generators to auto-register.
	_ "github.com/ouroboroscoding/define-cli/internal/generate/markdown"
	_ "github.com/ouroboroscoding/define-cli/internal/generate/mysql"
)

type generateOptions struct {
	name   string
	format string
	output string
	all    bool
}

func registerGenerateCmd(parent *cobra.Command) {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate storage definitions from entity documents",
		Long: fmt.Sprintf(`Generate table-definition statements (or schema documentation)
from the project's entity definition documents.

Available formats: %s`, strings.Join(generate.Available(), ", ")),
		Example: `  # Interactive mode
  define generate

  # Generate DDL for specific entities
  define generate --name category,category_locale --format mysql

  # Generate everything into a custom directory
  define generate --all --format mysql --output sql`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Entity name(s), comma-separated")
	cmd.Flags().StringVar(&opts.format, "format", "", fmt.Sprintf("Output format (%s)", strings.Join(generate.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "sql", "Output directory")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate all entities")

	parent.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	if len(ctx.Entities) == 0 {
		return fmt.Errorf("no entity definitions found")
	}
	if opts.all && opts.name != "" {
		return fmt.Errorf("--all and --name are mutually exclusive")
	}

	var selected []string
	if opts.all {
		selected = ctx.EntityNames()
	} else if opts.name != "" {
		for _, n := range strings.Split(opts.name, ",") {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if _, ok := ctx.Entities[n]; !ok {
				return fmt.Errorf("entity %q not found", n)
			}
			selected = append(selected, n)
		}
	}

	format := opts.format
	output := opts.output
	if !cmd.Flags().Changed("output") && ctx.Config.Output != "" {
		output = ctx.Config.Output
	}

	// Prompt for any missing values
	err = prompts.RunGenerateForm(
		&selected, &format, &output,
		!cmd.Flags().Changed("output") && len(selected) == 0,
		ctx.EntityNames(), generate.Available(),
	)
	if err != nil {
		return err
	}

	if len(selected) == 0 {
		return fmt.Errorf("no entities selected")
	}

	generator, err := generate.Get(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			format, strings.Join(generate.Available(), ", "))
	}

	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Generating %d entity definition(s) as %s...\n", len(selected), format)

	var failures []string
	successCount := 0
	plans := &plan.Cache{}

	for _, name := range selected {
		entity := ctx.Entities[name]

		entityPlan, err := plans.Get(entity)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		data, err := generator.Generate(entity, entityPlan)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		outFile := filepath.Join(output, name+generator.FileExtension())
		if err := os.WriteFile(outFile, data, 0o600); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		ctx.Log.Debug().Str("entity", name).Str("file", outFile).Msg("generated")
		fmt.Printf("  %s\n", outFile)
		successCount++
	}

	fmt.Printf("\nSuccessfully generated %d entity definition(s)\n", successCount)

	if len(failures) > 0 {
		fmt.Println("\nErrors:")
		for _, failure := range failures {
			fmt.Printf("  - %s\n", failure)
		}
		return fmt.Errorf("failed to generate %d entity definition(s)", len(failures))
	}

	return nil
}
