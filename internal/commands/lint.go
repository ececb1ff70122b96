// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/plan"
	"github.com/ouroboroscoding/define-cli/internal/prompts"
	"github.com/ouroboroscoding/define-cli/internal/session"
)

func registerLintCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check every entity definition for integrity problems",
		Long: `Check every loaded entity definition for integrity problems: a
missing or ill-typed primary key, indexes referencing undeclared
fields, empty indexes, uncompilable patterns. These indicate a defect
in the definitions, not in user input, and block DDL generation.`,
		Example: `  # Lint the whole project
  define lint`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd)
		},
	}

	parent.AddCommand(cmd)
}

func runLint(cmd *cobra.Command) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	var failures []string
	for _, name := range ctx.EntityNames() {
		if _, err := plan.Build(ctx.Entities[name]); err != nil {
			failures = append(failures, err.Error())
			continue
		}
		ctx.Log.Debug().Str("entity", name).Msg("ok")
	}

	if len(failures) > 0 {
		fmt.Println("Integrity problems:")
		for _, failure := range failures {
			fmt.Printf("  - %s\n", failure)
		}
		return fmt.Errorf("%d entity definition(s) failed integrity checks", len(failures))
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Entities", Value: fmt.Sprintf("%d", len(ctx.Entities))},
	}, "All definitions are consistent")
	return nil
}
