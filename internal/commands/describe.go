// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/audit"
	"github.com/ouroboroscoding/define-cli/internal/prompts"
	"github.com/ouroboroscoding/define-cli/internal/session"
)

func registerDescribeCmd(parent *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show entity definitions and their audit metadata",
		Example: `  # List all entities
  define describe

  # Describe one entity
  define describe --name post_locale`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Entity name")

	parent.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, name string) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	if name == "" {
		fields := make([]prompts.ResultField, 0, len(ctx.Entities))
		for _, n := range ctx.EntityNames() {
			e := ctx.Entities[n]
			fields = append(fields, prompts.ResultField{
				Label: n,
				Value: fmt.Sprintf("%d field(s), table %s", len(e.Fields), e.Table),
			})
		}
		prompts.PrintResult(fields, "")
		return nil
	}

	entity, err := ctx.Entity(name)
	if err != nil {
		return err
	}
	meta := audit.Describe(entity)

	fields := []prompts.ResultField{
		{Label: "Entity", Value: entity.Name},
		{Label: "Table", Value: entity.Table},
		{Label: "Primary key", Value: entity.Primary},
	}
	if entity.AutoPrimary != "" {
		fields = append(fields, prompts.ResultField{Label: "Primary generator", Value: entity.AutoPrimary})
	}
	if meta.CreatedField != "" {
		fields = append(fields, prompts.ResultField{Label: "Created", Value: meta.CreatedField})
	}
	if meta.UpdatedField != "" {
		fields = append(fields, prompts.ResultField{Label: "Updated", Value: meta.UpdatedField})
	}
	if len(meta.CreateOnlyFields) > 0 {
		fields = append(fields, prompts.ResultField{Label: "Create-only", Value: strings.Join(meta.CreateOnlyFields, ", ")})
	}
	if meta.ActorDimension != "" {
		fields = append(fields, prompts.ResultField{
			Label: "Change tracking (" + meta.ActorDimension + ")",
			Value: strings.Join(meta.ChangeTrackedFields, ", "),
		})
	}

	prompts.PrintResult(fields, "")
	return nil
}
