// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/prompts"
	"github.com/ouroboroscoding/define-cli/internal/session"
	"github.com/ouroboroscoding/define-cli/internal/validate"
)

type validateOptions struct {
	name   string
	record string
	create bool
}

func registerValidateCmd(parent *cobra.Command) {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a candidate record against an entity definition",
		Long: `Validate a JSON record against an entity definition. Every violation
is reported, addressed by field path; the command exits non-zero when
the record is invalid.`,
		Example: `  # Validate a record before an update
  define validate --name category_locale --record record.json

  # Validate a creation payload (storage-managed fields may be absent)
  define validate --name category_locale --record record.json --create`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Entity name")
	cmd.Flags().StringVarP(&opts.record, "record", "r", "", "Path to the JSON record")
	cmd.Flags().BoolVar(&opts.create, "create", false, "Validate as a creation payload")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("record")

	parent.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	entity, err := ctx.Entity(opts.name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.record) //nolint:gosec // path is provided by caller
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("record is not a JSON object: %w", err)
	}

	mode := validate.ModeFull
	if opts.create {
		mode = validate.ModeCreate
	}

	violations := validate.Record(entity, record, mode)
	if len(violations) == 0 {
		prompts.PrintResult([]prompts.ResultField{
			{Label: "Entity", Value: entity.Name},
			{Label: "Record", Value: opts.record},
		}, "Record is valid")
		return nil
	}

	lines := make([]prompts.ViolationLine, len(violations))
	for i, v := range violations {
		lines[i] = prompts.ViolationLine{
			Field:   v.Field,
			Code:    string(v.Code),
			Message: v.Message,
		}
	}
	prompts.PrintViolations(lines)

	return fmt.Errorf("record has %d violation(s)", len(violations))
}
