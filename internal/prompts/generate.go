// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunGenerateForm prompts for whatever the generate command is still
// missing: the entity selection, the output format, and the output
// directory. Values already set via flags are left untouched.
func RunGenerateForm(selected *[]string, format, output *string, askOutput bool, entities, formats []string) error {
	var groups []*huh.Group

	if len(*selected) == 0 {
		options := make([]huh.Option[string], len(entities))
		for i, name := range entities {
			options[i] = huh.NewOption(name, name)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Entities").
				Options(options...).
				Validate(atLeastOneValidator("entity")).
				Value(selected),
		))
	}

	if *format == "" {
		options := make([]huh.Option[string], len(formats))
		for i, name := range formats {
			options[i] = huh.NewOption(name, name)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Format").
				Options(options...).
				Value(format),
		))
	}

	if askOutput {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Validate(requiredValidator("output directory")).
				Value(output),
		))
	}

	if len(groups) == 0 {
		return nil
	}
	return huh.NewForm(groups...).WithTheme(Theme()).Run()
}
