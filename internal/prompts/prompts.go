// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package prompts provides interactive terminal prompts for CLI commands.
package prompts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the shared huh theme used across all CLI forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form = theme.Form.MarginTop(1)
	theme.Group = theme.Group.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label string
	Value string
}

// PrintResult prints a styled summary with green checkmarks and gray labels.
func PrintResult(fields []ResultField, successMsg string) {
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	check := success.Render("✓")

	fmt.Println()
	for _, f := range fields {
		fmt.Printf("%s %s %s\n", check, label.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		fmt.Println(success.Render("\n" + successMsg))
	}
}

// PrintViolations prints validation errors, one per line, with the
// field path highlighted.
func PrintViolations(violations []ViolationLine) {
	failure := lipgloss.NewStyle().Foreground(lipgloss.Color("#ca2727"))
	field := lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	cross := failure.Render("✗")

	fmt.Println()
	for _, v := range violations {
		fmt.Printf("%s %s %s (%s)\n", cross, field.Render(v.Field), v.Message, v.Code)
	}
}

// ViolationLine is one validation failure for PrintViolations.
type ViolationLine struct {
	Field   string
	Code    string
	Message string
}

func requiredValidator(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func atLeastOneValidator(name string) func([]string) error {
	return func(selected []string) error {
		if len(selected) == 0 {
			return errors.New("select at least one " + name)
		}
		return nil
	}
}
