// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package markdown renders an entity definition as markdown
// documentation.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ouroboroscoding/define-cli/internal/audit"
	"github.com/ouroboroscoding/define-cli/internal/define"
	"github.com/ouroboroscoding/define-cli/internal/generate"
	"github.com/ouroboroscoding/define-cli/internal/plan"
)

func init() {
	generate.Register(&Generator{})
}

//go:embed markdown.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "markdown.go.tmpl"))

// Generator renders entities as markdown documentation.
type Generator struct{}

// Name returns the format identifier.
func (g *Generator) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (g *Generator) FileExtension() string {
	return ".md"
}

type docData struct {
	Entity  *define.Entity
	Rows    []fieldRow
	Indexes []plan.Clause
	Audit   audit.Metadata
}

type fieldRow struct {
	Path        string
	Kind        string
	Type        string
	Required    string
	Constraints string
}

// Generate renders the document. Field rows follow declaration order,
// descending into groups and keyed-map value schemas.
func (g *Generator) Generate(e *define.Entity, p *plan.Plan) ([]byte, error) {
	data := docData{
		Entity:  e,
		Indexes: p.Indexes,
		Audit:   audit.Describe(e),
	}
	for i := range e.Fields {
		data.Rows = append(data.Rows, fieldRows(&e.Fields[i], e.Fields[i].Name)...)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func fieldRows(f *define.FieldSpec, path string) []fieldRow {
	row := fieldRow{
		Path:        path,
		Kind:        string(f.Kind),
		Type:        string(f.Type),
		Required:    "yes",
		Constraints: formatConstraints(f),
	}
	if f.Optional {
		row.Required = "no"
	}
	rows := []fieldRow{row}

	switch f.Kind {
	case define.KindGroup:
		for i := range f.Fields {
			rows = append(rows, fieldRows(&f.Fields[i], path+"."+f.Fields[i].Name)...)
		}
	case define.KindKeyedMap:
		if f.Elem.Kind == define.KindGroup {
			for i := range f.Elem.Fields {
				rows = append(rows, fieldRows(&f.Elem.Fields[i], path+".*."+f.Elem.Fields[i].Name)...)
			}
		} else {
			rows = append(rows, fieldRows(f.Elem, path+".*")...)
		}
	}
	return rows
}

// formatConstraints formats a field's constraints as a human-readable
// string.
func formatConstraints(f *define.FieldSpec) string {
	var parts []string

	if f.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("max: %d", f.MaxLength))
	}
	if f.Pattern != "" {
		constraint := "pattern"
		if f.Kind == define.KindKeyedMap {
			constraint = "key pattern"
		}
		parts = append(parts, fmt.Sprintf("%s: `%s`", constraint, f.Pattern))
	}
	if len(f.AllowedValues) > 0 {
		values := make([]string, len(f.AllowedValues))
		for i, v := range f.AllowedValues {
			values[i] = "`" + v + "`"
		}
		constraint := "one of"
		if f.Kind == define.KindKeyedMap {
			constraint = "keys"
		}
		parts = append(parts, constraint+": "+strings.Join(values, ", "))
	}
	if f.UniqueElements {
		parts = append(parts, "unique elements")
	}

	return strings.Join(parts, "; ")
}
