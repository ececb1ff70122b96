// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package mysql

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/ouroboroscoding/define-cli/internal/define"
	"github.com/ouroboroscoding/define-cli/internal/generate"
	"github.com/ouroboroscoding/define-cli/internal/plan"
)

func init() {
	generate.Register(&Generator{})
}

//go:embed mysql.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "mysql.go.tmpl"))

// Generator renders entities as MySQL CREATE TABLE statements.
type Generator struct{}

// Name returns the format identifier.
func (g *Generator) Name() string {
	return "mysql"
}

// FileExtension returns the file extension for SQL files.
func (g *Generator) FileExtension() string {
	return ".sql"
}

type tableData struct {
	Qualified  string
	Columns    []string
	PrimaryKey string
	Indexes    []indexClause
	Charset    string
	Collate    string
}

type indexClause struct {
	Name    string
	Unique  bool
	Columns string
}

// Generate renders the statement. Columns follow field declaration
// order and index clauses follow plan order, so output is stable
// across runs.
func (g *Generator) Generate(e *define.Entity, p *plan.Plan) ([]byte, error) {
	data := tableData{
		Qualified:  ident(e.Table),
		PrimaryKey: p.PrimaryKey,
		Charset:    e.Charset,
		Collate:    e.Collate,
	}
	if e.Database != "" {
		data.Qualified = ident(e.Database) + "." + ident(e.Table)
	}

	for i := range e.Fields {
		def, err := columnDefinition(e, &e.Fields[i])
		if err != nil {
			return nil, err
		}
		data.Columns = append(data.Columns, def)
	}

	for _, clause := range p.Indexes {
		data.Indexes = append(data.Indexes, indexClause{
			Name:    clause.Name,
			Unique:  clause.Unique,
			Columns: identList(clause.Fields),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "mysql.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
