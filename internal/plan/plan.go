// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package plan derives the primary key, uniqueness, and secondary
// index declarations of an entity into a form ready for DDL rendering.
package plan

import (
	"github.com/ouroboroscoding/define-cli/internal/define"
)

// Clause is one resolved index declaration.
type Clause struct {
	Name   string
	Fields []string
	Unique bool
}

// Plan is the derived key and index set of one entity. Clauses appear
// in declaration order so repeated runs against an identical schema
// render byte-identical DDL.
type Plan struct {
	PrimaryKey  string
	AutoPrimary string
	Indexes     []Clause
}

// Build resolves an entity's key and index declarations. It refuses
// to produce a plan for an inconsistent schema: a missing or ill-typed
// primary key, an index referencing an undeclared field, or an index
// with an explicitly empty field list all surface a single
// IntegrityError instead of a partial plan.
func Build(e *define.Entity) (*Plan, error) {
	if err := e.Check(); err != nil {
		return nil, err
	}

	p := &Plan{
		PrimaryKey:  e.Primary,
		AutoPrimary: e.AutoPrimary,
	}

	for _, idx := range e.Indexes {
		fields := idx.Fields
		if fields == nil {
			// Declared against a single field by the index name.
			fields = []string{idx.Name}
		}
		if len(fields) == 0 {
			return nil, &define.IntegrityError{
				Entity:  e.Name,
				Field:   idx.Name,
				Code:    define.CodeEmptyIndex,
				Message: "index declares no fields",
			}
		}
		for _, name := range fields {
			if _, ok := e.Field(name); !ok {
				return nil, &define.IntegrityError{
					Entity:  e.Name,
					Field:   name,
					Code:    define.CodeUnknownIndexField,
					Message: "index " + idx.Name + " references undeclared field",
				}
			}
		}
		p.Indexes = append(p.Indexes, Clause{
			Name:   idx.Name,
			Fields: fields,
			Unique: idx.Unique,
		})
	}

	return p, nil
}
