// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package generate provides the output-format registry for compiled
// entity definitions.
package generate

import (
	"fmt"
	"sort"

	"github.com/ouroboroscoding/define-cli/internal/define"
	"github.com/ouroboroscoding/define-cli/internal/plan"
)

// Generator defines the interface all output formats must implement.
type Generator interface {
	// Name returns the format identifier (e.g. "mysql", "markdown").
	Name() string

	// Generate renders an entity and its resolved index plan into the
	// target format. Output must be deterministic: the same entity
	// always renders byte-identical bytes.
	Generate(e *define.Entity, p *plan.Plan) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g. ".sql").
	FileExtension() string
}

var generators = make(map[string]Generator)

// Register adds a generator to the registry.
func Register(g Generator) {
	generators[g.Name()] = g
}

// Get retrieves a generator by name.
func Get(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return g, nil
}

// Available returns all registered format names, sorted.
func Available() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
