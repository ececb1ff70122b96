// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package define

import (
	"fmt"
	"regexp"
	"sync"
)

// Integrity codes. Unlike validation codes these indicate a defective
// schema, not defective input, and are fatal at plan/generate time.
const (
	CodeSchemaIntegrity   = "schema_integrity"
	CodeUnknownIndexField = "unknown_index_field"
	CodeEmptyIndex        = "empty_index"
)

// IntegrityError reports a malformed entity definition. Planning and
// DDL generation refuse to produce output while one is present.
type IntegrityError struct {
	Entity  string
	Field   string
	Code    string
	Message string
}

func (e *IntegrityError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s (%s)", e.Entity, e.Field, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Entity, e.Message, e.Code)
}

func integrityErr(entity, field, code, format string, args ...any) *IntegrityError {
	return &IntegrityError{
		Entity:  entity,
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Check verifies the entity definition itself is consistent: the
// primary key exists, is a non-composite uuid field, and every pattern
// in the field tree compiles. It returns the first problem found as a
// single authoritative error.
func (e *Entity) Check() error {
	if e.Primary == "" {
		return integrityErr(e.Name, "", CodeSchemaIntegrity, "no primary key declared")
	}
	pk, ok := e.Field(e.Primary)
	if !ok {
		return integrityErr(e.Name, e.Primary, CodeSchemaIntegrity, "primary key references undeclared field")
	}
	if pk.Kind != KindScalar || pk.Type != TypeUUID {
		return integrityErr(e.Name, e.Primary, CodeSchemaIntegrity, "primary key must be a uuid scalar, got %s %s", pk.Kind, pk.Type)
	}

	seen := make(map[string]struct{}, len(e.Fields))
	for i := range e.Fields {
		f := &e.Fields[i]
		if _, dup := seen[f.Name]; dup {
			return integrityErr(e.Name, f.Name, CodeSchemaIntegrity, "duplicate field")
		}
		seen[f.Name] = struct{}{}
		if err := checkField(e.Name, f.Name, f); err != nil {
			return err
		}
	}
	return nil
}

func checkField(entity, path string, f *FieldSpec) error {
	if f.Pattern != "" {
		if _, err := CompilePattern(f.Pattern); err != nil {
			return integrityErr(entity, path, CodeSchemaIntegrity, "invalid pattern %q: %v", f.Pattern, err)
		}
	}
	if f.MaxLength < 0 {
		return integrityErr(entity, path, CodeSchemaIntegrity, "negative maximum")
	}

	switch f.Kind {
	case KindScalar, KindArray:
		if f.Type == "" {
			return integrityErr(entity, path, CodeSchemaIntegrity, "missing base type")
		}
	case KindKeyedMap:
		if f.Elem == nil {
			return integrityErr(entity, path, CodeSchemaIntegrity, "keyed map has no value schema")
		}
		if err := checkField(entity, path+".*", f.Elem); err != nil {
			return err
		}
	case KindGroup:
		if len(f.Fields) == 0 {
			return integrityErr(entity, path, CodeSchemaIntegrity, "empty group")
		}
		for i := range f.Fields {
			sub := &f.Fields[i]
			if err := checkField(entity, path+"."+sub.Name, sub); err != nil {
				return err
			}
		}
	default:
		return integrityErr(entity, path, CodeSchemaIntegrity, "unknown field kind %q", f.Kind)
	}
	return nil
}

var patternCache sync.Map // pattern source -> *regexp.Regexp

// CompilePattern compiles a field pattern with full-match semantics:
// the expression is wrapped so partial matches never count as
// acceptance. Compiled patterns are cached, so repeated validation of
// the same immutable schema never recompiles.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, err
	}
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}
