// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package validate

import (
	"fmt"
	"sort"

	"github.com/ouroboroscoding/define-cli/internal/define"
)

// Mode selects which storage-managed fields are exempt from required
// enforcement.
type Mode int

const (
	// ModeCreate exempts auto-generated fields (primary key, managed
	// timestamps) from required checks; storage will populate them.
	ModeCreate Mode = iota
	// ModeFull enforces every required field.
	ModeFull
)

// Record validates a candidate record against an entity definition and
// returns every violation found. An empty result means the record is
// valid. Fields present in the record but absent from the definition
// are reported as unknown; validation never mutates the record.
//
// Record expects a definition that passed (*define.Entity).Check, as
// every entity built by define.Parse has; it does not re-run integrity
// checks. A keyed map lacking a value schema constrains its keys only.
func Record(e *define.Entity, record map[string]any, mode Mode) []FieldError {
	var errs []FieldError

	for i := range e.Fields {
		f := &e.Fields[i]
		value, present := record[f.Name]
		if !present || value == nil {
			if f.Optional || (mode == ModeCreate && e.IsAutoGenerated(f.Name)) {
				continue
			}
			errs = append(errs, ferr(CodeMissingRequired, f.Name, "required field is missing"))
			continue
		}
		errs = append(errs, checkField(f, value, f.Name)...)
	}

	for _, name := range sortedKeys(record) {
		if _, ok := e.Field(name); !ok {
			errs = append(errs, ferr(CodeUnknownField, name, "field is not declared by entity %q", e.Name))
		}
	}

	return errs
}

// checkField dispatches on the field kind. Errors never short-circuit
// siblings: composite values are walked exhaustively.
func checkField(f *define.FieldSpec, value any, path string) []FieldError {
	switch f.Kind {
	case define.KindArray:
		return checkArray(f, value, path)
	case define.KindKeyedMap:
		return checkKeyedMap(f, value, path)
	case define.KindGroup:
		return checkGroup(f.Fields, value, path)
	default:
		return CheckScalar(f, value, path)
	}
}

func checkArray(f *define.FieldSpec, value any, path string) []FieldError {
	elems, ok := toSlice(value)
	if !ok {
		return []FieldError{ferr(CodeTypeMismatch, path, "expected an array")}
	}

	var errs []FieldError
	if f.MaxLength > 0 && len(elems) > f.MaxLength {
		errs = append(errs, ferr(CodeLengthExceeded, path, "%d elements exceed maximum %d", len(elems), f.MaxLength))
	}

	// Element constraints are the field's scalar constraints;
	// MaxLength bounds the element count, not element size.
	elemSpec := *f
	elemSpec.Kind = define.KindScalar
	elemSpec.MaxLength = 0
	elemSpec.Optional = false

	seen := make(map[string]struct{}, len(elems))
	for i, elem := range elems {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		if f.UniqueElements {
			key := fmt.Sprint(elem)
			if _, dup := seen[key]; dup {
				errs = append(errs, ferr(CodeDuplicateElement, elemPath, "duplicate element %q", key))
			} else {
				seen[key] = struct{}{}
			}
		}
		errs = append(errs, CheckScalar(&elemSpec, elem, elemPath)...)
	}
	return errs
}

func checkKeyedMap(f *define.FieldSpec, value any, path string) []FieldError {
	entries, ok := value.(map[string]any)
	if !ok {
		return []FieldError{ferr(CodeTypeMismatch, path, "expected a keyed map")}
	}

	var errs []FieldError
	for _, key := range sortedKeys(entries) {
		keyPath := path + "." + key
		errs = append(errs, checkMapKey(f, key, keyPath)...)

		// A hand-built spec may lack a value schema; Check rejects
		// that at load time, so only the keys can be constrained here.
		if f.Elem == nil {
			continue
		}

		entry := entries[key]
		if f.Elem.Kind == define.KindGroup {
			errs = append(errs, checkGroup(f.Elem.Fields, entry, keyPath)...)
		} else {
			errs = append(errs, CheckScalar(f.Elem, entry, keyPath)...)
		}
	}
	return errs
}

// checkMapKey applies the field's own pattern/enumeration constraints
// to the map key, not to the entry value.
func checkMapKey(f *define.FieldSpec, key, path string) []FieldError {
	if f.Pattern != "" {
		re, err := define.CompilePattern(f.Pattern)
		if err != nil || !re.MatchString(key) {
			return []FieldError{ferr(CodeInvalidMapKey, path, "key %q does not match pattern %q", key, f.Pattern)}
		}
	}
	if len(f.AllowedValues) > 0 {
		for _, allowed := range f.AllowedValues {
			if key == allowed {
				return nil
			}
		}
		return []FieldError{ferr(CodeInvalidMapKey, path, "key %q is not one of the allowed values", key)}
	}
	return nil
}

func checkGroup(fields []define.FieldSpec, value any, path string) []FieldError {
	group, ok := value.(map[string]any)
	if !ok {
		return []FieldError{ferr(CodeTypeMismatch, path, "expected an object")}
	}

	var errs []FieldError
	declared := make(map[string]struct{}, len(fields))
	for i := range fields {
		f := &fields[i]
		declared[f.Name] = struct{}{}
		subPath := path + "." + f.Name
		sub, present := group[f.Name]
		if !present || sub == nil {
			if !f.Optional {
				errs = append(errs, ferr(CodeMissingRequired, subPath, "required field is missing"))
			}
			continue
		}
		errs = append(errs, checkField(f, sub, subPath)...)
	}

	for _, name := range sortedKeys(group) {
		if _, ok := declared[name]; !ok {
			errs = append(errs, ferr(CodeUnknownField, path+"."+name, "field is not declared"))
		}
	}
	return errs
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// sortedKeys keeps error ordering stable across runs; Go map iteration
// would otherwise shuffle sibling errors.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
