// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package validate

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ouroboroscoding/define-cli/internal/define"
)

// timestampLayouts are the accepted wire representations of a
// timestamp value, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CheckScalar evaluates one value against a field's scalar
// constraints. Checks are independent: every applicable violation is
// reported, not just the first. Absence handling (required/optional)
// is the caller's job.
func CheckScalar(f *define.FieldSpec, value any, path string) []FieldError {
	var errs []FieldError

	switch f.Type {
	case define.TypeUUID:
		s, ok := value.(string)
		if !ok {
			return append(errs, ferr(CodeTypeMismatch, path, "expected a uuid string"))
		}
		if _, err := uuid.Parse(s); err != nil {
			return append(errs, ferr(CodeTypeMismatch, path, "%q is not a valid uuid", s))
		}

	case define.TypeTimestamp:
		switch v := value.(type) {
		case time.Time:
		case string:
			if !parseableTimestamp(v) {
				return append(errs, ferr(CodeTypeMismatch, path, "%q is not a valid timestamp", v))
			}
		default:
			return append(errs, ferr(CodeTypeMismatch, path, "expected a timestamp"))
		}

	case define.TypeString:
		s, ok := value.(string)
		if !ok {
			return append(errs, ferr(CodeTypeMismatch, path, "expected a string"))
		}
		if s == "" && !f.Optional {
			errs = append(errs, ferr(CodeMissingRequired, path, "value must not be empty"))
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
			errs = append(errs, ferr(CodeLengthExceeded, path, "length %d exceeds maximum %d", utf8.RuneCountInString(s), f.MaxLength))
		}
		errs = append(errs, checkPattern(f, s, path)...)
		errs = append(errs, checkEnumeration(f, s, path)...)

	case define.TypeInteger:
		if _, ok := toInteger(value); !ok {
			return append(errs, ferr(CodeTypeMismatch, path, "expected an integer"))
		}

	case define.TypeNumber:
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			return append(errs, ferr(CodeTypeMismatch, path, "expected a number"))
		}

	case define.TypeBool:
		if _, ok := value.(bool); !ok {
			return append(errs, ferr(CodeTypeMismatch, path, "expected a boolean"))
		}
	}

	return errs
}

// checkPattern applies a full-match pattern test; partial matches are
// not acceptance.
func checkPattern(f *define.FieldSpec, s, path string) []FieldError {
	if f.Pattern == "" {
		return nil
	}
	re, err := define.CompilePattern(f.Pattern)
	if err != nil {
		// Integrity checking rejects uncompilable patterns at load
		// time; a hand-built schema that skipped it fails closed.
		return []FieldError{ferr(CodePatternMismatch, path, "pattern %q does not compile", f.Pattern)}
	}
	if !re.MatchString(s) {
		return []FieldError{ferr(CodePatternMismatch, path, "%q does not match pattern %q", s, f.Pattern)}
	}
	return nil
}

func checkEnumeration(f *define.FieldSpec, s, path string) []FieldError {
	if len(f.AllowedValues) == 0 {
		return nil
	}
	for _, allowed := range f.AllowedValues {
		if s == allowed {
			return nil
		}
	}
	return []FieldError{ferr(CodeNotInEnumeration, path, "%q is not one of the allowed values", s)}
}

func parseableTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func toInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
