// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package validate checks candidate records against a compiled entity
// definition. Violations are collected and returned as data, never
// raised: a single pass reports every problem in the record so a
// client can surface all invalid fields at once.
package validate

import "fmt"

// Code identifies one class of constraint violation.
type Code string

const (
	CodeMissingRequired  Code = "missing_required_field"
	CodeTypeMismatch     Code = "type_mismatch"
	CodeLengthExceeded   Code = "length_exceeded"
	CodePatternMismatch  Code = "pattern_mismatch"
	CodeNotInEnumeration Code = "not_in_enumeration"
	CodeDuplicateElement Code = "duplicate_element"
	CodeInvalidMapKey    Code = "invalid_map_key"
	CodeUnknownField     Code = "unknown_field"
)

// FieldError is one violation, addressed by the dotted path of the
// offending field. Array elements are addressed by index ("tags[1]"),
// map entries by key ("locales.en-US.title").
type FieldError struct {
	Code    Code   `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func ferr(code Code, field, format string, args ...any) FieldError {
	return FieldError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
