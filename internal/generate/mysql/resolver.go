// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package mysql renders an entity definition into a MySQL CREATE
// TABLE statement.
package mysql

import (
	"fmt"
	"strings"

	"github.com/ouroboroscoding/define-cli/internal/define"
)

// defaultStringWidth is the column width used for string fields that
// declare no maximum.
const defaultStringWidth = 255

// columnType maps a field to its MySQL column type. An explicit
// storage override always wins; composite fields must carry the JSON
// collapse flag since no relational fan-out is defined for them.
func columnType(e *define.Entity, f *define.FieldSpec) (string, error) {
	if f.Storage != nil && f.Storage.Type != "" {
		return f.Storage.Type, nil
	}

	if f.Kind != define.KindScalar {
		if f.Storage != nil && f.Storage.JSON {
			return "json", nil
		}
		return "", &define.IntegrityError{
			Entity:  e.Name,
			Field:   f.Name,
			Code:    define.CodeSchemaIntegrity,
			Message: "composite field has no json storage hint and no column type override",
		}
	}

	switch f.Type {
	case define.TypeUUID:
		return "char(36)", nil
	case define.TypeString:
		width := f.MaxLength
		if width == 0 {
			width = defaultStringWidth
		}
		return fmt.Sprintf("varchar(%d)", width), nil
	case define.TypeTimestamp:
		return "timestamp", nil
	case define.TypeInteger:
		return "bigint", nil
	case define.TypeNumber:
		return "double", nil
	case define.TypeBool:
		return "tinyint(1)", nil
	default:
		return "", &define.IntegrityError{
			Entity:  e.Name,
			Field:   f.Name,
			Code:    define.CodeSchemaIntegrity,
			Message: fmt.Sprintf("no column mapping for type %q", f.Type),
		}
	}
}

// columnDefinition assembles one column line. Default and on-update
// expressions from the storage hint are emitted verbatim.
func columnDefinition(e *define.Entity, f *define.FieldSpec) (string, error) {
	typ, err := columnType(e, f)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(ident(f.Name))
	sb.WriteByte(' ')
	sb.WriteString(typ)

	if f.Name == e.Primary || !f.Optional {
		sb.WriteString(" not null")
	} else {
		sb.WriteString(" null")
	}

	if f.Name == e.Primary && e.AutoPrimary != "" {
		sb.WriteString(" default (" + e.AutoPrimary + ")")
	} else if f.Storage != nil {
		if f.Storage.Default != "" {
			sb.WriteString(" default " + f.Storage.Default)
		}
		if f.Storage.OnUpdate != "" {
			sb.WriteString(" on update " + f.Storage.OnUpdate)
		}
	}

	return sb.String(), nil
}

func ident(name string) string {
	return "`" + name + "`"
}

func identList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = ident(n)
	}
	return strings.Join(quoted, ", ")
}
