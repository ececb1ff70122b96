// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package define holds the canonical in-memory representation of an
// entity definition document: the ordered field tree, its validation
// constraints, and the storage metadata used for DDL generation.
package define

// Kind discriminates the four shapes a field node can take.
type Kind string

const (
	// KindScalar is a single typed value.
	KindScalar Kind = "scalar"
	// KindArray is an ordered sequence of scalar elements.
	KindArray Kind = "array"
	// KindKeyedMap is a dynamically-keyed collection whose keys carry
	// their own constraints and whose values share one sub-schema.
	KindKeyedMap Kind = "keyedMap"
	// KindGroup is a fixed, named set of sub-fields.
	KindGroup Kind = "group"
)

// BaseType is the scalar type of a field or array element.
type BaseType string

const (
	TypeUUID      BaseType = "uuid"
	TypeString    BaseType = "string"
	TypeTimestamp BaseType = "timestamp"
	TypeInteger   BaseType = "integer"
	TypeNumber    BaseType = "number"
	TypeBool      BaseType = "bool"
)

// StorageHint carries mapping-layer directives for a single field.
// It affects DDL generation only, never validation.
type StorageHint struct {
	// Type overrides the generated SQL column type verbatim.
	Type string
	// JSON collapses a composite field into a single serialized column.
	JSON bool
	// Default is a default-value expression, emitted verbatim.
	Default string
	// OnUpdate is an on-update expression, emitted verbatim.
	OnUpdate string
}

// FieldSpec is one node of an entity's field tree.
//
// For KindArray, Type/Pattern/AllowedValues constrain each element and
// MaxLength bounds the element count. For KindKeyedMap,
// Pattern/AllowedValues constrain the map key itself and Elem holds
// the shared value schema. For KindGroup, Fields holds the ordered
// members.
type FieldSpec struct {
	Name           string
	Kind           Kind
	Type           BaseType
	Optional       bool
	MaxLength      int    // characters for strings, elements for arrays; 0 = unset
	Pattern        string // full-match semantics, both ends anchored
	AllowedValues  []string
	UniqueElements bool // KindArray: duplicate elements forbidden

	Fields []FieldSpec // KindGroup members, declaration order
	Elem   *FieldSpec  // KindKeyedMap value schema (scalar or group)

	Storage *StorageHint
}

// Index is one declared index over an entity.
// A nil Fields list means the declaration named a single field by the
// index name itself; the planner normalizes it.
type Index struct {
	Name   string
	Fields []string
	Unique bool
}

// Entity is the compiled, immutable description of one storable
// entity. It is constructed once by the loader and only read after
// that, so it is safe to share between goroutines.
type Entity struct {
	Name     string
	Database string
	Table    string

	// Primary names the primary key field; AutoPrimary is its storage
	// generation expression (e.g. "UUID()"), empty when the caller
	// supplies the key.
	Primary     string
	AutoPrimary string

	Fields []FieldSpec // declaration order; determines column order

	// AutoGenerated lists fields whose value is produced by storage
	// and which are therefore exempt from required checks on create.
	AutoGenerated []string
	// CreateOnly lists fields supplied at creation and immutable after.
	CreateOnly []string
	// Tracked lists fields whose mutation must produce a change record.
	Tracked []string
	// Actor is the dimension change records are attributed to ("user").
	Actor string

	Indexes []Index

	Charset string
	Collate string
}

// Field returns the top-level field with the given name.
func (e *Entity) Field(name string) (*FieldSpec, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// IsAutoGenerated reports whether name is a storage-managed field.
func (e *Entity) IsAutoGenerated(name string) bool {
	for _, n := range e.AutoGenerated {
		if n == name {
			return true
		}
	}
	return false
}

// IsCreateOnly reports whether name may only be supplied at creation.
func (e *Entity) IsCreateOnly(name string) bool {
	for _, n := range e.CreateOnly {
		if n == name {
			return true
		}
	}
	return false
}
