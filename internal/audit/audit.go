// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package audit classifies which fields of an entity are
// storage-managed (creation/update timestamps) and which require
// change records attributed to an actor. It only describes; the
// persistence layer owns the change log itself.
package audit

import (
	"github.com/ouroboroscoding/define-cli/internal/define"
)

// Metadata is the audit classification of one entity.
type Metadata struct {
	// CreatedField is populated by storage at creation time; empty if
	// the entity declares none. A single field may fill both roles.
	CreatedField string
	// UpdatedField is refreshed by storage on every update.
	UpdatedField string
	// CreateOnlyFields are supplied at creation and immutable after.
	CreateOnlyFields []string
	// ChangeTrackedFields must produce a change record when mutated.
	ChangeTrackedFields []string
	// ActorDimension is the principal dimension change records are
	// attributed to (e.g. "user"); empty disables change tracking.
	ActorDimension string
}

// Describe derives the audit metadata of an entity from its storage
// hints and change declarations.
func Describe(e *define.Entity) Metadata {
	m := Metadata{
		CreateOnlyFields:    e.CreateOnly,
		ChangeTrackedFields: e.Tracked,
		ActorDimension:      e.Actor,
	}

	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Type != define.TypeTimestamp || f.Storage == nil {
			continue
		}
		if m.CreatedField == "" && f.Storage.Default != "" {
			m.CreatedField = f.Name
		}
		if m.UpdatedField == "" && f.Storage.OnUpdate != "" {
			m.UpdatedField = f.Name
		}
	}

	return m
}

// Tracked reports whether a mutation of the named field requires a
// change record.
func Tracked(m Metadata, field string) bool {
	for _, name := range m.ChangeTrackedFields {
		if name == field {
			return true
		}
	}
	return false
}
