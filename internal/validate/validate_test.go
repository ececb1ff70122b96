// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouroboroscoding/define-cli/internal/define"
)

func postEntity() *define.Entity {
	return &define.Entity{
		Name:          "post",
		Primary:       "_id",
		AutoPrimary:   "UUID()",
		AutoGenerated: []string{"_id", "_created"},
		Fields: []define.FieldSpec{
			{Name: "_id", Kind: define.KindScalar, Type: define.TypeUUID, Optional: true},
			{Name: "_created", Kind: define.KindScalar, Type: define.TypeTimestamp, Optional: true,
				Storage: &define.StorageHint{Default: "CURRENT_TIMESTAMP"}},
			{Name: "title", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 60},
			{Name: "slug", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 188, Pattern: "^[a-z0-9-]+$"},
			{Name: "tags", Kind: define.KindArray, Type: define.TypeString, MaxLength: 10, UniqueElements: true},
			{Name: "locales", Kind: define.KindKeyedMap, Pattern: "^[a-z]{2}-[A-Z]{2}$",
				Elem: &define.FieldSpec{Kind: define.KindGroup, Fields: []define.FieldSpec{
					{Name: "title", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 60},
					{Name: "content", Kind: define.KindScalar, Type: define.TypeString},
				}}},
		},
	}
}

func validPost() map[string]any {
	return map[string]any{
		"_id":      "f3b4c5d6-1234-4abc-9def-0123456789ab",
		"_created": "2026-08-29 10:30:00",
		"title":    "My First Post",
		"slug":     "my-first-post",
		"tags":     []any{"go", "sql"},
		"locales": map[string]any{
			"en-US": map[string]any{"title": "My First Post", "content": "Hello."},
		},
	}
}

func codes(errs []FieldError) []Code {
	out := make([]Code, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestRecord_Valid(t *testing.T) {
	errs := Record(postEntity(), validPost(), ModeFull)
	assert.Empty(t, errs)
}

func TestRecord_MissingRequired(t *testing.T) {
	record := validPost()
	delete(record, "title")

	errs := Record(postEntity(), record, ModeFull)
	// Exactly one violation: absence never cascades into type errors.
	require.Len(t, errs, 1)
	assert.Equal(t, CodeMissingRequired, errs[0].Code)
	assert.Equal(t, "title", errs[0].Field)
}

func TestRecord_NilCountsAsAbsent(t *testing.T) {
	record := validPost()
	record["title"] = nil

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeMissingRequired, errs[0].Code)
}

func TestRecord_CreateModeExemptsAutoGenerated(t *testing.T) {
	record := validPost()
	delete(record, "_id")
	delete(record, "_created")

	assert.Empty(t, Record(postEntity(), record, ModeCreate))
}

func TestRecord_UnknownField(t *testing.T) {
	record := validPost()
	record["color"] = "red"

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUnknownField, errs[0].Code)
	assert.Equal(t, "color", errs[0].Field)
}

func TestRecord_SlugPattern(t *testing.T) {
	record := validPost()
	record["slug"] = "My Post!"

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodePatternMismatch, errs[0].Code)
	assert.Equal(t, "slug", errs[0].Field)

	record["slug"] = "my-post"
	assert.Empty(t, Record(postEntity(), record, ModeFull))
}

func TestRecord_ArrayDuplicates(t *testing.T) {
	record := validPost()
	record["tags"] = []any{"go", "go"}

	errs := Record(postEntity(), record, ModeFull)
	// One violation, attributed to the second occurrence.
	require.Len(t, errs, 1)
	assert.Equal(t, CodeDuplicateElement, errs[0].Code)
	assert.Equal(t, "tags[1]", errs[0].Field)
}

func TestRecord_ArrayElementConstraints(t *testing.T) {
	record := validPost()
	record["tags"] = []any{"go", 7, ""}

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 2)
	assert.Equal(t, CodeTypeMismatch, errs[0].Code)
	assert.Equal(t, "tags[1]", errs[0].Field)
	assert.Equal(t, CodeMissingRequired, errs[1].Code)
	assert.Equal(t, "tags[2]", errs[1].Field)
}

func TestRecord_ArrayLengthIsElementCount(t *testing.T) {
	e := postEntity()
	tags, _ := e.Field("tags")
	tags.MaxLength = 2

	record := validPost()
	record["tags"] = []any{"a", "b", "c"}

	errs := Record(e, record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeLengthExceeded, errs[0].Code)
	assert.Equal(t, "tags", errs[0].Field)
}

func TestRecord_ArrayNotAnArray(t *testing.T) {
	record := validPost()
	record["tags"] = "go"

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeTypeMismatch, errs[0].Code)
	assert.Equal(t, "tags", errs[0].Field)
}

func TestRecord_KeyedMapKeyConstraint(t *testing.T) {
	record := validPost()
	record["locales"] = map[string]any{
		"english": map[string]any{"title": "Hi", "content": "Hello."},
	}

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidMapKey, errs[0].Code)
	assert.Equal(t, "locales.english", errs[0].Field)
}

func TestRecord_KeyedMapNestedMissing(t *testing.T) {
	record := validPost()
	record["locales"] = map[string]any{
		"en-US": map[string]any{"title": "Hi"},
	}

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeMissingRequired, errs[0].Code)
	assert.Equal(t, "locales.en-US.content", errs[0].Field)
}

func TestRecord_KeyedMapExhaustive(t *testing.T) {
	// A bad key and a bad entry in the same map are both reported, as
	// are violations across multiple keys.
	record := validPost()
	record["locales"] = map[string]any{
		"en-us": map[string]any{"title": "Hi", "content": "Hello."},
		"fr-CA": map[string]any{"title": "Salut"},
	}

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 2)
	assert.Equal(t, CodeInvalidMapKey, errs[0].Code)
	assert.Equal(t, "locales.en-us", errs[0].Field)
	assert.Equal(t, CodeMissingRequired, errs[1].Code)
	assert.Equal(t, "locales.fr-CA.content", errs[1].Field)
}

func TestRecord_KeyedMapAllowedKeys(t *testing.T) {
	e := postEntity()
	locales, _ := e.Field("locales")
	locales.Pattern = ""
	locales.AllowedValues = []string{"en-US", "fr-CA"}

	record := validPost()
	errs := Record(e, record, ModeFull)
	assert.Empty(t, errs)

	record["locales"] = map[string]any{
		"de-DE": map[string]any{"title": "Hallo", "content": "Welt."},
	}
	errs = Record(e, record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidMapKey, errs[0].Code)
}

func TestRecord_KeyedMapWithoutValueSchema(t *testing.T) {
	// A hand-built spec that skipped the integrity check can carry a
	// keyed map with no value schema; keys are still checked and the
	// entry values pass through without panicking.
	e := postEntity()
	locales, _ := e.Field("locales")
	locales.Elem = nil

	record := validPost()
	record["locales"] = map[string]any{
		"en-US": map[string]any{"anything": true},
		"en-us": map[string]any{},
	}

	errs := Record(e, record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidMapKey, errs[0].Code)
	assert.Equal(t, "locales.en-us", errs[0].Field)
}

func TestRecord_GroupUnknownField(t *testing.T) {
	record := validPost()
	record["locales"] = map[string]any{
		"en-US": map[string]any{"title": "Hi", "content": "Hello.", "color": "red"},
	}

	errs := Record(postEntity(), record, ModeFull)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUnknownField, errs[0].Code)
	assert.Equal(t, "locales.en-US.color", errs[0].Field)
}

func TestRecord_Exhaustive(t *testing.T) {
	// Multiple independent violations are all collected in one pass.
	record := map[string]any{
		"slug":  "Bad Slug!",
		"tags":  []any{"go", "go"},
		"extra": true,
	}

	errs := Record(postEntity(), record, ModeCreate)
	assert.ElementsMatch(t,
		[]Code{CodeMissingRequired, CodePatternMismatch, CodeDuplicateElement, CodeMissingRequired, CodeUnknownField},
		codes(errs))
}

func TestRecord_Idempotent(t *testing.T) {
	// Validation never mutates the record; a second pass reports the
	// identical violations.
	record := validPost()
	record["slug"] = "Bad Slug!"
	record["tags"] = []any{"a", "a"}

	first := Record(postEntity(), record, ModeFull)
	second := Record(postEntity(), record, ModeFull)
	assert.Equal(t, first, second)
	require.Len(t, second, 2)
}
