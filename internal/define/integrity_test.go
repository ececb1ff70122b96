// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package define

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_PrimaryKey(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		field  string
	}{
		{
			name:   "no primary declared",
			entity: Entity{Name: "thing", Fields: []FieldSpec{{Name: "x", Kind: KindScalar, Type: TypeString}}},
		},
		{
			name: "primary references undeclared field",
			entity: Entity{Name: "thing", Primary: "_id",
				Fields: []FieldSpec{{Name: "x", Kind: KindScalar, Type: TypeString}}},
			field: "_id",
		},
		{
			name: "primary is not a uuid",
			entity: Entity{Name: "thing", Primary: "_id",
				Fields: []FieldSpec{{Name: "_id", Kind: KindScalar, Type: TypeInteger}}},
			field: "_id",
		},
		{
			name: "primary is composite",
			entity: Entity{Name: "thing", Primary: "_id",
				Fields: []FieldSpec{{Name: "_id", Kind: KindGroup, Fields: []FieldSpec{
					{Name: "a", Kind: KindScalar, Type: TypeUUID},
				}}}},
			field: "_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Check()
			require.Error(t, err)

			var ierr *IntegrityError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, CodeSchemaIntegrity, ierr.Code)
			assert.Equal(t, "thing", ierr.Entity)
			assert.Equal(t, tt.field, ierr.Field)
		})
	}
}

func TestCheck_FieldTree(t *testing.T) {
	valid := func() Entity {
		return Entity{
			Name:    "thing",
			Primary: "_id",
			Fields: []FieldSpec{
				{Name: "_id", Kind: KindScalar, Type: TypeUUID},
			},
		}
	}

	t.Run("valid entity passes", func(t *testing.T) {
		e := valid()
		assert.NoError(t, e.Check())
	})

	t.Run("duplicate field", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields,
			FieldSpec{Name: "slug", Kind: KindScalar, Type: TypeString},
			FieldSpec{Name: "slug", Kind: KindScalar, Type: TypeString},
		)
		err := e.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate field")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields, FieldSpec{Name: "slug", Kind: KindScalar, Type: TypeString, Pattern: "["})
		err := e.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid pattern")
	})

	t.Run("nested group pattern reported with path", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields, FieldSpec{Name: "image", Kind: KindGroup, Fields: []FieldSpec{
			{Name: "mime", Kind: KindScalar, Type: TypeString, Pattern: "("},
		}})
		err := e.Check()
		require.Error(t, err)

		var ierr *IntegrityError
		require.True(t, errors.As(err, &ierr))
		assert.Equal(t, "image.mime", ierr.Field)
	})

	t.Run("keyed map without value schema", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields, FieldSpec{Name: "locales", Kind: KindKeyedMap})
		err := e.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no value schema")
	})

	t.Run("empty group", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields, FieldSpec{Name: "image", Kind: KindGroup})
		err := e.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty group")
	})

	t.Run("scalar without base type", func(t *testing.T) {
		e := valid()
		e.Fields = append(e.Fields, FieldSpec{Name: "slug", Kind: KindScalar})
		err := e.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing base type")
	})
}

func TestCompilePattern_FullMatch(t *testing.T) {
	re, err := CompilePattern("^[a-z]{2}-[A-Z]{2}$")
	require.NoError(t, err)

	assert.True(t, re.MatchString("en-US"))
	assert.False(t, re.MatchString("en-us"))
	assert.False(t, re.MatchString("eng-US"))
	assert.False(t, re.MatchString("xxen-US"))
	assert.False(t, re.MatchString("en-USxx"))
}

func TestCompilePattern_UnanchoredSource(t *testing.T) {
	// Patterns without explicit anchors still match the whole value.
	re, err := CompilePattern("[a-z]+")
	require.NoError(t, err)

	assert.True(t, re.MatchString("hello"))
	assert.False(t, re.MatchString("hello world"))
	assert.False(t, re.MatchString("Hello"))
}

func TestCompilePattern_Cached(t *testing.T) {
	a, err := CompilePattern("^cache-me$")
	require.NoError(t, err)
	b, err := CompilePattern("^cache-me$")
	require.NoError(t, err)
	assert.Same(t, a, b)
}
