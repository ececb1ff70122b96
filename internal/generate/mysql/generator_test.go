// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package mysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouroboroscoding/define-cli/internal/define"
	"github.com/ouroboroscoding/define-cli/internal/plan"
)

func localeEntity() *define.Entity {
	return &define.Entity{
		Name:        "category_locale",
		Database:    "blog",
		Table:       "category_locale",
		Primary:     "_id",
		AutoPrimary: "UUID()",
		Charset:     "utf8mb4",
		Collate:     "utf8mb4_unicode_ci",
		Fields: []define.FieldSpec{
			{Name: "_id", Kind: define.KindScalar, Type: define.TypeUUID, Optional: true},
			{Name: "_created", Kind: define.KindScalar, Type: define.TypeTimestamp, Optional: true,
				Storage: &define.StorageHint{Default: "CURRENT_TIMESTAMP"}},
			{Name: "_updated", Kind: define.KindScalar, Type: define.TypeTimestamp, Optional: true,
				Storage: &define.StorageHint{Default: "CURRENT_TIMESTAMP", OnUpdate: "CURRENT_TIMESTAMP"}},
			{Name: "_category", Kind: define.KindScalar, Type: define.TypeUUID},
			{Name: "_locale", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 5},
			{Name: "slug", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 188},
			{Name: "title", Kind: define.KindScalar, Type: define.TypeString, MaxLength: 60},
		},
		Indexes: []define.Index{
			{Name: "ui_category_locale", Fields: []string{"_category", "_locale"}, Unique: true},
			{Name: "ui_slug", Fields: []string{"slug"}, Unique: true},
			{Name: "i_category", Fields: []string{"_category"}},
		},
	}
}

func TestGenerate(t *testing.T) {
	e := localeEntity()
	p, err := plan.Build(e)
	require.NoError(t, err)

	out, err := (&Generator{}).Generate(e, p)
	require.NoError(t, err)

	expected := "CREATE TABLE IF NOT EXISTS `blog`.`category_locale` (\n" +
		"\t`_id` char(36) not null default (UUID()),\n" +
		"\t`_created` timestamp null default CURRENT_TIMESTAMP,\n" +
		"\t`_updated` timestamp null default CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP,\n" +
		"\t`_category` char(36) not null,\n" +
		"\t`_locale` varchar(5) not null,\n" +
		"\t`slug` varchar(188) not null,\n" +
		"\t`title` varchar(60) not null,\n" +
		"\tPRIMARY KEY (`_id`),\n" +
		"\tUNIQUE KEY `ui_category_locale` (`_category`, `_locale`),\n" +
		"\tUNIQUE KEY `ui_slug` (`slug`),\n" +
		"\tKEY `i_category` (`_category`)\n" +
		") DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;\n"

	assert.Equal(t, expected, string(out))
}

func TestGenerate_Deterministic(t *testing.T) {
	e := localeEntity()
	p, err := plan.Build(e)
	require.NoError(t, err)

	g := &Generator{}
	first, err := g.Generate(e, p)
	require.NoError(t, err)
	second, err := g.Generate(e, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_NoDatabaseNoCharset(t *testing.T) {
	e := localeEntity()
	e.Database = ""
	e.Charset = ""
	e.Collate = ""
	e.Indexes = nil

	p, err := plan.Build(e)
	require.NoError(t, err)

	out, err := (&Generator{}).Generate(e, p)
	require.NoError(t, err)

	assert.Contains(t, string(out), "CREATE TABLE IF NOT EXISTS `category_locale` (")
	assert.Contains(t, string(out), "\tPRIMARY KEY (`_id`)\n);\n")
	assert.NotContains(t, string(out), "CHARSET")
}

func TestGenerate_JSONCollapsedComposite(t *testing.T) {
	e := localeEntity()
	e.Fields = append(e.Fields, define.FieldSpec{
		Name: "tags", Kind: define.KindArray, Type: define.TypeString,
		Storage: &define.StorageHint{JSON: true},
	})

	p, err := plan.Build(e)
	require.NoError(t, err)

	out, err := (&Generator{}).Generate(e, p)
	require.NoError(t, err)
	assert.Contains(t, string(out), "`tags` json not null,")
}

func TestGenerate_CompositeWithoutHintFails(t *testing.T) {
	e := localeEntity()
	e.Fields = append(e.Fields, define.FieldSpec{
		Name: "image", Kind: define.KindGroup,
		Fields: []define.FieldSpec{{Name: "mime", Kind: define.KindScalar, Type: define.TypeString}},
	})

	p, err := plan.Build(e)
	require.NoError(t, err)

	_, err = (&Generator{}).Generate(e, p)
	require.Error(t, err)

	var ierr *define.IntegrityError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, define.CodeSchemaIntegrity, ierr.Code)
	assert.Equal(t, "image", ierr.Field)
}

func TestColumnType_Overrides(t *testing.T) {
	e := localeEntity()

	tests := []struct {
		name  string
		field define.FieldSpec
		want  string
	}{
		{"storage type override", define.FieldSpec{Name: "content", Kind: define.KindScalar, Type: define.TypeString,
			Storage: &define.StorageHint{Type: "text"}}, "text"},
		{"string default width", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeString}, "varchar(255)"},
		{"integer", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeInteger}, "bigint"},
		{"number", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeNumber}, "double"},
		{"bool", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeBool}, "tinyint(1)"},
		{"uuid", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeUUID}, "char(36)"},
		{"timestamp", define.FieldSpec{Name: "x", Kind: define.KindScalar, Type: define.TypeTimestamp}, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := columnType(e, &tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
