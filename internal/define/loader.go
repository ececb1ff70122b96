// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package define

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of a definition document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath determines the document format from a file extension.
// JSON is the default for unknown extensions.
func FormatFromPath(filePath string) Format {
	switch path.Ext(filePath) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Reserved document keys. Everything else in a node is a field name.
const (
	keyName     = "__name__"
	keyType     = "__type__"
	keyOptional = "__optional__"
	keyMaximum  = "__maximum__"
	keyRegex    = "__regex__"
	keyOptions  = "__options__"
	keyArray    = "__array__"
	keyHash     = "__hash__"
	keySQL      = "__sql__"
)

// Loader reads entity definition documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and compiles one definition document. The format is
// determined from the file extension; the entity name falls back to
// the file's base name when the document carries no __name__.
func (l *Loader) LoadFile(filePath string) (*Entity, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	entity, err := Parse(data, FormatFromPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if entity.Name == "" {
		base := path.Base(filePath)
		entity.Name = strings.TrimSuffix(base, path.Ext(base))
		if entity.Table == "" {
			entity.Table = entity.Name
		}
	}
	return entity, nil
}

// LoadAll loads every .json/.yaml/.yml document under dir, keyed by
// entity name.
func (l *Loader) LoadAll(dir string) (map[string]*Entity, error) {
	result := make(map[string]*Entity)

	err := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(d.Name()) {
		case ".json", ".yaml", ".yml":
		default:
			return nil
		}
		entity, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if _, exists := result[entity.Name]; exists {
			return fmt.Errorf("duplicate entity %q (file: %s)", entity.Name, p)
		}
		result[entity.Name] = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Parse compiles a raw definition document into an Entity. The entity
// is checked for integrity before being returned, so a non-nil result
// is always internally consistent.
func Parse(data []byte, format Format) (*Entity, error) {
	var raw map[string]any
	var keyOrder map[string][]string
	var err error

	switch format {
	case YAML:
		if err = yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		keyOrder, err = KeyOrderFromYAML(data)
	default:
		if err = json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		keyOrder, err = KeyOrderFromJSON(data)
	}
	if err != nil {
		return nil, err
	}

	p := &parser{keyOrder: keyOrder}
	entity, err := p.entity(raw)
	if err != nil {
		return nil, err
	}
	if err := entity.Check(); err != nil {
		return nil, err
	}
	return entity, nil
}

type parser struct {
	keyOrder map[string][]string
}

// orderedKeys returns the plain (non-reserved) keys of node in
// declaration order.
func (p *parser) orderedKeys(node map[string]any, path string) []string {
	order, ok := p.keyOrder[path]
	if !ok {
		// No recorded order; fall back to sorted so output is at
		// least deterministic.
		order = make([]string, 0, len(node))
		for k := range node {
			order = append(order, k)
		}
		sort.Strings(order)
	}

	keys := make([]string, 0, len(order))
	for _, k := range order {
		if strings.HasPrefix(k, "__") {
			continue
		}
		if _, exists := node[k]; exists {
			keys = append(keys, k)
		}
	}
	return keys
}

func (p *parser) entity(raw map[string]any) (*Entity, error) {
	e := &Entity{}

	if name, ok := raw[keyName].(string); ok {
		e.Name = name
	}

	if sqlRaw, ok := raw[keySQL]; ok {
		sqlNode, ok := sqlRaw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be an object", keySQL)
		}
		if err := p.entityStorage(e, sqlNode); err != nil {
			return nil, err
		}
	}
	if e.Table == "" {
		e.Table = e.Name
	}

	for _, name := range p.orderedKeys(raw, "") {
		field, err := p.field(name, raw[name], name)
		if err != nil {
			return nil, err
		}
		e.Fields = append(e.Fields, *field)
	}

	p.deriveRoles(e)
	return e, nil
}

// entityStorage interprets the top-level __sql__ block.
func (p *parser) entityStorage(e *Entity, node map[string]any) error {
	e.Database, _ = node["db"].(string)
	e.Table, _ = node["table"].(string)
	e.Primary, _ = node["primary"].(string)
	e.AutoPrimary, _ = node["auto_primary"].(string)
	e.Charset, _ = node["charset"].(string)
	e.Collate, _ = node["collate"].(string)

	var err error
	if e.CreateOnly, err = stringList(node["create"]); err != nil {
		return fmt.Errorf("__sql__.create: %w", err)
	}

	changes, err := stringList(node["changes"])
	if err != nil {
		return fmt.Errorf("__sql__.changes: %w", err)
	}
	if len(changes) > 0 {
		e.Actor = changes[0]
	}

	if idxRaw, ok := node["indexes"]; ok {
		idxNode, ok := idxRaw.(map[string]any)
		if !ok {
			return fmt.Errorf("__sql__.indexes must be an object")
		}
		order, ok := p.keyOrder[keySQL+".indexes"]
		if !ok {
			order = make([]string, 0, len(idxNode))
			for k := range idxNode {
				order = append(order, k)
			}
			sort.Strings(order)
		}
		for _, name := range order {
			raw, exists := idxNode[name]
			if !exists {
				continue
			}
			idx, err := parseIndex(name, raw)
			if err != nil {
				return err
			}
			e.Indexes = append(e.Indexes, idx)
		}
	}
	return nil
}

// parseIndex interprets one index declaration. Accepted forms:
//
//	"i_cat": null                          simple index on field i_cat
//	"i_cat": "_category"                   simple index on one field
//	"i_cat": ["_category", "_locale"]      simple composite index
//	"ui_slug": {"unique": null}            unique index on field ui_slug
//	"ui_slug": {"unique": "slug"}          unique index on one field
//	"ui_cl": {"unique": ["_category", "_locale"]}
func parseIndex(name string, raw any) (Index, error) {
	idx := Index{Name: name}

	switch v := raw.(type) {
	case nil:
		// fields resolved from the index name by the planner
	case string:
		idx.Fields = []string{v}
	case []any:
		fields, err := stringList(v)
		if err != nil {
			return idx, fmt.Errorf("index %q: %w", name, err)
		}
		idx.Fields = fields
	case map[string]any:
		uniqueRaw, ok := v["unique"]
		if !ok {
			return idx, fmt.Errorf("index %q: object form requires a \"unique\" key", name)
		}
		idx.Unique = true
		switch u := uniqueRaw.(type) {
		case nil:
		case string:
			idx.Fields = []string{u}
		case []any:
			fields, err := stringList(u)
			if err != nil {
				return idx, fmt.Errorf("index %q: %w", name, err)
			}
			idx.Fields = fields
		default:
			return idx, fmt.Errorf("index %q: unsupported unique declaration", name)
		}
	default:
		return idx, fmt.Errorf("index %q: unsupported declaration", name)
	}

	return idx, nil
}

// field interprets one field node of the tree.
func (p *parser) field(name string, raw any, path string) (*FieldSpec, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q: must be an object", path)
	}

	f := &FieldSpec{Name: name}
	var err error

	if opt, ok := node[keyOptional]; ok {
		if f.Optional, ok = opt.(bool); !ok {
			return nil, fmt.Errorf("field %q: %s must be a boolean", path, keyOptional)
		}
	}
	if max, ok := node[keyMaximum]; ok {
		if f.MaxLength, ok = toInt(max); !ok {
			return nil, fmt.Errorf("field %q: %s must be an integer", path, keyMaximum)
		}
	}
	if re, ok := node[keyRegex]; ok {
		if f.Pattern, ok = re.(string); !ok {
			return nil, fmt.Errorf("field %q: %s must be a string", path, keyRegex)
		}
	}
	if opts, ok := node[keyOptions]; ok {
		if f.AllowedValues, err = stringList(opts); err != nil {
			return nil, fmt.Errorf("field %q: %s: %w", path, keyOptions, err)
		}
	}
	if sqlRaw, ok := node[keySQL]; ok {
		if f.Storage, err = parseStorageHint(sqlRaw); err != nil {
			return nil, fmt.Errorf("field %q: %w", path, err)
		}
	}

	plain := p.orderedKeys(node, path)

	switch {
	case node[keyArray] != nil:
		f.Kind = KindArray
		if mode, ok := node[keyArray].(string); ok && mode == "unique" {
			f.UniqueElements = true
		}
		if err := parseBaseType(node, path, f); err != nil {
			return nil, err
		}

	case node[keyHash] != nil:
		f.Kind = KindKeyedMap
		switch hash := node[keyHash].(type) {
		case string:
			f.Pattern = hash
		case []any:
			if f.AllowedValues, err = stringList(hash); err != nil {
				return nil, fmt.Errorf("field %q: %s: %w", path, keyHash, err)
			}
		case bool:
			// unconstrained keys
		default:
			return nil, fmt.Errorf("field %q: %s must be a pattern, a value list, or true", path, keyHash)
		}
		elem, err := p.hashValue(node, plain, path)
		if err != nil {
			return nil, err
		}
		f.Elem = elem

	case len(plain) > 0:
		if _, hasType := node[keyType]; hasType {
			return nil, fmt.Errorf("field %q: cannot mix %s with nested fields", path, keyType)
		}
		f.Kind = KindGroup
		for _, sub := range plain {
			child, err := p.field(sub, node[sub], path+"."+sub)
			if err != nil {
				return nil, err
			}
			f.Fields = append(f.Fields, *child)
		}

	default:
		f.Kind = KindScalar
		if err := parseBaseType(node, path, f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// hashValue builds the shared value schema of a keyed map: either the
// nested group formed by the node's plain keys, or a scalar described
// by __type__.
func (p *parser) hashValue(node map[string]any, plain []string, path string) (*FieldSpec, error) {
	if len(plain) > 0 {
		elem := &FieldSpec{Kind: KindGroup}
		for _, sub := range plain {
			child, err := p.field(sub, node[sub], path+"."+sub)
			if err != nil {
				return nil, err
			}
			elem.Fields = append(elem.Fields, *child)
		}
		return elem, nil
	}

	elem := &FieldSpec{Kind: KindScalar}
	if err := parseBaseType(node, path, elem); err != nil {
		return nil, err
	}
	return elem, nil
}

func parseBaseType(node map[string]any, path string, f *FieldSpec) error {
	raw, ok := node[keyType]
	if !ok {
		return fmt.Errorf("field %q: missing %s", path, keyType)
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("field %q: %s must be a string", path, keyType)
	}
	switch BaseType(s) {
	case TypeUUID, TypeString, TypeTimestamp, TypeInteger, TypeNumber, TypeBool:
		f.Type = BaseType(s)
	default:
		return fmt.Errorf("field %q: unknown type %q", path, s)
	}
	return nil
}

func parseStorageHint(raw any) (*StorageHint, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", keySQL)
	}
	hint := &StorageHint{}
	hint.Type, _ = node["type"].(string)
	hint.Default, _ = node["default"].(string)
	hint.OnUpdate, _ = node["on_update"].(string)
	if j, ok := node["json"].(bool); ok {
		hint.JSON = j
	}
	return hint, nil
}

// deriveRoles marks storage-managed fields explicitly at compile time
// so the validator never has to infer roles from naming conventions.
func (p *parser) deriveRoles(e *Entity) {
	if e.Primary != "" && e.AutoPrimary != "" {
		e.AutoGenerated = append(e.AutoGenerated, e.Primary)
	}
	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Name == e.Primary {
			continue
		}
		if f.Storage != nil && (f.Storage.Default != "" || f.Storage.OnUpdate != "") {
			e.AutoGenerated = append(e.AutoGenerated, f.Name)
		}
	}

	// Change tracking covers every caller-supplied field.
	if e.Actor != "" {
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.Name == e.Primary || e.IsAutoGenerated(f.Name) {
				continue
			}
			e.Tracked = append(e.Tracked, f.Name)
		}
	}
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a list of strings")
	}
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
