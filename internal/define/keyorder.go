// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package define

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Field declaration order is significant: it determines generated
// column order. Go maps do not preserve it, so the loader walks the
// raw document tokens once and records the key order of every object,
// keyed by its dotted path ("" for the root).

// KeyOrderFromJSON parses raw JSON and extracts the order of keys for
// every object in the document.
func KeyOrderFromJSON(data []byte) (map[string][]string, error) {
	result := make(map[string][]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	var extract func(path string) error
	extract = func(path string) error {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := token.(json.Delim)
		if !ok {
			return nil
		}
		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyToken.(string)
				if !ok {
					continue
				}
				keys = append(keys, key)
				if err := extract(joinPath(path, key)); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			result[path] = keys
		case '[':
			for dec.More() {
				if err := extract(path); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := extract(""); err != nil {
		return nil, err
	}
	return result, nil
}

// KeyOrderFromYAML extracts the same path -> key order mapping from a
// YAML document. yaml.Node preserves mapping order natively.
func KeyOrderFromYAML(data []byte) (map[string][]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	extractYAML(node, "", result)
	return result, nil
}

func extractYAML(node *yaml.Node, path string, result map[string][]string) {
	switch node.Kind {
	case yaml.MappingNode:
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			keys = append(keys, key)
			extractYAML(node.Content[i+1], joinPath(path, key), result)
		}
		result[path] = keys
	case yaml.SequenceNode:
		for _, child := range node.Content {
			extractYAML(child, path, result)
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
