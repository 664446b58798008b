// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/overrides.go
// Summary: User icon overrides loaded from icons.json.

package catalog

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

// IconOverrides maps an application identifier or a display-name fragment to
// a glyph or emoji string. Loaded from a user-editable JSON file.
type IconOverrides map[string]string

// LoadIconOverrides reads the override file at path. A missing or malformed
// file yields an empty set with a logged diagnostic, never an error.
func LoadIconOverrides(path string) IconOverrides {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Catalog: Failed to read icon overrides %s: %v", path, err)
		}
		return IconOverrides{}
	}

	var overrides IconOverrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		log.Printf("Catalog: Malformed icon overrides %s: %v", path, err)
		return IconOverrides{}
	}
	return overrides
}

// Resolve returns the override glyph for an entry, matching the identifier
// exactly first, then by case-insensitive display-name containment. Fragment
// matches are checked in sorted key order so results are deterministic when
// several fragments match.
func (o IconOverrides) Resolve(id, name string) (string, bool) {
	if glyph, ok := o[id]; ok {
		return glyph, true
	}

	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lower := strings.ToLower(name)
	for _, k := range keys {
		if strings.Contains(lower, strings.ToLower(k)) {
			return o[k], true
		}
	}
	return "", false
}
