// SPDX-License-Identifier: MIT

package triples

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Metadata is an immutable key/value record of a factory's provenance
// (source path, restrictions, ...). Values are shared between clones and
// must be treated as read-only. Every update yields a new Metadata.
// The zero value is empty.
type Metadata struct {
	m map[string]any
}

// NewMetadata copies m.
func NewMetadata(m map[string]any) Metadata {
	if len(m) == 0 {
		return Metadata{}
	}

	return Metadata{m: maps.Clone(m)}
}

// With returns a copy extended by extra; extra wins on key collision.
func (md Metadata) With(extra map[string]any) Metadata {
	if len(extra) == 0 {
		return md
	}
	out := make(map[string]any, len(md.m)+len(extra))
	maps.Copy(out, md.m)
	maps.Copy(out, extra)

	return Metadata{m: out}
}

// Get returns the value for key.
func (md Metadata) Get(key string) (any, bool) {
	v, ok := md.m[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (md Metadata) Keys() []string { return slices.Sorted(maps.Keys(md.m)) }

// Len returns the number of entries.
func (md Metadata) Len() int { return len(md.m) }

// Map returns a shallow copy.
func (md Metadata) Map() map[string]any { return maps.Clone(md.m) }

// String renders sorted key=value pairs; string values are quoted.
func (md Metadata) String() string {
	parts := make([]string, 0, len(md.m))
	for _, k := range md.Keys() {
		v := md.m[k]
		if s, ok := v.(string); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", k, s))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}

	return strings.Join(parts, ", ")
}

// MarshalYAML encodes the entries as a mapping.
func (md Metadata) MarshalYAML() (any, error) {
	if md.m == nil {
		return map[string]any{}, nil
	}

	return md.m, nil
}

// UnmarshalYAML decodes a mapping.
func (md *Metadata) UnmarshalYAML(unmarshal func(any) error) error {
	var m map[string]any
	if err := unmarshal(&m); err != nil {
		return err
	}
	*md = NewMetadata(m)

	return nil
}
