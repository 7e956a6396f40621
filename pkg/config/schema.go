// Package config holds read-only shape parameters and parses them from
// the newline-delimited key=value text format.
//
// A shape declares a Schema naming every key it understands, its kind and
// its default. Parsing rejects keys outside the schema, lines without a
// value and values that do not parse as the declared kind. A parsed
// Config is never modified and may be shared by any number of concurrent
// samplers.
package config

import (
	"fmt"
	"sort"
)

// Kind is the type of a configuration value.
type Kind int

const (
	KindFloat     Kind = iota // float64
	KindInt                   // int
	KindBool                  // bool
	KindFloatList             // comma-separated float64 list
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloatList:
		return "float list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// value is one typed configuration entry.
type value struct {
	kind Kind
	f    float64
	i    int
	b    bool
	list []float64
}

// Schema lists the keys a shape accepts together with their defaults.
// Build it once, at package init or construction time, with the chained
// declaration methods.
type Schema struct {
	fields map[string]value
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{fields: make(map[string]value)}
}

// Float declares a floating point key.
func (s *Schema) Float(key string, def float64) *Schema {
	s.fields[key] = value{kind: KindFloat, f: def}
	return s
}

// Int declares an integer key.
func (s *Schema) Int(key string, def int) *Schema {
	s.fields[key] = value{kind: KindInt, i: def}
	return s
}

// Bool declares a boolean key.
func (s *Schema) Bool(key string, def bool) *Schema {
	s.fields[key] = value{kind: KindBool, b: def}
	return s
}

// FloatList declares a list key.
func (s *Schema) FloatList(key string, def ...float64) *Schema {
	l := make([]float64, len(def))
	copy(l, def)
	s.fields[key] = value{kind: KindFloatList, list: l}
	return s
}

// Has reports whether key is declared.
func (s *Schema) Has(key string) bool {
	_, ok := s.fields[key]
	return ok
}

// KindOf returns the declared kind of key.
func (s *Schema) KindOf(key string) (Kind, bool) {
	v, ok := s.fields[key]
	return v.kind, ok
}

// Keys returns the declared keys in sorted order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Defaults returns a Config holding every default value.
func (s *Schema) Defaults() *Config {
	c := &Config{values: make(map[string]value, len(s.fields))}
	for k, v := range s.fields {
		c.values[k] = v
	}
	return c
}
