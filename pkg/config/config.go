package config

import "fmt"

// Config is a read-only set of named shape parameters.
//
// Accessors panic when asked for an undeclared key or the wrong kind:
// both are programming errors in the shape that owns the schema, not
// input errors.
type Config struct {
	values map[string]value
}

func (c *Config) get(key string, kind Kind) value {
	v, ok := c.values[key]
	if !ok {
		panic(fmt.Sprintf("config: no key %q", key))
	}
	if v.kind != kind {
		panic(fmt.Sprintf("config: key %q is %s, not %s", key, v.kind, kind))
	}
	return v
}

// Float returns a float value.
func (c *Config) Float(key string) float64 {
	return c.get(key, KindFloat).f
}

// Int returns an integer value.
func (c *Config) Int(key string) int {
	return c.get(key, KindInt).i
}

// Bool returns a boolean value.
func (c *Config) Bool(key string) bool {
	return c.get(key, KindBool).b
}

// Floats returns a copy of a list value.
func (c *Config) Floats(key string) []float64 {
	l := c.get(key, KindFloatList).list
	out := make([]float64, len(l))
	copy(out, l)
	return out
}

// Len returns the number of keys.
func (c *Config) Len() int {
	return len(c.values)
}
