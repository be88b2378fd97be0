// SPDX-License-Identifier: MIT

// Package config - Settings: a typed key/value parameter database.
//
// Purpose:
//   - Carry solver parameters (tolerances, iteration limits, type names)
//     from YAML documents or code into the solver families.
//   - Allow nested databases, e.g. the linear solver an eigensolver uses
//     internally ("eigen_solver_linear_solver_db").
//
// Behavior highlights:
//   - Missing keys yield the caller's default; wrong types are errors.
//   - Float accepts integer values; Int accepts integral floats.
//   - A nil *Settings behaves as an empty database.
package config

import (
	"fmt"
	"math"
	"sort"
)

// Settings is a string-keyed parameter database.
type Settings struct {
	values map[string]any
}

// New returns an empty database.
func New() *Settings {
	return &Settings{values: make(map[string]any)}
}

// FromMap builds a database from a generic map; nested maps become nested
// databases.
func FromMap(m map[string]any) *Settings {
	s := New()
	for k, v := range m {
		s.Put(k, v)
	}

	return s
}

// Put stores v under key and returns s for chaining. Nested maps are
// converted into *Settings.
func (s *Settings) Put(key string, v any) *Settings {
	switch nested := v.(type) {
	case map[string]any:
		v = FromMap(nested)
	case map[any]any:
		m := make(map[string]any, len(nested))
		for k, vv := range nested {
			m[fmt.Sprint(k)] = vv
		}
		v = FromMap(m)
	}
	s.values[key] = v

	return s
}

// Check reports whether key is present.
func (s *Settings) Check(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[key]

	return ok
}

// Raw returns the stored value of key, untyped.
func (s *Settings) Raw(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]

	return v, ok
}

// Keys returns the keys in ascending order.
func (s *Settings) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// String returns the string stored under key, or def when absent.
func (s *Settings) String(key, def string) (string, error) {
	v, ok := s.Raw(key)
	if !ok {
		return def, nil
	}
	str, ok := v.(string)
	if !ok {
		return def, typeError(key, "string", v)
	}

	return str, nil
}

// Float returns the number stored under key, or def when absent.
func (s *Settings) Float(key string, def float64) (float64, error) {
	v, ok := s.Raw(key)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}

	return def, typeError(key, "number", v)
}

// Int returns the integer stored under key, or def when absent.
func (s *Settings) Int(key string, def int) (int, error) {
	v, ok := s.Raw(key)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}

	return def, typeError(key, "integer", v)
}

// Bool returns the flag stored under key, or def when absent.
// Integers are accepted, non-zero meaning true.
func (s *Settings) Bool(key string, def bool) (bool, error) {
	v, ok := s.Raw(key)
	if !ok {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	}

	return def, typeError(key, "bool", v)
}

// Sub returns the nested database stored under key.
// Errors: ErrMissingKey, ErrType.
func (s *Settings) Sub(key string) (*Settings, error) {
	v, ok := s.Raw(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrMissingKey)
	}
	sub, ok := v.(*Settings)
	if !ok {
		return nil, typeError(key, "database", v)
	}

	return sub, nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	out := New()
	if s == nil {
		return out
	}
	for k, v := range s.values {
		if sub, ok := v.(*Settings); ok {
			v = sub.Clone()
		}
		out.values[k] = v
	}

	return out
}

// Map returns the database as a generic nested map.
func (s *Settings) Map() map[string]any {
	out := make(map[string]any)
	if s == nil {
		return out
	}
	for k, v := range s.values {
		if sub, ok := v.(*Settings); ok {
			v = sub.Map()
		}
		out[k] = v
	}

	return out
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("%q: want %s, got %T: %w", key, want, got, ErrType)
}
