// SPDX-License-Identifier: MIT

package preconditioner

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
)

// Settings keys and defaults read by the registry.
const (
	KeyType     = "pc_type"
	DefaultType = "ilu0"
)

// Option configures construction through the registry.
type Option func(*Options)

// Options carries code-level knobs that do not belong in Settings.
type Options struct {
	// Operator is the operator wrapped by the "matrix" preconditioner.
	Operator matrix.Operator
}

// WithOperator supplies the operator used as P⁻¹ by the "matrix" type.
func WithOperator(p matrix.Operator) Option {
	return func(o *Options) { o.Operator = p }
}

// Constructor builds a preconditioner for the system operator a.
type Constructor func(a matrix.Operator, s *config.Settings, o Options) (Preconditioner, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"identity": func(a matrix.Operator, _ *config.Settings, _ Options) (Preconditioner, error) {
			if a == nil {
				return nil, pcErrorf("identity", ErrNilOperator)
			}
			return NewIdentity(a.Rows())
		},
		"jacobi": func(a matrix.Operator, _ *config.Settings, _ Options) (Preconditioner, error) {
			return NewJacobi(a)
		},
		"ilu0": func(a matrix.Operator, _ *config.Settings, _ Options) (Preconditioner, error) {
			return NewILU0(a)
		},
		"matrix": func(a matrix.Operator, _ *config.Settings, o Options) (Preconditioner, error) {
			if o.Operator != nil {
				return NewMatrix(o.Operator)
			}
			return NewMatrix(a)
		},
	}
)

// Register adds or replaces a named constructor. External backends use it
// at init time.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = c
}

// Names returns the registered type names in ascending order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// New builds the preconditioner registered under name.
// Errors: ErrUnknownType, or the constructor's error.
func New(name string, a matrix.Operator, s *config.Settings, opts ...Option) (Preconditioner, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	return c(a, s, o)
}

// FromSettings builds the preconditioner named by "pc_type" (default "ilu0").
func FromSettings(a matrix.Operator, s *config.Settings, opts ...Option) (Preconditioner, error) {
	name, err := s.String(KeyType, DefaultType)
	if err != nil {
		return nil, err
	}

	return New(name, a, s, opts...)
}
