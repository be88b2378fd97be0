// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/callow/config"
)

// Constructor builds a linear solver from settings.
type Constructor func(s *config.Settings, opts ...Option) (LinearSolver, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"richardson": func(s *config.Settings, opts ...Option) (LinearSolver, error) {
			return NewRichardson(s, opts...)
		},
		"jacobi": func(s *config.Settings, opts ...Option) (LinearSolver, error) {
			return NewJacobi(s, opts...)
		},
		"gauss-seidel": func(s *config.Settings, opts ...Option) (LinearSolver, error) {
			return NewGaussSeidel(s, opts...)
		},
		"gmres": func(s *config.Settings, opts ...Option) (LinearSolver, error) {
			return NewGMRES(s, opts...)
		},
		"mr1": func(s *config.Settings, opts ...Option) (LinearSolver, error) {
			return NewMR1(s, opts...)
		},
	}
)

// Register adds or replaces a named constructor, e.g. an external backend.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = c
}

// Names returns the registered solver names in ascending order.
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

// New builds the solver registered under name.
// Errors: ErrUnknownType, or the constructor's error.
func New(name string, s *config.Settings, opts ...Option) (LinearSolver, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}

	return c(s, opts...)
}

// FromSettings builds the solver named by "linear_solver_type" (default "gmres").
func FromSettings(s *config.Settings, opts ...Option) (LinearSolver, error) {
	name, err := s.String(KeyType, DefaultType)
	if err != nil {
		return nil, err
	}

	return New(name, s, opts...)
}
