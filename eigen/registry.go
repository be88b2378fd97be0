// SPDX-License-Identifier: MIT

package eigen

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/callow/config"
)

// Constructor builds an eigensolver from settings.
type Constructor func(s *config.Settings, opts ...Option) (EigenSolver, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"power": func(s *config.Settings, opts ...Option) (EigenSolver, error) {
			return NewPower(s, opts...)
		},
		"davidson": func(s *config.Settings, opts ...Option) (EigenSolver, error) {
			return NewDavidson(s, opts...)
		},
		"direct": func(s *config.Settings, opts ...Option) (EigenSolver, error) {
			return NewDirect(s, opts...)
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

// New builds the eigensolver registered under name.
func New(name string, s *config.Settings, opts ...Option) (EigenSolver, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}

	return c(s, opts...)
}

// FromSettings builds the eigensolver named by "eigen_solver_type"
// (default "power").
func FromSettings(s *config.Settings, opts ...Option) (EigenSolver, error) {
	name, err := s.String(KeyType, DefaultType)
	if err != nil {
		return nil, err
	}

	return New(name, s, opts...)
}
