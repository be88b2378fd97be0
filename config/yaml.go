// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML mapping into a database.
// Errors: ErrParse.
func Parse(data []byte) (*Settings, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return FromMap(m), nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the settings file: %w", err)
	}

	return Parse(data)
}

// Write encodes the database as YAML.
func (s *Settings) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Map()); err != nil {
		return err
	}

	return enc.Close()
}
