// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrMissingKey is returned by Sub for an absent nested database.
	ErrMissingKey = errors.New("config: missing key")

	// ErrType is returned when a stored value has the wrong type.
	ErrType = errors.New("config: wrong value type")

	// ErrParse wraps YAML decoding failures.
	ErrParse = errors.New("config: cannot parse settings")
)
