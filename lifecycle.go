// SPDX-License-Identifier: MIT

package callow

import (
	"errors"
	"sync"
)

// Hook is a setup or teardown step of an external backend.
type Hook func() error

var (
	lifeMu      sync.Mutex
	initialized bool
	initHooks   []Hook
	finalHooks  []Hook
)

// OnInitialize registers h to run on the next Initialize. Hooks run in
// registration order.
func OnInitialize(h Hook) {
	lifeMu.Lock()
	defer lifeMu.Unlock()
	initHooks = append(initHooks, h)
}

// OnFinalize registers h to run on Finalize. Hooks run in reverse
// registration order.
func OnFinalize(h Hook) {
	lifeMu.Lock()
	defer lifeMu.Unlock()
	finalHooks = append(finalHooks, h)
}

// Initialize runs the registered setup hooks once. Further calls are no-ops
// until Finalize. On the first failing hook the state stays uninitialized
// and the error is returned.
func Initialize() error {
	lifeMu.Lock()
	defer lifeMu.Unlock()
	if initialized {
		return nil
	}
	for _, h := range initHooks {
		if err := h(); err != nil {
			return err
		}
	}
	initialized = true

	return nil
}

// Finalize runs every teardown hook and marks the process uninitialized.
// It is a no-op when not initialized. Hook errors are joined.
func Finalize() error {
	lifeMu.Lock()
	defer lifeMu.Unlock()
	if !initialized {
		return nil
	}
	var errs []error
	for i := len(finalHooks) - 1; i >= 0; i-- {
		if err := finalHooks[i](); err != nil {
			errs = append(errs, err)
		}
	}
	initialized = false

	return errors.Join(errs...)
}

// Initialized reports whether Initialize has completed.
func Initialized() bool {
	lifeMu.Lock()
	defer lifeMu.Unlock()

	return initialized
}
