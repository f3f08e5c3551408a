// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"io"
	"sync"
)

// Scope ties the lifetime of cursors (or any io.Closer) to an owner such as
// a screen. Everything managed is closed when the owner calls Release.
type Scope struct {
	mu      sync.Mutex
	closers []io.Closer
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Manage registers c to be closed on Release. A nil closer is ignored.
func (s *Scope) Manage(c io.Closer) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, c)
}

// Len returns the number of resources currently held.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.closers)
}

// Release closes every managed resource, newest first, and empties the
// scope. The scope can be reused afterwards.
func (s *Scope) Release() error {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
