// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package chart

import (
	"errors"
	"fmt"
)

var (
	// Malformed viewport, unresolvable catalog, invalid style or unknown observer body
	ErrConfiguration = errors.New("configuration error")

	// A predicate failed to evaluate on a star
	ErrPredicate = errors.New("predicate evaluation error")

	// The catalog, the observer or the rendering surface failed
	ErrCollaborator = errors.New("collaborator error")
)

// An error raised by one stage of the star pipeline. Matches both its
// kind and the underlying cause with errors.Is
type StageError struct {
	Stage string // catalog, observe, where, scatter, legend or text
	Kind  error  // one of ErrConfiguration, ErrPredicate, ErrCollaborator
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error { return []error{e.Kind, e.Err} }

func stageError(stage string, kind, err error) error {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
