// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package op

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed op invocation.
type Kind int

const (
	// KindCommand means the op process could not be started.
	KindCommand Kind = iota + 1
	// KindDeserialize means op answered with output that is not the expected JSON.
	KindDeserialize
	// KindCLI means op reported an error on stderr.
	KindCLI
)

// Sentinels matched by *Error through errors.Is.
var (
	ErrCommand     = errors.New("op command failed")
	ErrDeserialize = errors.New("op returned malformed JSON")
	ErrCLI         = errors.New("op reported an error")
)

// Error describes a failed op invocation.
type Error struct {
	Kind   Kind
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCommand:
		return fmt.Sprintf("Error opening op process: %v", e.Err)
	case KindDeserialize:
		return fmt.Sprintf("JSON Error: %v", e.Err)
	case KindCLI:
		return "OP CLI Error: " + strings.TrimSpace(e.Stderr)
	}
	return fmt.Sprintf("op %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrCommand:
		return e.Kind == KindCommand
	case ErrDeserialize:
		return e.Kind == KindDeserialize
	case ErrCLI:
		return e.Kind == KindCLI
	}
	return false
}
