// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/opexport/internal/export"
)

// Outcome is how an interactive session ended.
type Outcome struct {
	// Saved is set when the export was written; Result describes it.
	Saved  bool
	Result export.Result
}

// Run starts the browser on the alternate screen and blocks until the user
// saves or quits. Cancelling ctx stops the program and any running load.
// When the user quits after a failed load, the load error is returned.
func Run(ctx context.Context, l Loader, opts Options, progOpts ...tea.ProgramOption) (Outcome, error) {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(New(ctx, l, opts), progOpts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, fmt.Errorf("run browser: %w", err)
	}
	return outcomeOf(final)
}

func outcomeOf(final tea.Model) (Outcome, error) {
	m, ok := final.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected final model %T", final)
	}
	if res, ok := m.Result(); ok {
		return Outcome{Saved: true, Result: res}, nil
	}
	if err := m.LoadErr(); err != nil {
		return Outcome{}, err
	}
	return Outcome{}, nil
}
