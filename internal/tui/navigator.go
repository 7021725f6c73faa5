// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the interactive browser: it loads the tree, lets the
// user exclude accounts, vaults and items, and saves the filtered export.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/opexport/internal/export"
	"github.com/toeirei/opexport/internal/i18n"
	"github.com/toeirei/opexport/internal/logging"
	"github.com/toeirei/opexport/internal/model"
	"github.com/toeirei/opexport/internal/op"
)

// State is the lifecycle phase of the browser.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateLoaded
	StateLoadFailed
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load failed"
	case StateTerminal:
		return "terminal"
	}
	return "unknown"
}

// DefaultTickInterval paces the loading animation.
const DefaultTickInterval = 500 * time.Millisecond

// loadingPhases is the number of dots the loading indicator cycles through.
const loadingPhases = 5

// Loader produces the tree to browse.
type Loader interface {
	Load(ctx context.Context) (*model.Data, error)
}

// Options configures the browser.
type Options struct {
	TickInterval time.Duration
	Export       export.Options
	Progress     *Progress
	// InitialPath pre-fills the export path input.
	InitialPath string
}

type (
	startMsg  struct{}
	tickMsg   struct{ gen int }
	loadedMsg struct {
		gen  int
		data *model.Data
		err  error
	}
	savedMsg struct {
		result export.Result
		err    error
	}
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctx    context.Context
	loader Loader
	opts   Options

	state State
	gen   int
	phase int

	data     *model.Data
	flat     []model.Entry
	visible  []model.Entry
	excluded *export.ExclusionSet

	cursor   int
	selected model.Key
	hasSel   bool

	input  textinput.Model
	keys   keyMap
	help   help.Model
	height int
	width  int

	saving  bool
	status  string
	errMsg  string
	loadErr error
	result  *export.Result

	copy func(string) error
}

// New returns a browser in the Uninitialized state. Loading starts once the
// program runs Init.
func New(ctx context.Context, l Loader, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Prompt = i18n.T("path.prompt")
	ti.Placeholder = i18n.T("path.placeholder")
	ti.PromptStyle = promptStyle
	ti.CharLimit = 4096
	ti.SetValue(opts.InitialPath)
	ti.Focus()

	return Model{
		ctx:      ctx,
		loader:   l,
		opts:     opts,
		state:    StateUninitialized,
		excluded: export.NewExclusionSet(),
		input:    ti,
		keys:     newKeyMap(),
		help:     help.New(),
		copy:     clipboard.WriteAll,
	}
}

// Init kicks off loading.
func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return startMsg{} }, textinput.Blink)
}

// State returns the current lifecycle phase.
func (m Model) State() State { return m.state }

// Result returns the save result once the export has been written.
func (m Model) Result() (export.Result, bool) {
	if m.result == nil {
		return export.Result{}, false
	}
	return *m.result, true
}

// LoadErr returns the error that moved the browser to LoadFailed.
func (m Model) LoadErr() error { return m.loadErr }

// ErrorText returns the error currently shown, if any.
func (m Model) ErrorText() string { return m.errMsg }

// Excluded returns the current exclusion set.
func (m Model) Excluded() *export.ExclusionSet { return m.excluded }

// Visible returns the entries currently listed.
func (m Model) Visible() []model.Entry { return m.visible }

// Cursor returns the index of the selected entry in Visible.
func (m Model) Cursor() int { return m.cursor }

// Update handles messages and advances the state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case startMsg:
		if m.state != StateUninitialized {
			return m, nil
		}
		m.state = StateLoading
		m.gen++
		m.phase = 1
		logging.Debugf("tui: loading started")
		return m, tea.Batch(m.loadCmd(m.gen), m.tickCmd(m.gen))

	case tickMsg:
		if m.state != StateLoading || msg.gen != m.gen {
			return m, nil
		}
		m.phase = m.phase%loadingPhases + 1
		return m, m.tickCmd(m.gen)

	case loadedMsg:
		return m.handleLoaded(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if m.state != StateLoading || msg.gen != m.gen {
		logging.Debugf("tui: dropping stale load result in state %s", m.state)
		return m, nil
	}
	if msg.err != nil {
		logging.Errorf("tui: load failed: %v", msg.err)
		m.state = StateLoadFailed
		m.loadErr = msg.err
		m.errMsg = loadErrorText(msg.err)
		return m, nil
	}

	m.state = StateLoaded
	m.data = msg.data
	m.flat = model.Flatten(msg.data)
	m.cursor = 0
	m.hasSel = false
	m.recompute()
	a, v, i := msg.data.Counts()
	logging.Infof("tui: loaded %d accounts, %d vaults, %d items", a, v, i)
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		logging.Warnf("tui: save failed: %v", msg.err)
		m.errMsg = i18n.T("error.save", msg.err)
		m.status = ""
		return m, nil
	}
	res := msg.result
	m.result = &res
	m.state = StateTerminal
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.state = StateTerminal
		return m, tea.Quit
	}
	if m.state != StateLoaded || m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		m.saving = true
		m.errMsg = ""
		return m, m.saveCmd(path)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.remember()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		m.remember()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.current(); ok {
			now := m.excluded.Toggle(e)
			logging.Debugf("tui: %s excluded=%t", e.Key(), now)
			m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if e, ok := m.current(); ok {
			id := e.Key().ID
			if err := m.copy(id); err != nil {
				m.errMsg = i18n.T("error.copy", err)
				m.status = ""
			} else {
				m.errMsg = ""
				m.status = i18n.T("status.copied", id)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) current() (model.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil, false
	}
	return m.visible[m.cursor], true
}

// remember records the key under the cursor so it can be found again after
// the visible list changes.
func (m *Model) remember() {
	if e, ok := m.current(); ok {
		m.selected = e.Key()
		m.hasSel = true
		return
	}
	m.hasSel = false
}

// recompute rebuilds the visible list and moves the cursor back onto the
// previously selected entry, or clamps it when that entry is gone.
func (m *Model) recompute() {
	m.visible = export.Project(m.flat, m.excluded)
	if m.hasSel {
		for i, e := range m.visible {
			if e.Key() == m.selected {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.remember()
}

func (m Model) tickCmd(gen int) tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) loadCmd(gen int) tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		data, err := l.Load(ctx)
		return loadedMsg{gen: gen, data: data, err: err}
	}
}

func (m Model) saveCmd(path string) tea.Cmd {
	tree, set, opts := m.data, m.excluded.Clone(), m.opts.Export
	return func() tea.Msg {
		res, err := export.Save(tree, set, path, opts)
		return savedMsg{result: res, err: err}
	}
}

// loadErrorText renders a load failure in the active language.
func loadErrorText(err error) string {
	var opErr *op.Error
	if !errors.As(err, &opErr) {
		return err.Error()
	}
	switch opErr.Kind {
	case op.KindCommand:
		return i18n.T("error.op_command", opErr.Err)
	case op.KindDeserialize:
		return i18n.T("error.op_json", opErr.Err)
	case op.KindCLI:
		return i18n.T("error.op_cli", strings.TrimSpace(opErr.Stderr))
	}
	return err.Error()
}
