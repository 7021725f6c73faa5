// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/opexport/internal/i18n"
	"github.com/toeirei/opexport/internal/model"
	"github.com/toeirei/opexport/internal/op"
	"github.com/toeirei/opexport/internal/testutil"
)

type fakeLoader struct {
	data *model.Data
	err  error
	ctx  context.Context
}

func (f *fakeLoader) Load(ctx context.Context) (*model.Data, error) {
	f.ctx = ctx
	return f.data, f.err
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func loadedModel(t *testing.T, data *model.Data) Model {
	t.Helper()
	m := New(context.Background(), &fakeLoader{data: data}, Options{})
	m, _ = update(t, m, startMsg{})
	m, _ = update(t, m, loadedMsg{gen: m.gen, data: data})
	if m.State() != StateLoaded {
		t.Fatalf("expected loaded state, got %s", m.State())
	}
	return m
}

func visibleIDs(m Model) []string {
	out := make([]string, 0, len(m.Visible()))
	for _, e := range m.Visible() {
		out = append(out, e.Key().ID)
	}
	return out
}

func TestStart_EntersLoading(t *testing.T) {
	m := New(context.Background(), &fakeLoader{}, Options{})
	if m.State() != StateUninitialized {
		t.Fatalf("new model should be uninitialized, got %s", m.State())
	}
	m, cmd := update(t, m, startMsg{})
	if m.State() != StateLoading {
		t.Fatalf("expected loading, got %s", m.State())
	}
	if cmd == nil {
		t.Fatalf("expected load and tick commands")
	}
	// a second start is ignored
	if _, cmd := update(t, m, startMsg{}); cmd != nil {
		t.Fatalf("second start should not schedule anything")
	}
}

func TestTick_AdvancesPhaseOnlyWhileLoading(t *testing.T) {
	m := New(context.Background(), &fakeLoader{}, Options{})
	m, _ = update(t, m, startMsg{})

	for want := 2; want <= 5; want++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tickMsg{gen: m.gen})
		if m.phase != want || cmd == nil {
			t.Fatalf("tick %d: phase=%d cmd=%v", want, m.phase, cmd != nil)
		}
	}
	m, _ = update(t, m, tickMsg{gen: m.gen})
	if m.phase != 1 {
		t.Fatalf("phase should wrap to 1, got %d", m.phase)
	}

	m, _ = update(t, m, loadedMsg{gen: m.gen, data: testutil.SampleData()})
	if _, cmd := update(t, m, tickMsg{gen: m.gen}); cmd != nil {
		t.Fatalf("tick after load must not reschedule")
	}
}

func TestTick_StaleGenerationIgnored(t *testing.T) {
	m := New(context.Background(), &fakeLoader{}, Options{})
	m, _ = update(t, m, startMsg{})
	m, cmd := update(t, m, tickMsg{gen: m.gen - 1})
	if cmd != nil || m.phase != 1 {
		t.Fatalf("stale tick should be dropped, phase=%d", m.phase)
	}
}

func TestLoadCmd_UsesContextAndReportsResult(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "run")
	fl := &fakeLoader{data: testutil.SampleData()}
	m := New(ctx, fl, Options{})

	msg, ok := m.loadCmd(3)().(loadedMsg)
	if !ok {
		t.Fatalf("load command should produce loadedMsg")
	}
	if msg.gen != 3 || msg.data == nil || msg.err != nil {
		t.Fatalf("unexpected load message: %+v", msg)
	}
	if fl.ctx.Value(ctxKey{}) != "run" {
		t.Fatalf("loader did not receive the program context")
	}
}

func TestLoaded_Success(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	want := []string{"A", "V", "I1", "I2"}
	if got := visibleIDs(m); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	if m.Cursor() != 0 {
		t.Fatalf("cursor should start at 0, got %d", m.Cursor())
	}
}

func TestLoaded_FailureShowsErrorAndWaitsForQuit(t *testing.T) {
	loadErr := &op.Error{Kind: op.KindCLI, Stderr: "not signed in\n"}
	m := New(context.Background(), &fakeLoader{}, Options{})
	m, _ = update(t, m, startMsg{})
	m, _ = update(t, m, loadedMsg{gen: m.gen, err: loadErr})

	if m.State() != StateLoadFailed {
		t.Fatalf("expected load failed, got %s", m.State())
	}
	if m.ErrorText() != "OP CLI Error: not signed in" {
		t.Fatalf("unexpected error text %q", m.ErrorText())
	}
	if !strings.Contains(m.View(), "OP CLI Error") {
		t.Fatalf("view should show the load error")
	}

	m, cmd := press(t, m, tea.KeyDown)
	if cmd != nil || m.State() != StateLoadFailed {
		t.Fatalf("navigation must be ignored after a failed load")
	}

	m, cmd = press(t, m, tea.KeyEsc)
	if m.State() != StateTerminal || cmd == nil {
		t.Fatalf("esc should quit, state=%s", m.State())
	}
	if _, err := outcomeOf(m); !errors.Is(err, op.ErrCLI) {
		t.Fatalf("outcome should carry the load error, got %v", err)
	}
}

func TestLoaded_FailureTextFollowsLanguage(t *testing.T) {
	i18n.Init("de")
	t.Cleanup(func() { i18n.Init("en") })

	cases := []struct {
		err  error
		want string
	}{
		{&op.Error{Kind: op.KindCLI, Stderr: "not signed in\n"}, "Fehler der op-CLI: not signed in"},
		{&op.Error{Kind: op.KindCommand, Err: errors.New("no such file")}, "Fehler beim Starten des op-Prozesses: no such file"},
		{&op.Error{Kind: op.KindDeserialize, Err: errors.New("bad json")}, "JSON-Fehler: bad json"},
		{errors.New("plain"), "plain"},
	}
	for _, tc := range cases {
		m := New(context.Background(), &fakeLoader{}, Options{})
		m, _ = update(t, m, startMsg{})
		m, _ = update(t, m, loadedMsg{gen: m.gen, err: tc.err})
		if got := m.ErrorText(); got != tc.want {
			t.Errorf("error text = %q, want %q", got, tc.want)
		}
	}
}

func TestLoaded_LateResultDropped(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m, _ = update(t, m, loadedMsg{gen: m.gen, data: testutil.TwoAccountData()})
	if len(m.Visible()) != 4 {
		t.Fatalf("late load result must not replace data, visible=%v", visibleIDs(m))
	}

	m, _ = press(t, m, tea.KeyEsc)
	m, _ = update(t, m, loadedMsg{gen: m.gen, err: errors.New("late")})
	if m.State() != StateTerminal {
		t.Fatalf("terminal state must not change, got %s", m.State())
	}
}

func TestNavigation_Clamps(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())

	m, _ = press(t, m, tea.KeyUp)
	if m.Cursor() != 0 {
		t.Fatalf("up at top should stay at 0, got %d", m.Cursor())
	}
	for range 10 {
		m, _ = press(t, m, tea.KeyDown)
	}
	if m.Cursor() != 3 {
		t.Fatalf("down should stop at last index 3, got %d", m.Cursor())
	}
}

func TestToggle_VaultHidesItemsAndKeepsCursor(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeySpace)

	if got := strings.Join(visibleIDs(m), ","); got != "A,V" {
		t.Fatalf("visible after excluding V = %s", got)
	}
	if m.Cursor() != 1 {
		t.Fatalf("cursor should stay on V, got %d", m.Cursor())
	}
	if !m.Excluded().Contains(model.Key{Kind: model.KindVault, ID: "V"}) {
		t.Fatalf("V should be excluded")
	}

	m, _ = press(t, m, tea.KeySpace)
	if len(m.Visible()) != 4 || m.Excluded().Len() != 0 {
		t.Fatalf("toggling again should restore, visible=%v", visibleIDs(m))
	}
}

func TestToggle_AccountHidesSubtree(t *testing.T) {
	m := loadedModel(t, testutil.TwoAccountData())
	m, _ = press(t, m, tea.KeySpace)
	if got := strings.Join(visibleIDs(m), ","); got != "A1,A2" {
		t.Fatalf("visible after excluding A1 = %s", got)
	}
}

func TestToggle_ItemStaysVisible(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeySpace)
	if len(m.Visible()) != 4 || m.Cursor() != 2 {
		t.Fatalf("excluding an item must not hide it: %v cursor=%d", visibleIDs(m), m.Cursor())
	}
	if !strings.HasPrefix(m.row(2), "> x ") {
		t.Fatalf("view should mark the excluded item")
	}
}

func TestRecompute_ClampsWhenSelectionHidden(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	for range 3 {
		m, _ = press(t, m, tea.KeyDown)
	}
	m.excluded.Toggle(m.Visible()[1])
	m.recompute()
	if m.Cursor() != 1 {
		t.Fatalf("cursor should clamp to last visible index 1, got %d", m.Cursor())
	}
}

func TestEnter_EmptyPathDoesNothing(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m = typeText(t, m, "   ")
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil || m.State() != StateLoaded || m.saving {
		t.Fatalf("enter with blank path should do nothing")
	}
}

func TestSave_SuccessQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	m := loadedModel(t, testutil.SampleData())
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeySpace) // exclude I1
	m = typeText(t, m, path)

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatalf("enter should start saving")
	}
	m, quit := update(t, m, cmd())
	if m.State() != StateTerminal || quit == nil {
		t.Fatalf("successful save should quit, state=%s", m.State())
	}

	out, err := outcomeOf(m)
	if err != nil || !out.Saved {
		t.Fatalf("unexpected outcome %+v, %v", out, err)
	}
	if out.Result.Items != 1 || out.Result.Path != path {
		t.Fatalf("unexpected result %+v", out.Result)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(data), "GitHub") || !strings.Contains(string(data), "Email") {
		t.Fatalf("export content not filtered: %s", data)
	}
}

func TestSave_FailureStaysLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	m := loadedModel(t, testutil.SampleData())
	m = typeText(t, m, path)

	m, cmd := press(t, m, tea.KeyEnter)
	m, quit := update(t, m, cmd())
	if quit != nil || m.State() != StateLoaded {
		t.Fatalf("failed save must keep browsing, state=%s", m.State())
	}
	if m.ErrorText() == "" || !strings.Contains(m.View(), m.ErrorText()) {
		t.Fatalf("save error should be shown")
	}
	if m.input.Value() != path {
		t.Fatalf("path should be kept for retry, got %q", m.input.Value())
	}
	if _, cmd := press(t, m, tea.KeyEnter); cmd == nil {
		t.Fatalf("retry should be possible")
	}
}

func TestKeysIgnoredWhileSaving(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m = typeText(t, m, filepath.Join(t.TempDir(), "out.json"))
	m, _ = press(t, m, tea.KeyEnter)
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil {
		t.Fatalf("second enter while saving must be ignored")
	}
	m, _ = press(t, m, tea.KeyDown)
	if m.Cursor() != 0 {
		t.Fatalf("navigation while saving must be ignored")
	}
}

func TestCopy_SelectedID(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	var copied string
	m.copy = func(s string) error { copied = s; return nil }

	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyCtrlY)
	if copied != "V" {
		t.Fatalf("copied %q, want V", copied)
	}
	if !strings.Contains(m.View(), "Copied V") {
		t.Fatalf("view should confirm the copy")
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m, _ = press(t, m, tea.KeyCtrlY)
	if !strings.Contains(m.ErrorText(), "no clipboard") {
		t.Fatalf("copy failure not reported: %q", m.ErrorText())
	}
}

func TestQuit_CancelsWithoutOutcome(t *testing.T) {
	m := loadedModel(t, testutil.SampleData())
	m, cmd := press(t, m, tea.KeyCtrlC)
	if m.State() != StateTerminal || cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
	out, err := outcomeOf(m)
	if err != nil || out.Saved {
		t.Fatalf("cancel should yield empty outcome, got %+v, %v", out, err)
	}
}
