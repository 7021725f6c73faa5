// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/toeirei/opexport/internal/i18n"
	"github.com/toeirei/opexport/internal/model"
)

// chromeLines is the number of lines the view uses around the entry list.
const chromeLines = 12

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("app.title")))
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")

	switch m.state {
	case StateUninitialized, StateLoading:
		b.WriteString(m.loadingView())
	case StateLoadFailed:
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(i18n.T("error.load")))
	default:
		b.WriteString(m.listView())
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		switch {
		case m.errMsg != "":
			b.WriteString(errorStyle.Render(m.errMsg))
		case m.status != "":
			b.WriteString(statusStyle.Render(m.status))
		case m.excluded.Len() > 0:
			b.WriteString(helpStyle.Render(i18n.T("status.excluded_count", m.excluded.Len())))
		}
	}
	return docStyle.Render(b.String())
}

func (m Model) loadingView() string {
	line := i18n.T("loading.message") + strings.Repeat(".", max(m.phase, 1))
	if done, total := m.opts.Progress.Snapshot(); total > 0 {
		line += "  " + i18n.T("loading.progress", done, total)
	}
	return loadingStyle.Render(line)
}

func (m Model) listView() string {
	if len(m.visible) == 0 {
		return helpStyle.Render(i18n.T("list.empty"))
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(i18n.T("list.position", m.cursor+1, len(m.visible))))
	b.WriteString("\n")

	start, end := m.window()
	if start > 0 {
		b.WriteString(helpStyle.Render(i18n.T("list.more_above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.row(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(m.visible) {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(i18n.T("list.more_below", len(m.visible)-end)))
	}
	return b.String()
}

// window returns the half-open range of visible entries that fits the
// terminal, keeping the cursor inside it.
func (m Model) window() (start, end int) {
	n := len(m.visible)
	rows := m.height - chromeLines
	if m.height <= 0 || rows >= n {
		return 0, n
	}
	rows = min(max(rows, 3), n)
	start = m.cursor - rows/2
	start = max(0, min(start, n-rows))
	return start, start + rows
}

func (m Model) row(i int) string {
	e := m.visible[i]
	excluded := m.excluded.IsExcluded(e)

	mark := includedMarkStyle.Render("✓")
	if excluded {
		mark = excludedMarkStyle.Render("x")
	}

	indent := strings.Repeat("  ", int(e.Key().Kind))
	text := indent + label(e)

	cursor := "  "
	style := itemStyle
	switch {
	case i == m.cursor:
		cursor = "> "
		style = selectedItemStyle
	case excluded:
		style = excludedItemStyle
	}
	return cursor + mark + " " + style.Render(text)
}

// label renders the kind tag and display name of an entry.
func label(e model.Entry) string {
	switch e := e.(type) {
	case model.AccountEntry:
		return fmt.Sprintf("(%s) %s", i18n.T("entry.account"), e.Account.Name)
	case model.VaultEntry:
		return fmt.Sprintf("(%s) %s", i18n.T("entry.vault"), e.Vault.Name)
	case model.ItemEntry:
		return fmt.Sprintf("(%s) %s", e.Item.CategoryUUID, e.Item.Overview.Title)
	}
	return model.Title(e)
}
