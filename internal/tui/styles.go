// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorSpecial   = lipgloss.Color("208") // Orange
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
)

var (
	docStyle = lipgloss.NewStyle().Margin(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorSubtle)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Entry rows
	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	excludedItemStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	includedMarkStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	excludedMarkStyle = lipgloss.NewStyle().Foreground(colorError)

	statusStyle  = lipgloss.NewStyle().Foreground(colorSpecial)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	promptStyle  = lipgloss.NewStyle().Foreground(colorHighlight)
	loadingStyle = lipgloss.NewStyle().Foreground(colorSpecial)
)
