// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements the pkgcenter screens as Bubble Tea models.
package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// RenderFooter renders the help text of bindings as one bordered line.
func RenderFooter(styleConfig *styles.Styles, width int, bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))

	for _, binding := range bindings {
		if !binding.Enabled() {
			continue
		}

		help := binding.Help()
		parts = append(parts, styleConfig.Keybinding(help.Key, help.Desc))
	}

	style := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color("240"))

	if width > 0 {
		style = style.Width(width)
	}

	return style.Render(strings.Join(parts, "   "))
}

// RenderHeader renders "pkgcenter » location" with a status on the right.
func RenderHeader(styleConfig *styles.Styles, width int, location, status string) string {
	left := lipgloss.NewStyle().
		Bold(true).
		Foreground(styleConfig.Primary).
		Render("pkgcenter » " + location)
	right := styleConfig.WarningText.Render(status)

	spacer := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if spacer < 1 {
		spacer = 1
	}

	style := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))

	if width > 0 {
		style = style.Width(width)
	}

	return style.Render(left + strings.Repeat(" ", spacer) + right)
}
