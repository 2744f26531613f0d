// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stats renders account usage summaries for terminal display.
package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/api"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")) // White

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")) // White

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// =============================================================================
// RENDERING
// =============================================================================

// Render formats the usage summary as styled terminal output.
func Render(s *api.UsageStats) string {
	var b strings.Builder

	separator := strings.Repeat("=", 41)
	b.WriteString(titleStyle.Render("Orion Usage"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(separator))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Account"))
	b.WriteString("\n")
	writeRow(&b, "Sessions", fmt.Sprintf("%d", s.TotalSessions))
	writeRow(&b, "Messages", fmt.Sprintf("%d", s.TotalMessages))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Today"))
	b.WriteString("\n")
	writeRow(&b, "Tokens", FormatTokens(s.TodayTokens))
	writeRow(&b, "Cost", FormatCost(s.TodayCost))

	if len(s.ModelBreakdown) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("By Model"))
		b.WriteString("\n")
		for _, row := range s.ModelBreakdown {
			writeRow(&b, row.Model, fmt.Sprintf("%s  %s",
				FormatTokens(row.Tokens), FormatCost(row.Cost)))
		}
	}

	return b.String()
}

// RenderModels formats the selectable model list, marking the default.
func RenderModels(models []api.ModelInfo, def string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Models"))
	b.WriteString("\n\n")
	for _, m := range models {
		marker := "  "
		if m.Key == def {
			marker = "* "
		}
		b.WriteString(valueStyle.Render(marker + m.Key))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s ($%.4f/1k)", m.Name, m.CostPer1K)))
		b.WriteString("\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

// FormatTokens renders a token count with a thousands-friendly unit.
func FormatTokens(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 10_000 {
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatCost renders a dollar amount, keeping sub-cent precision visible.
func FormatCost(c float64) string {
	if c > 0 && c < 0.01 {
		return fmt.Sprintf("$%.4f", c)
	}
	return fmt.Sprintf("$%.2f", c)
}
