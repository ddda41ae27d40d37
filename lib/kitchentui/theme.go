// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the live kitchen viewer. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	ShelfHot      lipgloss.Color
	ShelfCold     lipgloss.Color
	ShelfFrozen   lipgloss.Color
	ShelfOverflow lipgloss.Color

	BarFilled lipgloss.Color
	BarEmpty  lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	LogInfo  lipgloss.Color
	LogWarn  lipgloss.Color
	LogError lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	ShelfHot:      lipgloss.Color("196"), // red
	ShelfCold:     lipgloss.Color("75"),  // blue
	ShelfFrozen:   lipgloss.Color("51"),  // cyan
	ShelfOverflow: lipgloss.Color("208"), // orange

	BarFilled: lipgloss.Color("114"), // green
	BarEmpty:  lipgloss.Color("238"), // dim gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	LogInfo:  lipgloss.Color("114"),
	LogWarn:  lipgloss.Color("220"),
	LogError: lipgloss.Color("196"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
}

// ShelfColor returns the theme color for a shelf key, or NormalText
// for an unrecognized key.
func (theme Theme) ShelfColor(key string) lipgloss.Color {
	switch key {
	case "hot":
		return theme.ShelfHot
	case "cold":
		return theme.ShelfCold
	case "frozen":
		return theme.ShelfFrozen
	case "overflow":
		return theme.ShelfOverflow
	default:
		return theme.NormalText
	}
}

// LogLevelColor returns the theme color for a log level name.
func (theme Theme) LogLevelColor(level string) lipgloss.Color {
	switch level {
	case "WARN":
		return theme.LogWarn
	case "ERROR":
		return theme.LogError
	default:
		return theme.LogInfo
	}
}
