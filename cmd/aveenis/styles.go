package main

import (
	"github.com/charmbracelet/lipgloss"

	"aveenis/internal/prefs"
)

// theme bundles the style palette for one UI theme.
type theme struct {
	name string

	headerBar  lipgloss.Style
	footerBar  lipgloss.Style
	colHeader  lipgloss.Style
	sortedCol  lipgloss.Style
	ticker     lipgloss.Style
	tickerHl   lipgloss.Style
	cell       lipgloss.Style
	cellHl     lipgloss.Style
	dim        lipgloss.Style
	toast      lipgloss.Style
	toastError lipgloss.Style
	chartLine  lipgloss.Style
	title      lipgloss.Style
}

func lightTheme() *theme {
	return &theme{
		name:       prefs.ThemeLight,
		headerBar:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
		footerBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("245")),
		colHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240")),
		sortedCol:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		ticker:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("22")),
		tickerHl:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
		cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		cellHl:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		toast:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		toastError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
		chartLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("22")),
	}
}

func darkTheme() *theme {
	return &theme{
		name:       prefs.ThemeDark,
		headerBar:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		footerBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		colHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		sortedCol:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		ticker:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		tickerHl:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		cellHl:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		toast:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		toastError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")),
		chartLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
	}
}

// themeByName returns the palette for a stored theme name.
func themeByName(name string) *theme {
	if name == prefs.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}
