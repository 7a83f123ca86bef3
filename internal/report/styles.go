// Package report renders batch summaries, breakdowns and risk assessments
// for terminal display.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box      lipgloss.Style
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(SubtleColor),
		Success: lipgloss.NewStyle().Foreground(SuccessColor),
		Warning: lipgloss.NewStyle().Foreground(WarningColor),
		Error:   lipgloss.NewStyle().Foreground(ErrorColor),
		Info:    lipgloss.NewStyle().Foreground(InfoColor),
		Subtle:  lipgloss.NewStyle().Foreground(SubtleColor),
		Normal:  lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)

	s.Critical = lipgloss.NewStyle().
		Bold(true).
		Foreground(ErrorColor)
	s.High = lipgloss.NewStyle().
		Bold(true).
		Foreground(WarningColor)
	s.Medium = lipgloss.NewStyle().
		Foreground(InfoColor)
	s.Low = lipgloss.NewStyle().
		Foreground(SubtleColor)

	return s
}

// ForSeverity returns the style matching an anomaly severity.
func (s *Styles) ForSeverity(severity model.Severity) lipgloss.Style {
	switch severity {
	case model.SeverityCritical:
		return s.Critical
	case model.SeverityHigh:
		return s.High
	case model.SeverityMedium:
		return s.Medium
	case model.SeverityLow, model.SeverityInfo:
		return s.Low
	default:
		return s.Normal
	}
}
