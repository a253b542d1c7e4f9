// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/subkitapp/subkit/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9EF5")
	// SuccessColor indicates successful operations and the all-clear state.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings and medium risk.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors and high risk.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatRisk colors a risk level label.
func FormatRisk(risk model.RiskLevel) string {
	switch risk {
	case model.RiskHigh:
		return ErrorStyle.Render(string(risk))
	case model.RiskMedium:
		return WarningStyle.Render(string(risk))
	default:
		return SuccessStyle.Render(string(risk))
	}
}

// FormatDDay renders a days-until value the way payment apps do:
// D-DAY for today, D-3 for three days out.
func FormatDDay(days int) string {
	if days == 0 {
		return BoldStyle.Render("D-DAY")
	}
	return fmt.Sprintf("D-%d", days)
}

// FormatKRW renders an amount in won with thousands separators.
func FormatKRW(amount float64) string {
	whole := int64(amount + 0.5)
	s := fmt.Sprintf("%d", whole)
	if whole < 0 {
		s = fmt.Sprintf("%d", -whole)
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if whole < 0 {
		return "-₩" + string(out)
	}
	return "₩" + string(out)
}
