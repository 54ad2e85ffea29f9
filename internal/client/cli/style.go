package cli

import "github.com/charmbracelet/lipgloss"

// Terminal palette.
const (
	colorBlue   = "#89ddff"
	colorGreen  = "#acfab4"
	colorRed    = "#e61f44"
	colorYellow = "#ffcb6b"
	colorPurple = "#b9a3eb"
	colorGray   = "#8a8fa8"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorBlue))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow))
	idStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	reflectStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(colorPurple))
)

func printError(err error) {
	printlnFn(errorStyle.Render("error: " + err.Error()))
}
