package tui

import (
	"github.com/Hyunwoo0815/bus2/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// defaultAccent is the bus2 blue used when no accent color is configured
const defaultAccent = "33"

var (
	// These act as fallbacks until GetTheme() sets the configured accent
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Actions are the site build steps the menu can trigger. The CLI provides
// them so the menu runs exactly what the commands run.
type Actions struct {
	Generate func(origins []string) error
	Hub      func() error
	Sitemap  func() error
}

// Session is the state shared by the interactive flows
type Session struct {
	Config     *config.AppConfig
	ConfigPath string
	Actions    Actions
}

// GetTheme constructs the UI theme from the configured accent color.
func GetTheme(cfg *config.AppConfig) *huh.Theme {
	baseColor := defaultAccent
	if cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so plain print statements also receive the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
// This is used for live-previewing styles before they are saved.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the main menu
func RunTUI(s *Session) error {
	var action string

	initialForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("무엇을 할까요?").
				Options(
					huh.NewOption("🚌 Generate timetable pages", "generate"),
					huh.NewOption("🏢 Build terminal hub pages", "hub"),
					huh.NewOption("🗺️ Build sitemap, RSS and robots.txt", "sitemap"),
					huh.NewOption("🚀 Build everything", "build"),
					huh.NewOption("📅 Export a route calendar", "export"),
					huh.NewOption("⚙️ Settings", "config"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme(s.Config))

	if err := initialForm.Run(); err != nil {
		return err
	}

	switch action {
	case "generate":
		return RunGenerateTUI(s)
	case "hub":
		return s.Actions.Hub()
	case "sitemap":
		return s.Actions.Sitemap()
	case "build":
		if err := s.Actions.Generate(nil); err != nil {
			return err
		}
		if err := s.Actions.Hub(); err != nil {
			return err
		}
		return s.Actions.Sitemap()
	case "export":
		return RunExportTUI(s)
	case "config":
		return RunConfigTUI(s)
	}

	return nil
}
