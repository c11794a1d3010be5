package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Hyunwoo0815/bus2/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI(s *Session) error {
	for {
		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Site Base URL", "base_url"),
						huh.NewOption("Set Related Route Links", "related"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme(s.Config))

		if err := initialForm.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(s)
		case "base_url":
			err = runSetBaseURLTUI(s)
		case "related":
			err = runSetRelatedTUI(s)
		case "view":
			printConfig(s)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(s *Session) {
	cfg := s.Config
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- Current Configuration (%s) ---", s.ConfigPath)))
	fmt.Printf("Data Dir: %s\n", cfg.DataDir)
	fmt.Printf("Output Dir: %s\n", cfg.OutputDir)
	fmt.Printf("Route File: %s\n", cfg.RouteFile)
	fmt.Printf("Published Dates: %s\n", cfg.RegistryPath())
	fmt.Printf("Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("Site Name: %s\n", cfg.SiteName)
	fmt.Printf("Timezone: %s\n", cfg.Timezone)
	fmt.Printf("Related Links: %d\n", cfg.MaxRelatedLinks)
	fmt.Printf("RSS Items: %d\n", cfg.RSSItems)
	fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
	fmt.Println()
}

func save(s *Session, msg string) error {
	if err := config.Save(s.ConfigPath, s.Config); err != nil {
		return err
	}
	fmt.Println(accentStyle.Render("\n✅ " + msg + "\n"))
	return nil
}

func runSetBaseURLTUI(s *Session) error {
	input := s.Config.BaseURL

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Site Base URL").
				Description("Absolute URL the outputs directory is served from.").
				Value(&input).
				Validate(func(v string) error {
					u, err := url.Parse(v)
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("must be an absolute URL such as https://example.com/")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme(s.Config))

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(input, "/") {
		input += "/"
	}
	s.Config.BaseURL = input
	return save(s, fmt.Sprintf("Base URL changed to: %s", input))
}

func runSetRelatedTUI(s *Session) error {
	var selected int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How many related routes should each page link?").
				Options(
					huh.NewOption("None", 0),
					huh.NewOption("3", 3),
					huh.NewOption("5", 5),
					huh.NewOption("7 (default)", 7),
					huh.NewOption("10", 10),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme(s.Config))

	if err := form.Run(); err != nil {
		return err
	}

	s.Config.MaxRelatedLinks = selected
	return save(s, fmt.Sprintf("Related route links set to: %d", selected))
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(s *Session) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for bus2").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Highway Blue", colorBlock("33")), "33"),
					huh.NewOption(fmt.Sprintf("%s Express Green", colorBlock("42")), "42"),
					huh.NewOption(fmt.Sprintf("%s Sunset Orange", colorBlock("208")), "208"),
					huh.NewOption(fmt.Sprintf("%s Charm Purple", colorBlock("99")), "99"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme(s.Config))

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #1A4D8F").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetCustomTheme(defaultAccent))

		if err := hexForm.Run(); err != nil {
			return err
		}
		s.Config.AccentColor = hexInput
	} else {
		s.Config.AccentColor = input
	}

	return save(s, "The theme color is now saved.")
}
