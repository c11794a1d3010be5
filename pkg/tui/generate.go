package tui

import (
	"fmt"

	"github.com/Hyunwoo0815/bus2/pkg/generator"

	"github.com/charmbracelet/huh"
)

// RunGenerateTUI lets the user pick origin terminals and generates their pages
func RunGenerateTUI(s *Session) error {
	origins, err := generator.Origins(s.Config.DataDir)
	if err != nil {
		return err
	}
	if len(origins) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No schedule files found in %s!", s.Config.DataDir)))
		return nil
	}

	var options []huh.Option[string]
	for _, o := range origins {
		options = append(options, huh.NewOption(o, o).Selected(true))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("출발 터미널 선택").
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(options...).
				Value(&selected).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme(s.Config))

	if err := form.Run(); err != nil {
		return err
	}

	if len(selected) == 0 {
		fmt.Println(errorStyle.Render("No terminals selected!"))
		return nil
	}

	return s.Actions.Generate(selected)
}
