package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxCreatedShown = 20
	maxSkippedShown = 10
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Padding(1, 0, 0, 0)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// plainOutput is true when spinners should be replaced by progress lines
func plainOutput() bool {
	return plain || os.Getenv("CI") != ""
}

// progressLog is where pipeline progress lines go. With a spinner running
// they are dropped and the summary is printed afterwards instead.
func progressLog() io.Writer {
	if plainOutput() {
		return os.Stdout
	}
	return io.Discard
}

// runStep runs a blocking action behind a spinner, or directly in plain mode.
func runStep(title string, action func()) {
	if plainOutput() {
		fmt.Println(title)
		action()
		return
	}

	ran := false
	_ = spinner.New().
		Title(title).
		Action(func() {
			ran = true
			action()
		}).
		Run()

	// The spinner gives up without a terminal
	if !ran {
		action()
	}
}

// printList prints up to limit items and a count of the rest
func printList(items []string, limit int, style lipgloss.Style) {
	for i, item := range items {
		if i == limit {
			fmt.Println(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(items)-limit)))
			break
		}
		fmt.Println(style.Render("  • " + item))
	}
}
