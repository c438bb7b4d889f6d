package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/primalspirits/signup-page/pkg/signupform"
)

// Primal Gin palette
var (
	colorJuniper = lipgloss.Color("#4F7A5A")
	colorCitrus  = lipgloss.Color("#E8B04B")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7A8580")
)

var styles = struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorCitrus),
	Success: lipgloss.NewStyle().Bold(true).Foreground(colorJuniper),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorJuniper).
		Padding(0, 1),
}

var fieldLabels = map[signupform.Field]string{
	signupform.FieldFullName: "Full Name",
	signupform.FieldEmail:    "Email",
	signupform.FieldPhone:    "Phone Number",
}

func printThanks(w io.Writer) {
	fmt.Fprintln(w, styles.Box.Render(
		styles.Success.Render("Thank you for signing up!")+"\n"+"We'll be in touch soon."))
}

// printFormErrors lists field errors in form order, then any failure message
func printFormErrors(w io.Writer, state signupform.FormState) {
	for _, field := range []signupform.Field{signupform.FieldFullName, signupform.FieldEmail, signupform.FieldPhone} {
		if msg, ok := state.Errors[field]; ok {
			fmt.Fprintf(w, "%s %s\n", styles.Error.Render(fieldLabels[field]+":"), msg)
		}
	}
	if state.Failure != "" {
		fmt.Fprintln(w, styles.Error.Render(state.Failure))
	}
}
