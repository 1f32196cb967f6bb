package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpContent renders the keybinding reference shown in the pager
func (m *Model) helpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("StaffDeck Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Global"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("1-8"), descStyle.Render("Switch section")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("?"), descStyle.Render("Show this help")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("L"), descStyle.Render("Log out")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("q"), descStyle.Render("Quit")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Lists"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Move the cursor")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("r"), descStyle.Render("Refresh the current list")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("n"), descStyle.Render("Open the create form (where available)")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("z"), descStyle.Render("Fold a department group (Employees)")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("enter"), descStyle.Render("Open run detail in the pager (Payroll)")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("a/x"), descStyle.Render("Approve / reject (Leave)")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("←/→, t  "), descStyle.Render("Change day / jump to today (Attendance)")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Forms"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("tab"), descStyle.Render("Next field")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ctrl+s"), descStyle.Render("Save")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("esc"), descStyle.Render("Clear a lookup, or cancel the form")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Lookups"))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  Type at least two characters and pause briefly; matching\n"))
	help.WriteString(descStyle.Render("  records appear below the box. Pick one with ↑/↓ and enter.\n"))
	help.WriteString(descStyle.Render("  Editing the text after picking clears the pick.\n"))

	return help.String()
}
