package ui

import (
	"sort"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...)

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}

// ErrorRows orders an ErrorMap by FieldName for display.
func ErrorRows(errs form.ErrorMap) [][]string {
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rows := make([][]string, len(paths))
	for i, path := range paths {
		rows[i] = []string{path, errs[path]}
	}
	return rows
}

func RenderErrors(errs form.ErrorMap) string {
	return RenderTable([]string{"FIELD", "ERROR"}, ErrorRows(errs))
}
