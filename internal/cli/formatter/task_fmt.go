package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripplan/internal/domain"
)

const titleWidth = 40

// FormatTaskList renders tasks as a table inside a box. query, when set, is
// shown in the box title.
func FormatTaskList(tasks []domain.Task, query string) string {
	title := "Trip tasks"
	if q := strings.TrimSpace(query); q != "" {
		title = fmt.Sprintf("Trip tasks matching %q", q)
	}
	if len(tasks) == 0 {
		return RenderBox(title, Dim("No tasks."))
	}

	headers := []string{"ID", "", "DONE", "TITLE", "CATEGORY", "DATE", "BUDGET"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		titleText := Truncate(t.Title, titleWidth)
		if t.Done {
			titleText = Dim(titleText)
		} else {
			titleText = Bold(titleText)
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(t.ID)),
			ImportantMarker(t.Important),
			DoneBox(t.Done),
			titleText,
			CategoryBadge(t.Category),
			t.Date,
			FormatBudget(t.Budget),
		})
	}
	table := RenderTable(headers, rows, 0, 6)
	footer := Dim(fmt.Sprintf("%d task(s)", len(tasks)))
	return RenderBox(title, table+"\n"+footer)
}

// FormatTaskDetail renders every field of one task.
func FormatTaskDetail(t domain.Task) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title))
	if t.Important {
		b.WriteString(" " + ImportantMarker(true))
	}
	b.WriteString("\n" + CategoryBadge(t.Category) + "\n\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value)
	}
	field("ID", strconv.Itoa(t.ID))
	field("DATE", t.Date)
	field("BUDGET", FormatBudget(t.Budget))
	field("DONE", DoneBox(t.Done))
	if strings.TrimSpace(t.Notes) != "" {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(StyleFg.Render(t.Notes) + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
