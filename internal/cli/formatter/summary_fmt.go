package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripplan/internal/service"
)

// FormatSummary renders totals and the per-category breakdown.
func FormatSummary(s service.TaskSummary) string {
	if s.Total == 0 {
		return RenderBox("Trip summary", Dim("No tasks yet. Add one with `tripplan add`."))
	}

	var b strings.Builder
	pct := float64(s.Done) / float64(s.Total)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("PROGRESS "), RenderProgress(pct, 20))
	fmt.Fprintf(&b, "%s  %d done of %d, %d important\n", StyleDim.Render("TASKS    "), s.Done, s.Total, s.Important)
	fmt.Fprintf(&b, "%s  %.2f total, %.2f still to spend\n\n", StyleDim.Render("BUDGET   "), s.Budget, s.Remaining)

	headers := []string{"CATEGORY", "TASKS", "DONE", "BUDGET"}
	rows := make([][]string, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		rows = append(rows, []string{
			CategoryBadge(c.Category),
			strconv.Itoa(c.Count),
			strconv.Itoa(c.Done),
			fmt.Sprintf("%.2f", c.Budget),
		})
	}
	b.WriteString(RenderTable(headers, rows, 1, 2, 3))
	return RenderBox("Trip summary", strings.TrimRight(b.String(), "\n"))
}
