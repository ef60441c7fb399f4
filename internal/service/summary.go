package service

import "github.com/alexanderramin/tripplan/internal/domain"

// summarize totals tasks per category group, in domain.Categories order.
// Groups without tasks are left out.
func summarize(tasks []domain.Task) TaskSummary {
	var sum TaskSummary
	groups := make(map[domain.Category]*CategorySummary, len(domain.Categories))
	for _, t := range tasks {
		sum.Total++
		sum.Budget += t.Budget
		if t.Done {
			sum.Done++
		} else {
			sum.Remaining += t.Budget
		}
		if t.Important {
			sum.Important++
		}

		g := t.Category.Group()
		cs, ok := groups[g]
		if !ok {
			cs = &CategorySummary{Category: g}
			groups[g] = cs
		}
		cs.Count++
		cs.Budget += t.Budget
		if t.Done {
			cs.Done++
		}
	}
	for _, c := range domain.Categories {
		if cs, ok := groups[c]; ok {
			sum.ByCategory = append(sum.ByCategory, *cs)
		}
	}
	return sum
}
