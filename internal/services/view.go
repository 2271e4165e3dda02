package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/adanyl0v/go-tasklist/internal/models"
)

const displayDateLayout = "Jan 2, 2006"

// ComputeView filters tasks by the given tag and orders them for display:
// incomplete before completed, then higher priority first, then earlier
// date first. The sort is stable and the input is never modified. An
// unknown filter shows everything.
func ComputeView(tasks []models.Task, filter models.Filter) []models.Task {
	view := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case models.FilterPending:
			if t.Completed {
				continue
			}
		case models.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		view = append(view, t)
	}

	slices.SortStableFunc(view, compareForDisplay)
	return view
}

func compareForDisplay(a, b models.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Priority.Weight(), a.Priority.Weight()); c != 0 {
		return c
	}
	// YYYY-MM-DD sorts lexically in calendar order.
	return strings.Compare(a.Date, b.Date)
}

func PriorityLabel(p models.Priority) string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatDate turns 2024-01-05 into "Jan 5, 2024".
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format(displayDateLayout)
}
