// Package meetings filters and orders meeting lists for display.
package meetings

import (
	"sort"
	"strings"

	"github.com/eventsync/eventsync/internal/client/models"
)

// All disables a status or priority filter.
const All = "ALL"

const (
	SortByDate     = "date"
	SortByPriority = "priority"
	SortByStatus   = "status"
)

// Query describes what to show. Empty Status/Priority behave like All.
type Query struct {
	Search   string
	Status   string
	Priority string
	SortBy   string
}

// Apply filters ms by q and returns a sorted copy. ms is not modified.
func Apply(ms []models.Meeting, q Query) []models.Meeting {
	out := Filter(ms, q)
	Sort(out, q.SortBy)
	return out
}

// Filter keeps meetings whose title or team name contains Search
// (case-insensitive) and that match Status and Priority.
func Filter(ms []models.Meeting, q Query) []models.Meeting {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Meeting, 0, len(ms))
	for _, m := range ms {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Title), search) &&
			!strings.Contains(strings.ToLower(m.Team.Name), search) {
			continue
		}
		if !matches(q.Status, m.Status) || !matches(q.Priority, m.Priority) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || strings.EqualFold(want, All) || strings.EqualFold(want, got)
}

var priorityRank = map[string]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// Sort orders ms in place. Date puts unscheduled meetings last; priority
// is HIGH first; anything else sorts by ID.
func Sort(ms []models.Meeting, by string) {
	var less func(a, b models.Meeting) bool
	switch by {
	case SortByDate:
		less = func(a, b models.Meeting) bool {
			switch {
			case a.ScheduledAt == nil:
				return false
			case b.ScheduledAt == nil:
				return true
			default:
				return a.ScheduledAt.Before(*b.ScheduledAt)
			}
		}
	case SortByPriority:
		less = func(a, b models.Meeting) bool {
			return priorityRank[strings.ToUpper(a.Priority)] > priorityRank[strings.ToUpper(b.Priority)]
		}
	case SortByStatus:
		less = func(a, b models.Meeting) bool { return a.Status < b.Status }
	default:
		less = func(a, b models.Meeting) bool { return a.ID < b.ID }
	}
	sort.SliceStable(ms, func(i, j int) bool { return less(ms[i], ms[j]) })
}

// CountByStatus tallies meetings per status.
func CountByStatus(ms []models.Meeting) map[string]int {
	out := make(map[string]int)
	for _, m := range ms {
		out[m.Status]++
	}
	return out
}
