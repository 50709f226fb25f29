package tracking

import "sort"

// recentOpenLimit caps the dashboard "pending tasks" widget
const recentOpenLimit = 5

// RecentOpenTasks flattens per-project task groups into one list, keeps
// only tasks still requiring work (todo or in_progress), and returns the
// most recently active ones: sorted by updated_at (created_at when the
// task was never updated) descending, truncated to five.
func RecentOpenTasks(groups [][]Task) []Task {
	open := make([]Task, 0)
	for _, group := range groups {
		for i := range group {
			if group[i].Status.IsOpen() {
				open = append(open, group[i])
			}
		}
	}
	sort.SliceStable(open, func(a, b int) bool {
		return open[a].ActivityTime().After(open[b].ActivityTime())
	})
	if len(open) > recentOpenLimit {
		open = open[:recentOpenLimit]
	}
	return open
}
