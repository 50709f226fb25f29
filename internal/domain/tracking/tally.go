package tracking

// TaskTally holds per-status task counts for a dashboard widget
type TaskTally struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Testing    int `json:"testing"`
	Completed  int `json:"completed"`
}

// TimesheetTally holds per-status timesheet counts for a dashboard widget
type TimesheetTally struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// TallyTasks counts tasks per status. The result is independent of input
// ordering; an empty or nil slice yields all-zero counts.
func TallyTasks(tasks []Task) TaskTally {
	tally := TaskTally{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case TaskStatusTodo:
			tally.Todo++
		case TaskStatusInProgress:
			tally.InProgress++
		case TaskStatusTesting:
			tally.Testing++
		case TaskStatusCompleted:
			tally.Completed++
		}
	}
	return tally
}

// TallyTimesheets counts timesheets per approval status. An empty or nil
// slice yields all-zero counts.
func TallyTimesheets(timesheets []Timesheet) TimesheetTally {
	tally := TimesheetTally{Total: len(timesheets)}
	for i := range timesheets {
		switch timesheets[i].Status {
		case TimesheetStatusPending:
			tally.Pending++
		case TimesheetStatusApproved:
			tally.Approved++
		case TimesheetStatusRejected:
			tally.Rejected++
		}
	}
	return tally
}
