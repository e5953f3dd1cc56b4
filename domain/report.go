package domain

// AssigneeActivity describes how many tasks a single user carries for a
// given reporting query.
type AssigneeActivity struct {
	User      User `json:"user"`
	TaskCount int  `json:"task_count"`
}

// PeakBucket names the day-of-month or month that saw the most activity
// for a reporting query, together with the task count observed there.
type PeakBucket struct {
	Unit      string `json:"unit"`
	Label     string `json:"label"`
	TaskCount int    `json:"task_count"`
}
