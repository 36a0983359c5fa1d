package models

// Status is the closed set of task states. Values outside the set are
// rejected on create/update and render as an empty label everywhere else.
type Status int

const (
	StatusInProgress Status = 0
	StatusBlocked    Status = 1
	StatusDone       Status = 2
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusBlocked, StatusDone:
		return true
	default:
		return false
	}
}

// Label returns the human-readable label, or "" for unknown values.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusBlocked:
		return "Blocked"
	case StatusDone:
		return "Done"
	default:
		return ""
	}
}

type User struct {
	ID        int    `json:"id"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	// Assigned tasks are a relation only, looked up through Task.AssigneeID.
	// Serializing them here would reintroduce the User/Task JSON cycle.
}

type Task struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Status     Status `json:"status"`
	AssigneeID *int   `json:"assigneeId"`
	// Assignee is a query-time join projection, never written back.
	Assignee *User `json:"assignee"`
}

// PaginatedResult wraps one page of items with the count metadata the
// client needs to render a pager.
type PaginatedResult[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
