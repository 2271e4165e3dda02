package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight orders priorities for display. Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Weight() > 0
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted
}

// Task is one entry of the list. The JSON keys are the snapshot format.
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Date      string   `json:"date"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
