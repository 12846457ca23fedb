package domain

import "time"

// DemandPriority ranks general demands for triage.
type DemandPriority string

const (
	PriorityLow    DemandPriority = "low"
	PriorityMedium DemandPriority = "medium"
	PriorityHigh   DemandPriority = "high"
	PriorityUrgent DemandPriority = "urgent"
)

// DemandStatus is the explicit status enum of the general pipeline, kept in sync
// with column stages at move time.
type DemandStatus string

const (
	StatusBacklog    DemandStatus = "backlog"
	StatusTodo       DemandStatus = "todo"
	StatusInProgress DemandStatus = "in_progress"
	StatusInReview   DemandStatus = "in_review"
	StatusDone       DemandStatus = "done"
)

// SLAStatus is derived from the due date at read time, never stored.
type SLAStatus string

const (
	SLAOnTime  SLAStatus = "on_time"
	SLAWarning SLAStatus = "warning"
	SLAOverdue SLAStatus = "overdue"
)

// Demand is a work item on the general pipeline.
type Demand struct {
	DemandID    string         `json:"demandID" db:"demand_id"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description" db:"description"`
	Priority    DemandPriority `json:"priority" db:"priority"`
	Status      DemandStatus   `json:"status" db:"status"`
	DemandType  *string        `json:"demandType" db:"demand_type"`
	ColumnID    *string        `json:"columnID" db:"column_id"`
	Position    int            `json:"position" db:"position"`
	ClientID    *string        `json:"clientID" db:"client_id"`
	AssigneeID  *string        `json:"assigneeID" db:"assignee_id"`
	CreatedBy   *string        `json:"createdBy" db:"created_by"`
	SLAHours    *int           `json:"slaHours" db:"sla_hours"`
	DueDate     *time.Time     `json:"dueDate" db:"due_date"`
	CompletedAt *time.Time     `json:"completedAt" db:"completed_at"`
	Timestamps

	// Derived/enriched on reads.
	SLA             SLAStatus `json:"slaStatus,omitempty" db:"-"`
	ClientName      *string   `json:"clientName,omitempty" db:"-"`
	AssigneeName    *string   `json:"assigneeName,omitempty" db:"-"`
	InProgressHours *float64  `json:"inProgressHours,omitempty" db:"-"`
}

// DemandFilter narrows demand listings. Nil fields are ignored. Scope, when set,
// restricts results to the caller's visible clients and own assignments.
type DemandFilter struct {
	ClientID   *string
	AssigneeID *string
	Status     *DemandStatus
	Priority   *DemandPriority
	Scope      *Scope
}

// Board is a column-grouped snapshot of one pipeline.
type Board struct {
	Columns []BoardColumn       `json:"columns"`
	Demands map[string][]Demand `json:"demands"`
}
