package domain

import "time"

// ColumnStage is the immutable semantic tag of a board column. All completion,
// SLA and payment logic keys off the stage, never off the human-editable name.
type ColumnStage string

const (
	StageIntake     ColumnStage = "intake"
	StageInProgress ColumnStage = "in_progress"
	StageReview     ColumnStage = "review"
	StageDone       ColumnStage = "done"
	StageOther      ColumnStage = "other"
)

// BoardColumn is a kanban column on one of the two pipelines. IsDefault protects
// the seeded column set from deletion. Stage is fixed at creation time.
type BoardColumn struct {
	ColumnID  string      `json:"columnID" db:"column_id"`
	Name      string      `json:"name" db:"name"`
	Stage     ColumnStage `json:"stage" db:"stage"`
	SortOrder int         `json:"sortOrder" db:"sort_order"`
	Color     string      `json:"color" db:"color"`
	IsDefault bool        `json:"isDefault" db:"is_default"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`

	// DemandsCount is enriched on reads, not stored.
	DemandsCount int `json:"demandsCount" db:"-"`
}

// HistoryEntry is an append-only audit record of a board move. Column names are
// captured as snapshot strings so later renames do not rewrite history; stages
// are snapshotted alongside for derived-duration queries.
type HistoryEntry struct {
	HistoryID  string       `json:"historyID" db:"history_id"`
	DemandID   string       `json:"demandID" db:"demand_id"`
	FromColumn *string      `json:"fromColumn" db:"from_column"`
	ToColumn   *string      `json:"toColumn" db:"to_column"`
	FromStage  *ColumnStage `json:"fromStage" db:"from_stage"`
	ToStage    *ColumnStage `json:"toStage" db:"to_stage"`
	ChangedBy  *string      `json:"changedBy" db:"changed_by"`
	Note       *string      `json:"note" db:"note"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
}

// Comment is a discussion entry attached to a work item on either pipeline.
type Comment struct {
	CommentID string    `json:"commentID" db:"comment_id"`
	DemandID  string    `json:"demandID" db:"demand_id"`
	UserID    *string   `json:"userID" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UserName is enriched on reads.
	UserName *string `json:"userName,omitempty" db:"-"`
}
