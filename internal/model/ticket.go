package model

import (
	"time"
)

type Ticket struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"not null;index:idx_tickets_column,priority:1" json:"workspace_id"`
	ParentID    *uint      `gorm:"index" json:"parent_id,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      Status     `gorm:"type:varchar(16);not null;index:idx_tickets_column,priority:2" json:"status"`
	Priority    Priority   `gorm:"type:varchar(16);not null;default:MEDIUM" json:"priority"`
	Position    int64      `gorm:"not null;index:idx_tickets_column,priority:3" json:"position"`
	DueDate     *time.Time `gorm:"index" json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AssigneeID  *uint      `json:"assignee_id,omitempty"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Labels []Label `gorm:"many2many:ticket_labels" json:"labels,omitempty"`
}

// ApplyStatus moves the ticket to status and keeps CompletedAt in step:
// entering DONE stamps it, leaving DONE clears it.
func (t *Ticket) ApplyStatus(status Status, now time.Time) {
	switch {
	case status == StatusDone && t.Status != StatusDone:
		completed := now
		t.CompletedAt = &completed
	case status != StatusDone && t.Status == StatusDone:
		t.CompletedAt = nil
	}
	t.Status = status
}
