package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority is the priority of an extracted action item
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// CoercePriority maps arbitrary input onto the priority enum.
// Unrecognized values become medium.
func CoercePriority(raw string) TaskPriority {
	switch TaskPriority(raw) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(raw)
	default:
		return TaskPriorityMedium
	}
}

// TaskStatus is the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is one action item extracted from a meeting, linked to the meeting
// and, when the assignee matches a known participant, to a contact.
type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID       string       `gorm:"type:varchar(64);index;default:''" json:"org_id,omitempty"`
	MeetingID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"meeting_id"`
	ContactID   *uuid.UUID   `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	Title       string       `gorm:"type:varchar(80);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	AssignedTo  string       `gorm:"type:varchar(255);default:'Unassigned'" json:"assigned_to"`
	Priority    TaskPriority `gorm:"type:varchar(16);default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(16);default:'pending'" json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
