package models

import (
	"time"
)

// TaskStatus is a workflow state referenced by tasks. The slug is the
// URL-safe identifier used in task payloads and filters; the name is
// for display only.
type TaskStatus struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Tasks []Task `gorm:"foreignKey:TaskStatusID" json:"-"`
}
