package models

import (
	"time"
)

type Label struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Tasks []Task `gorm:"many2many:task_labels" json:"-"`
}
