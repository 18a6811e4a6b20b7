package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	FirstName    string    `gorm:"type:varchar(255)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(255)" json:"lastName"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	AssignedTasks []Task `gorm:"foreignKey:AssigneeID" json:"-"`
}
