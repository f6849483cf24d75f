package model

import "time"

// User represents an account that owns tasks.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Tasks []Task `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
