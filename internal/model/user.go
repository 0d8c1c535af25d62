package model

import "time"

// User represents a registered member of the build sharing site.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Photo        string    `json:"photo,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Builds []Build `json:"builds,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
