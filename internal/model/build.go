package model

import "time"

// Build represents a user-authored character configuration: the eight
// attribute stats, equipment, and where to find everything in-game.
type Build struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	StartingClass string    `json:"starting_class" gorm:"size:50"`
	Weapon        string    `json:"weapon" gorm:"size:100"`
	LocationName  string    `json:"location_name" gorm:"size:100"`
	LocationURL   string    `json:"location_url" gorm:"size:255"`
	ImageURL      string    `json:"image_url" gorm:"size:255"`
	VideoURL      string    `json:"video_url" gorm:"size:255"`
	Description   string    `json:"description" gorm:"type:text"`
	Vigor         int       `json:"vigor" gorm:"default:0"`
	Mind          int       `json:"mind" gorm:"default:0"`
	Endurance     int       `json:"endurance" gorm:"default:0"`
	Strength      int       `json:"strength" gorm:"default:0"`
	Dexterity     int       `json:"dexterity" gorm:"default:0"`
	Intelligence  int       `json:"intelligence" gorm:"default:0"`
	Faith         int       `json:"faith" gorm:"default:0"`
	Arcane        int       `json:"arcane" gorm:"default:0"`
	Difficulty    string    `json:"difficulty" gorm:"size:20"`
	ShowcaseItems []string  `json:"showcase_items,omitempty" gorm:"serializer:json;type:text"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
