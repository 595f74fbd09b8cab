package models

import "time"

// Ticket is a user-filed report against a trick post.
type Ticket struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TrickID    uint      `gorm:"not null;index" json:"trick_id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`

	Trick    Trick `gorm:"foreignKey:TrickID;constraint:OnDelete:CASCADE" json:"-"`
	Reporter User  `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
}
