package models

import (
	"time"

	"gorm.io/gorm"
)

// Riding level labels derived from a profile's point total.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelProfessional = "Professional"
)

// Point thresholds for riding levels.
const (
	IntermediatePoints = 20
	AdvancedPoints     = 50
	ProfessionalPoints = 100
)

// Profile is the one-to-one display extension of a User. Points and the
// banned flag mirror the owning User row; riding level and rating are
// derived from points on every read rather than stored.
type Profile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string         `json:"name"`
	Bio            string         `json:"bio"`
	FavoriteTricks string         `json:"favorite_tricks"`
	Points         int            `gorm:"not null;default:0" json:"points"`
	AvatarURL      string         `json:"avatar_url"`
	TrickVideos    []string       `gorm:"serializer:json" json:"trick_videos"`
	Banned         bool           `gorm:"not null;default:false" json:"banned"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived fields, populated in AfterFind.
	RidingLevel string  `gorm:"-" json:"riding_level"`
	Rating      float64 `gorm:"-" json:"rating"`
	// Position is the leaderboard rank, computed only by ranked queries.
	Position int `gorm:"->" json:"position,omitempty"`

	// Email and Role are joined from the owning User for profile views.
	Email string   `gorm:"->" json:"email,omitempty"`
	Role  UserRole `gorm:"->" json:"role,omitempty"`
}

// AfterFind derives riding level and rating from the stored point total.
func (p *Profile) AfterFind(_ *gorm.DB) error {
	p.Derive()
	return nil
}

// Derive recomputes the fields that depend on Points.
func (p *Profile) Derive() {
	p.RidingLevel = RidingLevelForPoints(p.Points)
	p.Rating = RatingForPoints(p.Points)
	if p.TrickVideos == nil {
		p.TrickVideos = []string{}
	}
}

// RidingLevelForPoints maps a point total to its display tier.
func RidingLevelForPoints(points int) string {
	switch {
	case points >= ProfessionalPoints:
		return LevelProfessional
	case points >= AdvancedPoints:
		return LevelAdvanced
	case points >= IntermediatePoints:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// RatingForPoints maps a point total to a 0-5 star rating.
func RatingForPoints(points int) float64 {
	rating := float64(points / 10)
	if rating > 5 {
		return 5
	}
	return rating
}
