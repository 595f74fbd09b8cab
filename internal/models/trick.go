package models

import (
	"time"
)

// Trick levels accepted on creation.
const (
	TrickLevelBeginner = "beginner"
	TrickLevelAdvanced = "advanced"
)

// DefaultAvatarURL is the placeholder shown when neither the author's
// profile nor their user record carries an avatar.
const DefaultAvatarURL = "https://i.etsystatic.com/21799038/r/il/3e4e5d/2722919832/il_fullxfull.2722919832_1rth.jpg"

// AnonymousAuthorName is the display fallback when the author has no
// profile name and no account name.
const AnonymousAuthorName = "Anonymous"

// Trick is a forum post describing a BMX trick.
type Trick struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `json:"video_url"`
	Level       string    `gorm:"type:varchar(16);not null;default:'beginner';index" json:"level"`
	Hashtags    []string  `gorm:"serializer:json" json:"hashtags"`
	LikeCount   int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	// AuthorName and AuthorAvatar are SELECT aliases resolved through the
	// profile -> user -> placeholder fallback chain at query time.
	AuthorName   string `gorm:"->" json:"author_name"`
	AuthorAvatar string `gorm:"->" json:"author_avatar"`

	// LikerIDs carries the ids of every user who liked this trick so
	// clients can derive "liked by me" locally.
	LikerIDs []uint `gorm:"-" json:"liked_by"`
}

// Like records a single user's endorsement of a trick. The composite
// unique index enforces at most one row per (trick, user) pair; likes are
// hard-deleted so the constraint stays meaningful across re-likes.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TrickID   uint      `gorm:"not null;uniqueIndex:idx_trick_user" json:"trick_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_trick_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Trick Trick `gorm:"foreignKey:TrickID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// LikeResult is the refreshed trick after a toggle plus the caller's
// resulting like state. The Like row, the counter and the author's points
// moved as one atomic unit before the re-read, so the embedded trick
// reflects the committed state and carries the full liker list.
type LikeResult struct {
	Trick
	Liked        bool `json:"liked"`
	AuthorPoints int  `json:"author_points"`
}
