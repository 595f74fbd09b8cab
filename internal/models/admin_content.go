package models

import "time"

// AdminContent types.
const (
	ContentTypeGuide    = "guide"
	ContentTypeNews     = "news"
	ContentTypeTutorial = "tutorial"
)

// AdminContent is a moderator-authored guide, news or tutorial entry,
// independent of the trick forum.
type AdminContent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Body        string    `gorm:"column:content;type:text;not null" json:"content"`
	Type        string    `gorm:"type:varchar(16);not null;default:'guide'" json:"type"`
	CreatedBy   *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName keeps the original table naming.
func (AdminContent) TableName() string {
	return "admin_content"
}
