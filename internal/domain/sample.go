package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sample is the metadata record of an uploaded audio file. The file itself
// lives under the static dir and is served at URL.
type Sample struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL      string    `gorm:"uniqueIndex;not null;column:url" json:"url"`
	Filename string    `gorm:"not null;column:filename" json:"filename"`
	MimeType string    `gorm:"not null;column:mime_type" json:"type"`
	Label    string    `gorm:"not null;column:label" json:"label"`
	Group    *string   `gorm:"column:sample_group" json:"group"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Sample) TableName() string { return "sample" }
