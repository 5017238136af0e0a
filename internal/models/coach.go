package models

import (
	"time"

	"github.com/google/uuid"
)

type Coach struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ExperienceYears int       `gorm:"not null" json:"experience_years"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	ProfileImageURL *string   `gorm:"type:varchar(2048)" json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CoachLinkSkill rows are replaced wholesale on every coach skill update,
// never diffed incrementally.
type CoachLinkSkill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CoachID   uuid.UUID `gorm:"type:uuid;not null;index" json:"coach_id"`
	SkillID   uuid.UUID `gorm:"type:uuid;not null;index" json:"skill_id"`
	CreatedAt time.Time `json:"created_at"`

	Coach Coach `gorm:"foreignKey:CoachID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"-"`
}
