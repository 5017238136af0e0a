package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // owning coach's user id
	SkillID         uuid.UUID `gorm:"type:uuid;not null" json:"skill_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	StartAt         string    `gorm:"type:varchar(40);not null" json:"start_at"`
	EndAt           string    `gorm:"type:varchar(40);not null" json:"end_at"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`
	MeetingURL      string    `gorm:"type:varchar(2048);not null" json:"meeting_url"`
	Price           int       `gorm:"not null;default:0" json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"-"`
}

// CourseBooking is soft-cancelled: CancelledAt set, row never deleted.
// ACTIVE (CancelledAt nil) -> CANCELLED is one-way.
type CourseBooking struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	BookingAt   time.Time  `gorm:"not null" json:"booking_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
