package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. The login identifier is the email,
// mirrored into Username so uniqueness on the username column gives us
// unique emails.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"-"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"not null" json:"name"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Patients []Patient `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
