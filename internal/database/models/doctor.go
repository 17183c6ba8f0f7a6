package models

import "time"

// Doctor is shared across the system and carries no owner; any
// authenticated user may manage doctors.
type Doctor struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"size:120;not null" json:"name"`
	Specialization string    `gorm:"size:120;not null" json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Doctor) TableName() string {
	return "doctors"
}
