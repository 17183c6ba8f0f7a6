package models

import "time"

// Patient gender values accepted by the API.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient is a health record owned by exactly one user. All queries against
// patients are scoped by OwnerID; other users must not be able to observe
// whether a given patient exists.
type Patient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"-"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    string    `gorm:"size:10;not null" json:"gender"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}
