package models

import "time"

// PatientDoctorMapping is the join entity assigning one doctor to one
// patient. The (patient_id, doctor_id) pair is unique, and the foreign keys
// are RESTRICT: a mapping blocks deletion of either side.
type PatientDoctorMapping struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PatientID uint      `gorm:"not null;uniqueIndex:uniq_patient_doctor" json:"patient_id"`
	DoctorID  uint      `gorm:"not null;uniqueIndex:uniq_patient_doctor" json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`

	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"patient"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"doctor"`
}

// TableName overrides the table name
func (PatientDoctorMapping) TableName() string {
	return "patient_doctor_mappings"
}
