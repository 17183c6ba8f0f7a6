package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/healthrec/healthcare-api/internal/database/models"
)

// MappingRepository defines the interface for patient-doctor mapping
// operations. List and delete are scoped to the owner of the referenced
// patient.
type MappingRepository interface {
	Create(mapping *models.PatientDoctorMapping) error
	ListByOwner(ownerID uint) ([]models.PatientDoctorMapping, error)
	ExistsByPatientAndDoctor(patientID, doctorID uint) (bool, error)
	ListDoctorsForPatient(patientID uint) ([]models.Doctor, error)
	DeleteByIDAndOwner(id, ownerID uint) error
}

type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new mapping repository instance
func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Create(mapping *models.PatientDoctorMapping) error {
	err := r.db.Create(mapping).Error
	if err != nil {
		// The unique (patient_id, doctor_id) index is the authority; a
		// racing insert lands here even after the service pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrMappingDuplicate
		}
		return err
	}
	return nil
}

func (r *mappingRepository) ListByOwner(ownerID uint) ([]models.PatientDoctorMapping, error) {
	var mappings []models.PatientDoctorMapping
	err := r.db.
		Joins("JOIN patients ON patients.id = patient_doctor_mappings.patient_id").
		Where("patients.owner_id = ?", ownerID).
		Preload("Patient").
		Preload("Doctor").
		Order("patient_doctor_mappings.created_at DESC").
		Find(&mappings).Error
	return mappings, err
}

func (r *mappingRepository) ExistsByPatientAndDoctor(patientID, doctorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PatientDoctorMapping{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&count).Error
	return count > 0, err
}

func (r *mappingRepository) ListDoctorsForPatient(patientID uint) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Model(&models.Doctor{}).
		Distinct("doctors.*").
		Joins("JOIN patient_doctor_mappings ON patient_doctor_mappings.doctor_id = doctors.id").
		Where("patient_doctor_mappings.patient_id = ?", patientID).
		Find(&doctors).Error
	return doctors, err
}

func (r *mappingRepository) DeleteByIDAndOwner(id, ownerID uint) error {
	result := r.db.
		Where("id = ? AND patient_id IN (?)",
			id,
			r.db.Model(&models.Patient{}).Select("id").Where("owner_id = ?", ownerID),
		).
		Delete(&models.PatientDoctorMapping{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMappingNotFound
	}
	return nil
}

// Repository errors
var (
	ErrMappingNotFound  = errors.New("mapping not found")
	ErrMappingDuplicate = errors.New("mapping already exists")
)
