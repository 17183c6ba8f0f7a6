package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/healthrec/healthcare-api/internal/database/models"
)

// PatientRepository defines the interface for patient data operations.
// Read and delete paths take the owner's user ID so ownership scoping
// cannot be forgotten at a call site.
type PatientRepository interface {
	Create(patient *models.Patient) error
	FindByIDAndOwner(id, ownerID uint) (*models.Patient, error)
	ListByOwner(ownerID uint) ([]models.Patient, error)
	Update(patient *models.Patient) error
	Delete(id uint) error
	CountMappings(patientID uint) (int64, error)
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository instance
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

func (r *patientRepository) FindByIDAndOwner(id, ownerID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ListByOwner(ownerID uint) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(patient *models.Patient) error {
	result := r.db.Save(patient)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *patientRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Patient{}, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrPatientProtected
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *patientRepository) CountMappings(patientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PatientDoctorMapping{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}

// Repository errors
var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrPatientProtected = errors.New("patient has associated mappings")
)
