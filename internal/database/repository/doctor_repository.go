package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/healthrec/healthcare-api/internal/database/models"
)

// DoctorRepository defines the interface for doctor data operations.
// Doctors are a shared pool, so no owner scoping applies.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	FindByID(id uint) (*models.Doctor, error)
	List() ([]models.Doctor, error)
	Update(doctor *models.Doctor) error
	Delete(id uint) error
	CountMappings(doctorID uint) (int64, error)
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository instance
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Order("created_at DESC").Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) Update(doctor *models.Doctor) error {
	result := r.db.Save(doctor)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *doctorRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Doctor{}, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrDoctorProtected
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *doctorRepository) CountMappings(doctorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PatientDoctorMapping{}).
		Where("doctor_id = ?", doctorID).
		Count(&count).Error
	return count, err
}

// Repository errors
var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrDoctorProtected = errors.New("doctor has associated mappings")
)
