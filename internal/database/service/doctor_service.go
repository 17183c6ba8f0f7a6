package service

import (
	"log/slog"

	"github.com/healthrec/healthcare-api/internal/database/models"
	"github.com/healthrec/healthcare-api/internal/database/repository"
)

// DoctorService defines the interface for doctor business logic. Doctors
// are shared across the system, so no ownership scoping applies.
type DoctorService interface {
	List() ([]models.Doctor, error)
	Get(id uint) (*models.Doctor, error)
	Create(input DoctorInput) (*models.Doctor, error)
	Update(id uint, input DoctorUpdate) (*models.Doctor, error)
	Delete(id uint) error
}

// DoctorInput carries the writable doctor fields for creation
type DoctorInput struct {
	Name           string
	Specialization string
}

// DoctorUpdate carries optional field updates; nil fields are left untouched
type DoctorUpdate struct {
	Name           *string
	Specialization *string
}

type doctorService struct {
	doctorRepo repository.DoctorRepository
	logger     *slog.Logger
}

// NewDoctorService creates a new doctor service instance
func NewDoctorService(doctorRepo repository.DoctorRepository, logger *slog.Logger) DoctorService {
	return &doctorService{
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

func (s *doctorService) List() ([]models.Doctor, error) {
	return s.doctorRepo.List()
}

func (s *doctorService) Get(id uint) (*models.Doctor, error) {
	return s.doctorRepo.FindByID(id)
}

func (s *doctorService) Create(input DoctorInput) (*models.Doctor, error) {
	doctor := &models.Doctor{
		Name:           input.Name,
		Specialization: input.Specialization,
	}

	if err := s.doctorRepo.Create(doctor); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to create doctor", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [DoctorService] Doctor created", "doctor_id", doctor.ID)
	return doctor, nil
}

func (s *doctorService) Update(id uint, input DoctorUpdate) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}

	if err := s.doctorRepo.Update(doctor); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to update doctor", "error", err, "doctor_id", id)
		return nil, err
	}

	s.logger.Info("✅ [DoctorService] Doctor updated", "doctor_id", id)
	return doctor, nil
}

func (s *doctorService) Delete(id uint) error {
	if _, err := s.doctorRepo.FindByID(id); err != nil {
		return err
	}

	// Pre-check dependent mappings for the friendly error; the RESTRICT
	// constraint still backs the check against a racing insert.
	count, err := s.doctorRepo.CountMappings(id)
	if err != nil {
		s.logger.Error("❌ [DoctorService] Failed to count mappings", "error", err, "doctor_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("⚠️ [DoctorService] Delete blocked by mappings", "doctor_id", id, "mappings", count)
		return repository.ErrDoctorProtected
	}

	if err := s.doctorRepo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("✅ [DoctorService] Doctor deleted", "doctor_id", id)
	return nil
}
