package service

import (
	"errors"
	"log/slog"

	"github.com/healthrec/healthcare-api/internal/database/models"
	"github.com/healthrec/healthcare-api/internal/database/repository"
)

// PatientService defines the interface for patient business logic. Every
// operation is scoped to the requesting user; a patient owned by someone
// else behaves exactly like one that does not exist.
type PatientService interface {
	List(ownerID uint) ([]models.Patient, error)
	Get(ownerID, id uint) (*models.Patient, error)
	Create(ownerID uint, input PatientInput) (*models.Patient, error)
	Update(ownerID, id uint, input PatientUpdate) (*models.Patient, error)
	Delete(ownerID, id uint) error
}

// PatientInput carries the writable patient fields for creation
type PatientInput struct {
	Name    string
	Age     int
	Gender  string
	Address string
}

// PatientUpdate carries optional field updates; nil fields are left untouched
type PatientUpdate struct {
	Name    *string
	Age     *int
	Gender  *string
	Address *string
}

type patientService struct {
	patientRepo repository.PatientRepository
	logger      *slog.Logger
}

// NewPatientService creates a new patient service instance
func NewPatientService(patientRepo repository.PatientRepository, logger *slog.Logger) PatientService {
	return &patientService{
		patientRepo: patientRepo,
		logger:      logger,
	}
}

func (s *patientService) List(ownerID uint) ([]models.Patient, error) {
	return s.patientRepo.ListByOwner(ownerID)
}

func (s *patientService) Get(ownerID, id uint) (*models.Patient, error) {
	return s.patientRepo.FindByIDAndOwner(id, ownerID)
}

func (s *patientService) Create(ownerID uint, input PatientInput) (*models.Patient, error) {
	if err := validateGender(input.Gender); err != nil {
		return nil, err
	}
	if input.Age < 0 {
		return nil, ErrInvalidAge
	}

	patient := &models.Patient{
		OwnerID: ownerID,
		Name:    input.Name,
		Age:     input.Age,
		Gender:  input.Gender,
		Address: input.Address,
	}

	if err := s.patientRepo.Create(patient); err != nil {
		s.logger.Error("❌ [PatientService] Failed to create patient", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PatientService] Patient created", "patient_id", patient.ID, "owner_id", ownerID)
	return patient, nil
}

func (s *patientService) Update(ownerID, id uint, input PatientUpdate) (*models.Patient, error) {
	patient, err := s.patientRepo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Age != nil {
		if *input.Age < 0 {
			return nil, ErrInvalidAge
		}
		patient.Age = *input.Age
	}
	if input.Gender != nil {
		if err := validateGender(*input.Gender); err != nil {
			return nil, err
		}
		patient.Gender = *input.Gender
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}

	if err := s.patientRepo.Update(patient); err != nil {
		s.logger.Error("❌ [PatientService] Failed to update patient", "error", err, "patient_id", id)
		return nil, err
	}

	s.logger.Info("✅ [PatientService] Patient updated", "patient_id", id, "owner_id", ownerID)
	return patient, nil
}

func (s *patientService) Delete(ownerID, id uint) error {
	if _, err := s.patientRepo.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}

	// Pre-check dependent mappings for the friendly error; the RESTRICT
	// constraint still backs the check against a racing insert.
	count, err := s.patientRepo.CountMappings(id)
	if err != nil {
		s.logger.Error("❌ [PatientService] Failed to count mappings", "error", err, "patient_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("⚠️ [PatientService] Delete blocked by mappings", "patient_id", id, "mappings", count)
		return repository.ErrPatientProtected
	}

	if err := s.patientRepo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("✅ [PatientService] Patient deleted", "patient_id", id, "owner_id", ownerID)
	return nil
}

func validateGender(gender string) error {
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	default:
		return ErrInvalidGender
	}
}

// Service errors
var (
	ErrInvalidGender = errors.New("gender must be one of: male, female, other")
	ErrInvalidAge    = errors.New("age must be a non-negative integer")
)
