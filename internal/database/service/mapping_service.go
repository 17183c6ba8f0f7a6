package service

import (
	"errors"
	"log/slog"

	"github.com/healthrec/healthcare-api/internal/database/models"
	"github.com/healthrec/healthcare-api/internal/database/repository"
)

// MappingService defines the interface for patient-doctor mapping business
// logic. A mapping is only ever visible to, and manageable by, the owner of
// its patient.
type MappingService interface {
	List(ownerID uint) ([]models.PatientDoctorMapping, error)
	Create(ownerID, patientID, doctorID uint) (*models.PatientDoctorMapping, error)
	DoctorsForPatient(ownerID, patientID uint) ([]models.Doctor, error)
	Delete(ownerID, mappingID uint) error
}

type mappingService struct {
	mappingRepo repository.MappingRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	logger      *slog.Logger
}

// NewMappingService creates a new mapping service instance
func NewMappingService(
	mappingRepo repository.MappingRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	logger *slog.Logger,
) MappingService {
	return &mappingService{
		mappingRepo: mappingRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		logger:      logger,
	}
}

func (s *mappingService) List(ownerID uint) ([]models.PatientDoctorMapping, error) {
	return s.mappingRepo.ListByOwner(ownerID)
}

func (s *mappingService) Create(ownerID, patientID, doctorID uint) (*models.PatientDoctorMapping, error) {
	// A patient that exists but belongs to someone else is reported the
	// same way as a nonexistent one: not yours.
	patient, err := s.patientRepo.FindByIDAndOwner(patientID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			s.logger.Warn("⚠️ [MappingService] Patient not owned by requester",
				"patient_id", patientID, "user_id", ownerID)
			return nil, ErrNotPatientOwner
		}
		return nil, err
	}

	doctor, err := s.doctorRepo.FindByID(doctorID)
	if err != nil {
		return nil, err
	}

	// Pre-check for the friendly message; the unique index remains the
	// authority under concurrent creates.
	exists, err := s.mappingRepo.ExistsByPatientAndDoctor(patientID, doctorID)
	if err != nil {
		s.logger.Error("❌ [MappingService] Failed to check for duplicate", "error", err)
		return nil, err
	}
	if exists {
		s.logger.Warn("⚠️ [MappingService] Duplicate mapping rejected",
			"patient_id", patientID, "doctor_id", doctorID)
		return nil, repository.ErrMappingDuplicate
	}

	mapping := &models.PatientDoctorMapping{
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	if err := s.mappingRepo.Create(mapping); err != nil {
		s.logger.Error("❌ [MappingService] Failed to create mapping", "error", err)
		return nil, err
	}

	mapping.Patient = *patient
	mapping.Doctor = *doctor

	s.logger.Info("✅ [MappingService] Mapping created",
		"mapping_id", mapping.ID, "patient_id", patientID, "doctor_id", doctorID)
	return mapping, nil
}

func (s *mappingService) DoctorsForPatient(ownerID, patientID uint) ([]models.Doctor, error) {
	if _, err := s.patientRepo.FindByIDAndOwner(patientID, ownerID); err != nil {
		return nil, err
	}
	return s.mappingRepo.ListDoctorsForPatient(patientID)
}

func (s *mappingService) Delete(ownerID, mappingID uint) error {
	if err := s.mappingRepo.DeleteByIDAndOwner(mappingID, ownerID); err != nil {
		return err
	}

	s.logger.Info("✅ [MappingService] Mapping deleted", "mapping_id", mappingID, "user_id", ownerID)
	return nil
}

// Service errors
var (
	ErrNotPatientOwner = errors.New("patient is not owned by the requesting user")
)
