package service_test

import (
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/healthrec/healthcare-api/internal/config"
	"github.com/healthrec/healthcare-api/internal/database/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  3600,
		RefreshTokenExpiration: 86400,
	}
}

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	if len(args) > 1 && args.Get(0) != nil {
		user.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// ==================== MOCK REFRESH TOKEN REPOSITORY ====================

// MockRefreshTokenRepository implements repository.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

// ==================== MOCK PATIENT REPOSITORY ====================

// MockPatientRepository implements repository.PatientRepository for testing
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(patient *models.Patient) error {
	args := m.Called(patient)
	if len(args) > 1 && args.Get(0) != nil {
		patient.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockPatientRepository) FindByIDAndOwner(id, ownerID uint) (*models.Patient, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) ListByOwner(ownerID uint) ([]models.Patient, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockPatientRepository) Update(patient *models.Patient) error {
	args := m.Called(patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPatientRepository) CountMappings(patientID uint) (int64, error) {
	args := m.Called(patientID)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK DOCTOR REPOSITORY ====================

// MockDoctorRepository implements repository.DoctorRepository for testing
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	if len(args) > 1 && args.Get(0) != nil {
		doctor.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockDoctorRepository) FindByID(id uint) (*models.Doctor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) List() ([]models.Doctor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDoctorRepository) CountMappings(doctorID uint) (int64, error) {
	args := m.Called(doctorID)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK MAPPING REPOSITORY ====================

// MockMappingRepository implements repository.MappingRepository for testing
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) Create(mapping *models.PatientDoctorMapping) error {
	args := m.Called(mapping)
	if len(args) > 1 && args.Get(0) != nil {
		mapping.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockMappingRepository) ListByOwner(ownerID uint) ([]models.PatientDoctorMapping, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PatientDoctorMapping), args.Error(1)
}

func (m *MockMappingRepository) ExistsByPatientAndDoctor(patientID, doctorID uint) (bool, error) {
	args := m.Called(patientID, doctorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMappingRepository) ListDoctorsForPatient(patientID uint) ([]models.Doctor, error) {
	args := m.Called(patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockMappingRepository) DeleteByIDAndOwner(id, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}
