package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/healthrec/healthcare-api/internal/database/models"
	"github.com/healthrec/healthcare-api/internal/database/repository"
)

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Patient{},
		&models.Doctor{},
		&models.PatientDoctorMapping{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		Username: email,
		Email:    email,
		Name:     "Test User",
		Password: "hashedpassword",
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

// ==================== USER REPOSITORY TESTS ====================

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)

	tests := []struct {
		name    string
		user    *models.User
		wantErr bool
	}{
		{
			name: "success",
			user: &models.User{
				Username: "test@example.com",
				Email:    "test@example.com",
				Name:     "Test User",
				Password: "hashedpassword",
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &models.User{
				Username: "test@example.com",
				Email:    "test@example.com",
				Name:     "Other User",
				Password: "hashedpassword",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)

	createTestUser(t, db, "find@example.com")

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{
			name:  "found",
			email: "find@example.com",
		},
		{
			name:    "not found",
			email:   "nonexistent@example.com",
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindByEmail(tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
			}
		})
	}
}

// ==================== PATIENT REPOSITORY TESTS ====================

func TestPatientRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPatientRepository(db)

	userA := createTestUser(t, db, "a@example.com")
	userB := createTestUser(t, db, "b@example.com")

	patient := &models.Patient{
		OwnerID: userA.ID,
		Name:    "Jane",
		Age:     30,
		Gender:  models.GenderFemale,
	}
	require.NoError(t, repo.Create(patient))

	// Owner sees the patient
	found, err := repo.FindByIDAndOwner(patient.ID, userA.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.Name)

	// Another user gets not-found, not a permission error
	found, err = repo.FindByIDAndOwner(patient.ID, userB.ID)
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
	assert.Nil(t, found)

	// Listing is scoped too
	patients, err := repo.ListByOwner(userB.ID)
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestPatientRepository_ListByOwner_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPatientRepository(db)

	user := createTestUser(t, db, "owner@example.com")

	older := &models.Patient{OwnerID: user.ID, Name: "Older", Age: 40, Gender: models.GenderMale}
	require.NoError(t, repo.Create(older))
	// Force distinct timestamps; sqlite stores them at full precision but
	// two inserts can land in the same instant.
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Patient{OwnerID: user.ID, Name: "Newer", Age: 20, Gender: models.GenderOther}
	require.NoError(t, repo.Create(newer))

	patients, err := repo.ListByOwner(user.ID)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Newer", patients[0].Name)
	assert.Equal(t, "Older", patients[1].Name)
}

func TestPatientRepository_CountMappings(t *testing.T) {
	db := setupTestDB(t)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	user := createTestUser(t, db, "owner@example.com")
	patient := &models.Patient{OwnerID: user.ID, Name: "Jane", Age: 30, Gender: models.GenderFemale}
	require.NoError(t, patientRepo.Create(patient))
	doctor := &models.Doctor{Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctorRepo.Create(doctor))

	count, err := patientRepo.CountMappings(patient.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
	}))

	count, err = patientRepo.CountMappings(patient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

// ==================== DOCTOR REPOSITORY TESTS ====================

func TestDoctorRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDoctorRepository(db)

	doctor := &models.Doctor{Name: "Strange", Specialization: "Neurosurgery"}
	require.NoError(t, repo.Create(doctor))
	assert.NotZero(t, doctor.ID)

	found, err := repo.FindByID(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Strange", found.Name)

	found.Specialization = "Cardiology"
	require.NoError(t, repo.Update(found))

	updated, err := repo.FindByID(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", updated.Specialization)

	require.NoError(t, repo.Delete(doctor.ID))

	_, err = repo.FindByID(doctor.ID)
	assert.ErrorIs(t, err, repository.ErrDoctorNotFound)

	assert.ErrorIs(t, repo.Delete(doctor.ID), repository.ErrDoctorNotFound)
}

// ==================== MAPPING REPOSITORY TESTS ====================

func TestMappingRepository_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	user := createTestUser(t, db, "owner@example.com")
	patient := &models.Patient{OwnerID: user.ID, Name: "Jane", Age: 30, Gender: models.GenderFemale}
	require.NoError(t, patientRepo.Create(patient))
	doctor := &models.Doctor{Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctorRepo.Create(doctor))

	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
	}))

	// Unique (patient_id, doctor_id) index rejects the second row
	err := mappingRepo.Create(&models.PatientDoctorMapping{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
	})
	assert.ErrorIs(t, err, repository.ErrMappingDuplicate)

	// Exactly one row exists afterward
	var count int64
	require.NoError(t, db.Model(&models.PatientDoctorMapping{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	exists, err := mappingRepo.ExistsByPatientAndDoctor(patient.ID, doctor.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMappingRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	userA := createTestUser(t, db, "a@example.com")
	userB := createTestUser(t, db, "b@example.com")

	patientA := &models.Patient{OwnerID: userA.ID, Name: "Jane", Age: 30, Gender: models.GenderFemale}
	require.NoError(t, patientRepo.Create(patientA))
	patientB := &models.Patient{OwnerID: userB.ID, Name: "John", Age: 40, Gender: models.GenderMale}
	require.NoError(t, patientRepo.Create(patientB))

	doctor := &models.Doctor{Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctorRepo.Create(doctor))

	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{PatientID: patientA.ID, DoctorID: doctor.ID}))
	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{PatientID: patientB.ID, DoctorID: doctor.ID}))

	mappings, err := mappingRepo.ListByOwner(userA.ID)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, patientA.ID, mappings[0].PatientID)

	// Patient and doctor details are inlined
	assert.Equal(t, "Jane", mappings[0].Patient.Name)
	assert.Equal(t, "House", mappings[0].Doctor.Name)
}

func TestMappingRepository_ListDoctorsForPatient(t *testing.T) {
	db := setupTestDB(t)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	user := createTestUser(t, db, "owner@example.com")
	patient := &models.Patient{OwnerID: user.ID, Name: "Jane", Age: 30, Gender: models.GenderFemale}
	require.NoError(t, patientRepo.Create(patient))

	house := &models.Doctor{Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctorRepo.Create(house))
	strange := &models.Doctor{Name: "Strange", Specialization: "Neurosurgery"}
	require.NoError(t, doctorRepo.Create(strange))
	unmapped := &models.Doctor{Name: "Unmapped", Specialization: "Dermatology"}
	require.NoError(t, doctorRepo.Create(unmapped))

	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{PatientID: patient.ID, DoctorID: house.ID}))
	require.NoError(t, mappingRepo.Create(&models.PatientDoctorMapping{PatientID: patient.ID, DoctorID: strange.ID}))

	doctors, err := mappingRepo.ListDoctorsForPatient(patient.ID)
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	names := []string{doctors[0].Name, doctors[1].Name}
	assert.Contains(t, names, "House")
	assert.Contains(t, names, "Strange")
}

func TestMappingRepository_DeleteByIDAndOwner(t *testing.T) {
	db := setupTestDB(t)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	userA := createTestUser(t, db, "a@example.com")
	userB := createTestUser(t, db, "b@example.com")

	patient := &models.Patient{OwnerID: userA.ID, Name: "Jane", Age: 30, Gender: models.GenderFemale}
	require.NoError(t, patientRepo.Create(patient))
	doctor := &models.Doctor{Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctorRepo.Create(doctor))

	mapping := &models.PatientDoctorMapping{PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, mappingRepo.Create(mapping))

	// Someone else's delete behaves like the mapping does not exist
	err := mappingRepo.DeleteByIDAndOwner(mapping.ID, userB.ID)
	assert.ErrorIs(t, err, repository.ErrMappingNotFound)

	require.NoError(t, mappingRepo.DeleteByIDAndOwner(mapping.ID, userA.ID))

	exists, err := mappingRepo.ExistsByPatientAndDoctor(patient.ID, doctor.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

// ==================== REFRESH TOKEN REPOSITORY TESTS ====================

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRefreshTokenRepository(db)

	user := createTestUser(t, db, "token@example.com")

	token := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "some-refresh-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(token))

	found, err := repo.FindByToken("some-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, repo.RevokeToken("some-refresh-token"))

	_, err = repo.FindByToken("some-refresh-token")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}

func TestRefreshTokenRepository_Expired(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRefreshTokenRepository(db)

	user := createTestUser(t, db, "expired@example.com")

	token := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(token))

	_, err := repo.FindByToken("expired-token")
	assert.ErrorIs(t, err, repository.ErrTokenExpired)
}
