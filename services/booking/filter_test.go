package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superclinic/models"
)

func clinicFixture() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		specialities: []models.Speciality{
			{ID: "sp1", Name: "Cardiologist"},
			{ID: "sp2", Name: "Orthopedic / Chiropractic"},
			{ID: "sp3", Name: "Neurologist"},
		},
		doctors: []models.Doctor{
			{ID: "d1", Name: "Alice Hart", Email: "alice@clinic.test", SpecialityID: "sp1"},
			{ID: "d2", Name: "Bob Knee", Email: "bob@clinic.test", SpecialityID: "sp2"},
			{ID: "d3", Name: "Carol Bone", Email: "carol@clinic.test", SpecialityID: "sp2"},
		},
	}
}

func TestGetDoctorsListsAllWithSpecialities(t *testing.T) {
	svc := &DefaultBookingService{DoctorRepo: clinicFixture(), ScheduleRepo: &fakeScheduleRepo{}}

	result, err := svc.GetDoctors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Doctors, 3)
	assert.Equal(t, "Cardiologist", result.Doctors[0].Speciality.Name)
	assert.Equal(t, "Orthopedic / Chiropractic", result.Doctors[1].Speciality.Name)
}

func TestFilterDoctorsSubstringMatch(t *testing.T) {
	svc := &DefaultBookingService{DoctorRepo: clinicFixture(), ScheduleRepo: &fakeScheduleRepo{}}

	result, err := svc.FilterDoctors(context.Background(), "cardio")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, "Alice Hart", result.Doctors[0].DoctorName)
	assert.Equal(t, "Cardiologist", result.Doctors[0].Speciality)
}

func TestFilterDoctorsFuzzyFallback(t *testing.T) {
	svc := &DefaultBookingService{DoctorRepo: clinicFixture(), ScheduleRepo: &fakeScheduleRepo{}}

	// No substring hit, but close enough to Orthopedic / Chiropractic.
	result, err := svc.FilterDoctors(context.Background(), "Orthopedist")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Doctors, 2)
	assert.Equal(t, "Bob Knee", result.Doctors[0].DoctorName)
	assert.Equal(t, "Carol Bone", result.Doctors[1].DoctorName)
}

func TestFilterDoctorsNotFound(t *testing.T) {
	svc := &DefaultBookingService{DoctorRepo: clinicFixture(), ScheduleRepo: &fakeScheduleRepo{}}

	result, err := svc.FilterDoctors(context.Background(), "Astrologist")
	require.NoError(t, err)

	assert.Equal(t, StatusNotFound, result.Status)
	assert.Contains(t, result.Message, "Astrologist")
	assert.Empty(t, result.Doctors)
}

func TestSimilarityRatio(t *testing.T) {
	assert.InDelta(t, 1.0, similarityRatio("Cardiologist", "cardiologist"), 0.001)
	assert.Greater(t, similarityRatio("Orthopedist", "Orthopedic / Chiropractic"), 0.5)
	assert.Less(t, similarityRatio("Dermatologist", "Cardiologist"), similarityRatio("Cardiology", "Cardiologist"))
	assert.Equal(t, 0.0, similarityRatio("", ""))
}

func TestClosestSpecialityHonorsCutoff(t *testing.T) {
	specs := []models.Speciality{
		{ID: "sp1", Name: "Cardiologist"},
		{ID: "sp3", Name: "Neurologist"},
	}
	best := closestSpeciality("Cardiology", specs, 0.5)
	require.NotNil(t, best)
	assert.Equal(t, "sp1", best.ID)

	assert.Nil(t, closestSpeciality("zzzz", specs, 0.5))
}
