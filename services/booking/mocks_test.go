package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	scheduleRepo "superclinic/database/repository/schedule"
	"superclinic/models"
	"superclinic/services/tasks"
)

// fakeDoctorRepo serves canned doctors and specialities from memory.
type fakeDoctorRepo struct {
	doctors      []models.Doctor
	specialities []models.Speciality

	searchCalls []string
}

func (f *fakeDoctorRepo) GetAll(_ context.Context) ([]models.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeDoctorRepo) GetByName(_ context.Context, name string) (*models.Doctor, error) {
	for i := range f.doctors {
		if f.doctors[i].Name == name {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) GetBySpeciality(_ context.Context, specialityID string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		if d.SpecialityID == specialityID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) GetSpecialityByID(_ context.Context, id string) (*models.Speciality, error) {
	for i := range f.specialities {
		if f.specialities[i].ID == id {
			return &f.specialities[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) ListSpecialities(_ context.Context) ([]models.Speciality, error) {
	return f.specialities, nil
}

func (f *fakeDoctorRepo) SearchSpecialities(_ context.Context, name string) ([]models.Speciality, error) {
	f.searchCalls = append(f.searchCalls, name)
	var out []models.Speciality
	for _, sp := range f.specialities {
		if strings.Contains(strings.ToLower(sp.Name), strings.ToLower(name)) {
			out = append(out, sp)
		}
	}
	return out, nil
}

// fakeScheduleRepo serves canned availabilities and records booking attempts.
type fakeScheduleRepo struct {
	availabilities []models.Availability

	bookErr     error
	bookedAvail string
	bookedSlot  string
	bookedWith  models.Patient
}

func (f *fakeScheduleRepo) ByDoctorAndDate(_ context.Context, doctorID, date string) (*models.Availability, error) {
	for i := range f.availabilities {
		a := &f.availabilities[i]
		if a.DoctorID == doctorID && a.Date == date {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) ByDoctor(_ context.Context, doctorID string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range f.availabilities {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	sortByDate(out)
	return out, nil
}

func (f *fakeScheduleRepo) ByDoctorsAndDate(_ context.Context, doctorIDs []string, date string) ([]models.Availability, error) {
	ids := toSet(doctorIDs)
	var out []models.Availability
	for _, a := range f.availabilities {
		if ids[a.DoctorID] && a.Date == date {
			out = append(out, a)
		}
	}
	sortByDate(out)
	return out, nil
}

func (f *fakeScheduleRepo) ByDoctors(_ context.Context, doctorIDs []string) ([]models.Availability, error) {
	ids := toSet(doctorIDs)
	var out []models.Availability
	for _, a := range f.availabilities {
		if ids[a.DoctorID] {
			out = append(out, a)
		}
	}
	sortByDate(out)
	return out, nil
}

func (f *fakeScheduleRepo) BookSlot(_ context.Context, availabilityID, slotID string, patient models.Patient) error {
	if f.bookErr != nil {
		return f.bookErr
	}
	f.bookedAvail = availabilityID
	f.bookedSlot = slotID
	f.bookedWith = patient
	return nil
}

var _ scheduleRepo.Repository = (*fakeScheduleRepo)(nil)

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func sortByDate(avs []models.Availability) {
	for i := 1; i < len(avs); i++ {
		for j := i; j > 0 && avs[j].Date < avs[j-1].Date; j-- {
			avs[j], avs[j-1] = avs[j-1], avs[j]
		}
	}
}

// fakeReminders records scheduled reminders.
type fakeReminders struct {
	payloads []tasks.ReminderPayload
	fireAts  []time.Time
	err      error
}

func (f *fakeReminders) ScheduleReminder(_ context.Context, payload tasks.ReminderPayload, fireAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}

var errRepoDown = errors.New("repository unavailable")

// failingScheduleRepo fails every call.
type failingScheduleRepo struct {
	fakeScheduleRepo
}

func (f *failingScheduleRepo) ByDoctorAndDate(_ context.Context, _, _ string) (*models.Availability, error) {
	return nil, errRepoDown
}
