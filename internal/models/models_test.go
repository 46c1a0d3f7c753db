package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSlotKey(t *testing.T) {
	date := datatypes.Date(time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC))
	clock := datatypes.NewTime(10, 30, 0, 0)

	assert.Equal(t, "0|2030-01-15|10:30:00", SlotKey(nil, date, clock))

	id := uint(7)
	assert.Equal(t, "7|2030-01-15|10:30:00", SlotKey(&id, date, clock))
}

func TestAppointmentBeforeSaveTracksActiveSlot(t *testing.T) {
	a := &Appointment{
		AppointmentDate: datatypes.Date(time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)),
		AppointmentTime: datatypes.NewTime(9, 0, 0, 0),
	}
	assert.NoError(t, a.BeforeSave(nil))
	assert.Equal(t, StatusPending, a.Status)
	if assert.NotNil(t, a.ActiveSlot) {
		assert.Equal(t, "0|2030-01-15|09:00:00", *a.ActiveSlot)
	}

	a.Status = StatusCancelled
	assert.NoError(t, a.BeforeSave(nil))
	assert.Nil(t, a.ActiveSlot)
}

func TestAppointmentTransitions(t *testing.T) {
	pending := Appointment{Status: StatusPending}
	assert.True(t, pending.CanTransition(StatusConfirmed))
	assert.True(t, pending.CanTransition(StatusNoShow))
	assert.False(t, pending.CanTransition(StatusCompleted))

	confirmed := Appointment{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransition(StatusCompleted))
	assert.False(t, confirmed.CanTransition(StatusPending))

	cancelled := Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransition(StatusPending))
	assert.False(t, cancelled.CanTransition(StatusConfirmed))
}

func TestAnnouncementIsVisibleAt(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		a    Announcement
		want bool
	}{
		{"open ended", Announcement{IsActive: true, StartDate: past}, true},
		{"inactive", Announcement{IsActive: false, StartDate: past}, false},
		{"not started", Announcement{IsActive: true, StartDate: future}, false},
		{"expired", Announcement{IsActive: true, StartDate: past.Add(-time.Hour), EndDate: &past}, false},
		{"ends now", Announcement{IsActive: true, StartDate: past, EndDate: &now}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.IsVisibleAt(now))
		})
	}
}

func TestDoctorHelpers(t *testing.T) {
	d := Doctor{FirstName: "Asha", LastName: "Rao", IsActive: true}
	assert.Equal(t, "Dr. Asha Rao", d.FullName())
	assert.False(t, d.CanTakeAppointments())

	s := DoctorSchedule{DayOfWeek: 6}
	assert.Equal(t, "Sunday", s.DayName())
	assert.Equal(t, 0, ScheduleDay(time.Monday))
	assert.Equal(t, 6, ScheduleDay(time.Sunday))
}
