package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/testutil"
	"hospital-website-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newAppointment(doctorID *uint, date string, clock string) *models.Appointment {
	d, _ := utils.ParseDate(date)
	c, _ := utils.ParseClock(clock)
	return &models.Appointment{
		PatientName:     "Ravi Kumar",
		PatientEmail:    "ravi@example.com",
		PatientPhone:    "+919876543210",
		PatientAge:      40,
		PatientGender:   models.GenderMale,
		DoctorID:        doctorID,
		AppointmentDate: d,
		AppointmentTime: c,
		Reason:          "Blurred vision",
	}
}

func TestCreateIfSlotFree(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepo(db)
	ctx := context.Background()

	dept := testutil.CreateDepartment(t, db, "Retina Services")
	docA := testutil.CreateDoctor(t, db, dept, "LIC-A")
	docB := testutil.CreateDoctor(t, db, dept, "LIC-B")

	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment(&docA.ID, "2030-01-15", "10:00")))

	// same doctor, same slot
	err := repo.CreateIfSlotFree(ctx, newAppointment(&docA.ID, "2030-01-15", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// another doctor is free at that time
	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment(&docB.ID, "2030-01-15", "10:00")))

	// no doctor: any active booking at that time conflicts
	err = repo.CreateIfSlotFree(ctx, newAppointment(nil, "2030-01-15", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment(nil, "2030-01-15", "10:30")))
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepo(db)
	ctx := context.Background()

	first := newAppointment(nil, "2030-03-01", "09:00")
	require.NoError(t, repo.CreateIfSlotFree(ctx, first))
	require.NotNil(t, first.ActiveSlot)

	first.Status = models.StatusCancelled
	require.NoError(t, repo.Save(ctx, first))

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveSlot)
	assert.Equal(t, "2030-03-01", models.FormatDate(stored.AppointmentDate))
	assert.Equal(t, "09:00:00", models.FormatClock(stored.AppointmentTime))

	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment(nil, "2030-03-01", "09:00")))
}

func TestConcurrentBookingsYieldOneSuccess(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepo(db)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.CreateIfSlotFree(ctx, newAppointment(nil, "2030-04-01", "11:00"))
		}()
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			taken++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, taken)
}

func TestAppointmentListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment(nil, "2030-05-01", "09:00")))
	emergency := newAppointment(nil, "2030-05-02", "09:00")
	emergency.IsEmergency = true
	emergency.PatientName = "Anita Desai"
	require.NoError(t, repo.CreateIfSlotFree(ctx, emergency))

	yes := true
	items, count, err := repo.List(ctx, AppointmentFilter{ListParams: ListParams{Page: 1}, IsEmergency: &yes}, "id ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Anita Desai", items[0].PatientName)

	date := datatypes.Date(time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC))
	_, count, err = repo.List(ctx, AppointmentFilter{ListParams: ListParams{Page: 1}, AppointmentDate: &date}, "id ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, count, err = repo.List(ctx, AppointmentFilter{ListParams: ListParams{Page: 1, Search: "ANITA"}}, "id ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, _, err = repo.List(ctx, AppointmentFilter{ListParams: ListParams{Page: 2}}, "id ASC")
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	n, err := repo.CountOnDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDepartmentDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDepartmentRepo(db)
	ctx := context.Background()

	withServices := testutil.CreateDepartment(t, db, "Optometry")
	require.NoError(t, db.Create(&models.Service{Name: "Eye test", DepartmentID: withServices.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Service{Name: "Lens fitting", DepartmentID: withServices.ID}).Error)

	row, err := repo.FindWithCounts(ctx, withServices.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.ServicesCount)

	require.NoError(t, repo.Delete(ctx, withServices.ID))
	var remaining int64
	require.NoError(t, db.Model(&models.Service{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	withDoctor := testutil.CreateDepartment(t, db, "Ophthalmology")
	testutil.CreateDoctor(t, db, withDoctor, "LIC-1")
	assert.ErrorIs(t, repo.Delete(ctx, withDoctor.ID), ErrDepartmentInUse)

	assert.ErrorIs(t, repo.Delete(ctx, 9999), ErrNotFound)
}

func TestDepartmentListActive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDepartmentRepo(db)
	ctx := context.Background()

	testutil.CreateDepartment(t, db, "Retina Services")
	testutil.CreateDepartment(t, db, "Optometry")
	hidden := testutil.CreateDepartment(t, db, "Closed Wing")
	hidden.IsActive = false
	require.NoError(t, db.Save(hidden).Error)

	rows, count, err := repo.ListActive(ctx, ListParams{Page: 1}, "departments.name ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, rows, 2)
	assert.Equal(t, "Optometry", rows[0].Name)

	_, count, err = repo.ListActive(ctx, ListParams{Page: 1, Search: "retina"}, "departments.name ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	testutil.CreateDepartment(t, db, "100% Vision_Lab!")
	for term, want := range map[string]int64{"%": 1, "_": 1, "!": 1, "0% v": 1, "n_l": 1, "a%b": 0, "t_m": 0} {
		_, count, err = repo.ListActive(ctx, ListParams{Page: 1, Search: term}, "departments.name ASC")
		require.NoError(t, err, term)
		assert.Equal(t, want, count, term)
	}
}

func TestNewsSlugs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewNewsRepo(db)
	ctx := context.Background()

	first := &models.News{Title: "Free Eye Camp", Content: "Details", IsPublished: true}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "free-eye-camp", first.Slug)
	assert.NotNil(t, first.PublishedDate)

	second := &models.News{Title: "Free Eye Camp", Content: "Again"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "free-eye-camp-2", second.Slug)
	assert.Nil(t, second.PublishedDate)

	// saving keeps its own slug
	first.Content = "Updated"
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, "free-eye-camp", first.Slug)

	_, err := repo.FindBySlug(ctx, "free-eye-camp-2", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnnouncementVisibility(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAnnouncementRepo(db)
	ctx := context.Background()

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)
	ended := now.Add(-time.Hour)

	require.NoError(t, repo.Create(ctx, &models.Announcement{Title: "Routine", Content: "c", IsActive: true, StartDate: past}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{Title: "Urgent", Content: "c", IsActive: true, IsUrgent: true, StartDate: past.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{Title: "Upcoming", Content: "c", IsActive: true, StartDate: future}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{Title: "Over", Content: "c", IsActive: true, StartDate: past, EndDate: &ended}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{Title: "Off", Content: "c", IsActive: false, StartDate: past}))

	items, count, err := repo.ListVisible(ctx, ListParams{Page: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, items, 2)
	assert.Equal(t, "Urgent", items[0].Title)
	assert.Equal(t, "Routine", items[1].Title)

	n, err := repo.CountVisible(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSessionLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "frontdesk", "desk-pass-123", false)
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	live := &models.Session{UserID: user.ID, TokenHash: utils.HashToken("live"), ExpiresAt: now.Add(time.Hour), LastSeenAt: now}
	stale := &models.Session{UserID: user.ID, TokenHash: utils.HashToken("stale"), ExpiresAt: now.Add(-time.Minute), LastSeenAt: now}
	require.NoError(t, repo.CreateSession(ctx, live))
	require.NoError(t, repo.CreateSession(ctx, stale))

	found, err := repo.FindActiveSession(ctx, utils.HashToken("live"), now)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", found.User.Username)

	_, err = repo.FindActiveSession(ctx, utils.HashToken("stale"), now)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.DeleteStaleSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, repo.RevokeSessionByHash(ctx, utils.HashToken("live")))
	_, err = repo.FindActiveSession(ctx, utils.HashToken("live"), now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoctorSchedulesUpsert(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDoctorRepo(db)
	ctx := context.Background()

	dept := testutil.CreateDepartment(t, db, "Retina Services")
	doctor := testutil.CreateDoctor(t, db, dept, "LIC-S")

	monday := models.DoctorSchedule{DayOfWeek: 0, StartTime: datatypes.NewTime(9, 0, 0, 0), EndTime: datatypes.NewTime(13, 0, 0, 0), IsActive: true}
	require.NoError(t, repo.UpsertSchedules(ctx, doctor.ID, []models.DoctorSchedule{monday}))

	monday.EndTime = datatypes.NewTime(17, 0, 0, 0)
	friday := models.DoctorSchedule{DayOfWeek: 4, StartTime: datatypes.NewTime(10, 0, 0, 0), EndTime: datatypes.NewTime(12, 0, 0, 0), IsActive: true}
	require.NoError(t, repo.UpsertSchedules(ctx, doctor.ID, []models.DoctorSchedule{monday, friday}))

	schedules, err := repo.ListSchedules(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "17:00:00", models.FormatClock(schedules[0].EndTime))
	assert.Equal(t, "Friday", schedules[1].DayName())

	found, err := repo.FindByID(ctx, doctor.ID, true)
	require.NoError(t, err)
	assert.Len(t, found.Schedules, 2)
	assert.Equal(t, "Retina Services", found.Department.Name)
}
