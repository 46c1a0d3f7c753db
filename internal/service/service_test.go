package service

import (
	"context"
	"testing"
	"time"

	"hospital-website-backend/internal/cache"
	"hospital-website-backend/internal/logger"
	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var staffCaller = Caller{UserID: 1, ClientIP: "10.0.0.1"}

func newAuditor(db *gorm.DB) *security.Auditor {
	return security.NewAuditor(logger.Discard(), repository.NewAuditRepo(db))
}

type authFixture struct {
	db    *gorm.DB
	store *cache.MemoryStore
	clock time.Time
	svc   *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	f := &authFixture{
		db:    testutil.NewDB(t),
		clock: time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.store = cache.NewMemoryStore().WithClock(func() time.Time { return f.clock })
	auditor := newAuditor(f.db)
	guard := security.NewLoginGuard(f.store, auditor, 5, 5*time.Minute)
	f.svc = NewAuthService(repository.NewUserRepo(f.db), guard, auditor, time.Hour)
	return f
}

func TestLoginLocksOutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "nurse", "correct-horse", false)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Login(ctx, "nurse", "wrong-password", "1.2.3.4", "test")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := f.svc.Login(ctx, "nurse", "correct-horse", "1.2.3.4", "test")
	assert.ErrorIs(t, err, ErrLockedOut)

	// other addresses are unaffected
	_, err = f.svc.Login(ctx, "nurse", "correct-horse", "5.6.7.8", "test")
	assert.NoError(t, err)

	f.clock = f.clock.Add(5*time.Minute + time.Second)
	res, err := f.svc.Login(ctx, "nurse", "correct-horse", "1.2.3.4", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, res.User.LastLogin)

	_, found, err := f.store.Get(ctx, security.FailedAttemptsKey("1.2.3.4"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "retired", "correct-horse", false)
	require.NoError(t, f.db.Model(user).Update("is_active", false).Error)

	_, err := f.svc.Login(context.Background(), "retired", "correct-horse", "1.2.3.4", "test")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestSessionLifecycle(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "clerk", "correct-horse", false)

	res, err := f.svc.Login(ctx, "clerk", "correct-horse", "1.2.3.4", "test")
	require.NoError(t, err)

	session, err := f.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "clerk", session.User.Username)

	require.NoError(t, f.svc.Logout(ctx, res.Token, &session.User, "1.2.3.4"))
	_, err = f.svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChangePasswordRevokesOtherSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "clerk", "correct-horse", false)

	first, err := f.svc.Login(ctx, "clerk", "correct-horse", "1.2.3.4", "a")
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, "clerk", "correct-horse", "1.2.3.4", "b")
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, first.User, first.Session.ID, "nope", "battery-staple", "1.2.3.4")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "old_password")

	require.NoError(t, f.svc.ChangePassword(ctx, first.User, first.Session.ID, "correct-horse", "battery-staple", "1.2.3.4"))

	_, err = f.svc.Authenticate(ctx, first.Token)
	assert.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, second.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.svc.Login(ctx, "clerk", "battery-staple", "9.9.9.9", "c")
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, RegisterInput{Username: "visitor", Email: "v@example.com", Password: "long-enough"}, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, user.IsStaff)

	_, err = f.svc.Register(ctx, RegisterInput{Username: "visitor", Email: "other@example.com", Password: "long-enough"}, "1.2.3.4")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	_, err = f.svc.Register(ctx, RegisterInput{Username: "second", Email: "v@example.com", Password: "long-enough"}, "1.2.3.4")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	_, err = f.svc.Register(ctx, RegisterInput{Username: "third", Password: "12345678"}, "1.2.3.4")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestCreateAdminOnlyOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	admin, err := f.svc.CreateAdmin(ctx, RegisterInput{Username: "root", Email: "root@example.com", Password: "long-enough"}, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)

	_, err = f.svc.CreateAdmin(ctx, RegisterInput{Username: "root2", Email: "root2@example.com", Password: "long-enough"}, "1.2.3.4")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func newAppointmentService(t *testing.T, db *gorm.DB, now time.Time) *AppointmentService {
	t.Helper()
	return NewAppointmentService(
		repository.NewAppointmentRepo(db),
		repository.NewDoctorRepo(db),
		newAuditor(db),
		time.UTC,
	).WithClock(func() time.Time { return now })
}

func TestAppointmentCreateRules(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := newAppointmentService(t, db, time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC))
	dept := testutil.CreateDepartment(t, db, "Ophthalmology")
	doctor := testutil.CreateDoctor(t, db, dept, "LIC-1")

	base := CreateAppointmentInput{
		PatientName:     "Ravi",
		PatientEmail:    "ravi@example.com",
		PatientPhone:    "+911234567890",
		PatientAge:      40,
		PatientGender:   models.GenderMale,
		DoctorID:        &doctor.ID,
		AppointmentDate: "2030-01-15",
		AppointmentTime: "11:00",
		Reason:          "Blurred vision",
	}

	appt, err := svc.Create(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)

	_, err = svc.Create(ctx, base)
	assert.ErrorIs(t, err, ErrSlotTaken)

	past := base
	past.AppointmentDate = "2030-01-14"
	_, err = svc.Create(ctx, past)
	assert.ErrorIs(t, err, ErrPastDate)

	malformed := base
	malformed.AppointmentDate = "15/01/2030"
	_, err = svc.Create(ctx, malformed)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "appointment_date")

	missing := base
	ghost := uint(9999)
	missing.DoctorID = &ghost
	_, err = svc.Create(ctx, missing)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "doctor")

	require.NoError(t, db.Model(doctor).Update("is_available", false).Error)
	unavailable := base
	unavailable.AppointmentTime = "12:00"
	_, err = svc.Create(ctx, unavailable)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "doctor")
}

func TestAppointmentStatusTransitions(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := newAppointmentService(t, db, time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC))

	appt, err := svc.Create(ctx, CreateAppointmentInput{
		PatientName:     "Lata",
		PatientEmail:    "lata@example.com",
		PatientPhone:    "+911234567890",
		PatientAge:      62,
		PatientGender:   models.GenderFemale,
		AppointmentDate: "2030-01-20",
		AppointmentTime: "09:30",
		Reason:          "Checkup",
	})
	require.NoError(t, err)

	notes := "Bring previous reports"
	updated, err := svc.UpdateStatus(ctx, appt.ID, UpdateStatusInput{Status: models.StatusConfirmed, Notes: &notes}, 1, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, notes, updated.Notes)

	_, err = svc.UpdateStatus(ctx, appt.ID, UpdateStatusInput{Status: "archived"}, 1, "10.0.0.1")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateStatus(ctx, appt.ID, UpdateStatusInput{Status: models.StatusCancelled}, 1, "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, appt.ID, UpdateStatusInput{Status: models.StatusPending}, 1, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, 424242, UpdateStatusInput{Status: models.StatusConfirmed}, 1, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotFound)

	var logs []models.AuditLog
	require.NoError(t, db.Where("action = ?", security.ActionStatusChange).Find(&logs).Error)
	assert.Len(t, logs, 2)
}

func TestDoctorSchedulesValidation(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewDoctorService(repository.NewDoctorRepo(db), repository.NewDepartmentRepo(db), newAuditor(db))
	dept := testutil.CreateDepartment(t, db, "Cardiology")
	doctor := testutil.CreateDoctor(t, db, dept, "LIC-2")

	nine := datatypes.NewTime(9, 0, 0, 0)
	five := datatypes.NewTime(17, 0, 0, 0)

	_, err := svc.SetSchedules(ctx, doctor.ID, []models.DoctorSchedule{
		{DayOfWeek: 0, StartTime: nine, EndTime: five, IsActive: true},
		{DayOfWeek: 0, StartTime: nine, EndTime: five, IsActive: true},
	}, staffCaller)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.SetSchedules(ctx, doctor.ID, []models.DoctorSchedule{
		{DayOfWeek: 1, StartTime: five, EndTime: nine, IsActive: true},
	}, staffCaller)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "schedules[0].end_time")

	saved, err := svc.SetSchedules(ctx, doctor.ID, []models.DoctorSchedule{
		{DayOfWeek: 2, StartTime: nine, EndTime: five, IsActive: true},
		{DayOfWeek: 0, StartTime: nine, EndTime: five, IsActive: true},
	}, staffCaller)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 0, saved[0].DayOfWeek)
}

func TestDoctorCreateDuplicateLicense(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewDoctorService(repository.NewDoctorRepo(db), repository.NewDepartmentRepo(db), newAuditor(db))
	dept := testutil.CreateDepartment(t, db, "Neurology")

	doctor := &models.Doctor{FirstName: "Anil", LastName: "Kumar", MedicalLicense: "LIC-3", Specialization: "Neuro", DepartmentID: dept.ID, IsActive: true}
	created, err := svc.Create(ctx, doctor, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, 30, created.ConsultationDuration)
	assert.Equal(t, "Neurology", created.Department.Name)

	dup := &models.Doctor{FirstName: "Other", LastName: "Doc", MedicalLicense: "LIC-3", Specialization: "Neuro", DepartmentID: dept.ID}
	_, err = svc.Create(ctx, dup, staffCaller)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "medical_license")

	orphan := &models.Doctor{FirstName: "No", LastName: "Dept", MedicalLicense: "LIC-4", DepartmentID: 999}
	_, err = svc.Create(ctx, orphan, staffCaller)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "department")
}

func TestDepartmentDeleteInUse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewDepartmentService(repository.NewDepartmentRepo(db), newAuditor(db))
	dept := testutil.CreateDepartment(t, db, "Orthopedics")
	testutil.CreateDoctor(t, db, dept, "LIC-5")

	assert.ErrorIs(t, svc.Delete(ctx, dept.ID, staffCaller), ErrDepartmentInUse)
}

func TestNewsCreateAndUpdateKeepsSlug(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewNewsService(repository.NewNewsRepo(db), newAuditor(db))

	article, err := svc.Create(ctx, &models.News{Title: "New OPD Wing", Content: "Opening soon", IsPublished: true, IsFeatured: true}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, "new-opd-wing", article.Slug)
	require.NotNil(t, article.PublishedDate)

	draft, err := svc.Create(ctx, &models.News{Title: "Draft", Content: "tbd"}, staffCaller)
	require.NoError(t, err)
	_, err = svc.Get(ctx, draft.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, "new-opd-wing", &models.News{Title: "New OPD Wing", Slug: "new-opd-wing", Content: "Now open", IsPublished: true}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, article.ID, updated.ID)
	assert.Equal(t, "new-opd-wing", updated.Slug)

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)

	require.NoError(t, svc.Delete(ctx, "new-opd-wing", staffCaller))
	assert.ErrorIs(t, svc.Delete(ctx, "new-opd-wing", staffCaller), ErrNotFound)
}

func TestContactRespond(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewContactService(repository.NewContactRepo(db), newAuditor(db))

	inquiry, err := svc.Create(ctx, &models.ContactInquiry{Name: "Sita", Email: "sita@example.com", Subject: "Visiting hours", Message: "When?", IsResolved: true})
	require.NoError(t, err)
	assert.Equal(t, models.InquiryGeneral, inquiry.InquiryType)
	assert.False(t, inquiry.IsResolved)

	resolved := true
	reply := "10am to 8pm"
	updated, err := svc.Respond(ctx, inquiry.ID, RespondInput{IsResolved: &resolved, Response: &reply}, staffCaller)
	require.NoError(t, err)
	assert.True(t, updated.IsResolved)
	assert.Equal(t, reply, updated.Response)
}

func TestSiteServiceAnnouncementsAndInfo(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewSiteService(
		repository.NewHospitalInfoRepo(db),
		repository.NewGalleryRepo(db),
		repository.NewAnnouncementRepo(db),
		newAuditor(db),
	).WithClock(func() time.Time { return now })

	_, err := svc.HospitalInfo(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	info, err := svc.UpdateHospitalInfo(ctx, &models.HospitalInfo{Name: "City Eye Hospital"}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, "24/7", info.OperatingHours)
	again, err := svc.UpdateHospitalInfo(ctx, &models.HospitalInfo{Name: "City Eye Hospital & Research"}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, info.ID, again.ID)

	future := now.Add(24 * time.Hour)
	hidden, err := svc.CreateAnnouncement(ctx, &models.Announcement{Title: "Later", Content: "x", IsActive: true, StartDate: future}, staffCaller)
	require.NoError(t, err)
	_, err = svc.Announcement(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	shown, err := svc.CreateAnnouncement(ctx, &models.Announcement{Title: "Now", Content: "y", IsActive: true}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, now, shown.StartDate)

	got, err := svc.Announcement(ctx, shown.ID)
	require.NoError(t, err)
	assert.Equal(t, "Now", got.Title)

	yesterday := now.Add(-24 * time.Hour)
	_, err = svc.CreateAnnouncement(ctx, &models.Announcement{Title: "Bad", Content: "z", StartDate: now, EndDate: &yesterday}, staffCaller)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")

	item, err := svc.AddGalleryItem(ctx, &models.Gallery{Title: "Lobby", Image: "gallery/lobby.jpg"}, staffCaller)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryFacility, item.Category)
	require.NoError(t, svc.DeleteGalleryItem(ctx, item.ID, staffCaller))
	assert.ErrorIs(t, svc.DeleteGalleryItem(ctx, item.ID, staffCaller), ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	now := time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)

	dept := testutil.CreateDepartment(t, db, "Pediatrics")
	require.NoError(t, db.Create(&models.Department{Name: "Closed", IsActive: false}).Error)
	require.NoError(t, db.Create(&models.Service{Name: "Vaccination", DepartmentID: dept.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Announcement{Title: "Open", Content: "c", IsActive: true, StartDate: now.Add(-time.Hour)}).Error)

	appts := newAppointmentService(t, db, now)
	for _, date := range []string{"2030-01-15", "2030-01-16"} {
		_, err := appts.Create(ctx, CreateAppointmentInput{
			PatientName: "P", PatientEmail: "p@example.com", PatientPhone: "+911234567890",
			PatientAge: 30, PatientGender: models.GenderOther,
			AppointmentDate: date, AppointmentTime: "10:00", Reason: "r",
		})
		require.NoError(t, err)
	}

	svc := NewDashboardService(
		repository.NewDepartmentRepo(db),
		repository.NewServiceRepo(db),
		repository.NewAppointmentRepo(db),
		repository.NewAnnouncementRepo(db),
		time.UTC,
	).WithClock(func() time.Time { return now })

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		TotalDepartments:    1,
		TotalServices:       1,
		PendingAppointments: 2,
		TodayAppointments:   1,
		ActiveAnnouncements: 1,
	}, stats)
}

func TestCleanupRunPurgesStaleSessions(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "clerk", "correct-horse", false)
	now := time.Now().UTC()

	require.NoError(t, db.Create(&models.Session{UserID: user.ID, TokenHash: "expired", ExpiresAt: now.Add(-time.Hour), LastSeenAt: now}).Error)
	require.NoError(t, db.Create(&models.Session{UserID: user.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour), LastSeenAt: now}).Error)

	w := NewCleanupService(repository.NewUserRepo(db), logger.Discard())
	assert.Equal(t, int64(1), w.Run(ctx))
	assert.Equal(t, int64(0), w.Run(ctx))

	require.Error(t, w.Start("not a schedule"))
}
