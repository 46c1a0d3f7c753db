// Package server wires repositories, services and handlers into the gin
// router.
package server

import (
	"hospital-website-backend/internal/access"
	"hospital-website-backend/internal/cache"
	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/handler"
	"hospital-website-backend/internal/middleware"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the assembled HTTP application
type App struct {
	Router  *gin.Engine
	Cleanup *service.CleanupService
}

// New builds the application on db and the counter store
func New(cfg *config.Config, db *gorm.DB, store cache.Store, log *logrus.Logger) *App {
	utils.RegisterValidatorTagNames()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	newsRepo := repository.NewNewsRepo(db)
	contactRepo := repository.NewContactRepo(db)
	infoRepo := repository.NewHospitalInfoRepo(db)
	galleryRepo := repository.NewGalleryRepo(db)
	announcementRepo := repository.NewAnnouncementRepo(db)

	// Security controls
	auditor := security.NewAuditor(log, auditRepo)
	limiter := security.NewRateLimiter(store, auditor)
	guard := security.NewLoginGuard(store, auditor, cfg.Security.MaxLoginAttempts, cfg.Security.LockoutDuration)
	monitor := security.NewRequestMonitor(store, auditor, cfg.Security.RequestRateThreshold)
	sanitizer := security.NewSanitizer(log)
	csrf := utils.NewCSRFSigner(cfg.Security.CSRFSecret, cfg.Security.CSRFTokenExpiry)

	// Services
	loc := cfg.Server.Timezone
	authService := service.NewAuthService(userRepo, guard, auditor, cfg.Session.Age)
	departmentService := service.NewDepartmentService(departmentRepo, auditor)
	catalogService := service.NewCatalogService(serviceRepo, departmentRepo, auditor)
	doctorService := service.NewDoctorService(doctorRepo, departmentRepo, auditor)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, auditor, loc)
	newsService := service.NewNewsService(newsRepo, auditor)
	contactService := service.NewContactService(contactRepo, auditor)
	siteService := service.NewSiteService(infoRepo, galleryRepo, announcementRepo, auditor)
	dashboardService := service.NewDashboardService(departmentRepo, serviceRepo, appointmentRepo, announcementRepo, loc)
	cleanupService := service.NewCleanupService(userRepo, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Session, csrf)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	newsHandler := handler.NewNewsHandler(newsService)
	contactHandler := handler.NewContactHandler(contactService)
	hospitalHandler := handler.NewHospitalHandler(siteService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.WithError(err).Warn("Invalid TRUSTED_PROXIES, forwarded headers ignored")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORS),
		middleware.RequestMonitor(monitor),
		middleware.Sanitize(sanitizer),
		middleware.SessionAuth(authService, cfg.Session, log),
	)

	rate := func(scope string) gin.HandlerFunc {
		return middleware.RateLimit(limiter, scope, cfg.RateRule(scope))
	}
	apiKey := middleware.APIKeyAuthMiddleware(cfg.Security.APIKeys, auditor)
	adminOnly := middleware.RequirePolicy(access.AdminOnly)
	adminOrReadOnly := middleware.RequirePolicy(access.AdminOrReadOnly)
	authenticated := middleware.RequirePolicy(access.Authenticated)

	health := func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-website-backend",
		})
	}
	r.GET("/health", health)

	v1 := r.Group("/api/v1")
	v1.GET("/health", health)

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rate(config.ScopeRegister), authHandler.Register)
		auth.POST("/login", rate(config.ScopeLogin), authHandler.Login)
		auth.POST("/logout", authenticated, authHandler.Logout)
		auth.GET("/user", authenticated, authHandler.User)
		auth.GET("/profile", authenticated, authHandler.User)
		auth.PATCH("/profile", authenticated, authHandler.UpdateProfile)
		auth.POST("/change-password", authenticated, authHandler.ChangePassword)
		auth.POST("/create-admin", authHandler.CreateAdmin)
		auth.GET("/csrf", authHandler.CSRF)
		auth.GET("/check", authHandler.Check)
	}

	// Departments
	departments := v1.Group("/departments", adminOrReadOnly)
	{
		departments.GET("", departmentHandler.ListDepartments)
		departments.GET("/:id", departmentHandler.GetDepartment)
		departments.POST("", departmentHandler.CreateDepartment)
		departments.PUT("/:id", departmentHandler.UpdateDepartment)
		departments.DELETE("/:id", departmentHandler.DeleteDepartment)
	}

	// Medical services
	services := v1.Group("/services", adminOrReadOnly)
	{
		services.GET("", serviceHandler.ListServices)
		services.GET("/:id", serviceHandler.GetService)
		services.POST("", serviceHandler.CreateService)
		services.PUT("/:id", serviceHandler.UpdateService)
		services.DELETE("/:id", serviceHandler.DeleteService)
	}

	// Doctors and schedules
	doctors := v1.Group("/doctors", adminOrReadOnly)
	{
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.GET("/:id", doctorHandler.GetDoctor)
		doctors.POST("", doctorHandler.CreateDoctor)
		doctors.PUT("/:id", doctorHandler.UpdateDoctor)
		doctors.DELETE("/:id", doctorHandler.DeleteDoctor)
		doctors.GET("/:id/schedules", doctorHandler.GetSchedules)
		doctors.PUT("/:id/schedules", doctorHandler.SetSchedules)
	}

	// Appointments
	appointments := v1.Group("/appointments")
	{
		appointments.POST("", rate(config.ScopeAppointmentCreate), appointmentHandler.CreateAppointment)
		appointments.GET("/list", apiKey, rate(config.ScopeAppointmentList), adminOnly, appointmentHandler.ListAppointments)
		appointments.GET("/:id", apiKey, adminOnly, appointmentHandler.GetAppointment)
		appointments.PATCH("/:id/status", adminOnly, appointmentHandler.UpdateStatus)
	}

	// News
	news := v1.Group("/news", adminOrReadOnly)
	{
		news.GET("", newsHandler.ListNews)
		news.GET("/featured", newsHandler.FeaturedNews)
		news.GET("/:slug", newsHandler.GetNews)
		news.POST("", newsHandler.CreateNews)
		news.PUT("/:slug", newsHandler.UpdateNews)
		news.DELETE("/:slug", newsHandler.DeleteNews)
	}

	// Contact inquiries
	contact := v1.Group("/contact")
	{
		contact.POST("", rate(config.ScopeContactCreate), contactHandler.CreateInquiry)
		contact.GET("/list", apiKey, rate(config.ScopeContactList), adminOnly, contactHandler.ListInquiries)
		contact.GET("/:id", adminOnly, contactHandler.GetInquiry)
		contact.PATCH("/:id", adminOnly, contactHandler.RespondInquiry)
	}

	// Hospital info, gallery and announcements
	v1.GET("/hospital-info", hospitalHandler.GetHospitalInfo)
	v1.PUT("/hospital-info", adminOrReadOnly, hospitalHandler.UpdateHospitalInfo)

	gallery := v1.Group("/gallery", adminOrReadOnly)
	{
		gallery.GET("", hospitalHandler.ListGallery)
		gallery.POST("", hospitalHandler.CreateGalleryItem)
		gallery.DELETE("/:id", hospitalHandler.DeleteGalleryItem)
	}

	announcements := v1.Group("/announcements", adminOrReadOnly)
	{
		announcements.GET("", hospitalHandler.ListAnnouncements)
		announcements.GET("/:id", hospitalHandler.GetAnnouncement)
		announcements.POST("", hospitalHandler.CreateAnnouncement)
		announcements.PUT("/:id", hospitalHandler.UpdateAnnouncement)
		announcements.DELETE("/:id", hospitalHandler.DeleteAnnouncement)
	}

	// Dashboard
	v1.GET("/dashboard/stats", apiKey, rate(config.ScopeDashboardStats), adminOnly, dashboardHandler.Stats)

	return &App{Router: r, Cleanup: cleanupService}
}
