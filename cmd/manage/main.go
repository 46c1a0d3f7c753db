package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"hospital-website-backend/internal/cache"
	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/database"
	"hospital-website-backend/internal/logger"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/internal/seed"
	"hospital-website-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const usage = `Usage: manage <command> [flags]

Commands:
  migrate        create or update the database schema
  create-admin   create a superuser account
  seed           load sample departments, doctors and news
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// 1. Load configuration and logging
	cfg := config.LoadConfig()
	log := logger.New(cfg)

	// 2. Connect and migrate
	db := database.Connect(cfg, log)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "migrate":
		log.Info("Database schema is up to date")
	case "create-admin":
		err = createAdmin(ctx, cfg, db, log, args)
	case "seed":
		var res seed.Result
		res, err = seed.Run(ctx, db, log, time.Now().UTC())
		if err == nil {
			log.Infof("Seeded %d departments, %d doctors, %d schedules, %d news articles",
				res.Departments, res.Doctors, res.Schedules, res.News)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func createAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "Admin username")
	email := fs.String("email", "", "Admin email")
	password := fs.String("password", "", "Admin password")
	firstName := fs.String("first-name", "", "Admin first name")
	lastName := fs.String("last-name", "", "Admin last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" || *password == "" {
		return errors.New("username, email, and password are required")
	}

	auditor := security.NewAuditor(log, repository.NewAuditRepo(db))
	guard := security.NewLoginGuard(cache.NewMemoryStore(), auditor, cfg.Security.MaxLoginAttempts, cfg.Security.LockoutDuration)
	authService := service.NewAuthService(repository.NewUserRepo(db), guard, auditor, cfg.Session.Age)

	user, err := authService.CreateSuperuser(ctx, service.RegisterInput{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("validation error: %v", verr.Fields)
		}
		return err
	}

	log.WithFields(logrus.Fields{
		"email":        user.Email,
		"is_superuser": user.IsSuperuser,
		"is_staff":     user.IsStaff,
	}).Infof("Successfully created admin user: %s", user.Username)
	return nil
}
