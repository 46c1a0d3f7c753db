// Package seed loads sample departments, doctors and news into an empty
// database. Rows that already exist are left untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-website-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result counts the rows created by Run
type Result struct {
	Departments int
	Doctors     int
	Schedules   int
	News        int
}

type sampleDoctor struct {
	doctor     models.Doctor
	department string
}

var departments = []models.Department{
	{Name: "Ophthalmology", Description: "Comprehensive eye care services including diagnosis, treatment, and surgery for all eye conditions.", IsActive: true},
	{Name: "Optometry", Description: "Vision testing, prescription of corrective lenses, and detection of eye diseases.", IsActive: true},
	{Name: "Retina Services", Description: "Specialized treatment for retinal conditions including diabetic retinopathy and macular degeneration.", IsActive: true},
}

var doctors = []sampleDoctor{
	{department: "Ophthalmology", doctor: models.Doctor{
		FirstName: "Naveen", LastName: "Gopal", Email: "dr.naveen@gopalanethralaya.com", Phone: "+916362727509",
		Gender: models.GenderMale, MedicalLicense: "KMC-45678", Specialization: "Cataract & Refractive Surgery",
		YearsOfExperience: 20, Qualifications: "MBBS, MS (Ophthalmology), FRCS (Glasgow)\nFellowship in Phaco & Refractive Surgery",
		Bio:             "Dr. Naveen Gopal has over 20 years of experience in cataract and refractive surgery.",
		ConsultationFee: 800, ConsultationDuration: 30, IsAvailable: true, IsActive: true,
	}},
	{department: "Retina Services", doctor: models.Doctor{
		FirstName: "Priya", LastName: "Sharma", Email: "dr.priya@gopalanethralaya.com", Phone: "+918023488880",
		Gender: models.GenderFemale, MedicalLicense: "KMC-56789", Specialization: "Retina Specialist",
		YearsOfExperience: 15, Qualifications: "MBBS, MS (Ophthalmology), FICO\nFellowship in Vitreo-Retinal Surgery",
		Bio:             "Dr. Priya Sharma specializes in medical and surgical retina.",
		ConsultationFee: 1000, ConsultationDuration: 30, IsAvailable: true, IsActive: true,
	}},
	{department: "Ophthalmology", doctor: models.Doctor{
		FirstName: "Rajesh", LastName: "Kumar", Email: "dr.rajesh@gopalanethralaya.com", Phone: "+919876543210",
		Gender: models.GenderMale, MedicalLicense: "KMC-67890", Specialization: "LASIK & Cornea Specialist",
		YearsOfExperience: 18, Qualifications: "MBBS, MS (Ophthalmology), DNB\nFellowship in Cornea & Refractive Surgery",
		Bio:             "Dr. Rajesh Kumar is an expert in LASIK, corneal transplants and refractive surgery.",
		ConsultationFee: 900, ConsultationDuration: 30, IsAvailable: true, IsActive: true,
	}},
	{department: "Ophthalmology", doctor: models.Doctor{
		FirstName: "Anita", LastName: "Desai", Email: "dr.anita@gopalanethralaya.com", Phone: "+919988776655",
		Gender: models.GenderFemale, MedicalLicense: "KMC-78901", Specialization: "Pediatric Ophthalmology",
		YearsOfExperience: 12, Qualifications: "MBBS, MS (Ophthalmology)\nFellowship in Pediatric Ophthalmology",
		Bio:             "Dr. Anita Desai specializes in children's eye care.",
		ConsultationFee: 700, ConsultationDuration: 30, IsAvailable: true, IsActive: true,
	}},
}

var birthDates = map[string]string{
	"KMC-45678": "1975-05-15",
	"KMC-56789": "1980-08-20",
	"KMC-67890": "1978-03-10",
	"KMC-78901": "1985-11-25",
}

type sampleNews struct {
	article models.News
	ageDays int
}

var news = []sampleNews{
	{ageDays: 5, article: models.News{
		Title: "Advanced LASIK Technology Now Available at Gopala Nethralaya", Slug: "advanced-lasik-technology-available",
		Excerpt: "State-of-the-art LASIK technology for safer and more precise vision correction.",
		Content: "Gopala Nethralaya has acquired the latest bladeless, wavefront-guided LASIK technology.",
		Author:  "Dr. Naveen Gopal", IsPublished: true, IsFeatured: true,
	}},
	{ageDays: 3, article: models.News{
		Title: "Free Eye Screening Camp This Weekend", Slug: "free-eye-screening-camp-weekend",
		Excerpt: "Join us for a free comprehensive eye screening camp on Saturday and Sunday.",
		Content: "Our ophthalmologists will offer cataract, glaucoma and diabetic retinopathy screening from 9:00 AM to 4:00 PM.",
		Author:  "Gopala Nethralaya Team", IsPublished: true, IsFeatured: true,
	}},
	{ageDays: 1, article: models.News{
		Title: "Understanding Diabetic Retinopathy: Prevention and Treatment", Slug: "understanding-diabetic-retinopathy",
		Excerpt: "Diabetic retinopathy is a leading cause of vision loss. Learn about prevention and treatment.",
		Content: "Regular eye examinations help detect diabetic retinopathy before vision is affected.",
		Author:  "Dr. Priya Sharma", IsPublished: true,
	}},
}

// Monday to Friday 09:00-13:00, Saturday 09:00-12:00
func weeklySchedule(doctorID uint) []models.DoctorSchedule {
	schedules := make([]models.DoctorSchedule, 0, 6)
	for day := 0; day < 6; day++ {
		end := 13
		if day == 5 {
			end = 12
		}
		schedules = append(schedules, models.DoctorSchedule{
			DoctorID:  doctorID,
			DayOfWeek: day,
			StartTime: datatypes.NewTime(9, 0, 0, 0),
			EndTime:   datatypes.NewTime(end, 0, 0, 0),
			IsActive:  true,
		})
	}
	return schedules
}

// firstOrCreate loads the row matching query into dest, or inserts dest
func firstOrCreate[T any](tx *gorm.DB, dest *T, query T) (bool, error) {
	var existing T
	err := tx.Where(query).First(&existing).Error
	if err == nil {
		*dest = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, tx.Create(dest).Error
}

// Run inserts the sample data inside one transaction
func Run(ctx context.Context, db *gorm.DB, log logrus.FieldLogger, now time.Time) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deptIDs := make(map[string]uint, len(departments))
		for _, d := range departments {
			dept := d
			created, err := firstOrCreate(tx, &dept, models.Department{Name: dept.Name})
			if err != nil {
				return fmt.Errorf("failed to seed department %s: %w", d.Name, err)
			}
			if created {
				res.Departments++
				log.Infof("Created department: %s", dept.Name)
			}
			deptIDs[dept.Name] = dept.ID
		}

		for _, sample := range doctors {
			doctor := sample.doctor
			doctor.DepartmentID = deptIDs[sample.department]
			if dob, err := time.Parse(time.DateOnly, birthDates[doctor.MedicalLicense]); err == nil {
				date := datatypes.Date(dob)
				doctor.DateOfBirth = &date
			}

			created, err := firstOrCreate(tx, &doctor, models.Doctor{MedicalLicense: doctor.MedicalLicense})
			if err != nil {
				return fmt.Errorf("failed to seed doctor %s: %w", doctor.MedicalLicense, err)
			}
			if !created {
				log.Infof("Doctor already exists: %s", doctor.FullName())
				continue
			}
			res.Doctors++
			log.Infof("Created doctor: %s", doctor.FullName())

			schedules := weeklySchedule(doctor.ID)
			if err := tx.Create(&schedules).Error; err != nil {
				return fmt.Errorf("failed to seed schedules for %s: %w", doctor.MedicalLicense, err)
			}
			res.Schedules += len(schedules)
		}

		for _, sample := range news {
			article := sample.article
			published := now.AddDate(0, 0, -sample.ageDays)
			article.PublishedDate = &published

			created, err := firstOrCreate(tx, &article, models.News{Slug: article.Slug})
			if err != nil {
				return fmt.Errorf("failed to seed news %s: %w", article.Slug, err)
			}
			if created {
				res.News++
				log.Infof("Created news: %s", article.Title)
			}
		}
		return nil
	})
	return res, err
}
