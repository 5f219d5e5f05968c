package database

import (
	"fmt"
	"log"
	"os"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/auth"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedAdminPerson(); err != nil {
		return fmt.Errorf("failed to seed admin person: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedTags(); err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminPerson creates the default admin account from ADMIN_* env variables
func (s *Seeder) SeedAdminPerson() error {
	var count int64
	if err := s.db.Model(&model.Person{}).Where("? = ANY(roles)", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin person already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Person{
		Username:     "admin",
		Email:        adminEmail,
		FirstName:    "System",
		LastName:     "Administrator",
		Roles:        pq.StringArray{"admin"},
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin person: %s\n", admin.Email)
	return nil
}

// SeedCourses creates a starter catalogue of courses
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Courses already exist, skipping...")
		return nil
	}

	courses := []model.Course{
		{
			Curso:     "Ciência da Computação",
			Anos:      4,
			Abbr:      "CC",
			Variacoes: pq.StringArray{"Computação", "Computer Science"},
		},
		{
			Curso:     "Engenharia de Software",
			Anos:      4,
			Abbr:      "ES",
			Variacoes: pq.StringArray{"Software Engineering"},
		},
		{
			Curso:     "Sistemas de Informação",
			Anos:      4,
			Abbr:      "SI",
			Variacoes: pq.StringArray{"Information Systems"},
		},
		{
			Curso:     "Análise e Desenvolvimento de Sistemas",
			Anos:      2,
			Abbr:      "ADS",
			Variacoes: pq.StringArray{"TADS"},
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("Created %d courses\n", len(courses))
	return nil
}

// SeedTags creates the default content tags
func (s *Seeder) SeedTags() error {
	var count int64
	if err := s.db.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Tags already exist, skipping...")
		return nil
	}

	tags := []model.Tag{
		{TagName: "projeto", Description: "Projetos desenvolvidos pela comunidade", Color: "#3498db"},
		{TagName: "pesquisa", Description: "Artigos e trabalhos de pesquisa", Color: "#9b59b6"},
		{TagName: "evento", Description: "Eventos, palestras e workshops", Color: "#e67e22"},
		{TagName: "vaga", Description: "Oportunidades de estágio e emprego", Color: "#2ecc71"},
		{TagName: "tutorial", Description: "Guias e material de estudo", Color: "#1abc9c"},
	}

	if err := s.db.Create(&tags).Error; err != nil {
		return err
	}

	log.Printf("Created %d tags\n", len(tags))
	return nil
}
