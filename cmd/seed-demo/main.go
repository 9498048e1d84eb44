package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/database"
	"github.com/eduadmin/eduadmin-backend/internal/logger"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/eduadmin/eduadmin-backend/internal/service"
)

func ptr[T any](v T) *T { return &v }

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	packageService := service.NewPackageService(packageRepo, log)
	studentService := service.NewStudentService(studentRepo, packageRepo)
	classService := service.NewClassService(classRepo, userRepo, rdb, log)

	fmt.Println("=== Seeding demo data ===")

	// ─── Packages ──────────────────────────────────────────────────────
	packages := []*model.Package{
		{Name: "Paket Dasar", Hours: 8, Price: ptr(800000.0), Description: ptr("8 jam belajar privat")},
		{Name: "Paket Reguler", Hours: 16, Price: ptr(1500000.0), Description: ptr("16 jam belajar privat")},
		{Name: "Paket Intensif", Hours: 32, Price: ptr(2800000.0), Description: ptr("32 jam belajar privat")},
	}
	for _, p := range packages {
		if err := packageService.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("Failed to create package")
		}
	}
	fmt.Printf("Created %d packages\n", len(packages))

	// ─── Staff ─────────────────────────────────────────────────────────
	admin := &model.User{Email: "admin@eduadmin.local", Name: "Admin Utama", Role: model.RoleAdmin}
	if err := userService.Create(ctx, admin, "admin123"); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	teacherNames := []string{"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati"}
	teachers := make([]*model.User, 0, len(teacherNames))
	for i, name := range teacherNames {
		t := &model.User{
			Email: fmt.Sprintf("teacher%d@eduadmin.local", i+1),
			Name:  name,
			Role:  model.RoleTeacher,
		}
		if err := userService.Create(ctx, t, "teacher123"); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("Failed to create teacher")
		}
		teachers = append(teachers, t)
	}
	fmt.Printf("Created 1 admin and %d teachers\n", len(teachers))

	// ─── Students ──────────────────────────────────────────────────────
	studentNames := []string{
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Kiki Fatmala", "Lukman Hakim", "Maya Septiana",
	}
	levels := []model.StudentLevel{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced}

	students := make([]*model.Student, 0, len(studentNames))
	for i, name := range studentNames {
		s := &model.Student{
			Name:              name,
			Email:             ptr(fmt.Sprintf("student%d@example.com", i+1)),
			Age:               ptr(8 + i),
			Level:             levels[i%len(levels)],
			PackageID:         &packages[i%len(packages)].ID,
			AssignedTeacherID: &teachers[i%len(teachers)].ID,
		}
		if err := studentService.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("Failed to create student")
		}
		students = append(students, s)
	}
	fmt.Printf("Created %d students\n", len(students))

	// ─── Classes ───────────────────────────────────────────────────────
	// One upcoming class per student, one hour each, spread over the week.
	created := 0
	for i, s := range students {
		start := time.Now().Add(time.Duration(24+i*6) * time.Hour).Truncate(time.Hour)
		class := &model.Class{
			StudentID: s.ID,
			TeacherID: *s.AssignedTeacherID,
			Subject:   ptr("Matematika"),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Duration:  1.0,
		}
		if err := classService.Create(ctx, class); err != nil {
			fmt.Printf("Error creating class for %s: %v\n", s.Name, err)
			continue
		}
		created++
	}
	fmt.Printf("Created %d classes\n", created)

	fmt.Println("\nSeed completed!")
	fmt.Println("Login: admin@eduadmin.local / admin123")
}
