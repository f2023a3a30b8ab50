package main

import (
	"flag"
	"strings"

	"go-backoffice-api/internal/config"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/database"
	"go-backoffice-api/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "", "employee email (defaults to SEED_ADMIN_EMAIL)")
	password := flag.String("password", "", "new password (defaults to SEED_ADMIN_PASSWORD)")
	reactivate := flag.Bool("reactivate", false, "also set is_active=true")
	flag.Parse()

	// 1. Load Env
	config.LoadEnvFile()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if *email == "" {
		*email = cfg.SeedAdminEmail
	}
	if *password == "" {
		*password = cfg.SeedAdminPassword
	}
	if len(*password) < 6 {
		log.Fatal().Msg("Password must be at least 6 characters")
	}

	// 2. Setup Database
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	employeeRepo := repository.NewEmployeeRepo(db)

	// 3. Find employee
	employee, err := employeeRepo.FindByEmail(strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("Employee not found in database")
	}

	// 4. Hash new password
	if err := employee.SetPassword(*password); err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	// 5. Update
	if err := employeeRepo.UpdatePassword(employee.ID, employee.Password); err != nil {
		log.Fatal().Err(err).Msg("Failed to update password in DB")
	}
	if *reactivate && !employee.IsActive {
		employee.IsActive = true
		employee.DeletedAt = nil
		employee.DeletedBy = ""
		employee.UpdatedBy = "reset-password"
		if err := employeeRepo.Update(employee); err != nil {
			log.Fatal().Err(err).Msg("Failed to reactivate employee")
		}
	}

	log.Info().Str("email", employee.Email).Bool("active", employee.IsActive).Msg("Password has been reset")
}
