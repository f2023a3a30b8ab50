package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-backoffice-api/internal/config"
	"go-backoffice-api/internal/handler"
	"go-backoffice-api/internal/middleware"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/cache"
	"go-backoffice-api/pkg/database"
	"go-backoffice-api/pkg/jwt"
	"go-backoffice-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	config.LoadEnvFile()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// 2. Setup Database
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 3. Seed the first admin
	seedAdmin(db, cfg)

	// 4. Optional redis cache
	ctx := context.Background()
	redisCache, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	}
	defer redisCache.Close()

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	loc := cfg.Location()
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	employeeRepo := repository.NewEmployeeRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	statusRepo := repository.NewShiftStatusRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	payrollRepo := repository.NewPayrollRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	resellerRepo := repository.NewResellerRepo(db)
	uspsRepo := repository.NewUSPSRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	authService := service.NewAuthService(employeeRepo, tokens, wsHub)
	employeeService := service.NewEmployeeService(employeeRepo)
	shiftService := service.NewShiftService(shiftRepo, attendanceRepo, wsHub, loc)
	attendanceService := service.NewAttendanceService(statusRepo, attendanceRepo, employeeRepo, shiftRepo, wsHub, loc)
	vendorService := service.NewVendorService(vendorRepo)
	expenseService := service.NewExpenseService(expenseRepo, vendorRepo)
	payrollService := service.NewPayrollService(payrollRepo, employeeRepo, uspsRepo, cfg.PayrollBaseSalary, service.BonusRule{
		Threshold: cfg.PayrollBonusThreshold,
		PerLabel:  cfg.PayrollBonusPerLabel,
	})
	orderService := service.NewOrderService(orderRepo, loc)
	resellerService := service.NewResellerService(resellerRepo, redisCache, loc)
	uspsService := service.NewUSPSService(uspsRepo, employeeRepo, redisCache, loc)
	paymentService := service.NewPaymentService(paymentRepo, wsHub)
	dashService := service.NewDashboardService(dashboardRepo, loc)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Dashboard:  handler.NewDashboardHandler(dashService, wsHub),
		Employee:   handler.NewEmployeeHandler(employeeService),
		Shift:      handler.NewShiftHandler(shiftService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Vendor:     handler.NewVendorHandler(vendorService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Payroll:    handler.NewPayrollHandler(payrollService),
		Order:      handler.NewOrderHandler(orderService),
		Reseller:   handler.NewResellerHandler(resellerService),
		USPS:       handler.NewUSPSHandler(uspsService),
		Payment:    handler.NewPaymentHandler(paymentService),
		WS:         handler.NewWSHandler(authService, wsHub),
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Back-office API v1.0",
	})

	// Middleware
	app.Use(recover.New())                // Panic recovery
	app.Use(middleware.RequestLogger())   // Logging request
	app.Use(cors.New(cors.Config{         // CORS
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ConnectedUsers()})
	})

	// 8. Routes
	handler.RegisterRoutes(app, handlers, middleware.RequireAuth(authService))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// seedAdmin creates the first admin account when no employee with the seed email exists.
func seedAdmin(db *gorm.DB, cfg config.Config) {
	employeeRepo := repository.NewEmployeeRepo(db)
	email := strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail))

	_, err := employeeRepo.FindByEmail(email)
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Msg("Failed to look up seed admin")
		return
	}

	admin := &model.Employee{
		Email:           email,
		FullName:        "Administrator",
		Role:            model.RoleAdmin,
		AllowedSessions: model.StringList(model.KnownSessions),
		BaseSalary:      cfg.PayrollBaseSalary,
	}
	admin.IsActive = true
	admin.Audit("system")

	if err := admin.SetPassword(cfg.SeedAdminPassword); err != nil {
		log.Warn().Err(err).Msg("Failed to hash admin password")
		return
	}

	if err := employeeRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("Failed to create admin")
		return
	}
	log.Info().Str("email", email).Msg("Admin account created")
}
