package main

import (
	"fmt"
	"log/slog"
	"os"

	"merchflow/cmd"
	httpin "merchflow/internal/adapters/in/http"
	"merchflow/internal/adapters/out/postgres/auditrepo"
	"merchflow/internal/adapters/out/postgres/designjobrepo"
	"merchflow/internal/adapters/out/postgres/fulfillmentrepo"
	"merchflow/internal/adapters/out/postgres/membershiprepo"
	"merchflow/internal/adapters/out/postgres/notificationrepo"
	"merchflow/internal/adapters/out/postgres/orderrepo"
	"merchflow/internal/adapters/out/postgres/workorderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err = migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&designjobrepo.DesignJobDTO{},
		&workorderrepo.WorkOrderDTO{},
		&fulfillmentrepo.FulfillmentDTO{},
		&auditrepo.AuditEntryDTO{},
		&membershiprepo.MembershipDTO{},
		&notificationrepo.NotificationDTO{},
	); err != nil {
		return err
	}

	return auditrepo.InstallAppendOnlyTrigger(gormDB)
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(app.CreateHTTPHandlers(), app.Dispatcher(), []byte(configs.JWTSecret))
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
