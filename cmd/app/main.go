package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres/eventlog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)

	app, err := cmd.NewCompositionRoot(context.Background(), configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer app.Stop()

	if configs.StatsJobEnabled {
		jobManager := app.CreateJobManager()
		if jobErr := jobManager.StartAll(); jobErr != nil {
			log.Fatalf("Failed to start jobs: %v", jobErr)
		}
		defer jobManager.StopAll()
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:         envString("HTTP_PORT", "8080"),
		DBHost:           envString("DB_HOST", "localhost"),
		DBPort:           envString("DB_PORT", "5432"),
		DBUser:           envString("DB_USER", "postgres"),
		DBPassword:       envString("DB_PASSWORD", "postgres"),
		DBName:           envString("DB_NAME", "ordering"),
		DBSslMode:        envString("DB_SSLMODE", "disable"),
		AskTimeout:       time.Duration(envInt("ASK_TIMEOUT_MS", 3000)) * time.Millisecond,
		MailboxSize:      envInt("MAILBOX_SIZE", 256),
		FulfillmentDelay: time.Duration(envInt("FULFILLMENT_DELAY_MS", 0)) * time.Millisecond,
		StatsJobEnabled:  envBool("STATS_JOB_ENABLED", true),
	}
	return config
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&eventlog.EventDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
