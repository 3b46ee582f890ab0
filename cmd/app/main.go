package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"ostrov/cmd"
	httpin "ostrov/internal/adapters/in/http"
	"ostrov/internal/adapters/out/postgres/grouprepo"
	"ostrov/internal/adapters/out/postgres/orderrepo"
	"ostrov/internal/adapters/out/postgres/settingsrepo"
	"ostrov/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	passHandler := app.CreateRunConsolidationPassCommandHandler()
	jobManager := jobs.NewJobManager(&passHandler, app.SettingsRepository(),
		app.HubRouter(), app.TariffProvider(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		PochtaPublicBaseURL:   goDotEnvVariable("POCHTA_PUBLIC_BASE_URL"),
		PochtaOtpravkaBaseURL: goDotEnvVariable("POCHTA_OTPRAVKA_BASE_URL"),
		PochtaAPIToken:        goDotEnvVariable("POCHTA_API_TOKEN"),
		PochtaLogin:           goDotEnvVariable("POCHTA_LOGIN"),
		PochtaPassword:        goDotEnvVariable("POCHTA_PASSWORD"),

		SenderPostalCode: goDotEnvVariable("SENDER_POSTAL_CODE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the intake endpoint maps to 409
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&grouprepo.GroupDTO{},
		&settingsrepo.SettingsDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateSubmitOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateUpdateGroupStatusCommandHandler(),
		app.CreateForceDispatchGroupCommandHandler(),
		app.CreateMarkGroupArrivedCommandHandler(),
		app.CreateUpdateGroupingSettingsCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetGroupsQueryHandler(),
		app.CreateGetGroupQueryHandler(),
		app.CreateGetGroupingSettingsQueryHandler(),
		app.TariffComparator(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
