package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/app"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/config"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/controllers"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/middleware"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/routes"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/storage"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize billtracker-api: ", err)
	}
	defer application.Close()

	userRepo := repositories.NewUserRepository(application.DB)
	wardRepo := repositories.NewWardRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	deliveryRepo := repositories.NewDeliveryRepository(application.DB)
	uploadRepo := repositories.NewUploadRecordRepository(application.DB)

	if cfg.SeedDefaultAdmin {
		if err := app.SeedDefaultAdmin(context.Background(), userRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed default admin")
		}
	}

	photoStore, err := storage.NewGCSPhotoStore(context.Background(), cfg.GCSBucket)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize photo storage")
	}

	authService := services.NewAuthService(userRepo, cfg.RSAPrivateKey)
	importService := services.NewImportService(wardRepo, propRepo, uploadRepo, userRepo)
	propertyService := services.NewPropertyService(propRepo, wardRepo)
	deliveryService := services.NewDeliveryService(deliveryRepo, propRepo, photoStore)
	reportService := services.NewReportService(propRepo, wardRepo)

	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	importController := controllers.NewImportController(importService)
	propertiesController := controllers.NewPropertiesController(propertyService)
	deliveriesController := controllers.NewDeliveriesController(deliveryService)
	reportsController := controllers.NewReportsController(reportService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	// Any authenticated role
	secured.HandleFunc(routes.PropertiesBase, propertiesController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.WardsBase, propertiesController.ListWardsHandler).Methods(http.MethodGet)

	// Admin only
	admin := secured.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc(routes.PropertiesBulkUpload, importController.BulkUploadHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.UploadsBase, importController.ListUploadsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.UploadByID, importController.DeleteUploadHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.PropertiesBase, propertiesController.CreatePropertyHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.WardsBase, propertiesController.CreateWardHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.DeliveriesBase, deliveriesController.ListDeliveriesHandler).Methods(http.MethodGet)

	// Staff only
	staff := secured.NewRoute().Subrouter()
	staff.Use(middleware.RequireRole(models.RoleStaff))
	staff.HandleFunc(routes.DeliveriesBase, deliveriesController.RecordDeliveryHandler).Methods(http.MethodPost)

	// Admin or commissioner
	reporting := secured.NewRoute().Subrouter()
	reporting.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCommissioner))
	reporting.HandleFunc(routes.ReportsOverview, reportsController.OverviewHandler).Methods(http.MethodGet)

	// Nightly retention trim on the upload ledger.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		importService.TrimUploadHistory(context.Background())
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule upload-history trim")
	}
	scheduler.Start()
	defer scheduler.Stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	utils.Logger.Infof("Listening on :%s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, corsHandler); err != nil {
		utils.Logger.WithError(err).Fatal("Server stopped")
	}
}
