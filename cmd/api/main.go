package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/narenkm/societyhub/docs"
	"github.com/narenkm/societyhub/internal/audit"
	"github.com/narenkm/societyhub/internal/config"
	"github.com/narenkm/societyhub/internal/database"
	"github.com/narenkm/societyhub/internal/notification"
	"github.com/narenkm/societyhub/internal/payment"
	"github.com/narenkm/societyhub/internal/payment/recalc"
	"github.com/narenkm/societyhub/internal/resident"
	mw "github.com/narenkm/societyhub/pkg/middleware"
)

// @title        SocietyHub API
// @version      1.0
// @description  Residential welfare association backend: resident registry, monthly maintenance tracking and carry-forward recalculation
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Resident feature
	residentRepo := resident.NewRepository(db)
	residentService := resident.NewService(residentRepo)
	residentHandler := resident.NewHandler(residentService)

	// Notification feature (also the engine's status-change sink)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Audit feature (also the engine's audit sink)
	auditRepo := audit.NewRepository(db)
	auditService := audit.NewService(auditRepo)
	auditHandler := audit.NewHandler(auditService)

	// Payment feature with the recalculation engine injected
	paymentRepo := payment.NewRepository(db)
	engine := recalc.NewEngine(
		payment.NewRecalcStore(paymentRepo),
		resident.NewRecalcStore(residentRepo),
		auditService,
		notificationService,
	)
	paymentService := payment.NewService(paymentRepo, residentRepo, engine, notificationService, cfg.DueDay)
	paymentHandler := payment.NewHandler(paymentService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.ActorMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/residents", residentHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
		r.Mount("/audit", auditHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
