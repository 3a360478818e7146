package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"worksafe/internal/service"
	"worksafe/internal/transport/rest/handler"
	"worksafe/internal/transport/rest/middleware"
	"worksafe/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	SurveyService       *service.SurveyService
	AnalysisService     *service.AnalysisService
	ReportService       *service.ReportService
	NotificationService *service.NotificationService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	notificationHandler := handler.NewNotificationHandler(c.NotificationService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/notifications", wsHandler.NotificationsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/submissions", surveyHandler.Submit).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{submissionId}", surveyHandler.GetSubmission).Methods("GET", "OPTIONS")

	adminRoutes.HandleFunc("/submissions/{submissionId}/analyze", analysisHandler.Analyze).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/members/{memberId}/token", authHandler.MemberToken).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/reports/{year}", reportHandler.GetReport).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/reports/{year}/summary", reportHandler.GetSummary).Methods("GET", "OPTIONS")

	// Member routes (require member auth)
	memberRoutes := v1.NewRoute().Subrouter()
	memberRoutes.Use(authMW.RequireMember)

	memberRoutes.HandleFunc("/notifications", notificationHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
