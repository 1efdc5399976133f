package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/car-rental-backoffice/internal/auth"
	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/handlers"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"github.com/ukydev/car-rental-backoffice/internal/notify"
	"github.com/ukydev/car-rental-backoffice/internal/realtime"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "car_rental"
	}
	collections := db.NewCollections(client.Database(dbName))

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	authMW := middleware.NewAuthMiddleware(authService)
	rateLimit := middleware.NewRateLimitMiddleware().RateLimit(100, 60)

	hub := realtime.NewHub(authService)
	recorder := notify.NewRecorder(collections.Activity)
	dispatcher := notify.NewDispatcher(collections.Notifications)

	authHandler := handlers.NewAuthHandler(authService, collections.Users)
	carsHandler := handlers.NewCarsHandler(collections.Cars, collections.Promotions, recorder, dispatcher, hub)
	promotionsHandler := handlers.NewPromotionsHandler(collections.Promotions, dispatcher, hub)
	contentHandler := handlers.NewContentHandler(collections.Content, recorder, dispatcher, hub)
	faqHandler := handlers.NewFAQHandler(collections.FAQs)
	feedbackHandler := handlers.NewFeedbackHandler(collections.Feedback)
	notificationsHandler := handlers.NewNotificationsHandler(collections.Notifications)
	activityHandler := handlers.NewActivityHandler(collections.Activity)

	authed := func(h http.HandlerFunc) http.Handler {
		return authMW.Authenticate(h)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return authMW.Authenticate(authMW.RequireStaff(h))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW.Authenticate(authMW.RequireRole(models.RoleAdmin)(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.Handle("GET /api/auth/profile", authed(authHandler.GetProfile))
	mux.Handle("PUT /api/auth/profile", authed(authHandler.UpdateProfile))

	mux.HandleFunc("GET /api/cars", carsHandler.List)
	mux.HandleFunc("GET /api/cars/{id}", carsHandler.Get)
	mux.Handle("POST /api/cars", staff(carsHandler.Create))
	mux.Handle("PUT /api/cars/{id}", staff(carsHandler.Update))
	mux.Handle("PATCH /api/cars/{id}/archive", staff(carsHandler.Archive))
	mux.Handle("PATCH /api/cars/{id}/unarchive", staff(carsHandler.Unarchive))

	mux.HandleFunc("GET /api/promotions", promotionsHandler.ListPublic)
	mux.Handle("GET /api/promotions/admin", admin(promotionsHandler.ListAdmin))
	mux.Handle("POST /api/promotions", admin(promotionsHandler.Create))
	mux.Handle("PUT /api/promotions/{id}", admin(promotionsHandler.Update))
	mux.Handle("DELETE /api/promotions/{id}", admin(promotionsHandler.Delete))

	mux.HandleFunc("GET /api/content/types", contentHandler.Types)
	mux.HandleFunc("GET /api/content/{type}", contentHandler.Get)
	mux.Handle("PUT /api/content/{type}", staff(contentHandler.Update))

	mux.HandleFunc("GET /api/faqs", faqHandler.ListPublic)
	mux.Handle("GET /api/faqs/admin", staff(faqHandler.ListAdmin))
	mux.Handle("POST /api/faqs", staff(faqHandler.Create))
	mux.Handle("PUT /api/faqs/{id}", staff(faqHandler.Update))
	mux.Handle("DELETE /api/faqs/{id}", staff(faqHandler.Delete))

	mux.HandleFunc("GET /api/feedback/public", feedbackHandler.ListPublic)
	mux.Handle("POST /api/feedback", authed(feedbackHandler.Create))
	mux.Handle("GET /api/feedback/mine", authed(feedbackHandler.ListMine))
	mux.Handle("GET /api/feedback", admin(feedbackHandler.ListAdmin))
	mux.Handle("PATCH /api/feedback/{id}/approve", admin(feedbackHandler.Approve))
	mux.Handle("DELETE /api/feedback/{id}", admin(feedbackHandler.Delete))

	mux.Handle("GET /api/notifications", authed(notificationsHandler.List))
	mux.Handle("PATCH /api/notifications/{id}/read", authed(notificationsHandler.MarkRead))

	mux.Handle("GET /api/activity", admin(activityHandler.List))

	mux.Handle("GET /ws", hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, rateLimit(mux)))
}
