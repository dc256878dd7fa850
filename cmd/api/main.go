package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tourbook/internal/config"
	"tourbook/internal/database"
	"tourbook/internal/middleware"
	"tourbook/internal/modules/booking"
	"tourbook/internal/modules/catalog"
	"tourbook/internal/modules/notification"
	"tourbook/internal/modules/payment"
	"tourbook/internal/modules/pricing"
	"tourbook/internal/modules/reservation"
	jwtsvc "tourbook/internal/pkg/jwt"
	"tourbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	catalogRepo := repository.NewCatalogRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	tierRepo := repository.NewPriceTierRepository(db)
	addOnRepo := repository.NewAddOnPriceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	intentRepo := repository.NewPaymentIntentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub, log.Printf)
	notificationHandler := notification.NewHandler(notificationService, hub)

	resolver := pricing.NewResolver(tierRepo, addOnRepo)
	commissions := pricing.NewCommissionResolver(hotelRepo)
	composer := pricing.NewComposer(resolver, commissions)

	registry, err := pricing.BuildRegistry(context.Background(), catalogRepo, resolver, composer)
	if err != nil {
		log.Fatal(err)
	}

	catalogService := catalog.NewService(catalogRepo, catalogRepo, hotelRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(reservationRepo, catalogRepo, hotelRepo, registry, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	reservationService := reservation.NewService(reservationRepo, hotelRepo, notificationService, cfg.CancelFeeWindow, log.Printf)
	reservationHandler := reservation.NewHandler(reservationService)

	var verifier payment.CallbackVerifier
	if key := os.Getenv("PAYMENT_SIGN_KEY"); key != "" {
		verifier = payment.NewHMACVerifier(key)
	}
	paymentService := payment.NewService(intentRepo, reservationRepo, reservationService, verifier, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := r.Group("/api/v1")
	{
		// public: booking form lookups, booking intake, payment legs
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)

		// admin: reservation lifecycle and the notification feed
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(j))
		{
			reservationHandler.RegisterRoutes(admin)
			notificationHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
