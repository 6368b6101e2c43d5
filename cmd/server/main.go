package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/booking"
	"github.com/artishok/stand-booking/internal/config"
	"github.com/artishok/stand-booking/internal/database"
	"github.com/artishok/stand-booking/internal/handler"
	"github.com/artishok/stand-booking/internal/middleware"
	"github.com/artishok/stand-booking/internal/queue"
	"github.com/artishok/stand-booking/internal/repository"
	"github.com/artishok/stand-booking/internal/router"
)

func main() {
	// .env is optional; real deployments provide env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(database.Config{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Redis is optional. With a nil client the rate limiter, response
	// cache and token denylist all degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting, caching and token denylist disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	galleryRepo := repository.NewGalleryRepo(db)
	eventRepo := repository.NewEventRepo(db)
	hallMapRepo := repository.NewHallMapRepo(db)
	standRepo := repository.NewStandRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	denylist := repository.NewDenylistRepo(rdb)

	// Booking core: the repo serves as both the stand and booking store,
	// decision authority is resolved through gallery ownership.
	policy := access.NewOwnerPolicy(galleryRepo)
	bookingSvc := booking.NewService(bookingRepo, bookingRepo, policy, booking.SystemClock())

	// Handlers
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo, denylist)
	publicH := &handler.PublicHandler{Galleries: galleryRepo, Events: eventRepo, HallMaps: hallMapRepo, Stands: standRepo}
	artistH := handler.NewArtistBookingHandler(bookingSvc, bookingRepo)
	ownerGalleryH := handler.NewOwnerGalleryHandler(galleryRepo)
	ownerEventH := handler.NewOwnerEventHandler(galleryRepo, eventRepo)
	ownerStandH := handler.NewOwnerStandHandler(galleryRepo, eventRepo, hallMapRepo, standRepo)
	ownerBookingH := handler.NewOwnerBookingHandler(bookingSvc, bookingRepo, galleryRepo, eventRepo)
	adminH := handler.NewAdminGalleryHandler(galleryRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache keys on route and query only, so it is applied
	// to the unauthenticated browse routes and nowhere else.
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, denylist)
	router.RegisterPublic(e, publicH, artistH, browseCache)
	router.RegisterArtist(e, artistH, cfg.JWTSecret, denylist)
	router.RegisterOwner(e, ownerGalleryH, ownerEventH, ownerStandH, ownerBookingH, cfg.JWTSecret, denylist)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, denylist)

	// Consume booking decision events in the background. The consumer
	// reconnects on its own; it only returns on unrecoverable setup errors.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Error().Err(err).Msg("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
