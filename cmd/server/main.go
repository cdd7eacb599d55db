package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // loads .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"    // availability and allocation engine
    "github.com/iliyamo/restaurant-table-reservation/internal/config"     // internal config loader
    "github.com/iliyamo/restaurant-table-reservation/internal/database"   // MySQL connection helper
    "github.com/iliyamo/restaurant-table-reservation/internal/handler"    // HTTP handlers
    "github.com/iliyamo/restaurant-table-reservation/internal/queue"      // RabbitMQ consumer
    "github.com/iliyamo/restaurant-table-reservation/internal/repository" // data access layer
    "github.com/iliyamo/restaurant-table-reservation/internal/router"     // route registration
    "github.com/iliyamo/restaurant-table-reservation/internal/service"    // event publisher
)

func main() {
    // Load .env when present; real deployments set env vars directly.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connect failed: %v", err)
    }
    defer db.Close()

    // Nil client disables caching and rate limiting; the API still works.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }

    restaurants := repository.NewRestaurantRepo(db)
    reservations := repository.NewReservationRepo(db)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)

    planner := booking.NewPlanner(restaurants, reservations)
    committer := booking.NewCommitter(restaurants, reservations)

    searchHandler := handler.NewSearchHandler(planner)
    reservationHandler := handler.NewReservationHandler(committer, reservations, service.NewPublisher())
    authHandler := handler.NewAuthHandler(cfg, users, tokens)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterSearch(e, searchHandler, rdb)
    router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)

    // The consumer appends confirmed bookings to logs/reservation.log
    // and reconnects on broker failures.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
