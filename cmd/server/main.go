package main // Entry point package

import (
    "context"
    "log" // Logging library

    "github.com/joho/godotenv" // Loads .env files in development
    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/config"
    "github.com/mkarimov/production-coverage/internal/database"
    "github.com/mkarimov/production-coverage/internal/handler"
    "github.com/mkarimov/production-coverage/internal/queue"
    "github.com/mkarimov/production-coverage/internal/repository"
    "github.com/mkarimov/production-coverage/internal/router"
    "github.com/mkarimov/production-coverage/internal/scheduler"
    "github.com/mkarimov/production-coverage/internal/timeline"
)

func main() {
    // Load a local .env in development; in production the variables
    // come from the environment and a missing file is not an error.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // One repository per aggregate, all sharing the pool.
    projects := repository.NewProjectRepo(db)
    events := repository.NewEventRepo(db)
    shots := repository.NewShotRequestRepo(db)
    personnel := repository.NewPersonnelRepo(db)
    jobs := repository.NewIngestJobRepo(db)

    h := handler.NewAppHandler(projects, events, shots, personnel, jobs)
    h.Timezone = cfg.Timezone
    h.StaleJobAfter = cfg.StaleJobAfter
    h.AgentJWTSecret = cfg.AgentJWTSecret
    h.AgentProvisionKeyHash = cfg.AgentProvisionKeyHash
    h.AgentTokenTTL = cfg.AgentTokenTTL
    h.Layout = timeline.LayoutConfig{
        PixelsPerMinute:   cfg.PixelsPerMinute,
        MinVisibleMinutes: cfg.MinVisibleMinutes,
    }

    // Redis backs the response cache, the rate limiter and the
    // scheduler tick.
    rdb := config.NewRedisClient()

    // Consume agent job reports from the broker.  The consumer
    // reconnects with backoff forever, so a broker restart only delays
    // reconciliation.
    go func() {
        if err := queue.StartIngestConsumer(func(ev queue.IngestReportEvent) error {
            return h.ApplyAgentReport(context.Background(), ev)
        }); err != nil {
            log.Printf("[QUEUE] ingest consumer stopped: %v", err)
        }
    }()

    // Expire cached schedule views once a minute so the live status
    // list tracks the wall clock even when nobody writes.
    cacheCfg := config.LoadCacheConfig()
    sched := scheduler.New(rdb, cacheCfg.Prefix)
    if err := sched.Start(); err != nil {
        log.Printf("[SCHED] not started: %v", err)
    }
    defer sched.Stop()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAPI(e, h, cfg.AgentJWTSecret, rdb)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
