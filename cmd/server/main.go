package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	cronv3 "github.com/robfig/cron/v3"

	"crm-service/internal/api/handlers"
	"crm-service/internal/cache"
	crmcron "crm-service/internal/cron"
	"crm-service/internal/database"
	"crm-service/internal/graph"
	"crm-service/internal/repository"
	"crm-service/internal/service"
)

func main() {
	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	customers := repository.NewCustomerRepository(pool)
	orders := repository.NewOrderRepository(pool)
	products := repository.NewProductRepository(pool)

	rdb, err := cache.ConnectRedis(cfg)
	if err != nil {
		log.Printf("redis unavailable, continuing without product cache: %v", err)
	} else {
		defer rdb.Close()
		products = cache.NewCachedProductRepository(products, rdb)
	}

	svc := service.New(customers, products, orders)

	schema, err := graph.NewSchema(svc)
	if err != nil {
		log.Fatal("failed to build graphql schema: ", err)
	}

	gqlHandler := handlers.NewGraphQLHandler(schema)
	healthHandler := handlers.NewHealthHandler(pool)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Post("/graphql", gqlHandler.ServeGraphQL)
	r.Get("/healthz", healthHandler.Healthz)

	heartbeatLog, err := crmcron.NewFileLogger(cfg.HeartbeatLogFile, 0)
	if err != nil {
		log.Fatal("failed to open heartbeat log: ", err)
	}
	lowStockLog, err := crmcron.NewFileLogger(cfg.LowStockLogFile, log.LstdFlags)
	if err != nil {
		log.Fatal("failed to open low-stock log: ", err)
	}
	remindersLog, err := crmcron.NewFileLogger(cfg.OrderRemindersLogFile, log.LstdFlags)
	if err != nil {
		log.Fatal("failed to open order reminders log: ", err)
	}

	jobs := crmcron.NewJobs(svc, cfg.GraphQLURL, heartbeatLog, lowStockLog, remindersLog)

	scheduler := cronv3.New(cronv3.WithChain(cronv3.Recover(cronv3.DefaultLogger)))
	if _, err := scheduler.AddFunc(cfg.HeartbeatSchedule, jobs.Heartbeat); err != nil {
		log.Fatal("failed to schedule heartbeat: ", err)
	}
	if _, err := scheduler.AddFunc(cfg.LowStockSchedule, jobs.UpdateLowStock); err != nil {
		log.Fatal("failed to schedule low-stock update: ", err)
	}
	if _, err := scheduler.AddFunc(cfg.OrderRemindersSchedule, jobs.OrderReminders); err != nil {
		log.Fatal("failed to schedule order reminders: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server failed: ", err)
	}
}
