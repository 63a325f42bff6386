// Package main is the entry point of the Seyone Academy API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/internal/handler"
	"seyone-academy-go/internal/middleware"
	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/pipeline"
	"seyone-academy-go/internal/repository"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/database"
	"seyone-academy-go/pkg/es"
	"seyone-academy-go/pkg/events"
	"seyone-academy-go/pkg/kafka"
	"seyone-academy-go/pkg/kv"
	"seyone-academy-go/pkg/llm"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/mail"
	"seyone-academy-go/pkg/storage"
	"seyone-academy-go/pkg/token"
	"seyone-academy-go/pkg/validate"
)

func main() {
	// 1. Configuration
	configPath := "./configs/config.yaml"
	if p := os.Getenv("SEYONE_CONFIG"); p != "" {
		configPath = p
	}
	config.Init(configPath)
	cfg := config.Conf

	// 2. Logger
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger initialised")

	validate.RegisterWithGin()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	// 3. Redis, needed for the redis storage driver and for Kafka retry counters.
	var rdb *redis.Client
	if cfg.Storage.Driver == "redis" || cfg.Kafka.Enabled {
		client, err := database.InitRedis(rootCtx, cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		switch {
		case err == nil:
			rdb = client
			defer rdb.Close()
		case cfg.Storage.Driver == "redis":
			log.Fatalf("redis is required by the storage driver: %v", err)
		default:
			log.Warnf("redis unavailable, Kafka retries will not be counted: %v", err)
		}
	}

	// 4. Local user store
	var store kv.Store
	switch cfg.Storage.Driver {
	case "redis":
		store = kv.NewRedisStore(rdb, cfg.Storage.KeyPrefix)
	case "", "bolt":
		boltStore, err := kv.OpenBolt(cfg.Storage.BoltPath)
		if err != nil {
			log.Fatalf("failed to open local storage: %v", err)
		}
		store = boltStore
	default:
		log.Fatalf("unknown storage driver %q", cfg.Storage.Driver)
	}
	defer store.Close()

	// 5. Optional backends
	var enquiryRepo repository.EnquiryRepository
	if cfg.Database.MySQL.Enabled {
		db, err := database.InitMySQL(cfg.Database.MySQL.DSN)
		if err != nil {
			log.Fatalf("failed to connect MySQL: %v", err)
		}
		if err := database.AutoMigrate(db, &model.ContactEnquiry{}); err != nil {
			log.Fatalf("failed to migrate MySQL: %v", err)
		}
		enquiryRepo = repository.NewEnquiryRepository(db)
	}

	var searcher service.CourseSearcher
	if cfg.Elasticsearch.Enabled {
		index, err := es.NewCourseIndex(cfg.Elasticsearch)
		if err == nil {
			err = index.IndexCourses(rootCtx, service.Catalog())
		}
		if err != nil {
			log.Errorf("elasticsearch unavailable, using in-memory course search: %v", err)
		} else {
			searcher = index
		}
	}

	var objects storage.ObjectStore
	if cfg.MinIO.Enabled {
		minioStore, err := storage.NewMinioStore(rootCtx, cfg.MinIO)
		if err != nil {
			log.Errorf("minio unavailable, certificates and avatars stay inline: %v", err)
		} else {
			objects = minioStore
		}
	}

	var publisher service.EnquiryPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		defer producer.Close()
		publisher = producer
		if enquiryRepo != nil {
			go kafka.StartConsumer(rootCtx, cfg.Kafka, pipeline.NewEnquiryProcessor(enquiryRepo), rdb)
		} else {
			log.Warnf("kafka is enabled without MySQL; enquiries are published but not archived")
		}
	}

	relay, err := mail.NewRelay(cfg.Mail)
	if err != nil {
		log.Fatalf("failed to configure mail relay: %v", err)
	}

	// 6. Services
	bus := events.NewBus()
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ClientTokenExpireDays)
	userService := service.NewUserService(repository.NewUserRepository(store), bus, cfg.Auth.SimulatedLatency)
	advisor := service.NewAdvisor(llm.NewClient(cfg.LLM), cfg.LLM.Prompt.SystemInstruction)
	advisorService := service.NewAdvisorService(advisor, repository.NewAdvisorSessionRepository[*service.AdvisorSession]())
	catalogService := service.NewCatalogService(searcher)
	dashboardService := service.NewDashboardService(service.DashboardOptions{
		SendDelay:  cfg.Dashboard.SendDelay,
		ReplyDelay: cfg.Dashboard.ReplyDelay,
	}, objects)
	contactService := service.NewContactService(relay, catalogService, publisher)
	contentService := service.NewContentService()
	adminService := service.NewAdminService(userService, enquiryRepo, advisorService)

	bus.Subscribe(func(e events.Event) {
		log.Infow("auth state changed", "kind", e.Kind, "clientId", e.ClientID)
	})
	bus.Subscribe(func(e events.Event) {
		if e.Kind == events.KindLoggedOut {
			dashboardService.Drop(e.ClientID)
		}
	})

	if cfg.Advisor.SweepInterval > 0 {
		go advisorService.RunSweeper(rootCtx, cfg.Advisor.SweepInterval, cfg.Advisor.SessionTTL)
	}

	// 7. Router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	requireLogin := middleware.RequireLogin(userService)

	apiV1 := r.Group("/api/v1")
	apiV1.Use(middleware.ClientIdentity(jwtManager, cfg.JWT.CookieSecure))
	{
		userHandler := handler.NewUserHandler(userService, bus)
		users := apiV1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", userHandler.Logout)
			users.GET("/me", userHandler.Me)
		}
		apiV1.GET("/auth/events", userHandler.Events)

		advisorHandler := handler.NewAdvisorHandler(advisorService)
		advisorGroup := apiV1.Group("/advisor/sessions")
		{
			advisorGroup.POST("", advisorHandler.Open)
			advisorGroup.GET("/:id", advisorHandler.Get)
			advisorGroup.POST("/:id/messages", advisorHandler.Send)
			advisorGroup.POST("/:id/starters/:index", advisorHandler.SendStarter)
			advisorGroup.DELETE("/:id", advisorHandler.Close)
			advisorGroup.GET("/:id/ws", advisorHandler.Socket)
		}

		courseHandler := handler.NewCourseHandler(catalogService)
		courses := apiV1.Group("/courses")
		{
			courses.GET("", courseHandler.List)
			courses.GET("/levels", courseHandler.Levels)
			courses.GET("/:id", courseHandler.Get)
		}

		contactHandler := handler.NewContactHandler(contactService)
		apiV1.POST("/contact", contactHandler.Submit)
		apiV1.GET("/contact/info", contactHandler.Info)

		contentHandler := handler.NewContentHandler(contentService)
		content := apiV1.Group("/content")
		{
			content.GET("/home", contentHandler.Home)
			content.GET("/about", contentHandler.About)
			content.GET("/navigation", contentHandler.Navigation)
		}

		dashboardHandler := handler.NewDashboardHandler(dashboardService)
		dashboard := apiV1.Group("/dashboard")
		dashboard.Use(requireLogin)
		{
			dashboard.GET("", dashboardHandler.View)
			dashboard.POST("/notifications/:id/read", dashboardHandler.MarkRead)
			dashboard.POST("/notifications/read-all", dashboardHandler.MarkAllRead)
			dashboard.POST("/messages", dashboardHandler.SendMessage)
			dashboard.POST("/instructors/:index/ping", dashboardHandler.Ping)
			dashboard.GET("/calendar", dashboardHandler.Calendar)
			dashboard.GET("/certificates/:courseId", dashboardHandler.Certificate)
			dashboard.PUT("/avatar", dashboardHandler.SetPresetAvatar)
			dashboard.POST("/avatar", dashboardHandler.UploadAvatar)
		}

		adminHandler := handler.NewAdminHandler(adminService)
		admin := apiV1.Group("/admin")
		admin.Use(requireLogin, middleware.AdminAuthMiddleware(cfg.Auth.AdminEmails))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/enquiries", adminHandler.ListEnquiries)
			admin.GET("/advisor/sessions", adminHandler.AdvisorSessions)
		}
	}
	r.NoRoute(handler.ShellFallback(cfg.Server.StaticDir))

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server...")

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Widgets are unmounted first; late replies are discarded.
	advisorService.Shutdown()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown failed: %v", err)
	}
	cancelRoot()
	log.Info("server stopped")
}
