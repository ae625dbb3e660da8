package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/PrajithS20/SENTINEL/internal/agent"
	"github.com/PrajithS20/SENTINEL/internal/api"
	"github.com/PrajithS20/SENTINEL/internal/events"
	"github.com/PrajithS20/SENTINEL/internal/llm"
	"github.com/PrajithS20/SENTINEL/internal/pairing"
	"github.com/PrajithS20/SENTINEL/internal/repository"
	"github.com/PrajithS20/SENTINEL/internal/s3"
	"github.com/PrajithS20/SENTINEL/internal/service"
	"github.com/PrajithS20/SENTINEL/internal/tracing"
	_ "github.com/PrajithS20/SENTINEL/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("sentinel-server")

	shutdownTracer, err := tracing.InitTracerProvider(context.Background(), "sentinel-server")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	var eventPublisher events.EventPublisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		log.Println("NATS_URL not set, events will not be published")
		eventPublisher = events.NoopPublisher{}
	} else {
		eventPublisher, err = events.NewNatsPublisher(natsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		log.Println("Successfully connected to NATS.")
	}

	llmClient := llm.NewClient(
		getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		os.Getenv("LLM_API_KEY"),
		getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
	)
	searchClient := agent.NewSearchClient(
		getEnv("TAVILY_ENDPOINT", "https://api.tavily.com/search"),
		os.Getenv("TAVILY_API_KEY"),
	)

	mirrorAgent := agent.NewMirrorAgent(llmClient)
	labAgent := agent.NewLabAgent(llmClient)
	marketAgent := agent.NewMarketAgent(llmClient, searchClient)
	foundryAgent := agent.NewFoundryAgent(llmClient)
	tutorAgent := agent.NewTutorAgent(llmClient)

	avatarPresigner, err := s3.NewAvatarPresigner(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3 presigner: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	goalRepo := repository.NewPostgresGoalRepository(db)
	activityRepo := repository.NewPostgresActivityRepository(db)
	chatRepo := repository.NewPostgresChatRepository(db)
	channelRepo := repository.NewPostgresChannelRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo)
	profileService := service.NewProfileService(profileRepo, projectRepo, mirrorAgent, labAgent, marketAgent)
	projectService := service.NewProjectService(projectRepo, profileRepo, mirrorAgent, foundryAgent, eventPublisher)
	chatService := service.NewChatService(chatRepo, profileRepo, tutorAgent)
	communityService := service.NewCommunityService(channelRepo, eventPublisher)
	goalService := service.NewGoalService(goalRepo)
	activityService := service.NewActivityService(activityRepo)

	pairingRegistry := pairing.NewRegistry(pairing.DefaultTTL)

	authHandler := api.NewAuthHandler(authService, avatarPresigner)
	profileHandler := api.NewProfileHandler(profileService)
	projectHandler := api.NewProjectHandler(projectService)
	chatHandler := api.NewChatHandler(chatService)
	communityHandler := api.NewCommunityHandler(communityService)
	goalHandler := api.NewGoalHandler(goalService, activityService)
	pairingHandler := api.NewPairingHandler(pairingRegistry, projectService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "sentinel-server"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", api.AuthMiddleware(authService), authHandler.Logout)

	userRoutes := v1.Group("/users")
	userRoutes.Use(api.AuthMiddleware(authService))
	userRoutes.Get("/me", authHandler.Me)
	userRoutes.Post("/me/avatar-upload-url", authHandler.GetAvatarUploadURL)
	userRoutes.Put("/me/avatar", authHandler.SetAvatar)

	profileRoutes := v1.Group("/profiles")
	profileRoutes.Use(api.AuthMiddleware(authService))
	profileRoutes.Post("/analyze", profileHandler.Analyze)
	profileRoutes.Get("/latest", profileHandler.Latest)
	profileRoutes.Get("/history", profileHandler.History)
	profileRoutes.Get("/growth", profileHandler.Growth)
	profileRoutes.Get("/job-matches", profileHandler.JobMatches)
	profileRoutes.Get("/live-feeds", profileHandler.LiveFeeds)
	profileRoutes.Put("/display", profileHandler.UpdateDisplay)
	profileRoutes.Get("/:id", profileHandler.GetByID)
	profileRoutes.Delete("/:id", profileHandler.Delete)

	projectRoutes := v1.Group("/projects")
	projectRoutes.Use(api.AuthMiddleware(authService))
	projectRoutes.Post("/", projectHandler.Start)
	projectRoutes.Get("/", projectHandler.Workspace)
	projectRoutes.Get("/all", projectHandler.ListAll)
	projectRoutes.Get("/:id", projectHandler.Get)
	projectRoutes.Post("/:id/unlock", projectHandler.Unlock)
	projectRoutes.Put("/:id/code", projectHandler.SyncCode)
	projectRoutes.Delete("/:id", projectHandler.Delete)
	projectRoutes.Post("/:id/architect", projectHandler.ArchitectChat)
	projectRoutes.Post("/:id/validate", projectHandler.ValidateCode)
	projectRoutes.Post("/:id/pair", pairingHandler.CreateCode)

	v1.Get("/pair/:code", api.AuthMiddleware(authService), pairingHandler.Resolve)

	chatRoutes := v1.Group("/chat")
	chatRoutes.Use(api.AuthMiddleware(authService))
	chatRoutes.Post("/sessions", chatHandler.CreateSession)
	chatRoutes.Get("/sessions", chatHandler.ListSessions)
	chatRoutes.Post("/sessions/:id/messages", chatHandler.SendMessage)
	chatRoutes.Get("/sessions/:id/messages", chatHandler.History)
	chatRoutes.Put("/sessions/:id", chatHandler.RenameSession)
	chatRoutes.Delete("/sessions/:id", chatHandler.DeleteSession)

	communityRoutes := v1.Group("/community")
	communityRoutes.Use(api.AuthMiddleware(authService))
	communityRoutes.Get("/channels", communityHandler.ListChannels)
	communityRoutes.Get("/channels/:name/messages", communityHandler.Messages)
	communityRoutes.Post("/channels/:name/messages", communityHandler.Post)

	goalRoutes := v1.Group("/goals")
	goalRoutes.Use(api.AuthMiddleware(authService))
	goalRoutes.Post("/", goalHandler.Create)
	goalRoutes.Get("/", goalHandler.List)
	goalRoutes.Put("/:id/toggle", goalHandler.Toggle)
	goalRoutes.Delete("/:id", goalHandler.Delete)

	activityRoutes := v1.Group("/activity")
	activityRoutes.Use(api.AuthMiddleware(authService))
	activityRoutes.Post("/", goalHandler.LogActivity)
	activityRoutes.Get("/", goalHandler.Heatmap)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("Listening sentinel-server on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", databaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func databaseURL() string {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
