package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-user-accounts/internal/facades"
	"github.com/sbilibin2017/gw-user-accounts/internal/handlers"
	jwtutil "github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/migrations"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-user-accounts/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-user-accounts API
// @version 1.0.0
// @description Microservice for user accounts, authentication and channel profiles
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config holds all application, database, Redis, Kafka, S3, logging, JWT and
// upload configuration.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaAddr  string
	KafkaTopic string

	S3Endpoint  string
	S3PublicURL string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	JWTAccessSecretKey  string
	JWTAccessExpSecond  int
	JWTRefreshSecretKey string
	JWTRefreshExpSecond int

	UploadTempDir         string
	ChannelCacheExpSecond int
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaAddr = getEnv("KAFKA_ADDR", "localhost:9092")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	// S3 config
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "http://localhost:9000")
	cfg.S3PublicURL = getEnv("S3_PUBLIC_URL", cfg.S3Endpoint)
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Bucket = getEnv("S3_BUCKET", "media")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "minioadmin")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "minioadmin")

	// JWT config
	cfg.JWTAccessSecretKey = getEnv("JWT_ACCESS_SECRET_KEY", "my_super_secret_access_key")
	if cfg.JWTAccessExpSecond, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "900")); err != nil {
		return
	}
	cfg.JWTRefreshSecretKey = getEnv("JWT_REFRESH_SECRET_KEY", "my_super_secret_refresh_key")
	if cfg.JWTRefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "864000")); err != nil {
		return
	}

	// Upload and cache config
	cfg.UploadTempDir = getEnv("UPLOAD_TEMP_DIR", os.TempDir())
	if cfg.ChannelCacheExpSecond, err = strconv.Atoi(getEnv("CHANNEL_CACHE_EXP_SECOND", "60")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, S3 facade and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", cfg.PGHost, cfg.PGPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Apply migrations
	if err := migrations.Up(db); err != nil {
		logger.Log.Fatal("failed to apply migrations:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Initialize Kafka writer for account events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaAddr),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// Initialize media uploader
	mediaFacade, err := facades.NewMediaS3Facade(ctx,
		cfg.S3Endpoint, cfg.S3PublicURL, cfg.S3Region, cfg.S3Bucket,
		cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		logger.Log.Fatal("failed to initialize media uploader:", err)
	}

	// Staging directory for multipart uploads
	if err := os.MkdirAll(cfg.UploadTempDir, 0o755); err != nil {
		logger.Log.Fatal("failed to create upload temp dir:", err)
	}

	// Initialize JWT service
	jwtSvc := jwtutil.New(
		cfg.JWTAccessSecretKey, cfg.JWTRefreshSecretKey,
		time.Duration(cfg.JWTAccessExpSecond)*time.Second,
		time.Duration(cfg.JWTRefreshExpSecond)*time.Second,
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	subscriptionRepo := repositories.NewSubscriptionReadRepository(db)
	videoRepo := repositories.NewVideoReadRepository(db)
	channelCacheRepo := repositories.NewChannelProfileCacheRepository(rdb,
		time.Duration(cfg.ChannelCacheExpSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtSvc, mediaFacade, kafkaWriter)
	accountService := services.NewAccountService(userReadRepo, userWriteRepo, mediaFacade)
	profileService := services.NewProfileService(userReadRepo, subscriptionRepo, videoRepo, channelCacheRepo)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, cfg.UploadTempDir)
	loginHandler := handlers.NewLoginHandler(authService)
	logoutHandler := handlers.NewLogoutHandler(authService)
	refreshHandler := handlers.NewRefreshHandler(authService)
	currentUserHandler := handlers.NewCurrentUserHandler(accountService)
	changePasswordHandler := handlers.NewChangePasswordHandler(accountService)
	updateAccountHandler := handlers.NewUpdateAccountHandler(accountService)
	updateAvatarHandler := handlers.NewUpdateAvatarHandler(accountService, cfg.UploadTempDir)
	updateCoverImageHandler := handlers.NewUpdateCoverImageHandler(accountService, cfg.UploadTempDir)
	channelProfileHandler := handlers.NewChannelProfileHandler(profileService)
	watchHistoryHandler := handlers.NewWatchHistoryHandler(profileService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	txMiddleware := middlewares.TxMiddleware(db)
	authMiddleware := middlewares.AuthMiddleware(jwtSvc)

	r.Route("/api/v1/users", func(r chi.Router) {
		// Public routes
		r.With(txMiddleware).Post("/register", registerHandler)
		r.With(txMiddleware).Post("/login", loginHandler)
		r.With(txMiddleware).Post("/refresh-token", refreshHandler)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(txMiddleware).Post("/logout", logoutHandler)
			r.Get("/current-user", currentUserHandler)
			r.With(txMiddleware).Post("/change-password", changePasswordHandler)
			r.With(txMiddleware).Patch("/update-account", updateAccountHandler)
			r.With(txMiddleware).Patch("/update-avatar", updateAvatarHandler)
			r.With(txMiddleware).Patch("/update-cover-image", updateCoverImageHandler)
			r.Get("/channel/{username}", channelProfileHandler)
			r.Get("/watch-history", watchHistoryHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
