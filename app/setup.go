package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/conectaedu/conecta-api/api"
	"github.com/conectaedu/conecta-api/config"
	"github.com/conectaedu/conecta-api/database"
	"github.com/conectaedu/conecta-api/router"
	"github.com/conectaedu/conecta-api/services/cron"
	filestore "github.com/conectaedu/conecta-api/services/storage"
	"github.com/conectaedu/conecta-api/utils/cache"
	"github.com/conectaedu/conecta-api/utils/middleware"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const attemptWindow = 15 * time.Minute

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	files, err := buildFileStore(getEnv)
	if err != nil {
		return err
	}

	// Attempt stores back the registration and sign-in rate limiters. Redis
	// when available, otherwise per-process memory.
	signInStore, registerStore := buildAttemptStores(getEnv)

	// Cron jobs sweep stale attempts and purge storage past retention
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(store.DB(), files, signInStore)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, files, signInStore, registerStore)

	// Get the PORT & Start the Server
	return server.Run()
}

func buildFileStore(getEnv *config.EnviornmentVariable) (filestore.FileStore, error) {
	switch getEnv.STORAGE_DRIVER {
	case "spaces":
		return filestore.NewSpacesStore(filestore.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
	default:
		return filestore.NewLocalStore(getEnv.STORAGE_PATH, getEnv.BASE_URL)
	}
}

func buildAttemptStores(getEnv *config.EnviornmentVariable) (middleware.AttemptStore, middleware.AttemptStore) {
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Falling back to in-memory attempt tracking.", err)
		} else {
			return middleware.NewRedisAttemptStore(redisCache, attemptWindow, "ratelimit:signin"),
				middleware.NewRedisAttemptStore(redisCache, attemptWindow, "ratelimit:register")
		}
	}

	return middleware.NewMemoryAttemptStore(attemptWindow), middleware.NewMemoryAttemptStore(attemptWindow)
}
