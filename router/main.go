package router

import (
	"log"
	"os"
	"time"

	"github.com/conectaedu/conecta-api/config"
	"github.com/conectaedu/conecta-api/database"
	"github.com/conectaedu/conecta-api/handlers"
	assignature_handlers "github.com/conectaedu/conecta-api/handlers/assignature"
	course_handlers "github.com/conectaedu/conecta-api/handlers/course"
	institution_handlers "github.com/conectaedu/conecta-api/handlers/institution"
	item_handlers "github.com/conectaedu/conecta-api/handlers/item"
	person_handlers "github.com/conectaedu/conecta-api/handlers/person"
	post_handlers "github.com/conectaedu/conecta-api/handlers/post"
	storage_handlers "github.com/conectaedu/conecta-api/handlers/storage"
	tag_handlers "github.com/conectaedu/conecta-api/handlers/tag"
	filestore "github.com/conectaedu/conecta-api/services/storage"
	"github.com/conectaedu/conecta-api/utils/auth"
	"github.com/conectaedu/conecta-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	maxRegistrations    = 3
	maxSignInAttempts   = 5
	defaultAllowOrigins = "http://localhost:3000,http://localhost:3001"
)

// SetupRoutes wires every handler group under /api/v1
func SetupRoutes(app *fiber.App, store database.Storage, files filestore.FileStore, signInStore, registerStore middleware.AttemptStore) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment configuration")
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "conecta-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: time.Duration(getEnv.JWT_EXPIRY_HOURS) * time.Hour,
		Issuer: jwtIssuer,
	})

	db := store.DB()

	signInLimiter := middleware.NewRateLimiter(signInStore, maxSignInAttempts)
	registerLimiter := middleware.NewRateLimiter(registerStore, maxRegistrations)

	personHandler := person_handlers.NewPersonHandler(db, jwtManager, signInLimiter)
	postHandler := post_handlers.NewPostHandler(db)
	itemHandler := item_handlers.NewItemHandler(db)
	assignatureHandler := assignature_handlers.NewAssignatureHandler(db)
	institutionHandler := institution_handlers.NewInstitutionHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	tagHandler := tag_handlers.NewTagHandler(db)
	storageHandler := storage_handlers.NewStorageHandler(db, files)

	allowedOrigins := getEnvOr("ALLOWED_ORIGINS", defaultAllowOrigins)
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	api := app.Group("/api/v1")

	// Persons
	persons := api.Group("/persons")
	persons.Get("/", personHandler.ListPersons)
	persons.Get("/username/:username", personHandler.GetPersonByUsername)
	persons.Get("/:id", personHandler.GetPerson)
	persons.Post("/", registerLimiter.Limit(), personHandler.CreatePerson)
	persons.Put("/:id", personHandler.UpdatePerson)
	persons.Put("/:id/password", personHandler.ChangePassword)
	persons.Delete("/:id", personHandler.DeletePerson)
	persons.Post("/sign-in", signInLimiter.Limit(), personHandler.SignIn)

	// Posts
	posts := api.Group("/posts")
	posts.Get("/", postHandler.ListPosts)
	posts.Get("/:id", postHandler.GetPost)
	posts.Post("/", postHandler.CreatePost)
	posts.Put("/:id", postHandler.UpdatePost)
	posts.Delete("/:id", postHandler.DeletePost)
	posts.Post("/:id/restore", postHandler.RestorePost)
	posts.Post("/:id/like", postHandler.LikePost)
	posts.Post("/:id/dislike", postHandler.DislikePost)
	posts.Post("/:id/comments", postHandler.AddComment)

	// Items
	items := api.Group("/items")
	items.Get("/", itemHandler.ListItems)
	items.Get("/:id", itemHandler.GetItem)
	items.Post("/", itemHandler.CreateItem)
	items.Put("/:id", itemHandler.UpdateItem)
	items.Delete("/:id", itemHandler.DeleteItem)
	items.Post("/:id/like", itemHandler.LikeItem)
	items.Post("/:id/dislike", itemHandler.DislikeItem)

	// Assignatures
	assignatures := api.Group("/assignatures")
	assignatures.Get("/", assignatureHandler.ListAssignatures)
	assignatures.Get("/:id", assignatureHandler.GetAssignature)
	assignatures.Post("/", assignatureHandler.CreateAssignature)
	assignatures.Put("/:id", assignatureHandler.UpdateAssignature)
	assignatures.Delete("/:id", assignatureHandler.DeleteAssignature)
	assignatures.Post("/:id/like", assignatureHandler.LikeAssignature)
	assignatures.Post("/:id/dislike", assignatureHandler.DislikeAssignature)

	// Institutions
	institutions := api.Group("/institutions")
	institutions.Get("/", institutionHandler.ListInstitutions)
	institutions.Get("/domain/:domain", institutionHandler.GetByDomain)
	institutions.Get("/:id", institutionHandler.GetInstitution)
	institutions.Post("/", institutionHandler.CreateInstitution)
	institutions.Put("/:id", institutionHandler.UpdateInstitution)
	institutions.Delete("/:id", institutionHandler.DeleteInstitution)

	// Courses
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/abbr/:abbr", courseHandler.GetByAbbr)
	courses.Get("/duration/:anos", courseHandler.GetByDuration)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)
	courses.Post("/:id/variations", courseHandler.AddVariation)
	courses.Delete("/:id/variations", courseHandler.RemoveVariation)

	// Tags
	tags := api.Group("/tags")
	tags.Get("/", tagHandler.ListTags)
	tags.Get("/popular", tagHandler.GetPopular)
	tags.Get("/name/:tagName", tagHandler.GetByName)
	tags.Get("/color/:color", tagHandler.SearchByColor)
	tags.Get("/:id", tagHandler.GetTag)
	tags.Post("/", tagHandler.CreateTag)
	tags.Put("/:id", tagHandler.UpdateTag)
	tags.Delete("/:id", tagHandler.DeleteTag)

	// Storage (file metadata surface)
	storage := api.Group("/storage")
	storage.Get("/", storageHandler.ListFiles)
	storage.Post("/", storageHandler.Upload)
	storage.Post("/upload", storageHandler.Upload)
	storage.Get("/:id", storageHandler.GetFile)
	storage.Put("/:id", storageHandler.UpdateFile)
	storage.Delete("/:id", storageHandler.DeleteFile)
	storage.Post("/:id/restore", storageHandler.RestoreFile)
	storage.Get("/:id/download", storageHandler.Download)

	// Uploads (upload-centric surface over the same records)
	uploads := api.Group("/uploads")
	uploads.Post("/", storageHandler.Upload)
	uploads.Get("/:id", storageHandler.GetFile)
	uploads.Get("/:id/download", storageHandler.Download)
	uploads.Get("/:id/view", storageHandler.View)
	uploads.Delete("/:id", storageHandler.DeleteFile)
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
