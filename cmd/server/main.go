package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/handler"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/images"
	"gamecatalog/backend/internal/storage"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamecatalog/backend/docs" // Registers the API description with swag

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const watchDebounce = 500 * time.Millisecond

func init() {
	config.LoadConfig()
}

// @title           Game Catalog API
// @version         1.0
// @description     CRUD API for the videogame, console and accessory catalog.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, reloaders := openStores(cfg)
	if cfg.WatchData && len(reloaders) > 0 {
		watcher, err := storage.NewWatcher(watchDebounce, reloaders...)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", cfg.DataDir, err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Data watcher stopped: %v", err)
			}
		}()
		defer watcher.Stop()
		log.Printf("Watching %s for external edits", cfg.DataDir)
	}

	imageStore := openImageStore(cfg)
	svc := catalog.NewService(stores, imageStore, cfg.ImageMaxBytes())
	if err := svc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	h := handler.New(svc, hub.NewHub(), jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg.ImageMaxBytes())

	router := gin.Default()
	router.MaxMultipartMemory = cfg.ImageMaxBytes() + 1<<20

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if cfg.ImageBackend == config.ImagesLocal {
		router.Static("/images", cfg.ImageDir)
	}

	// API v1 routes
	h.RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	fmt.Printf("Server is running on :%s\n", cfg.Port)
	fmt.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStores opens the configured backend. Only CSV tables can be reloaded.
func openStores(cfg *config.Config) (catalog.Stores, []storage.Reloader) {
	if cfg.StorageBackend == config.BackendPostgres {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		return catalog.GormStores(db), nil
	}

	stores, reloaders, err := catalog.OpenCSVStores(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open CSV tables in %s: %v", cfg.DataDir, err)
	}
	log.Printf("Loaded CSV tables from %s", cfg.DataDir)
	return stores, reloaders
}

func openImageStore(cfg *config.Config) images.Store {
	if cfg.ImageBackend == config.ImagesSupabase {
		log.Printf("Storing images in Supabase bucket %s", cfg.SupabaseBucket)
		return images.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	}

	store, err := images.NewLocalStore(cfg.ImageDir, "/images")
	if err != nil {
		log.Fatalf("Failed to prepare image directory: %v", err)
	}
	return store
}
