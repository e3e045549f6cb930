package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"scaffold-wizard/core/config"
	"scaffold-wizard/core/database"
	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/loader"
	"scaffold-wizard/core/logger"
	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/middleware/auth"
	"scaffold-wizard/core/middleware/rayid"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/storage"
	"scaffold-wizard/core/store"

	"scaffold-wizard/feature/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Scaffold Wizard API
// @version 1.0
// @description API for generating CRUD interfaces from database entities.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scaffolding wizard server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the schema source database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to schema source database", zap.Error(err))
		}
		logg.Info("Connected to schema source", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Storage client, only when a consumer is configured
		var client storage.Client
		if cfg.Store.Backend == "object" || cfg.Generate.Upload {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 6. Configuration store
		storeCfg := cfg.Store
		if storeCfg.Bucket == "" {
			storeCfg.Bucket = cfg.Storage.Bucket
		}
		configs, err := store.New(storeCfg, client, logg)
		if err != nil {
			logg.Fatal("Failed to create configuration store", zap.Error(err))
		}

		var uploader *generate.Uploader
		if cfg.Generate.Upload {
			uploader = generate.NewUploader(client, cfg.Storage.Bucket, cfg.Generate.Prefix)
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		// Register Features
		mgr.Register(wizard.NewFeature(
			schema.NewReader(db),
			manifest.NewClient(cfg.Manifest, logg),
			configs,
			generate.NewDriver(generate.NewRenderer(), logg),
			generate.NewPackager(),
			uploader,
			cfg.Generate.OutputDir,
			logg,
		))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
