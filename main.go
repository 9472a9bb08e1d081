package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"oraconsole/bootstrap"
	"oraconsole/config"
	"oraconsole/controllers"
	"oraconsole/pkg/logger"
	"oraconsole/services"
	"oraconsole/utils"
)

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Connect the application store (GORM) and the Oracle catalog
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		log.Fatal("Database is nil after ConnectDB")
	}
	if err := config.ConnectCatalog(); err != nil {
		log.Fatalf("ConnectCatalog error: %v", err)
	}

	// 3) Init structured logger with config
	logLevel := logger.ParseLogLevel(config.Cfg.LogLevel)
	logger.InitWithConfig(
		config.Cfg.LogFile,
		logLevel,
		config.Cfg.LogMaxSize,
		config.Cfg.LogMaxBackups,
		config.Cfg.LogMaxAge,
		config.Cfg.LogCompress,
	)
	logger.Infof("Starting Oracle security console with log level: %s", config.Cfg.LogLevel)

	// 4) Migrate and seed the application store
	if err := bootstrap.Migrate(); err != nil {
		log.Fatalf("Migrate error: %v", err)
	}
	if err := bootstrap.SeedAdmin(); err != nil {
		log.Fatalf("SeedAdmin error: %v", err)
	}

	// 5) Wire the services
	privilegeService := services.NewPrivilegeService()
	controllers.SetAuthorizer(privilegeService)
	controllers.SetPrivilegeService(privilegeService)
	controllers.SetAuthService(services.NewAuthService())
	controllers.SetUserService(services.NewUserService())
	controllers.SetRoleService(services.NewRoleService())
	controllers.SetProfileService(services.NewProfileService())

	// 6) Setup Gin
	router := gin.Default()
	router.Use(utils.LoggerMiddleware())

	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("oraconsole_session", store))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	controllers.RegisterAuthRoutes(router)

	authed := router.Group("/")
	authed.Use(controllers.RequireLogin())
	{
		controllers.RegisterDashboardRoutes(authed)
		controllers.RegisterUserRoutes(authed)
		controllers.RegisterRoleRoutes(authed)
		controllers.RegisterProfileRoutes(authed)
		controllers.RegisterPrivilegeRoutes(authed)
	}

	// 7) Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Infof("Received shutdown signal, closing catalog connection...")
		if config.CatalogDB != nil {
			if err := config.CatalogDB.Close(); err != nil {
				logger.Errorf("Error closing catalog connection: %v", err)
			}
		}
		logger.Infof("Application shutdown complete")
		os.Exit(0)
	}()

	// 8) Run
	logger.Infof("Starting server at port %s", config.Cfg.ListenPort)
	router.Run("0.0.0.0:" + config.Cfg.ListenPort)
}
