package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/davideme94/sad-proyecto/api/swagger"
	"github.com/davideme94/sad-proyecto/internal/handler"
	"github.com/davideme94/sad-proyecto/internal/middleware"
	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/repository"
	"github.com/davideme94/sad-proyecto/internal/service"
	"github.com/davideme94/sad-proyecto/pkg/cache"
	"github.com/davideme94/sad-proyecto/pkg/config"
	"github.com/davideme94/sad-proyecto/pkg/database"
	"github.com/davideme94/sad-proyecto/pkg/jobs"
	"github.com/davideme94/sad-proyecto/pkg/logger"
	corsmiddleware "github.com/davideme94/sad-proyecto/pkg/middleware/cors"
	reqidmiddleware "github.com/davideme94/sad-proyecto/pkg/middleware/requestid"
)

// @title SAD Notificaciones API
// @version 1.0.0
// @description Registro de docentes, publicación de resoluciones y acuses de notificación
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Lookup.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, lookup cache disabled", "error", err)
			redisClient = nil
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	docenteRepo := repository.NewDocenteRepository(db)
	resolucionRepo := repository.NewResolucionRepository(db)
	vinculoRepo := repository.NewVinculoRepository(db)
	acuseRepo := repository.NewAcuseRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	docenteSvc := service.NewDocenteService(docenteRepo, cacheRepo, validate, logr)
	resolucionSvc := service.NewResolucionService(resolucionRepo, docenteRepo, cacheRepo, validate, logr)
	vinculoSvc := service.NewVinculoService(vinculoRepo, docenteRepo, resolucionRepo, cacheRepo, logr)
	acuseSvc := service.NewAcuseService(acuseRepo, resolucionRepo, cacheRepo, logr)
	lookupSvc := service.NewLookupService(docenteRepo, resolucionRepo, vinculoRepo, acuseRepo, cacheRepo, cfg.Lookup.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authSvc.EnsureAdmin(seedCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logr.Sugar().Fatalw("admin seed failed", "error", err)
	}
	cancel()

	auditPool := jobs.New("audit", jobs.Config{Workers: 2, Logger: logr})
	auditPool.Start(context.Background())
	defer auditPool.Stop()
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(userRepo, auditPool, action, resource)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	docenteHandler := handler.NewDocenteHandler(docenteSvc)
	resolucionHandler := handler.NewResolucionHandler(resolucionSvc)
	vinculoHandler := handler.NewVinculoHandler(vinculoSvc)
	acuseHandler := handler.NewAcuseHandler(acuseSvc, metricsSvc)
	lookupHandler := handler.NewLookupHandler(lookupSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Deadline(cfg.Store.Timeout))
	r.Use(middleware.Metrics(metricsSvc))

	// Liveness and readiness never touch the store.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		// Login audits itself from the service, where the user ID is known.
		api.POST("/auth/login", authHandler.Login)

		public := api.Group("/public")
		{
			public.GET("/buscar", lookupHandler.Buscar)
			public.POST("/acuse", acuseHandler.Record)
		}

		admin := api.Group("/admin", middleware.JWT(authSvc))
		{
			admin.POST("/docentes", audit(models.AuditActionCreate, "docentes"), docenteHandler.Upsert)
			admin.POST("/docentes/bulk", audit(models.AuditActionCreate, "docentes"), docenteHandler.Bulk)
			admin.GET("/docentes", docenteHandler.List)
			admin.DELETE("/docentes/:dni", audit(models.AuditActionDelete, "docentes"), docenteHandler.Delete)

			admin.POST("/resoluciones", audit(models.AuditActionCreate, "resoluciones"), resolucionHandler.Create)
			admin.GET("/resoluciones", resolucionHandler.List)
			admin.PATCH("/resoluciones/:id", audit(models.AuditActionUpdate, "resoluciones"), resolucionHandler.Update)
			admin.DELETE("/resoluciones/:id", audit(models.AuditActionDelete, "resoluciones"), resolucionHandler.Delete)
			admin.GET("/resoluciones/:id/acuses", acuseHandler.ListByResolucion)

			admin.POST("/vinculos", audit(models.AuditActionCreate, "vinculos"), vinculoHandler.LinkMany)
			admin.DELETE("/vinculos", audit(models.AuditActionDelete, "vinculos"), vinculoHandler.Unlink)
			admin.GET("/vinculos/:resolucionId", vinculoHandler.ListByResolucion)

			admin.GET("/acuses", acuseHandler.List)
			admin.GET("/acuses/export", acuseHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
