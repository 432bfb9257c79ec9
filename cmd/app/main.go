package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tripspark/cmd/fx/config_fx"
	"tripspark/cmd/fx/controllers_fx"
	"tripspark/cmd/fx/conversation_fx"
	"tripspark/cmd/fx/db_fx"
	"tripspark/cmd/fx/landmark_fx"
	"tripspark/cmd/fx/llm_fx"
	"tripspark/cmd/fx/route_fx"
	"tripspark/cmd/fx/trip_fx"
	"tripspark/internal/api/controllers"
	"tripspark/internal/config"
	"tripspark/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		db_fx.Module,
		landmark_fx.Module,
		route_fx.Module,
		llm_fx.Module,
		trip_fx.Module,
		conversation_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
	chatController *controllers.ChatController,
	tripController *controllers.TripController,
	landmarkController *controllers.LandmarkController) *gin.Engine {

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.TraceIDHeader)
	corsCfg.ExposeHeaders = []string{middleware.TraceIDHeader}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.Static("/exports", cfg.Export.Dir)

	RegisterRoutes(r, cfg, chatController, tripController, landmarkController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	chatController *controllers.ChatController,
	tripController *controllers.TripController,
	landmarkController *controllers.LandmarkController) {

	secret := []byte(cfg.Auth.JWTSecret)

	r.POST("/chat",
		middleware.RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		middleware.OptionalJWTMiddleware(secret),
		chatController.SendMessage)

	r.GET("/landmarks", landmarkController.ListLandmarks)

	tripsGroup := r.Group("/trips")
	if len(secret) > 0 {
		tripsGroup.Use(middleware.JWTAuthMiddleware(secret))
	}
	tripsGroup.POST("", tripController.CreateTrip)
	tripsGroup.GET("", tripController.ListTrips)
	tripsGroup.GET("/:id", tripController.GetTrip)
	tripsGroup.PUT("/:id", tripController.UpdateTrip)
	tripsGroup.DELETE("/:id", tripController.DeleteTrip)
	tripsGroup.POST("/:id/export", tripController.ExportTrip)

	segmentsGroup := r.Group("/path-segments")
	if len(secret) > 0 {
		segmentsGroup.Use(middleware.JWTAuthMiddleware(secret))
	}
	segmentsGroup.POST("", tripController.CreatePathSegment)
}
