package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ecosort/ecosort-backend/internal/config"
	"github.com/ecosort/ecosort-backend/internal/handler"
	"github.com/ecosort/ecosort-backend/internal/middleware"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	scanRepo := repository.NewScanRepository(db)
	impactRepo := repository.NewImpactRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	centerRepo := repository.NewCenterRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Avatars are the only Cloudinary consumer, so run without them
		// instead of refusing to start.
		log.Printf("cloudinary storage unavailable, avatar uploads disabled: %v", err)
		imageStorage = nil
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authService)

	impactService := service.NewImpactService(impactRepo, scanRepo, service.DefaultImpactFactors)

	progressService := service.NewProgressService(scanRepo, badgeRepo, impactService)

	profileService := service.NewProfileService(userRepo, progressService, imageStorage)
	profileHandler := handler.NewProfileHandler(profileService)

	leaderboardService := service.NewLeaderboardService(leaderboardRepo, scanRepo, redisClient, cfg.LeaderboardCacheTTL)
	rewardsHandler := handler.NewRewardsHandler(progressService, leaderboardService)

	scanService := service.NewScanService(scanRepo, impactService, progressService, redisClient, cfg.ScanRateLimit)
	scanHandler := handler.NewScanHandler(scanService)

	centerService := service.NewCenterService(centerRepo, meiliClient)
	centerHandler := handler.NewCenterHandler(centerService)

	// Refresh the weekly snapshot periodically so the leaderboard stays
	// current without a request-path recompute.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if err := leaderboardService.RecomputeWeek(context.Background(), time.Now()); err != nil {
				log.Printf("leaderboard recompute failed: %v", err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	profile := router.Group("/profile")
	profile.Use(authMiddleware.RequireAuth())
	{
		profile.GET("/profile", profileHandler.GetProfile)
		profile.PUT("/profile", profileHandler.UpdateProfile)
		profile.POST("/complete-profile", profileHandler.CompleteProfile)
		profile.GET("/check-profile-status", profileHandler.CheckProfileStatus)
	}

	recycle := router.Group("/recycle")
	recycle.Use(authMiddleware.RequireAuth())
	{
		recycle.POST("/scan", scanHandler.RecordScan)
		recycle.GET("/scans", scanHandler.ListScans)
		recycle.GET("/centers", centerHandler.ListCenters)
		recycle.GET("/centers/search", centerHandler.SearchCenters)
		recycle.GET("/centers/:id", centerHandler.GetCenter)
		recycle.POST("/centers", centerHandler.CreateCenter)
	}

	rewards := router.Group("/rewards")
	rewards.Use(authMiddleware.RequireAuth())
	{
		rewards.GET("/stats", rewardsHandler.GetStats)
		rewards.GET("/badges", rewardsHandler.GetBadges)
		rewards.GET("/milestones", rewardsHandler.GetMilestones)
		rewards.GET("/leaderboard", rewardsHandler.GetLeaderboard)
		rewards.POST("/leaderboard/recompute", rewardsHandler.RecomputeLeaderboard)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:8081"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
