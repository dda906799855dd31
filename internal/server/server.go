package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ticketboard/internal/auth"
	"ticketboard/internal/cache"
	"ticketboard/internal/config"
	"ticketboard/internal/database"
	"ticketboard/internal/handler"
	"ticketboard/internal/middleware"
	"ticketboard/internal/model"
	"ticketboard/internal/notify"
	"ticketboard/internal/repository"
	"ticketboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Logger *log.Logger

	Tickets    *service.TicketService
	Workspaces *repository.WorkspaceRepository
	Dispatcher *notify.Dispatcher
}

// Init connects to PostgreSQL and, when REDIS_URL is set, Redis, then builds the server.
func Init(cfg *config.Config, logger *log.Logger) (*Server, error) {
	db, err := database.Open(cfg.PostgresDSN(), logger)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("❌ invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("⚠️  Redis unreachable, board cache will fall back to the database")
		} else {
			logger.Info("✅ Connected to redis")
		}
	}

	return New(cfg, db, rdb, logger), nil
}

// New wires repositories, services and handlers onto a gin engine. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *log.Logger) *Server {
	handler.RegisterValidators()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	boards := cache.NewBoardCache(ticketRepo, rdb, cfg.BoardCacheTTL, logger)
	tickets := service.NewTicketService(ticketRepo, boards, cfg.RebalanceMinGap, logger).WithLabels(ticketRepo)

	notifyClient := &http.Client{Timeout: cfg.NotifyTimeout}
	dispatcher := notify.NewDispatcher(ticketRepo, notificationRepo, []notify.Notifier{
		notify.NewSlackNotifier(notifyClient),
		notify.NewTelegramNotifier(cfg.TelegramAPIURL, notifyClient),
	}, cfg.Location(), cfg.NotifyTimeout, logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours), logger)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, memberRepo, logger)
	ticketHandler := handler.NewTicketHandler(tickets, ticketRepo, labelRepo, memberRepo, logger)
	labelHandler := handler.NewLabelHandler(labelRepo, boards, logger)
	commentHandler := handler.NewCommentHandler(commentRepo, ticketRepo, logger)
	checklistHandler := handler.NewChecklistHandler(checklistRepo, ticketRepo, logger)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, logger)
	cronHandler := handler.NewCronHandler(dispatcher, logger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", userHandler.Register)
	api.POST("/auth/login", userHandler.Login)
	api.POST("/cron/notify-due", middleware.CronAuthMiddleware(cfg.CronSecret), cronHandler.NotifyDue)

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.GET("/workspaces", workspaceHandler.GetAll)
		authorized.POST("/workspaces/join", workspaceHandler.Join)
	}

	editor := middleware.RequireRole(model.RoleEditor)
	owner := middleware.RequireRole(model.RoleOwner)

	ws := authorized.Group("/workspaces/:workspaceId")
	ws.Use(middleware.WorkspaceMember(memberRepo, logger))
	{
		ws.GET("", workspaceHandler.GetByID)
		ws.GET("/members", workspaceHandler.Members)
		ws.PATCH("/members/:memberId", owner, workspaceHandler.UpdateMember)
		ws.DELETE("/members/:memberId", owner, workspaceHandler.RemoveMember)

		// Board routes
		ws.GET("/board", ticketHandler.Board)
		ws.POST("/board/rebalance", editor, ticketHandler.Rebalance)

		// Ticket routes
		ws.POST("/tickets", editor, ticketHandler.Create)
		ws.PATCH("/tickets/reorder", editor, ticketHandler.Reorder)
		ws.GET("/tickets/:ticketId", ticketHandler.GetByID)
		ws.PUT("/tickets/:ticketId", editor, ticketHandler.Update)
		ws.DELETE("/tickets/:ticketId", editor, ticketHandler.Delete)
		ws.GET("/tickets/:ticketId/children", ticketHandler.Children)
		ws.POST("/tickets/:ticketId/labels/:labelId", editor, ticketHandler.AddLabel)
		ws.DELETE("/tickets/:ticketId/labels/:labelId", editor, ticketHandler.RemoveLabel)

		// Comment routes
		ws.GET("/tickets/:ticketId/comments", commentHandler.GetAll)
		ws.POST("/tickets/:ticketId/comments", editor, commentHandler.Create)
		ws.DELETE("/comments/:commentId", editor, commentHandler.Delete)

		// Checklist routes
		ws.GET("/tickets/:ticketId/checklist", checklistHandler.GetAll)
		ws.POST("/tickets/:ticketId/checklist", editor, checklistHandler.Create)
		ws.PATCH("/checklist/:itemId", editor, checklistHandler.Update)
		ws.DELETE("/checklist/:itemId", editor, checklistHandler.Delete)

		// Label routes
		ws.GET("/labels", labelHandler.GetAll)
		ws.POST("/labels", editor, labelHandler.Create)
		ws.PUT("/labels/:labelId", editor, labelHandler.Update)
		ws.DELETE("/labels/:labelId", editor, labelHandler.Delete)

		// Notification settings
		ws.GET("/notifications", owner, notificationHandler.Get)
		ws.PUT("/notifications", owner, notificationHandler.Update)
	}

	return &Server{
		Engine:     r,
		DB:         db,
		Redis:      rdb,
		Config:     cfg,
		Logger:     logger,
		Tickets:    tickets,
		Workspaces: workspaceRepo,
		Dispatcher: dispatcher,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("❌ failed to listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.Logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("❌ server forced to shutdown: %w", err)
	}

	s.Logger.Info("✅ Server exited properly")
	return nil
}

// Close releases the database and redis connections.
func (s *Server) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.WithError(err).Warn("closing redis")
		}
	}
	if err := database.Close(s.DB); err != nil {
		s.Logger.WithError(err).Warn("closing database")
	}
}
