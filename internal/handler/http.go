package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"ai-playground/internal/middleware"
	"ai-playground/internal/service"
	"ai-playground/internal/web"
)

const (
	pageTitle       = "AI App"
	pageDescription = "Testing AI API features"
)

// Handler обрабатывает HTTP запросы страницы генерации.
type Handler struct {
	logger       *zap.Logger
	imageService service.ImageService
	showStack    bool
}

// NewHandler создает новый Handler. showStack управляет выводом стектрейса на странице ошибки.
func NewHandler(logger *zap.Logger, imageService service.ImageService, showStack bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if imageService == nil {
		logger.Fatal("ImageService cannot be nil for Handler")
	}
	return &Handler{
		logger:       logger.Named("Handler"),
		imageService: imageService,
		showStack:    showStack,
	}
}

// RouterConfig - зависимости, нужные для сборки gin.Engine.
type RouterConfig struct {
	Logger         *zap.Logger
	Renderer       render.HTMLRender
	AllowedOrigins []string
	// Middlewares подключаются после логгера, до маршрутов (например, сбор метрик)
	Middlewares    []gin.HandlerFunc
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.HTMLRender = cfg.Renderer

	router.Use(gin.Recovery())
	router.Use(middleware.GinZapLogger(logger))
	if len(cfg.Middlewares) > 0 {
		router.Use(cfg.Middlewares...)
	}

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
		corsConfig.MaxAge = 12 * time.Hour
		router.Use(cors.New(corsConfig))
		logger.Info("CORS enabled", zap.Strings("origins", cfg.AllowedOrigins))
	}

	router.Use(h.ErrorBoundary)

	router.StaticFS("/static", web.StaticFS())
	h.RegisterRoutes(router)

	return router
}

// RegisterRoutes регистрирует маршруты страницы.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.healthCheck)
	router.HEAD("/health", h.healthCheck)

	router.GET("/", h.pageBoundary, h.showIndex)
	router.POST("/", h.pageBoundary, h.handleGenerate)

	router.NoRoute(h.routeNotFound)
	router.NoMethod(h.methodNotAllowed)
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) routeNotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

func (h *Handler) methodNotAllowed(c *gin.Context) {
	c.Status(http.StatusMethodNotAllowed)
}

func (h *Handler) indexPage(state web.ResultState) web.PageData {
	return web.PageData{
		Title:           pageTitle,
		Description:     pageDescription,
		MaxPromptLength: service.MaxPromptLength,
		State:           state,
	}
}
