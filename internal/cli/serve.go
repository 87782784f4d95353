package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"ai-playground/internal/handler"
	"ai-playground/internal/web"
)

const shutdownTimeout = 5 * time.Second

// ShutdownSignals - сигналы, по которым отменяется контекст команды и сервер останавливается штатно.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Starts the image generation page.

The Replicate token is read from REPLICATE_API_TOKEN, VITE_REPLICATE_API_TOKEN
or the replicate_api_token Docker secret.`,
		Example: `  # Start server on default port 3000
  ai-playground serve

  # Start server on custom port
  ai-playground serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if port != "" {
				cfg.ServerPort = port
			}

			a, err := newApp(cfg, log)
			if err != nil {
				log.Error("Failed to initialize application", zap.Error(err))
				return err
			}
			router, err := a.newRouter()
			if err != nil {
				return err
			}

			// WriteTimeout не задаем: генерация может занимать больше минуты
			server := &http.Server{
				Addr:              ":" + cfg.ServerPort,
				Handler:           router,
				ReadHeaderTimeout: 15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return runServer(cmd.Context(), server, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides SERVER_PORT)")

	return cmd
}

func (a *app) newRouter() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if a.cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}

	renderer, err := web.NewTemplateRenderer(a.logger, nil)
	if err != nil {
		return nil, err
	}

	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if route := c.FullPath(); route != "" {
			return route
		}
		// Не даем случайным 404 раздувать кардинальность метрик
		return "unmatched"
	}

	h := handler.NewHandler(a.logger, a.imageService, a.cfg.ErrorPage.ShowStack)
	router := handler.NewRouter(h, handler.RouterConfig{
		Logger:         a.logger,
		Renderer:       renderer,
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		Middlewares:    []gin.HandlerFunc{p.HandlerFunc()},
	})
	p.SetMetricsPath(router)

	return router, nil
}

// runServer запускает сервер и останавливает его при отмене ctx (Ctrl+C).
func runServer(ctx context.Context, server *http.Server, log *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server forced to shutdown", zap.Error(err))
			return err
		}
		log.Info("Server exiting")
		return nil
	case err := <-serverErr:
		log.Error("HTTP Server listen error", zap.Error(err))
		return err
	}
}
