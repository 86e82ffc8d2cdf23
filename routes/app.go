package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/libs"
	"storefront/middleware"
	"storefront/services"
	"storefront/store"
)

// App is the assembled shell: router, state backend and workspace registry.
type App struct {
	Router   *gin.Engine
	Registry *services.WorkspaceRegistry
	backend  store.Backend
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open state backend: %w", err)
	}

	translator, err := services.LoadTranslator(cfg.LocalesDir, cfg.DefaultLanguage)
	if err != nil {
		backend.Close()
		return nil, err
	}

	deps := services.Dependencies{
		Backend:         backend,
		Gateway:         libs.NewGateway(cfg.APIBaseURL, cfg.APITimeout, logger),
		Translator:      translator,
		PageSize:        cfg.PageSize,
		DefaultLanguage: cfg.DefaultLanguage,
		Logger:          logger,
	}
	if cfg.Cloudinary.Enabled() {
		uploader, err := libs.NewCloudinaryUploader(cfg.Cloudinary, logger)
		if err != nil {
			logger.Warn("Cloudinary disabled", zap.Error(err))
		} else {
			deps.Images = uploader
		}
	}
	if cfg.SMTP.Enabled() {
		mailer, err := libs.NewMailer(cfg.SMTP)
		if err != nil {
			logger.Warn("Order confirmation mail disabled", zap.Error(err))
		} else {
			deps.Mailer = mailer
		}
	}

	registry := services.NewWorkspaceRegistry(deps)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.OriginURL),
	)
	SetupRoutes(router, Options{
		Registry:      registry,
		LocalesDir:    cfg.LocalesDir,
		MaxUploadSize: cfg.MaxUploadSize,
		SecureCookies: cfg.IsProduction(),
	})

	return &App{Router: router, Registry: registry, backend: backend}, nil
}

func (a *App) Close() error {
	return a.backend.Close()
}
