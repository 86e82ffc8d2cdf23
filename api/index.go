package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/routes"
)

var (
	app     *routes.App
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		// Serverless instances keep no disk between invocations.
		if cfg.StateBackend == "file" {
			cfg.StateBackend = "memory"
		}
		logger, err := config.InitLogger(cfg)
		if err != nil {
			logger = zap.NewNop()
		}
		app, initErr = routes.NewApp(context.Background(), cfg, logger)
	})
}

// Handler is the serverless entry point sharing the shell router.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, initErr.Error(), http.StatusServiceUnavailable)
		return
	}
	app.Router.ServeHTTP(w, r)
}
