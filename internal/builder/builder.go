package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/archguru/advisor-backend/internal/api"
	wizardapi "github.com/archguru/advisor-backend/internal/api/wizard"
	"github.com/archguru/advisor-backend/internal/config"
	"github.com/archguru/advisor-backend/internal/integration/llm"
	"github.com/archguru/advisor-backend/internal/pkg/formatter"
	"github.com/archguru/advisor-backend/internal/pkg/validator"
	"github.com/archguru/advisor-backend/internal/session"
	"github.com/archguru/advisor-backend/internal/usecase/wizard"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize completion connector (with mock support)
	var completer wizard.Completer
	if cfg.EnableMocks {
		logger.Info("Using mock completion connector")
		completer = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real completion connector",
			zap.String("model", cfg.LLMConnectorCfg.Model),
		)
		completer = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Initialize session store
	store := session.NewStore(cfg.SessionTTL, cfg.SessionCleanupInterval)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionTTL),
		zap.Duration("cleanup_interval", cfg.SessionCleanupInterval),
	)

	// Every session gets its own pipeline over the shared completer
	pipelineCfg := wizard.DefaultConfig()
	newPipeline := func() *wizard.Pipeline {
		return wizard.NewPipeline(pipelineCfg, completer, logger)
	}

	// Initialize validator and formatters
	wizardValidator := validator.NewValidator()
	formatters := formatter.NewFactory()

	// Setup API handler and router
	wizardHandler := wizardapi.NewHandler(store, newPipeline, wizardValidator, formatters)
	router := api.SetupRouter(wizardHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 320 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
