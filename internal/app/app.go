package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/alphavantage"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/forecast"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/marketdata"
	"github.com/ternarybob/finsight/internal/sentiment"
	"github.com/ternarybob/finsight/internal/services/chat"
	"github.com/ternarybob/finsight/internal/services/llm"
	"github.com/ternarybob/finsight/internal/services/news"
	"github.com/ternarybob/finsight/internal/services/summary"
	badgerstorage "github.com/ternarybob/finsight/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB             *badgerstorage.BadgerDB
	ChatLogStorage interfaces.ChatLogStorage
	UserStorage    interfaces.UserStorage

	// Analytical services
	MarketService  *marketdata.Service
	Forecaster     *forecast.Forecaster
	NewsService    *news.Service
	SummaryService *summary.Service

	// LLM service (Google Gemini); nil when the API key is missing or
	// the health check fails, in which case dependent services degrade
	// to their deterministic fallbacks
	LLMService interfaces.TextGenerator

	// Chat service
	Sentiment   *sentiment.Analyzer
	ChatService *chat.Service
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info().
		Bool("llm_enabled", app.LLMService != nil).
		Str("badger_path", cfg.Storage.Badger.Path).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	db, err := badgerstorage.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.DB = db
	a.ChatLogStorage = badgerstorage.NewChatLogStorage(db, a.Logger)
	a.UserStorage = badgerstorage.NewUserStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")
	return nil
}

// initServices initializes all business services in dependency order.
func (a *App) initServices() error {
	// 1. Market history source
	a.MarketService = marketdata.NewService(a.Logger,
		marketdata.WithTimeout(common.ParseDurationOrDefault(a.Config.Market.RequestTimeout, marketdata.DefaultTimeout)))
	a.Logger.Debug().Msg("Market data service initialized")

	// 2. Price forecaster
	a.Forecaster = forecast.NewForecaster(a.Logger)

	// 3. News sentiment source (Alpha Vantage)
	avOpts := []alphavantage.ClientOption{
		alphavantage.WithLogger(a.Logger),
		alphavantage.WithRateLimit(a.Config.News.RateLimit),
	}
	if a.Config.News.BaseURL != "" {
		avOpts = append(avOpts, alphavantage.WithBaseURL(a.Config.News.BaseURL))
	}
	avClient := alphavantage.NewClient(a.Config.News.APIKey, avOpts...)
	newsTimeout := common.ParseDurationOrDefault(a.Config.News.RequestTimeout, alphavantage.DefaultTimeout)
	a.NewsService = news.NewService(avClient, a.Logger, a.Config.News.Limit, newsTimeout)
	a.Logger.Debug().Int("limit", a.Config.News.Limit).Msg("News sentiment service initialized")

	// 4. LLM service (Google Gemini)
	llmService, err := llm.NewGeminiService(a.Config, a.Logger)
	if err != nil {
		a.LLMService = nil
		a.Logger.Warn().Err(err).Msg("Failed to initialize LLM service - generative features degraded")
		a.Logger.Info().Msg("To enable LLM features, set FINSIGHT_LLM_GOOGLE_API_KEY or llm.google_api_key in config")
	} else {
		if err := llmService.HealthCheck(context.Background()); err != nil {
			llmService.Close()
			a.LLMService = nil
			a.Logger.Warn().Err(err).Msg("LLM service health check failed - service disabled")
			a.Logger.Info().Msg("To enable LLM features, provide a valid Google Gemini API key")
		} else {
			a.LLMService = llmService
			a.Logger.Debug().Msg("LLM service initialized and health check passed")
		}
	}

	// 5. Trend summary service (deterministic sentence when LLM is unavailable)
	a.SummaryService = summary.NewService(a.LLMService, a.Logger)

	// 6. Chat service (escalation check runs before any generative call)
	a.Sentiment = sentiment.NewAnalyzer()
	a.ChatService = chat.NewService(
		a.LLMService,
		a.Sentiment,
		a.ChatLogStorage,
		a.UserStorage,
		a.Logger,
		a.Config.Chat.EscalationThreshold,
		a.Config.Chat.EscalationKeywords,
		a.Config.Chat.SupportContact,
	)
	a.Logger.Debug().
		Float64("escalation_threshold", a.Config.Chat.EscalationThreshold).
		Int("escalation_keywords", len(a.Config.Chat.EscalationKeywords)).
		Msg("Chat service initialized")

	return nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
		a.LLMService = nil
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.DB = nil
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
