package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/cache"
	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/interview"
	"github.com/SAP-F-2025/interview-service/internal/llm"
	"github.com/SAP-F-2025/interview-service/internal/questions"
	"github.com/SAP-F-2025/interview-service/internal/repositories"
	"github.com/SAP-F-2025/interview-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/interview-service/internal/scoring"
	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/session"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/SAP-F-2025/interview-service/pkg"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// application holds everything the commands share. close releases the
// connections opened while wiring it.
type application struct {
	cfg      *config.Config
	settings *config.Settings
	logger   *slog.Logger
	metrics  *services.Metrics
	service  services.InterviewService
	db       *gorm.DB

	closers []func() error
}

type wireOptions struct {
	// forceMemoryStore keeps sessions in process, used by the terminal interview.
	forceMemoryStore bool
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading environment: %w", err)
	}
	if path := viper.GetString("settings"); path != "" {
		cfg.SettingsPath = path
	}
	if path := viper.GetString("questions"); path != "" {
		cfg.QuestionBankPath = path
	}

	environment := cfg.Environment
	if viper.GetBool("debug") {
		environment = "development"
	}
	return cfg, utils.NewLogger(environment, os.Stderr), nil
}

func wire(ctx context.Context, opts wireOptions) (_ *application, err error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, logger: logger, metrics: services.NewMetrics()}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if a.settings, err = config.LoadSettings(cfg.SettingsPath); err != nil {
		return nil, err
	}

	if cfg.UsesDatabase() {
		if err = a.openDatabase(); err != nil {
			return nil, err
		}
	}

	var cacheService cache.CacheService
	if cfg.SessionStore == "redis" {
		if cacheService, err = a.openCache(); err != nil {
			return nil, err
		}
	}

	questionSource, err := a.questionSource(cacheService)
	if err != nil {
		return nil, err
	}

	var store session.Store = session.NewMemoryStore()
	if cacheService != nil && !opts.forceMemoryStore {
		store = session.NewCacheStore(cacheService, cfg.SessionTTL)
	}

	var scorer interview.Scorer = scoring.NewEngine()
	var collaborator llm.Collaborator
	generator, err := llm.NewGenerator(ctx, llm.Options{
		Provider:  cfg.LLMProvider,
		APIKey:    cfg.GeminiAPIKey,
		Model:     llmModel(cfg),
		OllamaURL: cfg.OllamaURL,
		Timeout:   cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	if generator != nil {
		agent := llm.NewAgent(generator, logger, a.metrics)
		collaborator = agent
		scorer = llm.AsScorer(agent, scoring.NewEngine(), cfg.LLMTimeout, logger)
		logger.Info("llm collaborator enabled", "provider", cfg.LLMProvider, "model", llmModel(cfg))
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return nil, fmt.Errorf("creating event publisher: %w", err)
	}
	a.closers = append(a.closers, publisher.Close)

	var reports repositories.ReportRepository
	if a.db != nil {
		reports = postgres.NewReportPostgreSQL(a.db)
	}

	a.service = services.NewInterviewService(services.Dependencies{
		Questions:    questionSource,
		Scorer:       scorer,
		Store:        store,
		Settings:     a.settings,
		Publisher:    publisher,
		Collaborator: collaborator,
		Reports:      reports,
		ReportsDir:   cfg.ReportsDir,
		Metrics:      a.metrics,
		Logger:       logger,
	})
	return a, nil
}

func (a *application) openDatabase() error {
	db, err := pkg.InitDatabase(a.cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	a.closers = append(a.closers, sqlDB.Close)
	if err := pkg.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	a.db = db
	return nil
}

func (a *application) openCache() (cache.CacheService, error) {
	client, err := pkg.NewRedisClient(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)

	zapLogger, err := pkg.NewZapLogger(a.cfg.Environment)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		_ = zapLogger.Sync()
		return nil
	})
	return cache.NewRedisCache(client, zapLogger), nil
}

func (a *application) questionSource(c cache.CacheService) (questions.Lister, error) {
	switch a.cfg.QuestionSource {
	case "database", "db":
		if a.db == nil {
			return nil, errors.New("QUESTION_SOURCE=database needs DATABASE_URL")
		}
		return postgres.NewQuestionPostgreSQL(a.db, c), nil
	case "file", "":
		bank, err := loadBank(a.cfg.QuestionBankPath)
		if err != nil {
			return nil, err
		}
		a.logger.Info("question bank loaded", "path", a.cfg.QuestionBankPath, "questions", bank.Count())
		return bank, nil
	default:
		return nil, fmt.Errorf("unknown question source %q", a.cfg.QuestionSource)
	}
}

// loadBank picks the parser by file extension.
func loadBank(path string) (*questions.FileBank, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return questions.LoadFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	defer f.Close()
	return questions.ParseExcel(f)
}

func llmModel(cfg *config.Config) string {
	if cfg.LLMProvider == llm.ProviderOllama {
		return cfg.OllamaModel
	}
	return cfg.GeminiModel
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
