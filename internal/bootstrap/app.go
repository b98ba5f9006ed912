package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/catalog"
	"readiness-backend/internal/llm"
	"readiness-backend/internal/llm/anthropic"
	openai "readiness-backend/internal/llm/openai"
	"readiness-backend/internal/opportunity"
	"readiness-backend/internal/queue"
	"readiness-backend/internal/reports"
	"readiness-backend/internal/risk"
	"readiness-backend/internal/rules"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/server"
	"readiness-backend/internal/shared/storage/db"
	"readiness-backend/internal/shared/storage/object"
	localstore "readiness-backend/internal/shared/storage/object/local"
	s3store "readiness-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	SQLiteRepo     *reports.SQLiteRepo
	Store          object.ObjectStore
	Queue          queue.Client
	Rules          rules.Rules
	Catalog        *catalog.Catalog
	LLM            llm.Client
	ReportsRepo    reports.Repo
	ReportsService *reports.Service
	ReportsHandler *reports.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	scoringRules, err := buildRules(cfg)
	if err != nil {
		return nil, err
	}

	toolCatalog, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Queue:   queueClient,
		Rules:   scoringRules,
		Catalog: toolCatalog,
		LLM:     llmClient,
	}

	if err := buildRepo(ctx, cfg, app); err != nil {
		return nil, err
	}

	app.ReportsService = &reports.Service{
		Repo: app.ReportsRepo,
		Engine: reports.Engine{
			Rules:     app.Rules,
			Catalog:   app.Catalog,
			Templates: opportunity.Defaults(),
			Risks:     risk.Defaults(),
			LLM:       app.LLM,
		},
		Store: app.Store,
		Queue: app.Queue,
	}
	app.ReportsHandler = reports.NewHandler(app.ReportsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		ReportsHandler: app.ReportsHandler,
	})

	return app, nil
}

// Close releases resources owned by the app.
func (a *App) Close() error {
	if a.SQLiteRepo != nil {
		return a.SQLiteRepo.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildRules(cfg config.Config) (rules.Rules, error) {
	if strings.TrimSpace(cfg.RulesPath) == "" {
		return rules.MustDefaults(), nil
	}
	loaded, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return rules.Rules{}, fmt.Errorf("load rules %s: %w", cfg.RulesPath, err)
	}
	return loaded, nil
}

func buildCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if strings.TrimSpace(cfg.CatalogPath) == "" {
		return catalog.MustDefaults(), nil
	}
	loaded, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	return loaded, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "anthropic":
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel)
	default:
		log.Printf("bootstrap: no LLM provider configured; external tool suggestions disabled")
		return llm.PlaceholderClient{}, nil
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildRepo(ctx context.Context, cfg config.Config, app *App) error {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			if !isDevLike(cfg.Env) {
				return err
			}
			log.Printf("bootstrap: database connect failed; falling back: %v", err)
		} else {
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				sqlDB.Close()
				return fmt.Errorf("run migrations: %w", err)
			}
			app.DB = sqlDB
			app.ReportsRepo = &reports.PGRepo{DB: sqlDB}
			return nil
		}
	}

	if strings.TrimSpace(cfg.SQLitePath) != "" {
		repo, err := reports.NewSQLiteRepo(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		app.SQLiteRepo = repo
		app.ReportsRepo = repo
		return nil
	}

	if !isDevLike(cfg.Env) {
		return fmt.Errorf("DATABASE_URL or SQLITE_PATH is required outside dev")
	}
	log.Printf("bootstrap: no database configured; using in-memory repository")
	app.ReportsRepo = reports.NewMemoryRepo()
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
