package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/smartfinancehub/content-engine/internal/config"
	"github.com/smartfinancehub/content-engine/internal/flagger"
	"github.com/smartfinancehub/content-engine/internal/generator"
	"github.com/smartfinancehub/content-engine/internal/github"
	"github.com/smartfinancehub/content-engine/internal/handler"
	"github.com/smartfinancehub/content-engine/internal/notify"
	"github.com/smartfinancehub/content-engine/internal/scorer"
	"github.com/smartfinancehub/content-engine/internal/service"
	"github.com/smartfinancehub/content-engine/internal/site"
	"github.com/smartfinancehub/content-engine/internal/store"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

// App bundles the wired services behind the console and the schedulers.
type App struct {
	Config   *config.Config
	Store    store.Store
	Review   *service.ReviewService
	Generate *service.GenerateService
	Archive  *service.ArchiveService
	Stats    *service.StatsService
	Handler  *handler.Handler
}

// New wires the whole application from configuration.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating article store: %w", err)
	}

	sc, err := scorer.New(nil, cfg.Settings.TargetWordCount)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating scorer: %w", err)
	}

	siteGen, err := site.New(cfg.Settings.SiteName, cfg.Settings.BaseURL, cfg.Settings.HomepageArticleCount, cfg.Settings.ListingArticleCount)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating site generator: %w", err)
	}

	gen := generator.New(
		generator.NewClient(cfg.GenAPIKey, cfg.GenModel, cfg.GenTimeout),
		sc,
		cfg.Topics,
		cfg.Keywords,
		generator.Options{
			Attempts:   cfg.GenAttempts,
			RetryDelay: cfg.GenRetryDelay,
			Timeout:    cfg.GenTimeout,
		},
	)

	manager := workflow.NewManager(st)
	policy := workflow.NewArchivePolicy(cfg.Settings.ArchiveAfterDays, cfg.Settings.HighPriorityCategories)

	review := service.NewReviewService(st, manager, sc, flagger.New(), siteGen, newCommitter(cfg), newNotifier(cfg), cfg.Settings.AutoApproveThreshold)
	generate := service.NewGenerateService(gen, st, newNotifier(cfg))
	archive := service.NewArchiveService(st, manager, policy, review)
	stats := service.NewStatsService(st)

	return &App{
		Config:   cfg,
		Store:    st,
		Review:   review,
		Generate: generate,
		Archive:  archive,
		Stats:    stats,
		Handler:  handler.New(review, generate, archive, stats),
	}, nil
}

// Close releases the store backend.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		log.Printf("⚠️ Closing store: %v", err)
	}
}

// Router returns the console HTTP router.
func (a *App) Router() http.Handler {
	return a.Handler.Routes(a.Config.AuthToken)
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "gcs":
		log.Printf("📦 Using Cloud Storage article store (bucket %s)", cfg.GCSBucket)
		return store.NewGCSStore(ctx, cfg.GCSBucket)
	case "postgres":
		log.Printf("📦 Using Postgres article store")
		return store.NewPostgresStore(cfg.PostgresDSN)
	default:
		log.Printf("📦 Using filesystem article store (%s)", cfg.ContentDir)
		return store.NewFileStore(cfg.ContentDir)
	}
}

// newCommitter picks the publication target: a GitHub repository when
// one is configured, the local site directory otherwise.
func newCommitter(cfg *config.Config) service.Committer {
	if cfg.GitHubToken != "" && cfg.GitHubOwner != "" && cfg.GitHubRepo != "" {
		log.Printf("🌐 Publishing site to github.com/%s/%s@%s", cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch)
		return github.NewClient(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch)
	}
	log.Printf("🌐 Publishing site to local directory ./public")
	return service.NewDirCommitter("public")
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.SlackBotToken == "" {
		return notify.NoopNotifier{}
	}
	return notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannel)
}

// CreateHandler creates the main HTTP handler for the application.
func CreateHandler() (http.Handler, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading configuration: %v\nStack:\n%s", err, debug.Stack())
		return nil, nil, err
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Printf("Error creating application: %v\nStack:\n%s", err, debug.Stack())
		return nil, nil, err
	}

	cleanup := func() {
		app.Close()
	}
	return app.Router(), cleanup, nil
}

// HandleRequest handles a single HTTP request (for Cloud Functions).
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	h, cleanup, err := CreateHandler()
	if err != nil {
		log.Printf("Failed to create handler: %v\nStack:\n%s", err, debug.Stack())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cleanup()

	h.ServeHTTP(w, r)
}
