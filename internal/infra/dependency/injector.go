// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/config"
	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/auth"
	"github.com/ecoimpact/backend/internal/application/usecase/category"
	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	"github.com/ecoimpact/backend/internal/application/usecase/dashboard"
	"github.com/ecoimpact/backend/internal/application/usecase/goal"
	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
	"github.com/ecoimpact/backend/internal/infra/db"
	"github.com/ecoimpact/backend/internal/infra/observability"
	"github.com/ecoimpact/backend/internal/infra/seed"
	"github.com/ecoimpact/backend/internal/infra/server/router"
	"github.com/ecoimpact/backend/internal/integration/adapters"
	"github.com/ecoimpact/backend/internal/integration/email"
	"github.com/ecoimpact/backend/internal/integration/email/templates"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/controller"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
	"github.com/ecoimpact/backend/internal/integration/persistence"
)

// Options carries the optional collaborators. Zero values select the defaults.
type Options struct {
	Now func() time.Time
	// Cache enables the last-known fallback of display endpoints.
	Cache adapter.SnapshotCache
	// LeaderboardSource replaces the leaderboard_entries table as candidate source.
	LeaderboardSource adapter.LeaderboardRepository
	CoachingWriter    adapter.CoachingWriter
	// UserRepository replaces the users table, e.g. with an in-memory store.
	UserRepository adapter.UserRepository
	BcryptCost     int
	HealthChecks   map[string]controller.HealthCheck
	Metrics        *observability.Metrics
	// EmailSender delivers coaching digests. Nil logs them instead.
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *db.Database
	Router        *router.Router
	EmissionTable *valueobject.EmissionTable

	ImportTransactions *transaction.ImportTransactionsUseCase
	RefreshLeaderboard *leaderboard.RefreshLeaderboardUseCase
	GetScore           *scoring.GetScoreUseCase
	SendDigest         *coaching.SendDigestUseCase
	Seeder             *seed.Seeder
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, opts Options) (*Injector, error) {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	table, err := loadEmissionTable(cfg.Eco.EmissionTablePath)
	if err != nil {
		return nil, err
	}
	scoringConfig, err := scoringConfigFrom(cfg.Eco)
	if err != nil {
		return nil, err
	}

	cache := opts.Metrics.InstrumentCache(opts.Cache)

	// Repositories
	gormDB := database.DB()
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	ackRepo := persistence.NewAckRepository(gormDB)
	leaderboardRepo := persistence.NewLeaderboardRepository(gormDB)
	userRepo := opts.UserRepository
	if userRepo == nil {
		userRepo = persistence.NewUserRepository(gormDB)
	}
	var candidateSource adapter.LeaderboardRepository = leaderboardRepo
	if opts.LeaderboardSource != nil {
		candidateSource = opts.LeaderboardSource
	}

	// Services
	passwordService := adapters.NewPasswordService(opts.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Core
	normalizer := transaction.NewNormalizer(table, scoringConfig)
	loader := transaction.NewLoader(transactionRepo, normalizer)
	engine := aggregation.NewEngine(scoringConfig, table.ReferencePopulation())
	generator := coaching.NewGenerator(cfg.Eco.SavingsFraction)

	// Use cases
	getScoreUseCase := scoring.NewGetScoreUseCase(loader, engine, cache, now)
	monthlyScoresUseCase := scoring.NewGetMonthlyScoresUseCase(loader, engine, cache, cfg.Eco.MonthlyScoreMonths, now)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(loader, cache, now)
	topTransactionsUseCase := transaction.NewGetTopTransactionsUseCase(loader, cache, now)
	importTransactionsUseCase := transaction.NewImportTransactionsUseCase(transactionRepo, normalizer)
	listCategoriesUseCase := category.NewListCategoriesUseCase(table)

	suggestionsUseCase := coaching.NewGetSuggestionsUseCase(
		loader,
		ackRepo,
		generator,
		opts.CoachingWriter,
		coaching.Config{
			DefaultWeeks: cfg.Eco.CoachingWeeks,
			MaxWeeks:     cfg.Eco.CoachingMaxWeeks,
		},
		now,
	)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	var emailSender adapter.EmailSender = email.LogSender{}
	if opts.EmailSender != nil {
		emailSender = opts.EmailSender
	}
	mailer := email.NewDigestMailer(emailSender, renderer, email.MailerConfig{
		MaxAttempts: cfg.Email.MaxAttempts,
		Backoff:     cfg.Email.RetryBackoff,
	})
	sendDigestUseCase := coaching.NewSendDigestUseCase(loader, userRepo, suggestionsUseCase, mailer)
	ackUseCase := coaching.NewAcknowledgeUseCase(loader, ackRepo, generator, cfg.Eco.AckRequireKnown, cfg.Eco.CoachingMaxWeeks, now)

	leaderboardConfig := leaderboard.Config{
		DefaultSize: cfg.Eco.LeaderboardSize,
		Demotion: leaderboard.DemotionPolicy{
			Enabled: cfg.Eco.DemoteGuest,
			UserID:  cfg.Eco.GuestUserID,
		},
	}
	getLeaderboardUseCase := leaderboard.NewGetLeaderboardUseCase(candidateSource, cache, leaderboardConfig, now)
	refreshLeaderboardUseCase := leaderboard.NewRefreshLeaderboardUseCase(loader, engine, leaderboardRepo, userRepo, now)

	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, now)

	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	dashboardUseCase := dashboard.NewGetDashboardUseCase(
		getScoreUseCase,
		listGoalsUseCase,
		topTransactionsUseCase,
		suggestionsUseCase,
		getLeaderboardUseCase,
	)

	// Controllers
	healthChecks := map[string]controller.HealthCheck{"database": database.Ping}
	for name, check := range opts.HealthChecks {
		healthChecks[name] = check
	}

	controllers := router.Controllers{
		Health:      controller.NewHealthController(healthChecks),
		Auth:        controller.NewAuthController(registerUseCase, loginUseCase),
		Score:       controller.NewScoreController(getScoreUseCase, monthlyScoresUseCase),
		Transaction: controller.NewTransactionController(listTransactionsUseCase, topTransactionsUseCase),
		Category:    controller.NewCategoryController(listCategoriesUseCase),
		Leaderboard: controller.NewLeaderboardController(getLeaderboardUseCase),
		Coaching:    controller.NewCoachingController(suggestionsUseCase, ackUseCase),
		Goal:        controller.NewGoalController(listGoalsUseCase, createGoalUseCase),
		Dashboard:   controller.NewDashboardController(dashboardUseCase),
	}

	// Middleware
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiter(1000, time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(0, 0)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, cfg.Eco.GuestUserID)

	return &Injector{
		Config:             cfg,
		DB:                 database,
		Router:             router.NewRouter(controllers, authMiddleware, loginRateLimiter, opts.Metrics),
		EmissionTable:      table,
		ImportTransactions: importTransactionsUseCase,
		RefreshLeaderboard: refreshLeaderboardUseCase,
		GetScore:           getScoreUseCase,
		SendDigest:         sendDigestUseCase,
		Seeder: &seed.Seeder{
			Users:     userRepo,
			Passwords: passwordService,
			Import:    importTransactionsUseCase,
			Goals:     createGoalUseCase,
		},
	}, nil
}

func loadEmissionTable(path string) (*valueobject.EmissionTable, error) {
	if path == "" {
		return valueobject.DefaultEmissionTable()
	}
	table, err := valueobject.LoadEmissionTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load emission table %s: %w", path, err)
	}
	return table, nil
}

func scoringConfigFrom(eco config.EcoConfig) (valueobject.ScoringConfig, error) {
	scoringConfig := valueobject.DefaultScoringConfig()

	policy, err := valueobject.ParseRefundPolicy(eco.RefundPolicy)
	if err != nil {
		return valueobject.ScoringConfig{}, err
	}
	scoringConfig.RefundPolicy = policy

	if eco.ScoreK > 0 {
		scoringConfig.K = decimal.NewFromFloat(eco.ScoreK)
	}
	return scoringConfig, nil
}
