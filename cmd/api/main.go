package main

import (
	"context"
	"log"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/growthlab-hq/growth-backend/config"
	"github.com/growthlab-hq/growth-backend/internal/assessment/diagnosis"
	"github.com/growthlab-hq/growth-backend/internal/assessment/enrichment"
	assessmentrepo "github.com/growthlab-hq/growth-backend/internal/assessment/repository"
	"github.com/growthlab-hq/growth-backend/internal/assessment/revelations"
	"github.com/growthlab-hq/growth-backend/internal/assessment/scoring"
	assessmentsvc "github.com/growthlab-hq/growth-backend/internal/assessment/service"
	"github.com/growthlab-hq/growth-backend/internal/auth"
	"github.com/growthlab-hq/growth-backend/internal/bootstrap"
	identityrepo "github.com/growthlab-hq/growth-backend/internal/identity/repository"
	identitysvc "github.com/growthlab-hq/growth-backend/internal/identity/service"
	"github.com/growthlab-hq/growth-backend/internal/logging"
	quadrantcron "github.com/growthlab-hq/growth-backend/internal/quadrant/cron"
	quadrantrepo "github.com/growthlab-hq/growth-backend/internal/quadrant/repository"
	quadrantsvc "github.com/growthlab-hq/growth-backend/internal/quadrant/service"
	"github.com/growthlab-hq/growth-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatalw("open database", "error", err)
	}
	defer db.Close()

	pool, err := bootstrap.OpenPool(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		logger.Fatalw("open pool", "error", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatalw("open redis", "error", err)
	}
	defer func() { _ = rdb.Close() }()

	var authClient *fbauth.Client
	if cfg.Auth.CredentialsFile != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Auth)
		if err != nil {
			logger.Fatalw("initialize firebase", "error", err)
		}
	} else {
		logger.Warnw("no firebase credentials configured, using X-User-Id header auth")
	}

	resolver := identitysvc.NewResolver(
		identityrepo.NewUserRepository(db),
		identityrepo.NewOrgRepository(db),
		identitysvc.DefaultConfig(),
		logger,
	)

	pipeline := assessmentsvc.NewPipeline(assessmentsvc.PipelineDeps{
		Resolver:       resolver,
		Store:          assessmentrepo.NewAssessmentRepository(db),
		Enricher:       enrichment.NewClient(cfg.Providers.EnrichmentURL, cfg.Providers.EnrichmentTimeout),
		Scorer:         scoring.NewEngine(scoring.DefaultConfig()),
		Revealer:       revelations.NewEngine(revelations.DefaultConfig()),
		Diagnoser:      diagnosis.NewClient(cfg.Providers.DiagnosisURL, cfg.Providers.DiagnosisTimeout),
		Notifier:       assessmentsvc.NewRedisNotifier(rdb),
		NewsletterList: cfg.Providers.NewsletterList,
		Log:            logger,
	})

	scoreRepo := quadrantrepo.NewScoreRepository(pool)
	fusion := quadrantsvc.NewFusion(
		scoreRepo,
		quadrantrepo.NewCacheRepository(rdb, 5*time.Minute),
		quadrantsvc.DefaultConfig(),
		logger,
	)

	quadrantcron.NewScheduler(fusion, scoreRepo, logger).Start()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "growth-backend",
		Version:     cfg.App.Version,
		AuthClient:  authClient,
		Pool:        pool,
		Pipeline:    pipeline,
		Fusion:      fusion,
		Log:         logger,
	})

	logger.Infow("listening", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
