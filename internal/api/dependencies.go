package api

import (
	"os"

	"github.com/redis/go-redis/v9"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/db"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/metrics"
	"flightbay/techlog/internal/services"
)

type Repositories struct {
	Keys       *repositories.KeysRepo
	Org        *repositories.OrganizationRepository
	Aircraft   *repositories.AircraftRepository
	DailyLog   *repositories.DailyLogRepository
	LogQuery   *repositories.DailyLogQueryRepository
	Inspection *repositories.InspectionRepository
	Document   *repositories.DocumentRepository
}

type Services struct {
	Cache      common.CacheInterface
	Queue      *common.RedisQueueService
	Signer     *common.LinkSignerService
	Ledger     *services.LedgerService
	Inspection *services.InspectionService
	Document   *services.DocumentService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Redis    *redis.Client
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Keys:       repositories.NewApiKeysRepo(db.DB),
		Org:        repositories.NewOrganizationRepository(db.PgDB),
		Aircraft:   repositories.NewAircraftRepository(db.PgDB),
		DailyLog:   repositories.NewDailyLogRepository(db.PgDB),
		LogQuery:   repositories.NewDailyLogQueryRepository(db.DB),
		Inspection: repositories.NewInspectionRepository(db.PgDB),
		Document:   repositories.NewDocumentRepository(db.PgDB),
	}

	redisClient := common.NewRedisClient()

	// Prefer Redis for the totals cache so multiple instances agree; fall
	// back to in-process go-cache when Redis is not reachable.
	var cacheSvc common.CacheInterface
	if redisCache, err := common.NewRedisCacheService(redisClient); err == nil {
		cacheSvc = redisCache
	} else {
		logging.Warn("Redis cache unavailable, using in-memory cache", "error", err)
		cacheSvc = common.NewCacheService(300, 600)
	}

	queueSvc := common.NewRedisQueueService(redisClient)

	secret := os.Getenv("LINK_SIGNING_SECRET")
	if secret == "" {
		secret = "dev-only-signing-secret"
	}
	signerSvc := common.NewLinkSignerService([]byte(secret), redisClient)

	ledgerSvc := services.NewLedgerService(db.PgDB, repos.DailyLog, repos.Aircraft, cacheSvc, queueSvc, metricsReg)

	svcs := &Services{
		Cache:      cacheSvc,
		Queue:      queueSvc,
		Signer:     signerSvc,
		Ledger:     ledgerSvc,
		Inspection: services.NewInspectionService(repos.Inspection, ledgerSvc),
		Document:   services.NewDocumentService(repos.Document, signerSvc),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Redis:    redisClient,
		Metrics:  metricsReg,
	}, nil
}
