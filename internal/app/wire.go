//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/TheRebzu/ecodeli-sub009/internal/gateway/kafka/notification"
	"github.com/TheRebzu/ecodeli-sub009/internal/gateway/redis/lock"
	announcement_published "github.com/TheRebzu/ecodeli-sub009/internal/handlers/kafka-consumer/announcement_published"
	availability_get "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/availability_get"
	matches_get "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/matches_get"
	matches_post "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/matches_post"
	partial_plan_get "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/partial_plan_get"
	partial_plan_post "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/partial_plan_post"
	rule_delete "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/rule_delete"
	rule_window_put "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/rule_window_put"
	segment_status_put "github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/segment_status_put"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/tasks/rematch"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/config"

	announcementRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/announcement"
	availabilityRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/availability"
	matchRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/match"
	planRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/plan"
	relayRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/relay"
	routeRepo "github.com/TheRebzu/ecodeli-sub009/internal/repository/route"
	availabilityService "github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/compatibility"
	matchingService "github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	partialService "github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/scoring"

	"github.com/TheRebzu/ecodeli-sub009/pkg/background"
	"github.com/TheRebzu/ecodeli-sub009/pkg/clock"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/TheRebzu/ecodeli-sub009/pkg/querier"
	"github.com/TheRebzu/ecodeli-sub009/pkg/tx"
)

type (
	RematchInterval time.Duration
)

type Application struct {
	ServiceMatching     ServiceMatching
	ServiceAvailability ServiceAvailability
	ServicePartial      ServicePartial
	BackgroundWorkers   *background.Worker
}

type ServiceMatching interface {
	matches_post.Service
	matches_get.Service
}

type ServiceAvailability interface {
	availability_get.Service
	rule_delete.Service
	rule_window_put.Service
}

type ServicePartial interface {
	partial_plan_post.Service
	partial_plan_get.Service
	segment_status_put.Service
}

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideAnnouncementRepository,
	provideRouteRepository,
	provideMatchRepository,

	wire.Bind(new(matchingService.AnnouncementRepository), new(*announcementRepo.Repository)),
	wire.Bind(new(matchingService.RouteRepository), new(*routeRepo.Repository)),
	wire.Bind(new(matchingService.MatchRepository), new(*matchRepo.Repository)),
	wire.Bind(new(matchingService.TxManager), new(*tx.Manager)),
)

var matchingSet = wire.NewSet(
	provideClock,
	provideNotificationGateway,
	provideLocker,
	provideEngine,
	provideServiceMatching,

	wire.Bind(new(matchingService.Locker), new(*lock.Locker)),
	wire.Bind(new(matchingService.Notifier), new(*notification.Gateway)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		repositorySet,
		matchingSet,
		provideRematchInterval,

		provideAvailabilityRepository,
		provideRelayRepository,
		providePlanRepository,

		provideServiceAvailability,
		provideServicePartial,

		provideRematchTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceMatching), new(*matchingService.Service)),
		wire.Bind(new(ServiceAvailability), new(*availabilityService.Service)),
		wire.Bind(new(ServicePartial), new(*partialService.Service)),
		wire.Bind(new(rematch.Service), new(*matchingService.Service)),

		wire.Bind(new(availabilityService.Repository), new(*availabilityRepo.Repository)),
		wire.Bind(new(availabilityService.TxManager), new(*tx.Manager)),
		wire.Bind(new(availabilityService.Clock), new(clock.Real)),

		wire.Bind(new(partialService.AnnouncementRepository), new(*announcementRepo.Repository)),
		wire.Bind(new(partialService.RelayRepository), new(*relayRepo.Repository)),
		wire.Bind(new(partialService.PlanRepository), new(*planRepo.Repository)),
		wire.Bind(new(partialService.SegmentRepository), new(*planRepo.Repository)),
		wire.Bind(new(partialService.TxManager), new(*tx.Manager)),
		wire.Bind(new(partialService.Notifier), new(*notification.Gateway)),
		wire.Bind(new(partialService.Clock), new(clock.Real)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	MatchingService announcement_published.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-announcement-published)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		repositorySet,
		matchingSet,

		wire.Bind(new(announcement_published.Service), new(*matchingService.Service)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideClock() clock.Real {
	return clock.Real{}
}

func provideAnnouncementRepository(querier *querier.Querier) *announcementRepo.Repository {
	return announcementRepo.New(querier)
}

func provideRouteRepository(querier *querier.Querier) *routeRepo.Repository {
	return routeRepo.New(querier)
}

func provideMatchRepository(querier *querier.Querier) *matchRepo.Repository {
	return matchRepo.New(querier)
}

func provideAvailabilityRepository(querier *querier.Querier) *availabilityRepo.Repository {
	return availabilityRepo.New(querier)
}

func provideRelayRepository(querier *querier.Querier) *relayRepo.Repository {
	return relayRepo.New(querier)
}

func providePlanRepository(querier *querier.Querier) *planRepo.Repository {
	return planRepo.New(querier)
}

func provideLocker(client *goredis.Client) *lock.Locker {
	return lock.New(client)
}

func provideNotificationGateway(producer sarama.SyncProducer, clk clock.Real, cfg *config.Config) *notification.Gateway {
	return notification.New(producer, clk, cfg.Kafka.NotificationTopic)
}

func provideEngine(cfg *config.Config) *matchingService.Engine {
	return matchingService.NewEngine(
		compatibility.NewEvaluator(cfg.Calendar.Location),
		scoring.NewScorer(),
		cfg.Matching.MinScore,
		cfg.Matching.Workers,
	)
}

func provideServiceMatching(
	log logger.Logger,
	engine *matchingService.Engine,
	announcements matchingService.AnnouncementRepository,
	routes matchingService.RouteRepository,
	matches matchingService.MatchRepository,
	txManager matchingService.TxManager,
	locker matchingService.Locker,
	notifier matchingService.Notifier,
	cfg *config.Config,
) *matchingService.Service {
	return matchingService.New(
		log.With(logger.NewField("service", "matching")),
		engine,
		announcements,
		routes,
		matches,
		txManager,
		locker,
		notifier,
		matchingService.Config{
			SearchMarginKm: cfg.Matching.SearchMarginKm,
			LockTTL:        cfg.Matching.LockTTL,
			NotifyTopN:     cfg.Matching.NotifyTopN,
			RematchBatch:   cfg.Matching.RematchBatch,
		},
	)
}

func provideServiceAvailability(
	repository availabilityService.Repository,
	txManager availabilityService.TxManager,
	clk availabilityService.Clock,
	cfg *config.Config,
) *availabilityService.Service {
	return availabilityService.New(repository, txManager, clk, cfg.Calendar.Location)
}

func provideServicePartial(
	log logger.Logger,
	clk partialService.Clock,
	announcements partialService.AnnouncementRepository,
	relays partialService.RelayRepository,
	plans partialService.PlanRepository,
	segments partialService.SegmentRepository,
	txManager partialService.TxManager,
	notifier partialService.Notifier,
) *partialService.Service {
	return partialService.New(
		log.With(logger.NewField("service", "partial_delivery")),
		clk,
		announcements,
		relays,
		plans,
		segments,
		txManager,
		notifier,
	)
}

func provideRematchInterval(cfg *config.Config) RematchInterval {
	return RematchInterval(cfg.Tasks.RematchInterval)
}

func provideRematchTask(
	log logger.Logger,
	service rematch.Service,
	interval RematchInterval,
) *rematch.Rematch {
	return rematch.NewRematch(log.With(logger.NewField("task", "rematch")), service, time.Duration(interval))
}

func provideTaskList(
	rematchTask *rematch.Rematch,
) []background.Task {
	return []background.Task{
		rematchTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
