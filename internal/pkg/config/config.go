package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultMinScore          = 50
	defaultWorkers           = 8
	defaultNotifyTopN        = 5
	defaultLockTTL           = 30 * time.Second
	defaultSearchMarginKm    = 5
	defaultRematchBatch      = 100
	defaultMaxSegmentKm      = 100
	defaultCalendarTimezone  = "UTC"
	defaultLogLevel          = "info"
	defaultNotificationTopic = "ecodeli.notifications"
)

type (
	Tasks struct {
		RematchInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration
		RateLimiterQPS   int // пополнение бакета клиента, запросов в секунду
		RateLimiterBurst int // емкость бакета клиента
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		// 0 - значения пула по умолчанию
		MaxConns int32
		MinConns int32
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Matching struct {
		MinScore       int
		Workers        int
		LockTTL        time.Duration
		NotifyTopN     int
		SearchMarginKm float64
		RematchBatch   uint64
	}

	Calendar struct {
		Timezone string
		Location *time.Location
	}

	Partial struct {
		MaxSegmentDistanceKm float64
	}

	Kafka struct {
		PortHealthcheck   string
		Brokers           string
		Topic             string
		ConsumerGroup     string
		NotificationTopic string
		Sarama            Sarama
		Handlers          KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		AnnouncementPublished AnnouncementPublished
	}

	AnnouncementPublished struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		LogLevel string
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Redis    Redis
		Matching Matching
		Calendar Calendar
		Partial  Partial
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	rematchInterval, err := osGetEnvDuration("BACKGROUND_REMATCH_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	announcementPublishedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ANNOUNCEMENT_PUBLISHED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	minConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	matching, err := loadMatching()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	calendar, err := loadCalendar()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxSegmentKm, err := osGetFloat("PARTIAL_MAX_SEGMENT_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if maxSegmentKm == 0 {
		maxSegmentKm = defaultMaxSegmentKm
	}

	return &Config{
		LogLevel: osGetString("LOG_LEVEL", defaultLogLevel),
		Tasks: Tasks{
			RematchInterval: rematchInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: int32(maxConns), //nolint:gosec // размер пула, проверяется в validateConfig
			MinConns: int32(minConns), //nolint:gosec // размер пула, проверяется в validateConfig
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Matching: *matching,
		Calendar: *calendar,
		Partial: Partial{
			MaxSegmentDistanceKm: maxSegmentKm,
		},
		Kafka: Kafka{
			Brokers:           os.Getenv("KAFKA_BROKERS"),
			Topic:             os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:     os.Getenv("KAFKA_CONSUMER_GROUP"),
			NotificationTopic: osGetString("KAFKA_NOTIFICATION_TOPIC", defaultNotificationTopic),
			PortHealthcheck:   os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				AnnouncementPublished: AnnouncementPublished{
					ProcessTimeout: announcementPublishedTimeout,
				},
			},
		},
	}, nil
}

func loadMatching() (*Matching, error) {
	minScore, err := osGetInt("MATCHING_MIN_SCORE")
	if err != nil {
		return nil, err
	}
	if os.Getenv("MATCHING_MIN_SCORE") == "" {
		minScore = defaultMinScore
	}

	workers, err := osGetInt("MATCHING_WORKERS")
	if err != nil {
		return nil, err
	}
	if workers == 0 {
		workers = defaultWorkers
	}

	lockTTL, err := osGetEnvDuration("MATCHING_LOCK_TTL")
	if err != nil {
		return nil, err
	}
	if lockTTL == 0 {
		lockTTL = defaultLockTTL
	}

	notifyTopN, err := osGetInt("MATCHING_NOTIFY_TOP_N")
	if err != nil {
		return nil, err
	}
	if notifyTopN == 0 {
		notifyTopN = defaultNotifyTopN
	}

	margin, err := osGetFloat("MATCHING_SEARCH_MARGIN_KM")
	if err != nil {
		return nil, err
	}
	if margin == 0 {
		margin = defaultSearchMarginKm
	}

	batch, err := osGetInt("MATCHING_REMATCH_BATCH")
	if err != nil {
		return nil, err
	}
	if batch < 0 {
		return nil, errors.New("MATCHING_REMATCH_BATCH must be positive")
	}
	if batch == 0 {
		batch = defaultRematchBatch
	}

	return &Matching{
		MinScore:       minScore,
		Workers:        workers,
		LockTTL:        lockTTL,
		NotifyTopN:     notifyTopN,
		SearchMarginKm: margin,
		RematchBatch:   uint64(batch),
	}, nil
}

func loadCalendar() (*Calendar, error) {
	name := osGetString("CALENDAR_TIMEZONE", defaultCalendarTimezone)
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_TIMEZONE=%q: %w", name, err)
	}
	return &Calendar{
		Timezone: name,
		Location: location,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MinConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS and POSTGRES_MIN_CONNS must be non-negative")
	}
	if cfg.Database.MaxConns > 0 && cfg.Database.MinConns > cfg.Database.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if cfg.Redis.DB < 0 {
		return errors.New("REDIS_DB must be non-negative")
	}

	if cfg.Tasks.RematchInterval == time.Duration(0) {
		return errors.New("BACKGROUND_REMATCH_INTERVAL is required")
	}

	if cfg.Matching.MinScore < 0 || cfg.Matching.MinScore > 100 {
		return errors.New("MATCHING_MIN_SCORE must be within 0..100")
	}
	if cfg.Matching.Workers < 0 {
		return errors.New("MATCHING_WORKERS must be positive")
	}
	if cfg.Matching.NotifyTopN < 0 {
		return errors.New("MATCHING_NOTIFY_TOP_N must be positive")
	}
	if cfg.Matching.SearchMarginKm < 0 {
		return errors.New("MATCHING_SEARCH_MARGIN_KM must be positive")
	}
	if cfg.Partial.MaxSegmentDistanceKm < 0 {
		return errors.New("PARTIAL_MAX_SEGMENT_KM must be positive")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.AnnouncementPublished.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ANNOUNCEMENT_PUBLISHED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetString(s, fallback string) string {
	val := os.Getenv(s)
	if val == "" {
		return fallback
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
