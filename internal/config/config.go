package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Crawler  CrawlerConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	LogLevel      string
	LogFormat     string
	MigrationsDir string
	SeedOnStart   bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	// DBSearchPath sets the session search_path when non-empty.
	DBSearchPath string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type StorageConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	AvatarBucket  string
	PublicBaseURL string
	PresignTTL    time.Duration
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type CrawlerConfig struct {
	Workers      int
	RatePerSec   int
	Tags         []string
	ArticlesPage int
	Headless     bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		LogLevel:      orDefault(opt("LOG_LEVEL"), "info"),
		LogFormat:     orDefault(opt("LOG_FORMAT"), "text"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
		SeedOnStart:   parseBool(opt("SEED_ON_START")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:       opt("DB_HOST"),
		DBPort:       opt("DB_PORT"),
		DBName:       opt("DB_NAME"),
		DBUser:       opt("DB_USER"),
		DBPassword:   opt("DB_PASSWORD"),
		DBSSLMode:    orDefault(opt("DB_SSL_MODE"), "disable"),
		DBSearchPath: opt("DB_SEARCH_PATH"),

		ConnectTimeout:        parseDuration(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(parseInt(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(parseInt(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   parseDuration(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   parseDuration(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: parseDuration(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  parseDuration(opt("JWT_ACCESS_EXPIRES_IN"), 15*time.Minute),
		RefreshExpiresIn: parseDuration(opt("JWT_REFRESH_EXPIRES_IN"), 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     orDefault(opt("REDIS_HOST"), "localhost"),
		Port:     orDefault(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(parseInt(opt("REDIS_TTL"), 600)) * time.Second,
	}

	cfg.Storage = StorageConfig{
		Endpoint:      opt("S3_ENDPOINT"),
		Region:        orDefault(opt("S3_REGION"), "us-east-1"),
		AccessKey:     opt("S3_ACCESS_KEY"),
		SecretKey:     opt("S3_SECRET_KEY"),
		AvatarBucket:  orDefault(opt("S3_AVATAR_BUCKET"), "avatars"),
		PublicBaseURL: opt("S3_PUBLIC_BASE_URL"),
		PresignTTL:    parseDuration(opt("S3_PRESIGN_TTL"), 15*time.Minute),
	}

	cfg.LLM = LLMConfig{
		BaseURL: orDefault(opt("LLM_BASE_URL"), "https://api.openai.com/v1"),
		APIKey:  opt("OPENAI_API_KEY"),
		Model:   orDefault(opt("LLM_MODEL"), "gpt-3.5-turbo"),
		Timeout: parseDuration(opt("LLM_TIMEOUT"), 60*time.Second),
	}

	cfg.Crawler = CrawlerConfig{
		Workers:      parseInt(opt("CRAWLER_WORKERS"), 4),
		RatePerSec:   parseInt(opt("CRAWLER_RATE_PER_SEC"), 4),
		Tags:         splitList(opt("CRAWLER_TAGS")),
		ArticlesPage: parseInt(opt("CRAWLER_ARTICLES_PER_TAG"), 10),
		Headless:     parseBool(opt("CRAWLER_HEADLESS")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

// parseDuration accepts Go duration strings ("15m") or plain seconds ("900").
func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
