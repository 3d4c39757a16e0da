// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for RecoveryHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, redis_addr, etc.
//   - Environment variables: RECOVERYHUB_MONGO_URI, RECOVERYHUB_REDIS_ADDR, etc.
//   - Command-line flags: --mongo_uri, --redis_addr, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "recovery_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Redis (rate limiter)
	{Name: "redis_addr", Default: "", Desc: "Redis address host:port (blank keeps rate limits in memory)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	// Task events
	{Name: "amqp_url", Default: "", Desc: "AMQP broker URL for task events (blank disables publishing)"},
	{Name: "task_queue", Default: "recoveryhub.tasks", Desc: "Queue that receives task events"},
	{Name: "task_relay_interval", Default: "5s", Desc: "How often unpublished tasks are relayed (e.g., 5s, 1m)"},

	// Rate limiting
	{Name: "rate_limit_requests", Default: 300, Desc: "Requests allowed per client per window"},
	{Name: "rate_limit_window", Default: "1m", Desc: "Rate limit window (e.g., 1m, 30s)"},

	{Name: "request_timeout", Default: "10s", Desc: "Database deadline for one request (e.g., 10s)"},

	// Audit logging settings
	{Name: "audit_log", Default: "all", Desc: "Audit event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, RECOVERYHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RECOVERYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RedisAddr:     strings.TrimSpace(appValues.String("redis_addr")),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		AMQPURL:           strings.TrimSpace(appValues.String("amqp_url")),
		TaskQueue:         strings.TrimSpace(appValues.String("task_queue")),
		TaskRelayInterval: appValues.Duration("task_relay_interval", 5*time.Second),

		RateLimitRequests: appValues.Int("rate_limit_requests"),
		RateLimitWindow:   appValues.Duration("rate_limit_window", time.Minute),

		RequestTimeout: appValues.Duration("request_timeout", 10*time.Second),

		AuditLog: strings.ToLower(strings.TrimSpace(appValues.String("audit_log"))),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here so a typo fails before any connection
// attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive, got %d", appCfg.RateLimitRequests)
	}
	if appCfg.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_window must be positive")
	}
	if appCfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if appCfg.AMQPURL != "" {
		if appCfg.TaskQueue == "" {
			return fmt.Errorf("task_queue is required when amqp_url is set")
		}
		if appCfg.TaskRelayInterval <= 0 {
			return fmt.Errorf("task_relay_interval must be positive")
		}
	}
	if !auditlog.ValidMode(appCfg.AuditLog) {
		return fmt.Errorf("audit_log must be one of all, db, log, off; got %q", appCfg.AuditLog)
	}
	return nil
}
