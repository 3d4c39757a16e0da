// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, CORS, body limits);
// everything specific to the recovery backend lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017/?replicaSet=rs0)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Redis backs the shared rate limiter. Blank RedisAddr keeps the
	// limiter in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Task events. Blank AMQPURL disables the relay worker; tasks are
	// still recorded in MongoDB.
	AMQPURL           string
	TaskQueue         string
	TaskRelayInterval time.Duration

	// Per-client request limit on /api.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// RequestTimeout bounds the database work of one request.
	RequestTimeout time.Duration

	// AuditLog is where admin and task events go: all, db, log or off.
	AuditLog string
}
