// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/recoveryhub/internal/app/system/ratelimit"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis is nil when redis_addr is blank.
	Redis   *redis.Client
	Limiter *ratelimit.RedisLimiter

	// Publisher is nil when amqp_url is blank.
	Publisher *tasks.AMQPPublisher

	// Workers are built in ConnectDB, started in Startup and stopped in
	// Shutdown.
	Workers []*workers.Runner
}
