// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	taskstore "github.com/dalemusser/recoveryhub/internal/app/store/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/indexes"
	"github.com/dalemusser/recoveryhub/internal/app/system/ratelimit"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/timeouts"
	"github.com/dalemusser/recoveryhub/internal/app/system/validators"
	"github.com/dalemusser/recoveryhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	rateLimitPrefix = "recoveryhub:ratelimit"
	sweepInterval   = time.Minute
)

// ConnectDB opens MongoDB, the optional Redis client and the optional task
// publisher, and builds the background workers that use them.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.FromRequestTimeout(appCfg.RequestTimeout))

	client, err := connectMongo(ctx, appCfg)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	if appCfg.RedisAddr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		err := deps.Redis.Ping(pctx).Err()
		cancel()
		if err != nil {
			// The limiter falls back to memory while Redis is down.
			logger.Warn("Redis ping failed", zap.String("addr", appCfg.RedisAddr), zap.Error(err))
		} else {
			logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))
		}
	}

	deps.Limiter = ratelimit.NewRedis(deps.Redis, rateLimitPrefix, appCfg.RateLimitRequests, appCfg.RateLimitWindow, logger)
	fallback := deps.Limiter.Fallback()
	deps.Workers = append(deps.Workers, workers.NewRunner(tasks.Job{
		Name:     "ratelimit-sweep",
		Interval: sweepInterval,
		Run: func(context.Context) error {
			fallback.Sweep()
			return nil
		},
	}, logger, timeouts.Short()))

	if appCfg.AMQPURL != "" {
		deps.Publisher = tasks.NewAMQPPublisher(appCfg.AMQPURL, appCfg.TaskQueue, logger)
		job := tasks.RelayJob(taskstore.New(deps.MongoDatabase), deps.Publisher, logger, appCfg.TaskRelayInterval)
		deps.Workers = append(deps.Workers, workers.NewRunner(job, logger, timeouts.Long()))
	} else {
		logger.Info("amqp_url not set; task events will not be published")
	}

	return deps, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize).
		SetBSONOptions(&options.BSONOptions{
			NilSliceAsEmpty: true,
			NilMapAsEmpty:   true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureSchema creates indexes and installs collection validators.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured")
	return nil
}
