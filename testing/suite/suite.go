package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireSeconds   = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite is a session-store test environment backed by a throwaway redis container.
// Tests are skipped when no docker daemon is reachable.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("test", t.Name())

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	pool.MaxWait = maxWaitDuration

	resource := startRedis(t, pool)
	redisClient := connectRedis(ctx, t, pool, resource)

	logger.Debug("redis container ready", "container", resource.Container.ID, "addr", redisClient.Options().Addr)

	t.Cleanup(func() {
		_ = redisClient.Close()

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge redis container: %v", purgeErr)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Storage: redisClient,
	}
}

func startRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	// hard kill in case the cleanup never runs
	_ = resource.Expire(expireSeconds)

	return resource
}

// connectRedis retries until the server in the container accepts connections, then empties it.
func connectRedis(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	redisClient := redis.NewClient(&redis.Options{
		Addr: resource.GetHostPort(redisPort),
	})

	if err := pool.Retry(func() error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return redisClient
}
