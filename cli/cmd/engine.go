package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/cli/config"
	"github.com/justapithecus/brrr/engine"
	"github.com/justapithecus/brrr/iox"
	"github.com/justapithecus/brrr/queue"
	"github.com/justapithecus/brrr/queue/memqueue"
	"github.com/justapithecus/brrr/queue/redisqueue"
	"github.com/justapithecus/brrr/store"
	"github.com/justapithecus/brrr/store/memstore"
	"github.com/justapithecus/brrr/store/redisstore"
	"github.com/justapithecus/brrr/store/s3coldstore"
)

const defaultQueueKey = "brrr:jobs"

// loadConfig reads the --config file if given, else returns a zero
// Config (memory backends, engine defaults).
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// buildStore constructs the Store backend named by cfg.
func buildStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return memstore.New(), nil
	case "redis":
		return redisstore.New(redisstore.Config{URL: cfg.URL})
	default:
		return nil, fmt.Errorf("cmd: unknown store backend %q", cfg.Backend)
	}
}

// buildQueue constructs the Queue backend named by cfg.
func buildQueue(cfg config.QueueConfig) (queue.Queue, error) {
	switch cfg.Backend {
	case "", "memory":
		capacity := cfg.Capacity
		if capacity <= 0 {
			capacity = 256
		}
		return memqueue.New(capacity, cfg.PollTimeout.Duration), nil
	case "redis":
		key := cfg.Key
		if key == "" {
			key = defaultQueueKey
		}
		return redisqueue.New(redisqueue.Config{URL: cfg.URL, Key: key, PollTimeout: cfg.PollTimeout.Duration})
	default:
		return nil, fmt.Errorf("cmd: unknown queue backend %q", cfg.Backend)
	}
}

// buildEngine assembles a *engine.Brrr from --config and registers
// every task known to this binary. The returned cleanup func releases
// any live backend connections (Redis store/queue) and must be
// deferred by the caller.
func buildEngine(c *cli.Context) (b *engine.Brrr, cleanup func(), err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	s, err := buildStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	q, err := buildQueue(cfg.Queue)
	if err != nil {
		return nil, nil, err
	}

	var opts []engine.Option
	if cfg.SpawnLimit > 0 {
		opts = append(opts, engine.WithSpawnLimit(cfg.SpawnLimit))
	}
	if cfg.CAS.RetryLimit > 0 {
		opts = append(opts, engine.WithCASRetryLimit(cfg.CAS.RetryLimit))
	}
	if cfg.ColdStore.Bucket != "" {
		cold, err := s3coldstore.New(context.Background(), s3coldstore.Config{
			Bucket:       cfg.ColdStore.Bucket,
			Prefix:       cfg.ColdStore.Prefix,
			Region:       cfg.ColdStore.Region,
			Endpoint:     cfg.ColdStore.Endpoint,
			UsePathStyle: cfg.ColdStore.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, engine.WithColdStore(cold, cfg.ColdStore.ThresholdBytes, s3coldstore.IsRef))
	}

	b = engine.New(s, q, opts...)
	registerBuiltinTasks(b)

	cleanup = func() {
		if sc, ok := s.(io.Closer); ok {
			iox.DiscardClose(sc)
		}
		iox.DiscardErr(func() error { return q.Close(context.Background()) })
	}
	return b, cleanup, nil
}
