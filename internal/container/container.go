package container

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"fakestore/shop/internal/browse"
	"fakestore/shop/internal/cart"
	"fakestore/shop/internal/catalog"
	"fakestore/shop/internal/client"
	"fakestore/shop/internal/config"
	"fakestore/shop/internal/notify"
	"fakestore/shop/internal/proxy"
	"fakestore/shop/internal/service"
	"fakestore/shop/internal/shell"
	"fakestore/shop/internal/state"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.CatalogClient
	Catalog *catalog.Loader
	Store   state.Store
	Service *service.Service
	Shell   *shell.Shell

	notifier *notify.Notifier
	redis    *redis.Client
}

// New creates a new container with all dependencies initialized. The shell
// reads commands from in and renders to out.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier := proxy.NewSupplier(ctx, cfg.Catalog.Proxies, cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	container.Client = client.NewCatalogClient(cfg.Catalog, proxySupplier)
	container.Catalog = catalog.NewLoader(container.Client)

	store, err := container.newStore(ctx)
	if err != nil {
		return nil, err
	}
	container.Store = store

	container.notifier = notify.NewNotifier(clock.New(), cfg.UI.NotificationTTL)

	container.Service = service.NewService(
		container.Catalog,
		browse.NewController(ctx, container.Catalog, store),
		cart.NewStore(ctx, store),
		container.notifier,
	)
	container.Shell = shell.New(container.Service, in, out)

	return container, nil
}

func (c *Container) newStore(ctx context.Context) (state.Store, error) {
	switch c.Config.Storage.Backend {
	case config.StorageBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", c.Config.Redis.Host, c.Config.Redis.Port),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.Database,
		})

		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		c.redis = rdb
		return state.NewRedisStore(rdb, c.Config.Redis.KeyPrefix), nil
	default:
		log.Infof("Persisting state to %s", c.Config.Storage.Path)
		return state.NewFileStore(c.Config.Storage.Path), nil
	}
}

// Run fetches the catalog in the background while the shell serves the user.
// It returns once the shell exits.
func (c *Container) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Catalog.Load(ctx)
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return c.Shell.Run(ctx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.notifier.Stop()
	if err := c.Client.Close(); err != nil {
		return fmt.Errorf("failed to close catalog client: %w", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
