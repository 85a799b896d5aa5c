// Package container holds the components constructed at startup and hands
// them to the router. It replaces package-level singletons: everything is
// reachable from one value built in cmd/main.go.
package container

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/internal/application"
	repo "github.com/oksasatya/gadget-store-api/internal/domain/repository"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/memory"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/messaging"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/gadget-store-api/internal/infrastructure/search"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Users    repo.UserRepository
	Products repo.ProductRepository
	Orders   repo.OrderRepository

	Mongo     *mongo.Client
	Redis     *redis.Client
	Denylist  *helpers.TokenDenylist
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	Images application.ImageStore
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	}
}

// UseMemoryStores backs every repository with the in-process store.
func (c *Container) UseMemoryStores() {
	c.Users = memory.NewUserStore()
	c.Products = memory.NewProductStore()
	c.Orders = memory.NewOrderStore()
}

// UseMongo backs every repository with the given database.
func (c *Container) UseMongo(client *mongo.Client, dbName string) {
	db := client.Database(dbName)
	c.Mongo = client
	c.Users = mongodb.NewUserRepository(db)
	c.Products = mongodb.NewProductRepository(db)
	c.Orders = mongodb.NewOrderRepository(db)
}

// UseRedis enables the token denylist.
func (c *Container) UseRedis(rdb *redis.Client) {
	c.Redis = rdb
	c.Denylist = helpers.NewTokenDenylist(rdb)
}

// ProductIndex returns nil when search is not configured.
func (c *Container) ProductIndex() application.ProductIndex {
	if c.ES == nil {
		return nil
	}
	return search.NewProductIndex(c.ES, c.Config.ESProductsIndex)
}

// OrderNotifier returns nil unless mail is enabled and a publisher exists.
func (c *Container) OrderNotifier() application.OrderNotifier {
	if c.RabbitPub == nil || !c.Config.MailSendEnabled {
		return nil
	}
	return messaging.NewOrderNotifier(c.RabbitPub, c.Config)
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.JWT, c.Denylist, c.Logger)
}

func (c *Container) CatalogService() *application.CatalogService {
	return application.NewCatalogService(c.Products, c.Images, c.ProductIndex(), c.Logger)
}

func (c *Container) OrderService() *application.OrderService {
	return application.NewOrderService(c.Orders, c.Products, c.OrderNotifier(), c.Logger)
}

func (c *Container) Seeder() *application.Seeder {
	return application.NewSeeder(c.Users, c.Products, c.ProductIndex(), c.Logger)
}

// Close releases every client that was opened.
func (c *Container) Close(ctx context.Context) {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Mongo != nil {
		_ = c.Mongo.Disconnect(ctx)
	}
}

// OpenStores selects the repositories from STORE_DRIVER. With mongo, an
// unreachable server or a failed migration is logged and startup goes on;
// only an unusable URI is returned as an error.
func (c *Container) OpenStores(ctx context.Context) error {
	if c.Config.StoreDriver == "memory" {
		c.Logger.Warn("using in-memory stores; data is lost on restart")
		c.UseMemoryStores()
		return nil
	}

	client, err := mongodb.NewClient(ctx, c.Config.MongoURI, c.Config.MongoTimeout)
	if err != nil {
		return err
	}
	c.UseMongo(client, c.Config.MongoDB)

	if err := mongodb.Ping(ctx, client, c.Config.MongoTimeout); err != nil {
		helpers.LogWarn(c.Logger, "mongodb unreachable", err, logrus.Fields{"db": c.Config.MongoDB})
		return nil
	}
	helpers.LogInfo(c.Logger, "mongodb connected", logrus.Fields{"db": c.Config.MongoDB})

	if err := mongodb.RunMigrations(client, c.Config.MongoDB, c.Config.MigrationsDir, c.Logger); err != nil {
		helpers.LogError(c.Logger, "migration failed", err, nil)
	}
	return nil
}
