package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/basit438/popacart-backend/configs"
	"github.com/basit438/popacart-backend/internal/adapter/cache"
	httpadapter "github.com/basit438/popacart-backend/internal/adapter/http"
	"github.com/basit438/popacart-backend/internal/adapter/http/middleware"
	"github.com/basit438/popacart-backend/internal/adapter/kafka"
	"github.com/basit438/popacart-backend/internal/adapter/queue"
	"github.com/basit438/popacart-backend/internal/adapter/repo"
	"github.com/basit438/popacart-backend/internal/logging"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := repo.EnsureSchema(ctx, db); err != nil {
		return nil, nil, err
	}

	logger.Info("popacart: starting up")

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq producer
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// repos + stores
	productRepo := repo.NewMySQLProductRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	couponRepo := repo.NewMySQLCouponRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	wishlistRepo := repo.NewMySQLWishlistRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.StatusCache.TTL)

	// use cases
	cartSvc := usecase.NewCartService(productRepo, cartRepo)
	couponSvc := usecase.NewCouponService(couponRepo)
	createOrder := usecase.NewCreateOrder(cartRepo, productRepo, couponSvc, orderRepo, idem, producer)
	orderQuery := usecase.NewOrderQuery(orderRepo, statusCache)
	wishlistSvc := usecase.NewWishlistService(wishlistRepo, productRepo)

	// fulfillment status listener
	stopConsumer, err := startStatusConsumer(cfg, usecase.NewOrderStatusUpdater(orderRepo, statusCache))
	if err != nil {
		return nil, nil, err
	}

	// handlers + router
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Users:    httpadapter.NewUserHandler(cfg, userRepo),
		Products: httpadapter.NewProductHandler(productRepo),
		Carts:    httpadapter.NewCartHandler(cartSvc),
		Coupons:  httpadapter.NewCouponHandler(couponSvc),
		Orders:   httpadapter.NewOrderHandler(createOrder, orderQuery),
		Wishlist: httpadapter.NewWishlistHandler(wishlistSvc),
	}, authz)

	cleanup := func() {
		stopConsumer()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func startStatusConsumer(cfg configs.Config, updater *usecase.OrderStatusUpdater) (func(), error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	l := logging.New("kafka")
	h := kafka.NewOrderStatusChangedHandler(updater)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.StatusTopic}, h.Handle, l)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			l.Error("status consumer stopped", "err", err)
		}
	}()

	return func() {
		cancel()
		_ = grp.Close()
	}, nil
}
