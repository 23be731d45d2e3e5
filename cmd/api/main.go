package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/cache"
	"marketplace/internal/infra/db"
	"marketplace/internal/infra/events"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/infra/token"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	auth "marketplace/internal/usecase/auth_usecase"

	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	logger := log.New("api")
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.GoEnv == "prod" {
		logger.SetLevel(log.INFO)
	} else {
		logger.SetLevel(log.DEBUG)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	sellerRepo := infraRepo.NewSellerGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	lineItemRepo := infraRepo.NewLineItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//商品キャッシュ（REDIS_ADDRが無ければ使わない）
	var productCache usecase.ProductCache = cache.NoopProductCache{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		productCache = cache.NewProductCache(rdb, cfg.ProductCacheTTL)
	}

	//注文イベント（RABBITMQ_URLが無ければ送らない）
	var publisher usecase.OrderEventPublisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rp, err := events.Dial(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer rp.Close()
		publisher = rp
	}

	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, sellerRepo, verifier, issuer, clock)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, lineItemRepo, usecase.NewTxRef, publisher, logger)

	//Handler生成
	h := server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC),
		Profile: handler.NewProfileHandler(usecase.NewProfileUsecase(userRepo), usecase.NewAddressUsecase(addressRepo)),
		Cart:    handler.NewCartHandler(usecase.NewCartUsecase(txManager, lineItemRepo), orderUC),
		Order:   handler.NewOrderHandler(orderUC),
		Shop:    handler.NewShopHandler(usecase.NewShopUsecase(categoryRepo, productRepo, sellerRepo, productCache, logger)),
		Seller: handler.NewSellerHandler(usecase.NewSellerUsecase(
			txManager, sellerRepo, categoryRepo, productRepo, orderRepo, lineItemRepo, productCache, logger,
		)),
		Review: handler.NewReviewHandler(usecase.NewReviewUsecase(reviewRepo, productRepo)),
		Admin:  handler.NewAdminHandler(usecase.NewAdminUsecase(txManager, clock)),
		Health: handler.NewHealthHandler(sqlDB),
	}

	//Server起動
	e := server.New(cfg, h, userRepo, sellerRepo)
	logger.Infof("listening on %s", cfg.Addr())
	if err := server.Run(ctx, e, cfg.Addr()); err != nil {
		logger.Errorf("server: %v", err)
	}
}
