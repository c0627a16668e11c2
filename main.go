package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	config "github.com/jimitchavdadev/ecommerce-platform/configs"
	"github.com/jimitchavdadev/ecommerce-platform/internal/auth"
	"github.com/jimitchavdadev/ecommerce-platform/internal/cache"
	"github.com/jimitchavdadev/ecommerce-platform/internal/db"
	"github.com/jimitchavdadev/ecommerce-platform/internal/events"
	"github.com/jimitchavdadev/ecommerce-platform/internal/handlers"
	"github.com/jimitchavdadev/ecommerce-platform/internal/metrics"
	"github.com/jimitchavdadev/ecommerce-platform/internal/notifier"
	"github.com/jimitchavdadev/ecommerce-platform/internal/orders"
	"github.com/jimitchavdadev/ecommerce-platform/internal/payments"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	gdb, err := db.Connect(cfg.Postgres)
	if err != nil {
		sugar.Fatalw("database init failed", "err", err)
	}
	sugar.Infow("database connected and migrated")

	var publisher events.Publisher = events.Nop{}
	if cfg.KafkaBroker != "" {
		writer := events.NewKafkaWriter(cfg.KafkaBroker, "order-events")
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer, sugar)
	}

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		productCache = cache.NewProductCache(rdb, 5*time.Minute, sugar)
	}

	tokens := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	orderSvc := orders.NewService(gdb, publisher, sugar)
	gateway := payments.NewRazorpayGateway(cfg.Razorpay, sugar)
	verifier := payments.NewVerifier(cfg.Razorpay.KeySecret)
	notify := notifier.New(cfg.Email, cfg.SMS, sugar)

	authHandler := handlers.NewAuthHandler(gdb, tokens, sugar)
	productHandler := handlers.NewProductHandler(gdb, productCache, sugar)
	orderHandler := handlers.NewOrderHandler(orderSvc, sugar)
	paymentHandler := handlers.NewPaymentHandler(gdb, orderSvc, gateway, verifier, notify, sugar)

	r := gin.New()
	r.Use(gin.Recovery())

	m := metrics.New("shop")
	r.Use(m.Middleware())
	r.GET("/metrics", metrics.Handler())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)

	api := r.Group("/")
	api.Use(tokens.RequireAuth())
	{
		api.POST("/products", productHandler.Create)
		api.PATCH("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/mine", orderHandler.ListMine)
		api.GET("/orders", orderHandler.ListAll)
		api.GET("/admin/summary", orderHandler.Summary)

		api.POST("/payments/intent", paymentHandler.CreateIntent)
		api.POST("/payments/verify", paymentHandler.Verify)
	}

	sugar.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		sugar.Fatalw("server stopped", "err", err)
	}
}
