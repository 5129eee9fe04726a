package main

import (
	"net/http"

	"mockpay/internal/config"
	"mockpay/internal/gateway"
	"mockpay/internal/logger"
	"mockpay/internal/middleware"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	repo := gateway.NewRepository()
	transport := gateway.NewHTTPTransport()
	svc := gateway.NewService(repo, transport, cfg.WebhookSecret)
	handler := gateway.NewHandler(svc)

	mux := http.NewServeMux()
	handler.Register(mux)

	chain := logger.RequestIDMiddleware(
		middleware.RateLimitMiddleware(
			middleware.LoggingMiddleware(mux),
		),
	)

	logger.L().Info("mockpay gateway listening", zap.String("port", cfg.GatewayPort))
	if err := http.ListenAndServe(":"+cfg.GatewayPort, chain); err != nil {
		logger.L().Fatal("gateway server stopped", zap.Error(err))
	}
}
