package main

import (
	"net/http"

	"mockpay/internal/config"
	"mockpay/internal/logger"
	"mockpay/internal/middleware"
	"mockpay/internal/receiver"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	handler := receiver.NewHandler(cfg.WebhookSecret)

	mux := http.NewServeMux()
	handler.Register(mux)

	chain := logger.RequestIDMiddleware(
		middleware.RateLimitMiddleware(
			middleware.LoggingMiddleware(mux),
		),
	)

	logger.L().Info("webhook receiver listening", zap.String("port", cfg.ReceiverPort))
	if err := http.ListenAndServe(":"+cfg.ReceiverPort, chain); err != nil {
		logger.L().Fatal("receiver server stopped", zap.Error(err))
	}
}
