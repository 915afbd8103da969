package main

// @title           Keychain Studio API
// @version         1.0
// @description     钥匙扣定制商城后端 API：下单、图库、支付与后台管理

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 管理员令牌，格式 Bearer <token>

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kcstudio/storefront/internal/app/config"
	"kcstudio/storefront/internal/app/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. 初始化应用
	app, cleanup, err := InitializeApp(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// 4. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.GetServerPort())
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		appLogger.Info("starting HTTP server", "addr", addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		appLogger.Info("received shutdown signal, gracefully shutting down")
		gracefulShutdown(server, appLogger)
	case err := <-serverErrChan:
		appLogger.Error("HTTP server error", "error", err)
		cleanup()
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}

// gracefulShutdown 优雅停机，等待进行中的请求（含下单事务）完成
func gracefulShutdown(server *http.Server, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server stopped gracefully")
	}
}
