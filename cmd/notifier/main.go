package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kcstudio/storefront/internal/app/config"
	"kcstudio/storefront/internal/app/consumer"
	"kcstudio/storefront/internal/app/domains/services/svnotify"
	"kcstudio/storefront/internal/app/infra/mq/lmstfy"
	"kcstudio/storefront/internal/app/infra/notifier"
	"kcstudio/storefront/internal/app/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Lmstfy.Host == "" {
		log.Fatalf("lmstfy.host is required for notifier")
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("starting notifier")

	// 3. 初始化基础设施组件
	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	appLogger.Info("lmstfy client initialized", "namespace", lmstfyClient.Namespace())

	var sender svnotify.Sender
	if cfg.Notifier.WebhookURL != "" {
		sender = notifier.NewWebhookSender(cfg.Notifier.WebhookURL, cfg.Notifier.Timeout)
	} else {
		appLogger.Warn("notifier.webhook_url not configured, notifications are only logged")
	}

	// 4. 初始化 Service 层
	notifyService := svnotify.NewNotifyService(sender, appLogger)

	// 5. 初始化 Consumer
	notifyConsumer := consumer.NewNotifyConsumer(
		lmstfyClient,
		notifyService,
		&consumer.Config{
			QueueName:    cfg.Lmstfy.NotifyQueue,
			PollTimeout:  cfg.Notifier.PollTimeout,
			TTR:          cfg.Notifier.TTR,
			PollInterval: cfg.Notifier.PollInterval,
		},
		appLogger,
	)

	// 6. 启动消费循环（优雅退出）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- notifyConsumer.Start(ctx)
	}()

	select {
	case <-sigChan:
		appLogger.Info("received shutdown signal, stopping consumer")
		// 先标记退出，让正在发送的通知完成
		notifyConsumer.Stop()
		select {
		case <-errChan:
		case <-time.After(cfg.Notifier.PollTimeout + cfg.Notifier.Timeout):
			cancel()
		}
		appLogger.Info("consumer stopped gracefully")
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error("consumer stopped with error", "error", err)
			os.Exit(1)
		}
	}
}
