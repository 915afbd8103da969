package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/services/svnotify"
	"kcstudio/storefront/internal/app/infra/mq/lmstfy"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// Queue 消费端队列
type Queue interface {
	Consume(queue string, ttr, timeout time.Duration) (*lmstfy.Message, error)
	Ack(queue, jobID string) error
}

// NotifyConsumer 新订单通知消费者
// 职责：
// 1. 从 lmstfy 队列拉取 order_created 任务
// 2. 解析并交给 NotifyService 发送
// 3. 成功后 ACK，失败留给 TTR 重新投递
type NotifyConsumer struct {
	queue         Queue
	notifyService *svnotify.NotifyService
	queueName     string
	logger        logger.Logger

	pollTimeout  time.Duration
	ttr          time.Duration
	pollInterval time.Duration

	closing *atomic.Bool
}

// Config 消费者配置
type Config struct {
	QueueName    string        // 队列名称
	PollTimeout  time.Duration // 拉取消息超时
	TTR          time.Duration // Time-To-Run
	PollInterval time.Duration // 出错后的等待间隔
}

// NewNotifyConsumer 创建通知消费者实例
func NewNotifyConsumer(
	queue Queue,
	notifyService *svnotify.NotifyService,
	config *Config,
	log logger.Logger,
) *NotifyConsumer {
	return &NotifyConsumer{
		queue:         queue,
		notifyService: notifyService,
		queueName:     config.QueueName,
		pollTimeout:   config.PollTimeout,
		ttr:           config.TTR,
		pollInterval:  config.PollInterval,
		logger:        log,
		closing:       atomic.NewBool(false),
	}
}

// Start 启动消费循环，ctx 取消或 Stop 后在当前任务处理完退出
func (c *NotifyConsumer) Start(ctx context.Context) error {
	c.logger.Info("notify consumer started",
		"queue", c.queueName,
		"poll_timeout", c.pollTimeout.String(),
		"ttr", c.ttr.String(),
	)

	for !c.closing.Load() {
		select {
		case <-ctx.Done():
			c.logger.Info("notify consumer stopped")
			return ctx.Err()
		default:
		}

		if err := c.consumeOne(ctx); err != nil {
			c.logger.Error("consume notify job failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(c.pollInterval):
			}
		}
	}

	c.logger.Info("notify consumer stopped")
	return nil
}

// Stop 标记退出，Start 在当前任务结束后返回
func (c *NotifyConsumer) Stop() {
	c.closing.Store(true)
}

// consumeOne 消费一条消息
func (c *NotifyConsumer) consumeOne(ctx context.Context) error {
	msg, err := c.queue.Consume(c.queueName, c.ttr, c.pollTimeout)
	if err != nil {
		return fmt.Errorf("consume message failed: %w", err)
	}
	if msg == nil {
		return nil
	}

	job, err := parseJob(msg.Data)
	if err != nil {
		// 格式错误的任务重试也不会成功，ACK 后丢弃
		c.logger.Error("drop malformed notify job", "job_id", msg.JobID, "error", err)
		if ackErr := c.queue.Ack(c.queueName, msg.JobID); ackErr != nil {
			c.logger.Error("ack malformed job failed", "job_id", msg.JobID, "error", ackErr)
		}
		return nil
	}

	if err := c.notifyService.HandleJob(ctx, job); err != nil {
		return fmt.Errorf("handle job %s failed: %w", msg.JobID, err)
	}

	if err := c.queue.Ack(c.queueName, msg.JobID); err != nil {
		return err
	}
	c.logger.Debug("notify job processed", "job_id", msg.JobID, "order_number", job.OrderNumber)
	return nil
}

func parseJob(data json.RawMessage) (*model.OrderNotifyJob, error) {
	var job model.OrderNotifyJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job failed: %w", err)
	}
	if err := svnotify.Validate(&job); err != nil {
		return nil, err
	}
	return &job, nil
}
