package lmstfy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
)

// 投递参数
const (
	defaultTTLSecond   = 3600
	defaultTries       = 3
	defaultDelaySecond = 0
)

// Client Lmstfy 客户端封装
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// Message 队列消息
type Message struct {
	JobID string
	Queue string
	Data  json.RawMessage
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string) *Client {
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
	}
}

// Publish 序列化后发布到队列，返回 job ID
func (c *Client) Publish(ctx context.Context, queue string, data interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal job failed: %w", err)
	}

	jobID, pubErr := c.cli.Publish(queue, payload, defaultTTLSecond, defaultTries, defaultDelaySecond)
	if pubErr != nil {
		return "", fmt.Errorf("lmstfy publish failed: %v", pubErr)
	}
	return jobID, nil
}

// Consume 阻塞拉取一条消息，超时未拉到返回 (nil, nil)
// ttr 内未 Ack 的消息会被重新投递
func (c *Client) Consume(queue string, ttr, timeout time.Duration) (*Message, error) {
	job, err := c.cli.Consume(queue, uint32(ttr.Seconds()), uint32(timeout.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %v", err)
	}
	if job == nil {
		return nil, nil
	}

	return &Message{
		JobID: job.ID,
		Queue: job.Queue,
		Data:  json.RawMessage(job.Data),
	}, nil
}

// Ack 确认消息，删除任务
func (c *Client) Ack(queue, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %v", err)
	}
	return nil
}

// Namespace 当前命名空间
func (c *Client) Namespace() string {
	return c.namespace
}
