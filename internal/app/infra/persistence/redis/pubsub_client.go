package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PubSubClient Redis Pub/Sub 客户端封装
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端，支持密码认证
func NewPubSubClient(ctx context.Context, addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Subscription 已确认的订阅
type Subscription struct {
	ps   *redis.PubSub
	out  chan string
	done chan struct{}
	once sync.Once
}

// Subscribe 订阅 channel，返回时服务端已确认订阅，之后发布的消息不会丢失
func (c *PubSubClient) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	ps := c.rdb.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s failed: %w", channel, err)
	}

	sub := &Subscription{
		ps:   ps,
		out:  make(chan string, 16),
		done: make(chan struct{}),
	}
	go sub.forward()
	return sub, nil
}

func (s *Subscription) forward() {
	defer close(s.out)
	for msg := range s.ps.Channel() {
		select {
		case s.out <- msg.Payload:
		case <-s.done:
			return
		}
	}
}

// Messages 消息流，Close 后关闭
func (s *Subscription) Messages() <-chan string {
	return s.out
}

// Close 取消订阅
func (s *Subscription) Close() error {
	s.once.Do(func() { close(s.done) })
	return s.ps.Close()
}

// Publish 向指定 channel 发布消息
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}
