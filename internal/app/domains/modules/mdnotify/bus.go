package mdnotify

import (
	"context"
	"sync"

	"kcstudio/storefront/internal/app/infra/persistence/redis"
)

// redisBus Redis Pub/Sub 适配
type redisBus struct {
	client *redis.PubSubClient
}

// NewRedisEventBus 基于 Redis 的事件广播，多实例部署时使用
func NewRedisEventBus(client *redis.PubSubClient) EventBus {
	return &redisBus{client: client}
}

func (b *redisBus) Publish(ctx context.Context, channel string, message string) error {
	return b.client.Publish(ctx, channel, message)
}

func (b *redisBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	return b.client.Subscribe(ctx, channel)
}

// MemoryBus 进程内事件广播，未配置 Redis 时的单实例兜底
type MemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[*memorySub]struct{}
}

// NewMemoryBus 创建进程内事件广播
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[*memorySub]struct{})}
}

// Publish 非阻塞投递，订阅方缓冲满时丢弃
func (b *MemoryBus) Publish(_ context.Context, channel string, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[channel] {
		select {
		case s.ch <- message:
		default:
		}
	}
	return nil
}

// Subscribe 订阅 channel
func (b *MemoryBus) Subscribe(_ context.Context, channel string) (Subscription, error) {
	s := &memorySub{bus: b, channel: channel, ch: make(chan string, 16)}
	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memorySub]struct{})
	}
	b.subs[channel][s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}

type memorySub struct {
	bus     *MemoryBus
	channel string
	ch      chan string
	once    sync.Once
}

func (s *memorySub) Messages() <-chan string {
	return s.ch
}

func (s *memorySub) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs[s.channel], s)
		s.bus.mu.Unlock()
		close(s.ch)
	})
	return nil
}
