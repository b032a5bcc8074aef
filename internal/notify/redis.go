package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings of the redis transport.
type RedisConfig struct {
	Address     string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// RedisBus is a Channel and Publisher over redis PUBLISH/SUBSCRIBE.
type RedisBus struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	subs   map[*redisSubscription]struct{}
	closed bool
}

// NewRedisBus connects to redis and verifies the connection.
func NewRedisBus(ctx context.Context, cfg RedisConfig, prefix string) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w: %w", common.ErrorUnavailable, err)
	}
	return NewRedisBusWithClient(client, prefix), nil
}

func NewRedisBusWithClient(client *redis.Client, prefix string) *RedisBus {
	return &RedisBus{client: client, prefix: prefix, subs: make(map[*redisSubscription]struct{})}
}

// RedisChannelName builds "<prefix>:<kind>:<type>".
func RedisChannelName(prefix string, kind Kind, typ EventType) string {
	return fmt.Sprintf("%s:%s:%s", prefix, kind, typ)
}

type redisSubscription struct {
	ps    *redis.PubSub
	ch    chan Event
	done  chan struct{}
	once  sync.Once
	owner *RedisBus
}

func (s *redisSubscription) Events() <-chan Event { return s.ch }

func (s *redisSubscription) Unsubscribe() {
	s.once.Do(func() {
		_ = s.ps.Close()
		<-s.done
		s.owner.mu.Lock()
		delete(s.owner.subs, s)
		s.owner.mu.Unlock()
	})
}

func (b *RedisBus) Subscribe(ctx context.Context, kind Kind, typ EventType) (Subscription, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	ps := b.client.Subscribe(ctx, RedisChannelName(b.prefix, kind, typ))
	// Wait for the subscription to be confirmed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe error: %w", err)
	}

	s := &redisSubscription{
		ps:    ps,
		ch:    make(chan Event, bufferSize),
		done:  make(chan struct{}),
		owner: b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = ps.Close()
		return nil, ErrClosed
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	go s.pump(kind, typ)
	return s, nil
}

func (s *redisSubscription) pump(kind Kind, typ EventType) {
	defer close(s.done)
	defer close(s.ch)

	for msg := range s.ps.Channel() {
		e, err := DecodeEvent([]byte(msg.Payload))
		if err != nil {
			e = NewEvent(kind, typ, "")
		}
		select {
		case s.ch <- e:
		default:
		}
	}
}

func (b *RedisBus) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.Publish(ctx, RedisChannelName(b.prefix, e.Kind, e.Type), data).Err()
}

// Close releases all subscriptions and the redis client.
func (b *RedisBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*redisSubscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	return b.client.Close()
}
