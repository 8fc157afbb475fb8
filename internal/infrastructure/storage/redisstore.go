package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/domains/cart/model"
)

// changeEnvelope is published after every save so other instances sharing
// the key can adopt the new state without re-reading it. Origin lets an
// instance skip its own writes; only external changes are fanned out.
type changeEnvelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

// RedisStore keeps the cart wholesale in one Redis key and broadcasts writes
// over pub/sub, so several instances sharing the key stay in sync.
type RedisStore struct {
	client     *redis.Client
	key        string
	channel    string
	instanceID string
	maxAge     time.Duration

	mu        sync.Mutex
	subs      map[int]func(model.CartState)
	nextSubID int
	pubsub    *redis.PubSub
}

func NewRedisStore(host, password string, db int, key string, maxAge time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:         host,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
		key:        key,
		channel:    key + ":changed",
		instanceID: uuid.NewString(),
		maxAge:     maxAge,
		subs:       make(map[int]func(model.CartState)),
	}
}

// Ping verifies the connection
func (r *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Save(ctx context.Context, state model.CartState) {
	payload, err := Encode(state, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("cart redis save: encode failed")
		return
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", r.key).Msg("cart redis save failed")
		return
	}

	envelope, err := json.Marshal(changeEnvelope{Origin: r.instanceID, Payload: payload})
	if err != nil {
		return
	}
	if err := r.client.Publish(ctx, r.channel, envelope).Err(); err != nil {
		log.Warn().Err(err).Str("channel", r.channel).Msg("cart change publish failed")
	}
}

func (r *RedisStore) Load(ctx context.Context) model.CartState {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", r.key).Msg("cart redis load failed, starting empty")
		}
		return model.NewCartState()
	}

	state, err := Decode(raw, time.Now(), r.maxAge)
	if err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("saved cart discarded")
	}
	return state
}

func (r *RedisStore) Subscribe(cb func(model.CartState)) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pubsub == nil {
		r.pubsub = r.client.Subscribe(context.Background(), r.channel)
		go r.listen()
	}

	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = cb

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}, nil
}

func (r *RedisStore) listen() {
	for msg := range r.pubsub.Channel() {
		var envelope changeEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			continue
		}
		if envelope.Origin == r.instanceID {
			continue
		}

		state, err := Decode(envelope.Payload, time.Now(), r.maxAge)
		if err != nil {
			// Malformed external writes are ignored, not adopted
			continue
		}

		r.mu.Lock()
		subs := make([]func(model.CartState), 0, len(r.subs))
		for _, cb := range r.subs {
			subs = append(subs, cb)
		}
		r.mu.Unlock()

		for _, cb := range subs {
			cb(state)
		}
	}
}

func (r *RedisStore) SaveAppliedCoupon(ctx context.Context, code string) {
	if err := r.client.Set(ctx, r.couponKey(), code, 0).Err(); err != nil {
		log.Warn().Err(err).Msg("applied coupon save failed")
	}
}

func (r *RedisStore) LoadAppliedCoupon(ctx context.Context) string {
	code, err := r.client.Get(ctx, r.couponKey()).Result()
	if err != nil {
		return ""
	}
	return code
}

func (r *RedisStore) ClearAppliedCoupon(ctx context.Context) {
	if err := r.client.Del(ctx, r.couponKey()).Err(); err != nil {
		log.Warn().Err(err).Msg("applied coupon clear failed")
	}
}

func (r *RedisStore) couponKey() string {
	return r.key + ":coupon"
}

func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pubsub != nil {
		r.pubsub.Close()
		r.pubsub = nil
	}
	return r.client.Close()
}
