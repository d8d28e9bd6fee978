package myredis

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v9"
)

const (
	defaultPrefix = "violations"
)

// MyRedis stores gob encoded values under prefix:id and keeps their
// insertion order in a sorted set scored by a counter.
type MyRedis[T any] struct {
	rdb    *redis.Client
	key    func(T) string
	prefix string
}

func New[T any](opt *redis.Options, key func(T) string) *MyRedis[T] {
	return &MyRedis[T]{
		rdb:    redis.NewClient(opt),
		key:    key,
		prefix: defaultPrefix,
	}
}

// WithPrefix namespaces every key, so several stores can share a database.
func (m *MyRedis[T]) WithPrefix(prefix string) *MyRedis[T] {
	m.prefix = prefix
	return m
}

func (m *MyRedis[T]) Ping(ctx context.Context) error {
	return m.rdb.Ping(ctx).Err()
}

func (m *MyRedis[T]) itemKey(id string) string { return m.prefix + ":item:" + id }
func (m *MyRedis[T]) queueKey() string         { return m.prefix + ":queue" }
func (m *MyRedis[T]) seqKey() string           { return m.prefix + ":seq" }

func (m *MyRedis[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var result T
	bs, err := m.rdb.Get(ctx, m.itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, false, nil
	}
	if err != nil {
		return result, false, fmt.Errorf("get %s: %w", id, err)
	}

	if err := gob.NewDecoder(bytes.NewReader(bs)).Decode(&result); err != nil {
		return result, false, fmt.Errorf("decode %s: %w", id, err)
	}
	return result, true, nil
}

func (m *MyRedis[T]) Upsert(ctx context.Context, data T) error {
	id := m.key(data)
	buf := bytes.Buffer{}
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}

	if err := m.rdb.Set(ctx, m.itemKey(id), buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}

	// Existing members keep their score, so updates do not reorder.
	if m.rdb.ZScore(ctx, m.queueKey(), id).Err() == nil {
		return nil
	}
	seq, err := m.rdb.Incr(ctx, m.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	err = m.rdb.ZAddNX(ctx, m.queueKey(), redis.Z{
		Member: id,
		Score:  float64(seq),
	}).Err()
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", id, err)
	}
	return nil
}

func (m *MyRedis[T]) AsSlice(ctx context.Context) ([]T, error) {
	ids, err := m.rdb.ZRange(ctx, m.queueKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read queue: %w", err)
	}
	if len(ids) == 0 {
		return []T{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, m.itemKey(id))
	}
	buffers, err := m.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	result := make([]T, 0, len(buffers))
	for i, buffer := range buffers {
		if buffer == nil {
			continue
		}
		var decoded T
		reader := bytes.NewReader([]byte(buffer.(string)))
		if err := gob.NewDecoder(reader).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("decode %s: %w", ids[i], err)
		}
		result = append(result, decoded)
	}
	return result, nil
}

// Clear removes every key of this store.
func (m *MyRedis[T]) Clear(ctx context.Context) error {
	ids, err := m.rdb.ZRange(ctx, m.queueKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("read queue: %w", err)
	}

	keys := []string{m.queueKey(), m.seqKey()}
	for _, id := range ids {
		keys = append(keys, m.itemKey(id))
	}
	return m.rdb.Del(ctx, keys...).Err()
}

func (m *MyRedis[T]) Destroy() {
	m.rdb.Close()
}
