package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps the two kinds of browser-session state: the
// customer display name per table (expires with the visit) and the staff
// auth token (no TTL, removed on explicit logout).
type RedisSessionStore struct {
	Client  *redis.Client
	NameTTL time.Duration
}

func NewRedisSessionStore(client *redis.Client, nameTTL time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, NameTTL: nameTTL}
}

func (s *RedisSessionStore) customerNameKey(tableID, token string) string {
	return "session:name:" + tableID + ":" + token
}

func (s *RedisSessionStore) SaveCustomerName(ctx context.Context, tableID, token, name string) error {
	return s.Client.Set(ctx, s.customerNameKey(tableID, token), name, s.NameTTL).Err()
}

func (s *RedisSessionStore) CustomerName(ctx context.Context, tableID, token string) (string, error) {
	name, err := s.Client.Get(ctx, s.customerNameKey(tableID, token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return name, err
}

func (s *RedisSessionStore) SaveStaffToken(ctx context.Context, token string) error {
	return s.Client.Set(ctx, "staff:auth:"+token, "1", 0).Err()
}

func (s *RedisSessionStore) StaffTokenValid(ctx context.Context, token string) (bool, error) {
	res, err := s.Client.Exists(ctx, "staff:auth:"+token).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (s *RedisSessionStore) DeleteStaffToken(ctx context.Context, token string) error {
	return s.Client.Del(ctx, "staff:auth:"+token).Err()
}

// RedisSalesMirror keeps per-day revenue and settled-order counters for
// quick dashboard reads. The orders table stays authoritative; the mirror
// is rebuilt by the feed worker and expires after a month.
type RedisSalesMirror struct {
	Client *redis.Client
}

func NewRedisSalesMirror(client *redis.Client) *RedisSalesMirror {
	return &RedisSalesMirror{Client: client}
}

const salesRetention = 31 * 24 * time.Hour

func salesKey(date string) string {
	return "sales:daily:" + date
}

func salesSeenKey(date string) string {
	return "sales:seen:" + date
}

// AddSettledOrder folds one settled order into the day's counters. The feed
// delivers at-least-once, so each order ID is recorded in a per-day seen set
// first and redeliveries are ignored.
func (m *RedisSalesMirror) AddSettledOrder(ctx context.Context, date, orderID string, total int64) error {
	added, err := m.Client.SAdd(ctx, salesSeenKey(date), orderID).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return nil
	}
	key := salesKey(date)
	if err := m.Client.HIncrBy(ctx, key, "revenue", total).Err(); err != nil {
		return err
	}
	if err := m.Client.HIncrBy(ctx, key, "orders", 1).Err(); err != nil {
		return err
	}
	if err := m.Client.Expire(ctx, key, salesRetention).Err(); err != nil {
		return err
	}
	return m.Client.Expire(ctx, salesSeenKey(date), salesRetention).Err()
}

func (m *RedisSalesMirror) DailySales(ctx context.Context, date string) (revenue int64, orders int, err error) {
	stats, err := m.Client.HGetAll(ctx, salesKey(date)).Result()
	if err != nil {
		return 0, 0, err
	}
	revenue, _ = strconv.ParseInt(stats["revenue"], 10, 64)
	orders, _ = strconv.Atoi(stats["orders"])
	return revenue, orders, nil
}
