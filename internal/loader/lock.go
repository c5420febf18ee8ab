package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"go.uber.org/zap"
)

const (
	LockKey        = "catalog:loader"
	DefaultLockTTL = 30 * time.Minute
)

var (
	// ErrLoadInProgress is returned when another loader holds the run lock.
	ErrLoadInProgress = errors.New("another load is in progress")
	// ErrLockLost is returned when the run lock expired mid-run.
	ErrLockLost = errors.New("loader lock lost")
)

// Locker serialises pipeline runs across processes.
type Locker interface {
	// Lock acquires the run lock.
	Lock(ctx context.Context) (Lease, error)
}

// Lease is a held run lock. The pipeline refreshes it before every entity,
// so the TTL only has to outlast the slowest single load.
type Lease interface {
	Refresh(ctx context.Context) error
	Release()
}

// RedisLocker guards runs with a redislock lease.
type RedisLocker struct {
	client *redislock.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a locker on LockKey. A non-positive ttl selects
// DefaultLockTTL.
func NewRedisLocker(rdb redislock.RedisClient, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		key:    LockKey,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisLocker) Lock(ctx context.Context) (Lease, error) {
	lock, err := r.client.Obtain(ctx, r.key, r.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLoadInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain loader lock: %w", err)
	}

	r.logger.Info("Obtained loader lock", zap.String("key", r.key), zap.Duration("ttl", r.ttl))

	return &redisLease{lock: lock, ttl: r.ttl, logger: r.logger}, nil
}

type redisLease struct {
	lock   *redislock.Lock
	ttl    time.Duration
	logger *zap.Logger
}

// Refresh pushes the expiry out to a full TTL again. ErrLockLost means the
// lease expired and another loader may already hold the key.
func (l *redisLease) Refresh(ctx context.Context) error {
	err := l.lock.Refresh(ctx, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrLockLost
	}
	if err != nil {
		return fmt.Errorf("failed to refresh loader lock: %w", err)
	}
	return nil
}

func (l *redisLease) Release() {
	// The run context may already be cancelled; release on a fresh one.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.lock.Release(releaseCtx); err != nil {
		l.logger.Warn("Failed to release loader lock", zap.String("key", l.lock.Key()), zap.Error(err))
	}
}
