package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medical-records-api/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrLockTimeout is returned when a provisioning lock could not be acquired in time
var ErrLockTimeout = errors.New("timed out waiting for provisioning lock")

// LockKeyPrefix prefixes every provisioning lock key, in Redis and for advisory locks
const LockKeyPrefix = "provision:lock:"

const lockPollInterval = 50 * time.Millisecond

// releaseLockScript deletes the key only while it still holds our token, so a lock that
// expired and was taken by another request is left alone.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// ReleaseFunc releases a lock obtained from a ProvisionLocker. Safe to call more than once.
type ReleaseFunc func()

// ProvisionLocker serializes provisioning work per login identifier. tx is the
// transaction the caller is about to do the work in; lockers tied to the database
// take their lock inside it.
type ProvisionLocker interface {
	Acquire(ctx context.Context, tx *gorm.DB, identifier string) (ReleaseFunc, error)
}

// NormalizeIdentifier folds case and surrounding whitespace so that identifiers which
// differ only in those share a lock.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// NewProvisionLocker picks the locker configured by PROVISION_LOCK.
func NewProvisionLocker(cfg config.ProvisioningConfig, redisClient *redis.Client, log *logrus.Logger) (ProvisionLocker, error) {
	switch cfg.LockMode {
	case config.LockNone:
		return NoopLocker{}, nil
	case config.LockMemory:
		return NewMemoryLocker(), nil
	case config.LockPostgres:
		return PostgresAdvisoryLocker{}, nil
	case config.LockRedis:
		if redisClient == nil {
			return nil, errors.New("redis provisioning lock requires a redis client")
		}
		return NewRedisLocker(redisClient, log, cfg.LockTTL, cfg.LockWait), nil
	default:
		return nil, fmt.Errorf("unknown provisioning lock mode %q", cfg.LockMode)
	}
}

// =============================================================================
// No-op
// =============================================================================

// NoopLocker relies entirely on the unique constraint in storage.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, tx *gorm.DB, identifier string) (ReleaseFunc, error) {
	return func() {}, nil
}

// =============================================================================
// In-process
// =============================================================================

// MemoryLocker holds one mutex per identifier for the lifetime of its holders.
// Only correct when a single process serves all provisioning requests.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	mu   sync.Mutex
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*refMutex)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, tx *gorm.DB, identifier string) (ReleaseFunc, error) {
	key := NormalizeIdentifier(identifier)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &refMutex{}
		l.locks[key] = m
	}
	m.refs++
	l.mu.Unlock()

	m.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Unlock()

			l.mu.Lock()
			m.refs--
			if m.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}, nil
}

// Len returns the number of identifiers currently locked or waited on.
func (l *MemoryLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// =============================================================================
// PostgreSQL advisory lock
// =============================================================================

// PostgresAdvisoryLocker takes a transaction-scoped advisory lock. PostgreSQL releases it
// at commit or rollback, so the returned ReleaseFunc does nothing.
type PostgresAdvisoryLocker struct{}

func (PostgresAdvisoryLocker) Acquire(ctx context.Context, tx *gorm.DB, identifier string) (ReleaseFunc, error) {
	key := LockKeyPrefix + NormalizeIdentifier(identifier)
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}
	return func() {}, nil
}

// =============================================================================
// Redis
// =============================================================================

// RedisLocker is a single-instance SET NX lock with a TTL so a crashed holder cannot
// block an identifier forever.
type RedisLocker struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		log:    log,
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, tx *gorm.DB, identifier string) (ReleaseFunc, error) {
	key := LockKeyPrefix + NormalizeIdentifier(identifier)
	token := uuid.New().String()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return nil, ErrLockTimeout
			}
			return nil, fmt.Errorf("acquire redis lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled, release on a fresh one
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseLockScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
				l.log.Warnf("Failed to release provisioning lock %s: %+v", key, err)
			}
		})
	}, nil
}
