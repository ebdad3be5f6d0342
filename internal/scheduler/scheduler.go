// Package scheduler drives the only clock-based behavior in the
// application: once per minute the cached live-operations view is
// dropped so the next request re-runs classification against the
// current instant.  The classifier itself stays a pure function of
// (now, events); this ticker never mutates domain data.
package scheduler

import (
    "context"
    "log"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/robfig/cron/v3"
)

// Scheduler owns the cron runner and the Redis client used for cache
// invalidation.
type Scheduler struct {
    cron   *cron.Cron
    rdb    *redis.Client
    prefix string
}

// New builds a scheduler that clears cache keys under the given prefix.
// A nil Redis client disables invalidation (there is no cache to clear)
// but the scheduler still runs so log output shows the tick is alive.
func New(rdb *redis.Client, prefix string) *Scheduler {
    return &Scheduler{cron: cron.New(), rdb: rdb, prefix: prefix}
}

// Start registers the minute tick and launches the cron runner in its
// own goroutine.
func (s *Scheduler) Start() error {
    _, err := s.cron.AddFunc("* * * * *", s.tick)
    if err != nil {
        return err
    }
    s.cron.Start()
    return nil
}

// Stop halts the cron runner and waits for a running tick to finish.
func (s *Scheduler) Stop() {
    ctx := s.cron.Stop()
    <-ctx.Done()
}

// tick drops every cached response under the configured prefix.  SCAN
// is used instead of KEYS so a large cache does not block Redis.
func (s *Scheduler) tick() {
    if s.rdb == nil {
        return
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var cursor uint64
    dropped := 0
    for {
        keys, next, err := s.rdb.Scan(ctx, cursor, s.prefix+":*", 100).Result()
        if err != nil {
            log.Printf("scheduler: cache scan failed: %v", err)
            return
        }
        if len(keys) > 0 {
            if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
                log.Printf("scheduler: cache delete failed: %v", err)
                return
            }
            dropped += len(keys)
        }
        cursor = next
        if cursor == 0 {
            break
        }
    }
    if dropped > 0 {
        log.Printf("scheduler: invalidated %d cached view(s)", dropped)
    }
}
