package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	trickListKeyPrefix = "tricks:level:%s"
	leaderboardKey     = "profiles:leaderboard"
)

const (
	TrickListTTL   = 2 * time.Minute
	LeaderboardTTL = 5 * time.Minute
)

// TrickListKey keys the trick listing per level filter; the empty filter
// uses "all".
func TrickListKey(level string) string {
	if level == "" {
		level = "all"
	}
	return fmt.Sprintf(trickListKeyPrefix, level)
}

// LeaderboardKey keys the ranked profile listing.
func LeaderboardKey() string {
	return leaderboardKey
}

// Invalidate deletes a single key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateTrickLists drops every cached trick listing. Called on any
// write that changes listing contents or counters.
func InvalidateTrickLists(ctx context.Context) {
	Invalidate(ctx, TrickListKey(""))
	Invalidate(ctx, TrickListKey("beginner"))
	Invalidate(ctx, TrickListKey("advanced"))
}

// InvalidateLeaderboard drops the cached leaderboard. Called whenever
// profile points move.
func InvalidateLeaderboard(ctx context.Context) {
	Invalidate(ctx, leaderboardKey)
}
