package db

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"smartfinance-server/src/logger"
)

// The auth middleware resolves the bearer token's user on every request. That
// lookup is the only cached read in the process; ledger data is always read
// fresh so aggregates never drift from the transaction set.
const userCacheTTL = 5 * time.Minute

var Cache *ristretto.Cache

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}
}

func UserCacheKey(userID string) string {
	return "user:" + userID
}

func SetUserCache(cacheKey string, value interface{}) {
	Cache.SetWithTTL(cacheKey, value, 1, userCacheTTL)
}

func GetUserCache(cacheKey string) (interface{}, bool) {
	return Cache.Get(cacheKey)
}

func DelUserCache(cacheKey string) {
	Cache.Del(cacheKey)
}
