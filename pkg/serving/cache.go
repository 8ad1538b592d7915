package serving

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

// ResultCache is a redis-backed read-through cache for prediction results.
// Predictions are referentially transparent for a fixed artifact bundle, so
// an identical normalized record always maps to an identical result.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

func (c *ResultCache) Get(ctx context.Context, rec survival.PatientRecord) (survival.PredictionResult, bool) {
	var result survival.PredictionResult

	key, err := cacheKey(rec)
	if err != nil {
		return result, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("result cache read failed")
		}
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Log.WithError(err).Warn("result cache entry corrupt")
		return result, false
	}
	return result, true
}

func (c *ResultCache) Set(ctx context.Context, rec survival.PatientRecord, result survival.PredictionResult) {
	key, err := cacheKey(rec)
	if err != nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("result cache write failed")
	}
}

// cacheKey digests the normalized record. Struct field order is fixed, so
// the JSON encoding is deterministic.
func cacheKey(rec survival.PatientRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("prediction:%s", hex.EncodeToString(sum[:])), nil
}
