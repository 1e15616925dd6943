package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"live-quiz-service/internal/domain"
)

// BankLoader fetches the question list from a backing store (file, Postgres).
type BankLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// BankCache keeps a JSON copy of the bank in Redis and falls back to the
// wrapped loader on a miss:
//
//	SET quiz:bank:{bankID} <json records> EX <ttl>
//
// Redis failures are logged and treated as misses; only the loader can fail a load.
type BankCache struct {
	client *redis.Client
	loader BankLoader
	bankID string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	logger *zap.Logger
}

func NewBankCache(client *redis.Client, loader BankLoader, bankID string, ttl time.Duration, logger *zap.Logger) *BankCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankCache{
		client: client,
		loader: loader,
		bankID: bankID,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

func (c *BankCache) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := c.cached(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(c.bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(domain.RecordsFromQuestions(questions))
		if err == nil {
			err = c.client.Set(ctx, c.key(), data, c.ttlWithJitter()).Err()
		}
		if err != nil {
			c.logger.Warn("failed to cache question bank", zap.String("bank", c.bankID), zap.Error(err))
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate drops the cached copy so the next load reads the backing store.
func (c *BankCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}

func (c *BankCache) cached(ctx context.Context) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("question bank cache unavailable", zap.String("bank", c.bankID), zap.Error(err))
		}
		return nil, false
	}
	var records []domain.QuestionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("discarding corrupt cached question bank", zap.String("bank", c.bankID), zap.Error(err))
		return nil, false
	}
	return domain.QuestionsFromRecords(records), true
}

func (c *BankCache) key() string {
	return "quiz:bank:" + c.bankID
}

func (c *BankCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
