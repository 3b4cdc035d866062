// Package ledger records the choice a test-taker selected for each question,
// scoped to one session and one test. Every backend upserts by question so a
// session never holds more than one answer per question.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Entry struct {
	QuestionID uint
	ChoiceID   uint
}

// Answers are ordered by when each question was first answered.
type Answers []Entry

func (a Answers) Map() map[uint]uint {
	m := make(map[uint]uint, len(a))
	for _, e := range a {
		m[e.QuestionID] = e.ChoiceID
	}
	return m
}

type Store interface {
	PutAnswer(ctx context.Context, session string, testID, questionID, choiceID uint) error
	GetAnswers(ctx context.Context, session string, testID uint) (Answers, error)
	Clear(ctx context.Context, session string, testID uint) error
}

// New picks a backend by name. The redis client and db are only required by
// their own backends.
func New(backend string, rdb *redis.Client, db *gorm.DB, ttl time.Duration) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("ledger backend %q requires REDIS_ADDR", backend)
		}
		return NewRedisStore(rdb, ttl), nil
	case BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("ledger backend %q requires a database", backend)
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", backend)
	}
}
