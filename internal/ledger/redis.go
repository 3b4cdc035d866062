package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const DefaultSessionTTL = 24 * time.Hour

// RedisStore keeps each ledger in a hash of question -> choice plus a sorted
// set that remembers the order questions were first answered in.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func keyPrefix(session string, testID uint) string {
	return fmt.Sprintf("ledger:%s:%d", session, testID)
}

func (s *RedisStore) PutAnswer(ctx context.Context, session string, testID, questionID, choiceID uint) error {
	prefix := keyPrefix(session, testID)
	answersKey, orderKey, seqKey := prefix+":answers", prefix+":order", prefix+":seq"

	seq, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("ledger sequence for session %s: %w", session, err)
	}

	member := strconv.FormatUint(uint64(questionID), 10)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, answersKey, member, strconv.FormatUint(uint64(choiceID), 10))
	pipe.ZAddNX(ctx, orderKey, &redis.Z{Score: float64(seq), Member: member})
	pipe.Expire(ctx, answersKey, s.ttl)
	pipe.Expire(ctx, orderKey, s.ttl)
	pipe.Expire(ctx, seqKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("session", session).Uint("questionID", questionID).Msg("Failed to store answer in redis")
		return fmt.Errorf("store answer for session %s: %w", session, err)
	}
	return nil
}

func (s *RedisStore) GetAnswers(ctx context.Context, session string, testID uint) (Answers, error) {
	prefix := keyPrefix(session, testID)

	order, err := s.client.ZRange(ctx, prefix+":order", 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read answer order for session %s: %w", session, err)
	}
	if len(order) == 0 {
		return Answers{}, nil
	}

	values, err := s.client.HMGet(ctx, prefix+":answers", order...).Result()
	if err != nil {
		return nil, fmt.Errorf("read answers for session %s: %w", session, err)
	}

	answers := make(Answers, 0, len(order))
	for i, member := range order {
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		questionID, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			log.Warn().Str("session", session).Str("member", member).Msg("Skipping malformed ledger member")
			continue
		}
		choiceID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			log.Warn().Str("session", session).Str("value", raw).Msg("Skipping malformed ledger value")
			continue
		}
		answers = append(answers, Entry{QuestionID: uint(questionID), ChoiceID: uint(choiceID)})
	}
	return answers, nil
}

func (s *RedisStore) Clear(ctx context.Context, session string, testID uint) error {
	prefix := keyPrefix(session, testID)
	return s.client.Del(ctx, prefix+":answers", prefix+":order", prefix+":seq").Err()
}
