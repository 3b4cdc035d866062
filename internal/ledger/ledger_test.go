package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/questree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	client, _ := testutil.OpenRedis(t)
	return map[string]Store{
		BackendMemory:   NewMemoryStore(),
		BackendRedis:    NewRedisStore(client, time.Hour),
		BackendPostgres: NewGormStore(testutil.OpenDB(t)),
	}
}

func TestStore_EmptyLedger(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			answers, err := store.GetAnswers(context.Background(), "s1", 1)
			require.NoError(t, err)
			assert.Empty(t, answers)
			assert.Empty(t, answers.Map())
		})
	}
}

func TestStore_UpsertKeepsOneEntryPerQuestion(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.PutAnswer(ctx, "s1", 1, 10, 100))
			require.NoError(t, store.PutAnswer(ctx, "s1", 1, 11, 110))
			require.NoError(t, store.PutAnswer(ctx, "s1", 1, 10, 100))
			require.NoError(t, store.PutAnswer(ctx, "s1", 1, 10, 101))

			answers, err := store.GetAnswers(ctx, "s1", 1)
			require.NoError(t, err)
			assert.Equal(t, Answers{
				{QuestionID: 10, ChoiceID: 101},
				{QuestionID: 11, ChoiceID: 110},
			}, answers)
			assert.Equal(t, map[uint]uint{10: 101, 11: 110}, answers.Map())
		})
	}
}

func TestStore_IsolatesSessionsAndTests(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.PutAnswer(ctx, "alice", 1, 10, 100))
			require.NoError(t, store.PutAnswer(ctx, "bob", 1, 10, 200))
			require.NoError(t, store.PutAnswer(ctx, "alice", 2, 10, 300))

			alice, err := store.GetAnswers(ctx, "alice", 1)
			require.NoError(t, err)
			assert.Equal(t, Answers{{QuestionID: 10, ChoiceID: 100}}, alice)

			bob, err := store.GetAnswers(ctx, "bob", 1)
			require.NoError(t, err)
			assert.Equal(t, Answers{{QuestionID: 10, ChoiceID: 200}}, bob)

			other, err := store.GetAnswers(ctx, "alice", 2)
			require.NoError(t, err)
			assert.Equal(t, Answers{{QuestionID: 10, ChoiceID: 300}}, other)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.PutAnswer(ctx, "s1", 1, 10, 100))
			require.NoError(t, store.PutAnswer(ctx, "s2", 1, 10, 100))
			require.NoError(t, store.Clear(ctx, "s1", 1))

			answers, err := store.GetAnswers(ctx, "s1", 1)
			require.NoError(t, err)
			assert.Empty(t, answers)

			kept, err := store.GetAnswers(ctx, "s2", 1)
			require.NoError(t, err)
			assert.Len(t, kept, 1)
		})
	}
}

func TestMemoryStore_ConcurrentSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for s := 0; s < 8; s++ {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			for q := uint(1); q <= 50; q++ {
				_ = store.PutAnswer(ctx, session, 1, q, q*10)
			}
		}(string(rune('a' + s)))
	}
	wg.Wait()

	for s := 0; s < 8; s++ {
		answers, err := store.GetAnswers(ctx, string(rune('a'+s)), 1)
		require.NoError(t, err)
		assert.Len(t, answers, 50)
	}
}

func TestRedisStore_AppliesTTL(t *testing.T) {
	client, mr := testutil.OpenRedis(t)
	store := NewRedisStore(client, time.Minute)
	require.NoError(t, store.PutAnswer(context.Background(), "s1", 1, 10, 100))

	assert.Equal(t, time.Minute, mr.TTL("ledger:s1:1:answers"))
	mr.FastForward(2 * time.Minute)

	answers, err := store.GetAnswers(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestNew(t *testing.T) {
	store, err := New("", nil, nil, 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = New(BackendRedis, nil, nil, 0)
	assert.Error(t, err)

	_, err = New(BackendPostgres, nil, nil, 0)
	assert.Error(t, err)

	_, err = New("etcd", nil, nil, 0)
	assert.Error(t, err)
}
