package ledger

import (
	"context"
	"sync"
)

type memoryKey struct {
	session string
	testID  uint
}

type memoryLedger struct {
	index   map[uint]int
	entries Answers
}

type MemoryStore struct {
	mu      sync.RWMutex
	ledgers map[memoryKey]*memoryLedger
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledgers: make(map[memoryKey]*memoryLedger)}
}

func (s *MemoryStore) PutAnswer(_ context.Context, session string, testID, questionID, choiceID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{session: session, testID: testID}
	l, ok := s.ledgers[key]
	if !ok {
		l = &memoryLedger{index: make(map[uint]int)}
		s.ledgers[key] = l
	}
	if i, ok := l.index[questionID]; ok {
		l.entries[i].ChoiceID = choiceID
		return nil
	}
	l.index[questionID] = len(l.entries)
	l.entries = append(l.entries, Entry{QuestionID: questionID, ChoiceID: choiceID})
	return nil
}

func (s *MemoryStore) GetAnswers(_ context.Context, session string, testID uint) (Answers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.ledgers[memoryKey{session: session, testID: testID}]
	if !ok {
		return Answers{}, nil
	}
	out := make(Answers, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, session string, testID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, memoryKey{session: session, testID: testID})
	return nil
}
