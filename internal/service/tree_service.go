package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/cache"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/navigation"
	"github.com/lshigami/questree/internal/repository"
	"github.com/rs/zerolog/log"
)

// TreeService loads navigation trees for the flow controller. It satisfies
// flow.TreeLoader.
type TreeService interface {
	LoadTree(ctx context.Context, testID uint) (*navigation.Tree, error)
	LoadTest(ctx context.Context, testID uint) (*model.Test, error)
	Invalidate(ctx context.Context, testID uint)
}

type builtTree struct {
	tree    *navigation.Tree
	builtAt time.Time
}

type treeService struct {
	testRepo repository.TestRepository
	cache    cache.TreeCache
	maxDepth int

	// Built trees are immutable and shared by every session until they
	// expire or the test is edited through this process.
	localTTL time.Duration
	mu       sync.RWMutex
	built    map[uint]builtTree
	now      func() time.Time
}

func NewTreeService(testRepo repository.TestRepository, treeCache cache.TreeCache, cfg *config.Config) TreeService {
	return &treeService{
		testRepo: testRepo,
		cache:    treeCache,
		maxDepth: cfg.Tree.MaxBranchDepth,
		localTTL: cfg.Tree.LocalTTL,
		built:    make(map[uint]builtTree),
		now:      time.Now,
	}
}

// LoadTest returns the test with all of its questions and choices, from the
// cache when possible.
func (s *treeService) LoadTest(ctx context.Context, testID uint) (*model.Test, error) {
	test, _, err := s.loadTest(ctx, testID)
	return test, err
}

func (s *treeService) loadTest(ctx context.Context, testID uint) (*model.Test, bool, error) {
	if test, ok := s.cache.Get(ctx, testID); ok {
		return test, true, nil
	}
	test, err := s.testRepo.FindTree(ctx, testID)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, test)
	return test, false, nil
}

func (s *treeService) LoadTree(ctx context.Context, testID uint) (*navigation.Tree, error) {
	if tree, ok := s.memoized(testID); ok {
		return tree, nil
	}

	test, cached, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	tree, err := navigation.FromModel(test, navigation.WithMaxDepth(s.maxDepth))
	if err != nil {
		if errors.Is(err, apperr.ErrDataIntegrity) {
			log.Error().Err(err).Uint("testID", testID).Msg("Question tree failed validation")
		}
		return nil, err
	}

	// Ambiguities are reported once per cache fill.
	if !cached {
		for _, amb := range tree.Ambiguities() {
			log.Warn().
				Uint("testID", testID).
				Uint("choiceID", amb.ChoiceID).
				Interface("candidates", amb.Candidates).
				Uint("chosen", amb.Chosen).
				Msg("Choice owns more than one follow-up question")
		}
	}

	if s.localTTL > 0 {
		s.mu.Lock()
		s.built[testID] = builtTree{tree: tree, builtAt: s.now()}
		s.mu.Unlock()
	}
	return tree, nil
}

func (s *treeService) memoized(testID uint) (*navigation.Tree, bool) {
	if s.localTTL <= 0 {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.built[testID]
	s.mu.RUnlock()
	if !ok || s.now().Sub(entry.builtAt) >= s.localTTL {
		return nil, false
	}
	return entry.tree, true
}

func (s *treeService) Invalidate(ctx context.Context, testID uint) {
	s.mu.Lock()
	delete(s.built, testID)
	s.mu.Unlock()
	s.cache.Invalidate(ctx, testID)
}
