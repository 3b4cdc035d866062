package flow

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/ledger"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/navigation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is an in-memory question store that hands out ids in creation order.
type fixture struct {
	nextID    uint
	tests     map[uint]*model.Test
	questions map[uint]*model.Question
	choices   map[uint]*model.Choice
}

func newFixture() *fixture {
	return &fixture{
		nextID:    1,
		tests:     make(map[uint]*model.Test),
		questions: make(map[uint]*model.Question),
		choices:   make(map[uint]*model.Choice),
	}
}

func (f *fixture) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fixture) test() uint {
	id := f.id()
	f.tests[id] = &model.Test{ID: id, Title: fmt.Sprintf("test %d", id)}
	return id
}

func (f *fixture) question(testID uint, parent *uint) uint {
	id := f.id()
	f.questions[id] = &model.Question{ID: id, TestID: testID, ParentChoiceID: parent, Text: fmt.Sprintf("question %d", id)}
	return id
}

func (f *fixture) choice(questionID uint) uint {
	id := f.id()
	f.choices[id] = &model.Choice{ID: id, QuestionID: questionID, Text: fmt.Sprintf("choice %d", id)}
	return id
}

func (f *fixture) LoadTree(_ context.Context, testID uint) (*navigation.Tree, error) {
	test, ok := f.tests[testID]
	if !ok {
		return nil, fmt.Errorf("test %d: %w", testID, apperr.ErrNotFound)
	}
	full := *test
	full.Questions = nil
	for id := uint(1); id < f.nextID; id++ {
		q, ok := f.questions[id]
		if !ok || q.TestID != testID {
			continue
		}
		copyQ := *q
		for cid := uint(1); cid < f.nextID; cid++ {
			if c, ok := f.choices[cid]; ok && c.QuestionID == q.ID {
				copyQ.Choices = append(copyQ.Choices, *c)
			}
		}
		full.Questions = append(full.Questions, copyQ)
	}
	return navigation.FromModel(&full)
}

func (f *fixture) FindByID(_ context.Context, id uint) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, apperr.ErrNotFound)
	}
	return q, nil
}

func (f *fixture) FindChoiceByID(_ context.Context, id uint) (*model.Choice, error) {
	c, ok := f.choices[id]
	if !ok {
		return nil, fmt.Errorf("choice %d: %w", id, apperr.ErrNotFound)
	}
	return c, nil
}

func ptr(v uint) *uint { return &v }

func newController(f *fixture) (*Controller, *ledger.MemoryStore) {
	store := ledger.NewMemoryStore()
	return NewController(f, f, store), store
}

func TestFirstQuestion(t *testing.T) {
	f := newFixture()
	empty := f.test()
	full := f.test()
	q1 := f.question(full, nil)
	f.question(full, nil)
	c, _ := newController(f)
	ctx := context.Background()

	_, ok, err := c.FirstQuestion(ctx, empty)
	require.NoError(t, err)
	assert.False(t, ok)

	first, ok, err := c.FirstQuestion(ctx, full)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, q1, first)

	_, _, err = c.FirstQuestion(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmit_SingleQuestionCompletes(t *testing.T) {
	f := newFixture()
	test := f.test()
	q := f.question(test, nil)
	yes := f.choice(q)
	f.choice(q)
	c, _ := newController(f)

	out, err := c.Submit(context.Background(), "s1", test, q, ptr(yes))
	require.NoError(t, err)
	assert.Equal(t, OutcomeComplete, out.Kind)
	assert.Equal(t, test, out.TestID)
}

func TestSubmit_BranchThenReturnToSequence(t *testing.T) {
	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	c1 := f.choice(q1)
	f.choice(q1)
	f1 := f.question(test, ptr(c1))
	f1c := f.choice(f1)
	q2c := f.choice(q2)
	c, _ := newController(f)
	ctx := context.Background()

	out, err := c.Submit(ctx, "s1", test, q1, ptr(c1))
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeNext, TestID: test, QuestionID: f1, Followup: true}, out)

	out, err = c.Submit(ctx, "s1", test, f1, ptr(f1c))
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeNext, TestID: test, QuestionID: q2}, out)

	out, err = c.Submit(ctx, "s1", test, q2, ptr(q2c))
	require.NoError(t, err)
	assert.Equal(t, OutcomeComplete, out.Kind)
}

func TestSubmit_UnbranchedChoiceSkipsFollowup(t *testing.T) {
	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	c1 := f.choice(q1)
	c2 := f.choice(q1)
	f.question(test, ptr(c1))
	c, _ := newController(f)

	out, err := c.Submit(context.Background(), "s1", test, q1, ptr(c2))
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeNext, TestID: test, QuestionID: q2}, out)
}

func TestSubmit_NestedBranchReturnsToNextRoot(t *testing.T) {
	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	c1 := f.choice(q1)
	f1 := f.question(test, ptr(c1))
	c2 := f.choice(f1)
	f2 := f.question(test, ptr(c2))
	f2c := f.choice(f2)
	c, store := newController(f)
	ctx := context.Background()

	out, err := c.Submit(ctx, "s1", test, q1, ptr(c1))
	require.NoError(t, err)
	assert.Equal(t, f1, out.QuestionID)

	out, err = c.Submit(ctx, "s1", test, f1, ptr(c2))
	require.NoError(t, err)
	assert.Equal(t, f2, out.QuestionID)
	assert.True(t, out.Followup)

	out, err = c.Submit(ctx, "s1", test, f2, ptr(f2c))
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeNext, TestID: test, QuestionID: q2}, out)

	answers, err := store.GetAnswers(ctx, "s1", test)
	require.NoError(t, err)
	assert.Equal(t, map[uint]uint{q1: c1, f1: c2, f2: f2c}, answers.Map())
}

func TestSubmit_InvalidChoiceLeavesLedgerUnchanged(t *testing.T) {
	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	c1 := f.choice(q1)
	foreign := f.choice(q2)
	c, store := newController(f)
	ctx := context.Background()

	_, err := c.Submit(ctx, "s1", test, q1, ptr(c1))
	require.NoError(t, err)
	before, err := store.GetAnswers(ctx, "s1", test)
	require.NoError(t, err)

	for _, choice := range []*uint{nil, ptr(foreign), ptr(12345)} {
		out, err := c.Submit(ctx, "s1", test, q1, choice)
		require.NoError(t, err)
		assert.Equal(t, Outcome{Kind: OutcomeInvalidChoice, TestID: test, QuestionID: q1}, out)
	}

	after, err := store.GetAnswers(ctx, "s1", test)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSubmit_ResubmissionOverwrites(t *testing.T) {
	f := newFixture()
	test := f.test()
	q := f.question(test, nil)
	a := f.choice(q)
	b := f.choice(q)
	c, store := newController(f)
	ctx := context.Background()

	for _, choice := range []uint{a, a, b} {
		_, err := c.Submit(ctx, "s1", test, q, ptr(choice))
		require.NoError(t, err)
	}
	answers, err := store.GetAnswers(ctx, "s1", test)
	require.NoError(t, err)
	assert.Equal(t, ledger.Answers{{QuestionID: q, ChoiceID: b}}, answers)
}

func TestSubmit_QuestionOutsideTest(t *testing.T) {
	f := newFixture()
	t1 := f.test()
	t2 := f.test()
	f.question(t1, nil)
	other := f.question(t2, nil)
	oc := f.choice(other)
	c, _ := newController(f)

	_, err := c.Submit(context.Background(), "s1", t1, other, ptr(oc))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = c.Submit(context.Background(), "s1", 999, other, ptr(oc))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResults_InAnswerOrderSkippingStaleEntries(t *testing.T) {
	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	q3 := f.question(test, nil)
	c1 := f.choice(q1)
	c2 := f.choice(q2)
	c3 := f.choice(q3)
	c, _ := newController(f)
	ctx := context.Background()

	for _, sub := range []struct{ q, c uint }{{q1, c1}, {q2, c2}, {q3, c3}} {
		_, err := c.Submit(ctx, "s1", test, sub.q, ptr(sub.c))
		require.NoError(t, err)
	}

	delete(f.questions, q2)
	delete(f.choices, c3)

	results, err := c.Results(ctx, "s1", test)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, q1, results[0].Question.ID)
	assert.Equal(t, c1, results[0].Choice.ID)
}

func TestResults_SkipsChoiceMovedToAnotherQuestion(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	f := newFixture()
	test := f.test()
	q1 := f.question(test, nil)
	q2 := f.question(test, nil)
	c1 := f.choice(q1)
	c2 := f.choice(q2)
	c, _ := newController(f)
	ctx := context.Background()

	_, err := c.Submit(ctx, "s1", test, q1, ptr(c1))
	require.NoError(t, err)
	_, err = c.Submit(ctx, "s1", test, q2, ptr(c2))
	require.NoError(t, err)

	f.choices[c1].QuestionID = q2

	results, err := c.Results(ctx, "s1", test)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, q2, results[0].Question.ID)
	assert.Contains(t, buf.String(), "Skipping answer with a choice of another question")
	assert.Contains(t, buf.String(), fmt.Sprintf(`"choiceID":%d`, c1))
}

func TestResults_IsolatedPerSession(t *testing.T) {
	f := newFixture()
	test := f.test()
	q := f.question(test, nil)
	a := f.choice(q)
	b := f.choice(q)
	c, _ := newController(f)
	ctx := context.Background()

	_, err := c.Submit(ctx, "alice", test, q, ptr(a))
	require.NoError(t, err)
	_, err = c.Submit(ctx, "bob", test, q, ptr(b))
	require.NoError(t, err)

	alice, err := c.Results(ctx, "alice", test)
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, a, alice[0].Choice.ID)

	none, err := c.Results(ctx, "carol", test)
	require.NoError(t, err)
	assert.Empty(t, none)
}
