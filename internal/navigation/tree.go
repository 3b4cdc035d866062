// Package navigation computes where a test-taker goes next in a branching test.
//
// A Tree is an immutable arena snapshot of one test: every question is a Node
// tagged either KindRoot (sequenced by its id) or KindFollowup (owned by the
// choice that reveals it). All lookups are pure, so a single Tree can be shared
// by any number of sessions at once.
package navigation

import (
	"sort"

	"github.com/lshigami/questree/internal/model"
)

// DefaultMaxDepth bounds parent chains. Deeper chains are treated as corrupt data.
const DefaultMaxDepth = 64

type Kind int

const (
	KindRoot Kind = iota
	KindFollowup
)

func (k Kind) String() string {
	if k == KindFollowup {
		return "followup"
	}
	return "root"
}

// Node is one question in the arena. OrderKey is only meaningful for roots and
// ParentChoiceID only for follow-ups.
type Node struct {
	ID             uint
	TestID         uint
	Kind           Kind
	OrderKey       uint
	ParentChoiceID uint
	Choices        []uint
}

type ChoiceNode struct {
	ID         uint
	QuestionID uint
}

// QuestionRecord and ChoiceRecord are the flat rows a Tree is built from.
type QuestionRecord struct {
	ID             uint
	TestID         uint
	ParentChoiceID *uint
}

type ChoiceRecord struct {
	ID         uint
	QuestionID uint
}

// Ambiguity reports a choice that owns more than one follow-up question.
// Chosen is always the lowest id of Candidates.
type Ambiguity struct {
	ChoiceID   uint
	Candidates []uint
	Chosen     uint
}

type Tree struct {
	testID      uint
	maxDepth    int
	nodes       map[uint]Node
	choices     map[uint]ChoiceNode
	roots       []uint
	followups   map[uint]uint
	ambiguities []Ambiguity
}

type Option func(*Tree)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(t *Tree) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// Build validates the rows of one test and returns its Tree. Any structural
// problem yields an *IntegrityError naming the offending ids.
func Build(testID uint, questions []QuestionRecord, choices []ChoiceRecord, opts ...Option) (*Tree, error) {
	t := &Tree{
		testID:    testID,
		maxDepth:  DefaultMaxDepth,
		nodes:     make(map[uint]Node, len(questions)),
		choices:   make(map[uint]ChoiceNode, len(choices)),
		followups: make(map[uint]uint),
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, q := range questions {
		if q.TestID != testID {
			return nil, newIntegrityError(ViolationCrossTest, "question belongs to another test", q.ID, q.TestID, testID)
		}
		node := Node{ID: q.ID, TestID: q.TestID, Kind: KindRoot, OrderKey: q.ID}
		if q.ParentChoiceID != nil {
			node.Kind = KindFollowup
			node.OrderKey = 0
			node.ParentChoiceID = *q.ParentChoiceID
		}
		t.nodes[q.ID] = node
	}

	sortedChoices := make([]ChoiceRecord, len(choices))
	copy(sortedChoices, choices)
	sort.Slice(sortedChoices, func(i, j int) bool { return sortedChoices[i].ID < sortedChoices[j].ID })
	for _, c := range sortedChoices {
		node, ok := t.nodes[c.QuestionID]
		if !ok {
			return nil, newIntegrityError(ViolationDangling, "choice references a question outside the test", c.ID, c.QuestionID)
		}
		node.Choices = append(node.Choices, c.ID)
		t.nodes[c.QuestionID] = node
		t.choices[c.ID] = ChoiceNode{ID: c.ID, QuestionID: c.QuestionID}
	}

	questionIDs := make([]uint, 0, len(t.nodes))
	for id := range t.nodes {
		questionIDs = append(questionIDs, id)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })

	candidates := make(map[uint][]uint)
	for _, id := range questionIDs {
		node := t.nodes[id]
		switch node.Kind {
		case KindRoot:
			t.roots = append(t.roots, node.ID)
		case KindFollowup:
			if _, ok := t.choices[node.ParentChoiceID]; !ok {
				return nil, newIntegrityError(ViolationDangling, "follow-up owned by a choice outside the test", node.ID, node.ParentChoiceID)
			}
			candidates[node.ParentChoiceID] = append(candidates[node.ParentChoiceID], node.ID)
		}
	}

	choiceIDs := make([]uint, 0, len(candidates))
	for choiceID := range candidates {
		choiceIDs = append(choiceIDs, choiceID)
	}
	sort.Slice(choiceIDs, func(i, j int) bool { return choiceIDs[i] < choiceIDs[j] })
	for _, choiceID := range choiceIDs {
		ids := candidates[choiceID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		t.followups[choiceID] = ids[0]
		if len(ids) > 1 {
			t.ambiguities = append(t.ambiguities, Ambiguity{ChoiceID: choiceID, Candidates: ids, Chosen: ids[0]})
		}
	}

	for _, id := range questionIDs {
		if _, err := t.RootQuestion(id); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromModel builds a Tree from a test whose questions and their choices are preloaded.
func FromModel(test *model.Test, opts ...Option) (*Tree, error) {
	questions := make([]QuestionRecord, 0, len(test.Questions))
	var choices []ChoiceRecord
	for _, q := range test.Questions {
		questions = append(questions, QuestionRecord{ID: q.ID, TestID: q.TestID, ParentChoiceID: q.ParentChoiceID})
		for _, c := range q.Choices {
			choices = append(choices, ChoiceRecord{ID: c.ID, QuestionID: c.QuestionID})
		}
	}
	return Build(test.ID, questions, choices, opts...)
}

func (t *Tree) TestID() uint { return t.testID }

func (t *Tree) Len() int { return len(t.nodes) }

// Roots returns the root question ids in sequence order.
func (t *Tree) Roots() []uint {
	out := make([]uint, len(t.roots))
	copy(out, t.roots)
	return out
}

func (t *Tree) Ambiguities() []Ambiguity {
	out := make([]Ambiguity, len(t.ambiguities))
	copy(out, t.ambiguities)
	return out
}

func (t *Tree) Question(id uint) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

func (t *Tree) Choice(id uint) (ChoiceNode, bool) {
	c, ok := t.choices[id]
	return c, ok
}

// HasChoice reports whether choiceID is one of questionID's choices.
func (t *Tree) HasChoice(questionID, choiceID uint) bool {
	c, ok := t.choices[choiceID]
	return ok && c.QuestionID == questionID
}
