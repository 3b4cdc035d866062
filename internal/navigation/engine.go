package navigation

import (
	"fmt"
	"sort"

	"github.com/lshigami/questree/internal/apperr"
)

// FirstQuestion returns the root question with the smallest order key.
func (t *Tree) FirstQuestion() (uint, bool) {
	if len(t.roots) == 0 {
		return 0, false
	}
	return t.roots[0], true
}

// RootQuestion walks parent links up to the top-level ancestor of id. A root
// question is its own root.
func (t *Tree) RootQuestion(id uint) (uint, error) {
	node, ok := t.nodes[id]
	if !ok {
		return 0, fmt.Errorf("question %d in test %d: %w", id, t.testID, apperr.ErrNotFound)
	}

	path := []uint{id}
	seen := map[uint]bool{id: true}
	for node.Kind == KindFollowup {
		if len(path) > t.maxDepth {
			return 0, newIntegrityError(ViolationDepth, fmt.Sprintf("parent chain deeper than %d", t.maxDepth), path...)
		}
		choice, ok := t.choices[node.ParentChoiceID]
		if !ok {
			return 0, newIntegrityError(ViolationDangling, "follow-up owned by a choice outside the test", node.ID, node.ParentChoiceID)
		}
		if seen[choice.QuestionID] {
			return 0, newIntegrityError(ViolationCycle, "parent chain loops back on itself", append(path, choice.QuestionID)...)
		}
		node = t.nodes[choice.QuestionID]
		seen[node.ID] = true
		path = append(path, node.ID)
	}
	return node.ID, nil
}

// NextQuestion returns the root question that follows id's top-level ancestor.
// Branch depth never moves the sequence: every follow-up below root r yields
// the same answer as r itself. ok is false when id's root is the last one.
func (t *Tree) NextQuestion(id uint) (uint, bool, error) {
	root, err := t.RootQuestion(id)
	if err != nil {
		return 0, false, err
	}
	key := t.nodes[root].OrderKey
	i := sort.Search(len(t.roots), func(i int) bool { return t.nodes[t.roots[i]].OrderKey > key })
	if i == len(t.roots) {
		return 0, false, nil
	}
	return t.roots[i], true, nil
}

// FollowupQuestion returns the question revealed by choiceID. When the data
// attaches several follow-ups to one choice the lowest id wins; Build records
// that case in Ambiguities.
func (t *Tree) FollowupQuestion(choiceID uint) (uint, bool, error) {
	if _, ok := t.choices[choiceID]; !ok {
		return 0, false, fmt.Errorf("choice %d in test %d: %w", choiceID, t.testID, apperr.ErrNotFound)
	}
	id, ok := t.followups[choiceID]
	return id, ok, nil
}

// Depth is 0 for a root question and grows by one per follow-up level.
func (t *Tree) Depth(id uint) (int, error) {
	if _, err := t.RootQuestion(id); err != nil {
		return 0, err
	}
	depth := 0
	for node := t.nodes[id]; node.Kind == KindFollowup; depth++ {
		node = t.nodes[t.choices[node.ParentChoiceID].QuestionID]
	}
	return depth, nil
}
