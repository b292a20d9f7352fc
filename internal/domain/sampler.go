package domain

import (
	"fmt"
	"math/rand"
)

// MaxSessionQuestions bounds how many questions one test session may hold.
const MaxSessionQuestions = 10

// SampleSessionSet narrows a chapter's question pool to one session's worth
// of questions.
//
// With an explicit setID the pool is filtered to that set; an empty filter
// result is a NOT_FOUND condition ("select a different set"). Without a
// setID, one of the distinct set IDs present in the pool is picked uniformly
// at random; chapters whose questions carry no set IDs use the whole pool.
// Pools larger than MaxSessionQuestions are cut down by shuffle-then-slice,
// so the result is a uniform sample without replacement and arrives already
// in randomized order.
func SampleSessionSet(pool []*Question, setID string, rng *rand.Rand) ([]*Question, error) {
	if len(pool) == 0 {
		return nil, NewNotFoundError("No questions exist for this chapter. Select a different chapter.")
	}

	candidates := pool
	if setID != "" {
		candidates = filterBySet(pool, setID)
		if len(candidates) == 0 {
			return nil, NewNotFoundError(
				fmt.Sprintf("No questions found for set %s. Select a different chapter or set.", setID))
		}
	} else if sets := distinctSetIDs(pool); len(sets) > 0 {
		picked := sets[rng.Intn(len(sets))]
		candidates = filterBySet(pool, picked)
	}

	selected := make([]*Question, len(candidates))
	copy(selected, candidates)
	for i := len(selected) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		selected[i], selected[j] = selected[j], selected[i]
	}
	if len(selected) > MaxSessionQuestions {
		selected = selected[:MaxSessionQuestions]
	}
	return selected, nil
}

func filterBySet(pool []*Question, setID string) []*Question {
	var filtered []*Question
	for _, q := range pool {
		if q.EffectiveSetID() == setID {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// distinctSetIDs returns the unique non-empty set IDs in the pool, in first
// appearance order so a seeded rng picks reproducibly.
func distinctSetIDs(pool []*Question) []string {
	seen := make(map[string]bool)
	var sets []string
	for _, q := range pool {
		id := q.EffectiveSetID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sets = append(sets, id)
	}
	return sets
}
