package rules

/*
 * Condition sequencing.
 *
 * A group's conditions compete: an engine walks them in sequence and takes
 * the first that holds. Order is explicit priority ascending, unprioritized
 * conditions after all explicit ones, higher bids before lower bids within
 * one priority, and declaration order on full ties. Identical input always
 * sequences identically.
 */

import (
	"sort"

	"github.com/solatis/bidlang/internal/types"
)

// SequencedCondition pairs one condition with the bid it licenses.
type SequencedCondition struct {
	Condition Condition
	Bid       types.Bid
}

// AllConditionsSorted flattens the group's continuations into evaluation
// order. Conditions keep their bid association; one bid's conditions may
// interleave with another's when their priorities differ.
func (g RuleGroup) AllConditionsSorted() []SequencedCondition {
	seq := make([]SequencedCondition, 0, len(g.Continuations))
	for _, be := range g.Continuations {
		for _, c := range be.Conditions {
			seq = append(seq, SequencedCondition{Condition: c, Bid: be.Bid})
		}
	}

	// Stable sort: fully tied conditions keep declaration order (deterministic output)
	sort.SliceStable(seq, func(i, j int) bool {
		pi, pj := seq[i].Condition.Priority, seq[j].Condition.Priority
		if pi != pj {
			if pi == 0 {
				return false
			}
			if pj == 0 {
				return true
			}
			return pi < pj
		}
		return seq[i].Bid.Compare(seq[j].Bid) > 0
	})

	return seq
}
