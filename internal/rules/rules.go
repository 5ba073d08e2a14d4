package rules

/*
 * Rule model for bidding conventions.
 *
 * A convention is a set of RuleGroups, each keyed by the auction prefix it
 * continues; the opening group has the empty prefix. A group nominates
 * continuation bids (BidExpression), and each continuation lists the
 * alternative hand conditions (Condition) licensing it. Groups arrive in
 * any order; assembly stitches them into a decision tree by exact prefix
 * lookup.
 *
 * Key types:
 *   - Condition: one resolved hand expression plus an optional priority
 *   - BidExpression: a continuation bid with its alternative conditions
 *   - RuleGroup: all continuations available after one auction prefix
 *   - DecisionNode: one entry in the compiled if/else-if decision list
 */

import (
	"github.com/solatis/bidlang/internal/expr"
	"github.com/solatis/bidlang/internal/types"
)

// Condition is one alternative licensing a bid. Priority 0 means
// unprioritized; unprioritized conditions sequence after every explicit
// priority.
type Condition struct {
	Expr     expr.Expr
	Priority int
}

// NewCondition conjoins exprs left-to-right with "and" into a single
// condition carrying priority. A single expr is kept as-is; an empty list
// is ErrNoConditions.
func NewCondition(priority int, exprs ...expr.Expr) (Condition, error) {
	if len(exprs) == 0 {
		return Condition{}, types.ErrNoConditions
	}

	acc := exprs[0]
	for _, e := range exprs[1:] {
		var err error
		acc, err = expr.Combine(acc, expr.LogicAnd, e)
		if err != nil {
			return Condition{}, err
		}
	}
	return Condition{Expr: acc, Priority: priority}, nil
}

// BidExpression nominates a continuation bid together with the alternative
// conditions under which a hand should make it.
type BidExpression struct {
	Bid        types.Bid
	Conditions []Condition
}

// RuleGroup holds the continuations available after one auction prefix.
type RuleGroup struct {
	Prefix        types.BidHistory
	Continuations []BidExpression
}

// displayPrefix renders a prefix for error messages; the empty (opening)
// prefix has no bid text of its own.
func displayPrefix(h types.BidHistory) string {
	if len(h) == 0 {
		return "opening"
	}
	return h.String()
}
