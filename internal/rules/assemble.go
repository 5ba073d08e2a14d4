package rules

/*
 * Decision tree assembly.
 *
 * BuildBranch turns one rule group into the ordered decision list for its
 * auction prefix. Each continuation bid extends the prefix by one call;
 * when another group is keyed by exactly that longer auction, that group's
 * own decisions become the children of every node nominating the bid. A
 * lookup miss is not an error: the convention simply has nothing further
 * to say on that line, and the node closes with no children.
 *
 * Every lookup key is strictly longer than the group's own prefix, so
 * recursion always descends and cycles cannot form. MaxDepth bounds the
 * descent anyway, in line with the resource limits in internal/types.
 */

import (
	"fmt"

	"github.com/solatis/bidlang/internal/expr"
	"github.com/solatis/bidlang/internal/types"
)

// DecisionNode is one entry in an ordered if/else-if decision list: make
// Bid if Test holds, then continue in Children once the bid is on the table.
type DecisionNode struct {
	Test     expr.Expr
	Bid      types.Bid
	Children []DecisionNode
}

// Compiler assembles parsed rule groups into decision trees.
type Compiler struct {
	// MaxDepth bounds assembly recursion. Defaults to types.MaxAuctionDepth;
	// configuration may lower it.
	MaxDepth int
}

// NewCompiler creates a Compiler with default limits.
func NewCompiler() *Compiler {
	return &Compiler{MaxDepth: types.MaxAuctionDepth}
}

// Compile validates groups, locates the opening group, and assembles the
// full decision tree from it.
func (c *Compiler) Compile(groups []RuleGroup) ([]DecisionNode, error) {
	if err := Validate(groups); err != nil {
		return nil, err
	}

	for _, g := range groups {
		if len(g.Prefix) == 0 {
			return c.buildBranch(g, groups, 0)
		}
	}
	return nil, types.ErrNoOpening
}

// BuildBranch assembles the decision list for one group, recursing through
// all for continuation groups. depth counts calls descended so far.
func BuildBranch(group RuleGroup, all []RuleGroup, depth int) ([]DecisionNode, error) {
	c := Compiler{MaxDepth: types.MaxAuctionDepth}
	return c.buildBranch(group, all, depth)
}

func (c *Compiler) buildBranch(group RuleGroup, all []RuleGroup, depth int) ([]DecisionNode, error) {
	if depth > c.MaxDepth {
		return nil, fmt.Errorf("%w: assembly depth %d after %s", types.ErrAuctionTooDeep, depth, displayPrefix(group.Prefix))
	}

	// One child list per distinct continuation bid; conditions nominating
	// the same bid share it.
	childrenByBid := make(map[types.Bid][]DecisionNode, len(group.Continuations))
	for _, be := range group.Continuations {
		if _, done := childrenByBid[be.Bid]; done {
			continue
		}

		next := group.Prefix.Extend(be.Bid)
		var children []DecisionNode
		for _, cand := range all {
			if cand.Prefix.Equal(next) {
				var err error
				children, err = c.buildBranch(cand, all, depth+1)
				if err != nil {
					return nil, err
				}
				break
			}
		}
		childrenByBid[be.Bid] = children
	}

	seq := group.AllConditionsSorted()
	nodes := make([]DecisionNode, 0, len(seq))
	for _, sc := range seq {
		nodes = append(nodes, DecisionNode{
			Test:     sc.Condition.Expr,
			Bid:      sc.Bid,
			Children: childrenByBid[sc.Bid],
		})
	}
	return nodes, nil
}
