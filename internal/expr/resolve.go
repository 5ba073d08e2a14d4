package expr

/*
 * Logical-suit resolution.
 *
 * A comparison whose points/cards atom references a combination like
 * "H or S" stands for two comparisons, one per suit, joined by the
 * combination's own connective:
 *
 *   cards(H or S) >= 3   =>   (cards(H) >= 3) or (cards(S) >= 3)
 *
 * Resolve walks the tree bottom-up, distributes each such comparison, and
 * re-resolves the variants so nested combinations unwind one layer per
 * pass. Combinations on both operands of a single comparison have no
 * defined distribution order and are rejected.
 */

import (
	"fmt"

	"github.com/solatis/bidlang/internal/types"
)

// Resolve rewrites every comparison over a suit combination into the
// equivalent and/or of per-suit comparisons. The result contains no
// LogicSuit; resolving it again returns a structurally equal tree.
func Resolve(e Expr) (Expr, error) {
	switch n := e.(type) {
	case *Binary:
		lhs, err := Resolve(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := Resolve(n.RHS)
		if err != nil {
			return nil, err
		}
		return distribute(&Binary{Op: n.Op, LHS: lhs, RHS: rhs})
	case *Not:
		operand, err := Resolve(n.Operand)
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	default:
		return e, nil
	}
}

// distribute expands b when exactly one immediate operand is an atom over a
// combination. Operands are already resolved, so any combination sits at an
// immediate atom, never deeper.
func distribute(b *Binary) (Expr, error) {
	lhsCombo, lhsOK := comboIn(b.LHS)
	rhsCombo, rhsOK := comboIn(b.RHS)

	switch {
	case lhsOK && rhsOK:
		return nil, fmt.Errorf("%w: %s", types.ErrDualSuitCombo, b)
	case lhsOK:
		// Substitute each half of the combination into the slot where it
		// was found; the untouched operand is deep-copied per variant.
		first := &Binary{Op: b.Op, LHS: withSuit(b.LHS, lhsCombo.LHS), RHS: b.RHS.Clone()}
		second := &Binary{Op: b.Op, LHS: withSuit(b.LHS, lhsCombo.RHS), RHS: b.RHS.Clone()}
		return joinVariants(lhsCombo.Op, first, second)
	case rhsOK:
		first := &Binary{Op: b.Op, LHS: b.LHS.Clone(), RHS: withSuit(b.RHS, rhsCombo.LHS)}
		second := &Binary{Op: b.Op, LHS: b.LHS.Clone(), RHS: withSuit(b.RHS, rhsCombo.RHS)}
		return joinVariants(rhsCombo.Op, first, second)
	default:
		return b, nil
	}
}

// joinVariants resolves both variants (the substituted half may itself be a
// combination) and joins them with the combination's connective.
func joinVariants(op LogicOp, first, second Expr) (Expr, error) {
	lhs, err := Resolve(first)
	if err != nil {
		return nil, err
	}
	rhs, err := Resolve(second)
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op.BinaryOp(), LHS: lhs, RHS: rhs}, nil
}

// comboIn returns the combination at e's atom subject, if any.
func comboIn(e Expr) (LogicSuit, bool) {
	switch n := e.(type) {
	case *SuitPoints:
		if ls, ok := n.Suit.(LogicSuit); ok {
			return ls, true
		}
	case *SuitCards:
		if ls, ok := n.Suit.(LogicSuit); ok {
			return ls, true
		}
	}
	return LogicSuit{}, false
}

// withSuit rebuilds an atom around a different suit reference, preserving
// the atom's kind. Callers only pass atoms comboIn matched.
func withSuit(e Expr, s SuitRef) Expr {
	switch e.(type) {
	case *SuitPoints:
		return &SuitPoints{Suit: s}
	case *SuitCards:
		return &SuitCards{Suit: s}
	}
	panic(fmt.Sprintf("withSuit: not an atom: %T", e))
}
