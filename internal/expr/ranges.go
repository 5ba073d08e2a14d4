package expr

/*
 * Range constructors for the notation's shorthand forms.
 *
 * A range ("12..14", "5+", "3-", "=4") parses to a RangeFunc before its
 * subject is known; the grammar then binds the subject (whole-hand points
 * for a point range, a suit's card count for a cards range). Keeping the
 * shape and the subject separate lets one set of constructors serve both
 * atom kinds.
 */

import (
	"fmt"

	"github.com/solatis/bidlang/internal/types"
)

// RangeFunc binds a range shape to a subject atom, yielding a comparison.
type RangeFunc func(subject Expr) Expr

// wholeHandPoints is the "@" atom every point range and two-sided lower
// bound tests against.
func wholeHandPoints() Expr {
	return &SuitPoints{Suit: Suit{Denom: types.TotalPoints}}
}

// Range builds the two-sided form "lower..upper".
// The lower bound always tests whole-hand points, whatever the subject;
// only the upper bound tests the subject itself. Notation ranges read
// hand-wide on the low side, and compiled output preserves that reading.
func Range(lower, upper Expr) RangeFunc {
	return func(subject Expr) Expr {
		return &Binary{
			Op:  OpAnd,
			LHS: &Binary{Op: OpGE, LHS: wholeHandPoints(), RHS: lower},
			RHS: &Binary{Op: OpLE, LHS: subject, RHS: upper},
		}
	}
}

// OrMore builds the open form "lower+": subject >= lower.
func OrMore(lower Expr) RangeFunc {
	return func(subject Expr) Expr {
		return &Binary{Op: OpGE, LHS: subject, RHS: lower}
	}
}

// OrFewer builds the open form "upper-": subject <= upper.
func OrFewer(upper Expr) RangeFunc {
	return func(subject Expr) Expr {
		return &Binary{Op: OpLE, LHS: subject, RHS: upper}
	}
}

// Exactly builds the exact form "=n": subject == n.
func Exactly(n Expr) RangeFunc {
	return func(subject Expr) Expr {
		return &Binary{Op: OpEQ, LHS: subject, RHS: n}
	}
}

// PointRange applies r to the whole-hand point count.
// A non-nil suit selects the colored form, which the compiler refuses.
func PointRange(r RangeFunc, suit SuitRef) (Expr, error) {
	if suit != nil {
		return nil, fmt.Errorf("%w: points in %s", types.ErrColoredPointRange, suit)
	}
	return r(wholeHandPoints()), nil
}

// Count applies r to the card count in suit, then resolves the result in
// case suit is a combination.
func Count(r RangeFunc, suit SuitRef) (Expr, error) {
	return Resolve(r(&SuitCards{Suit: suit}))
}

// Compare builds lhs op rhs and resolves any suit combination on either side.
func Compare(lhs Expr, op BinaryOp, rhs Expr) (Expr, error) {
	return Resolve(&Binary{Op: op, LHS: lhs, RHS: rhs})
}

// Combine joins two conditions with a boolean connective and resolves the
// result.
func Combine(lhs Expr, op LogicOp, rhs Expr) (Expr, error) {
	return Resolve(&Binary{Op: op.BinaryOp(), LHS: lhs, RHS: rhs})
}

// Negate wraps a resolved condition in a negation.
func Negate(operand Expr) Expr {
	return &Not{Operand: operand}
}
