package expr

import (
	"testing"

	"github.com/solatis/bidlang/internal/types"
)

// Shared shorthand for building expression trees in tests.
func num(n int) Expr                         { return &Number{Value: n} }
func variable(name string) Expr              { return &Var{Name: name} }
func pointsWhole() Expr                      { return &SuitPoints{Suit: Suit{Denom: types.TotalPoints}} }
func pointsOf(d types.Denomination) Expr     { return &SuitPoints{Suit: Suit{Denom: d}} }
func cardsOf(d types.Denomination) Expr      { return &SuitCards{Suit: Suit{Denom: d}} }
func cardsIn(s SuitRef) Expr                 { return &SuitCards{Suit: s} }
func suit(d types.Denomination) Suit         { return Suit{Denom: d} }
func combo(op LogicOp, l, r SuitRef) SuitRef { return LogicSuit{Op: op, LHS: l, RHS: r} }
func binary(op BinaryOp, l, r Expr) Expr     { return &Binary{Op: op, LHS: l, RHS: r} }
func ge(l, r Expr) Expr                      { return binary(OpGE, l, r) }
func le(l, r Expr) Expr                      { return binary(OpLE, l, r) }
func eq(l, r Expr) Expr                      { return binary(OpEQ, l, r) }
func and(l, r Expr) Expr                     { return binary(OpAnd, l, r) }
func or(l, r Expr) Expr                      { return binary(OpOr, l, r) }

func TestExpr_String(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{name: "number", expr: num(12), want: "12"},
		{name: "variable", expr: variable("gf"), want: "$gf"},
		{name: "whole-hand points", expr: pointsWhole(), want: "points(@)"},
		{name: "suit points", expr: pointsOf(types.Hearts), want: "points(H)"},
		{name: "suit cards", expr: cardsOf(types.Spades), want: "cards(S)"},
		{
			name: "combination atom",
			expr: cardsIn(combo(LogicOr, suit(types.Hearts), suit(types.Spades))),
			want: "cards(H or S)",
		},
		{
			name: "nested combination atom",
			expr: cardsIn(combo(LogicAnd, combo(LogicOr, suit(types.Hearts), suit(types.Spades)), suit(types.Clubs))),
			want: "cards((H or S) and C)",
		},
		{
			name: "comparison",
			expr: ge(pointsWhole(), num(12)),
			want: "points(@) >= 12",
		},
		{
			name: "comparisons need no parens under and",
			expr: and(ge(pointsWhole(), num(12)), le(cardsOf(types.Hearts), num(5))),
			want: "points(@) >= 12 and cards(H) <= 5",
		},
		{
			name: "or under and is parenthesized",
			expr: and(ge(pointsWhole(), num(12)), or(eq(variable("gf"), num(1)), le(num(3), cardsOf(types.Clubs)))),
			want: "points(@) >= 12 and ($gf == 1 or 3 <= cards(C))",
		},
		{
			name: "and under or needs no parens",
			expr: or(and(ge(pointsWhole(), num(12)), le(cardsOf(types.Hearts), num(5))), eq(variable("gf"), num(1))),
			want: "points(@) >= 12 and cards(H) <= 5 or $gf == 1",
		},
		{
			name: "negated comparison is parenthesized",
			expr: Negate(ge(cardsOf(types.Diamonds), num(4))),
			want: "not (cards(D) >= 4)",
		},
		{
			name: "negated atom is bare",
			expr: Negate(variable("weak")),
			want: "not $weak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpr_Equal(t *testing.T) {
	base := and(ge(pointsWhole(), num(12)), le(cardsOf(types.Hearts), num(5)))

	tests := []struct {
		name string
		a, b Expr
		want bool
	}{
		{name: "identical structure", a: base, b: and(ge(pointsWhole(), num(12)), le(cardsOf(types.Hearts), num(5))), want: true},
		{name: "different operator", a: ge(num(1), num(2)), b: le(num(1), num(2)), want: false},
		{name: "different number", a: num(1), b: num(2), want: false},
		{name: "different variable", a: variable("a"), b: variable("b"), want: false},
		{name: "different suit", a: cardsOf(types.Hearts), b: cardsOf(types.Spades), want: false},
		{name: "points is not cards", a: pointsOf(types.Hearts), b: cardsOf(types.Hearts), want: false},
		{name: "number is not variable", a: num(1), b: variable("1"), want: false},
		{name: "swapped operands", a: ge(num(1), num(2)), b: ge(num(2), num(1)), want: false},
		{
			name: "combination subjects compare structurally",
			a:    cardsIn(combo(LogicOr, suit(types.Hearts), suit(types.Spades))),
			b:    cardsIn(combo(LogicOr, suit(types.Hearts), suit(types.Spades))),
			want: true,
		},
		{
			name: "combination connective matters",
			a:    cardsIn(combo(LogicOr, suit(types.Hearts), suit(types.Spades))),
			b:    cardsIn(combo(LogicAnd, suit(types.Hearts), suit(types.Spades))),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpr_CloneIsDeep(t *testing.T) {
	original := and(ge(pointsWhole(), num(12)), Negate(le(cardsOf(types.Hearts), num(5))))

	clone := original.Clone()
	if !clone.Equal(original) {
		t.Fatalf("Clone() = %s, want %s", clone, original)
	}

	// Mutating the clone's innermost literal must not reach the original.
	clone.(*Binary).LHS.(*Binary).RHS.(*Number).Value = 99
	if got := original.(*Binary).LHS.(*Binary).RHS.(*Number).Value; got != 12 {
		t.Errorf("original literal = %d after clone mutation, want 12", got)
	}

	clone.(*Binary).RHS.(*Not).Operand.(*Binary).RHS.(*Number).Value = 77
	if got := original.(*Binary).RHS.(*Not).Operand.(*Binary).RHS.(*Number).Value; got != 5 {
		t.Errorf("original negated literal = %d after clone mutation, want 5", got)
	}
}

func TestParseBinaryOp(t *testing.T) {
	for op := range binaryOpNames {
		got, err := ParseBinaryOp(op.String())
		if err != nil {
			t.Fatalf("ParseBinaryOp(%q) error = %v", op.String(), err)
		}
		if got != op {
			t.Errorf("ParseBinaryOp(%q) = %v, want %v", op.String(), got, op)
		}
	}

	if _, err := ParseBinaryOp("!="); err == nil {
		t.Errorf("ParseBinaryOp(!=) error = nil, want error")
	}
}
