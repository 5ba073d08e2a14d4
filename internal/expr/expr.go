// Package expr models hand-condition expressions and rewrites suit
// combinations into plain boolean structure.
//
// Expressions are immutable once built: every transformation constructs new
// nodes, and Clone produces copies that share nothing with their source. The
// one transient form is LogicSuit, which exists only between parsing a suit
// combination ("H or S") and resolution; Resolve guarantees compiled output
// never contains one. LogicSuit is a SuitRef, not an Expr, so a bare
// combination can never occupy a comparison operand slot.
package expr

import (
	"fmt"
	"strconv"

	"github.com/solatis/bidlang/internal/types"
)

// BinaryOp enumerates the operators a Binary node can carry.
type BinaryOp int

const (
	OpLE BinaryOp = iota // <=
	OpGE                 // >=
	OpEQ                 // ==
	OpAnd
	OpOr
)

var binaryOpNames = map[BinaryOp]string{
	OpLE:  "<=",
	OpGE:  ">=",
	OpEQ:  "==",
	OpAnd: "and",
	OpOr:  "or",
}

// String returns the operator's notation text.
func (op BinaryOp) String() string {
	if s, ok := binaryOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// ParseBinaryOp converts notation text back to a BinaryOp.
// Used when decoding stored artifacts.
func ParseBinaryOp(s string) (BinaryOp, error) {
	for op, name := range binaryOpNames {
		if s == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator %q", s)
}

// precedence orders operators for minimal-paren rendering:
// comparisons bind tighter than "and", which binds tighter than "or".
func precedence(op BinaryOp) int {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	default:
		return 3
	}
}

// LogicOp enumerates the connectives a suit combination can carry.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
)

// String returns the connective's notation text.
func (op LogicOp) String() string {
	if op == LogicOr {
		return "or"
	}
	return "and"
}

// BinaryOp maps the suit connective onto the boolean operator used when
// a combination's variants are joined.
func (op LogicOp) BinaryOp() BinaryOp {
	if op == LogicOr {
		return OpOr
	}
	return OpAnd
}

// SuitRef is the subject of a points/cards atom: a concrete suit or a
// transient combination of suits.
type SuitRef interface {
	suitRef()
	String() string
}

// Suit references a single denomination (or the whole hand via TotalPoints).
type Suit struct {
	Denom types.Denomination
}

func (Suit) suitRef() {}

// String returns the denomination's canonical text.
func (s Suit) String() string { return s.Denom.String() }

// LogicSuit combines two suit references with and/or. It only ever appears
// between parsing and resolution; Resolve replaces every comparison over a
// LogicSuit with per-suit variants.
type LogicSuit struct {
	Op  LogicOp
	LHS SuitRef
	RHS SuitRef
}

func (LogicSuit) suitRef() {}

// String renders the combination, parenthesizing nested combinations.
func (l LogicSuit) String() string {
	return logicChild(l.LHS) + " " + l.Op.String() + " " + logicChild(l.RHS)
}

func logicChild(s SuitRef) string {
	if _, ok := s.(LogicSuit); ok {
		return "(" + s.String() + ")"
	}
	return s.String()
}

// suitRefsEqual reports structural equality of two suit references.
func suitRefsEqual(a, b SuitRef) bool {
	switch x := a.(type) {
	case Suit:
		y, ok := b.(Suit)
		return ok && x.Denom == y.Denom
	case LogicSuit:
		y, ok := b.(LogicSuit)
		return ok && x.Op == y.Op && suitRefsEqual(x.LHS, y.LHS) && suitRefsEqual(x.RHS, y.RHS)
	}
	return false
}

// Expr is a hand-condition expression node.
type Expr interface {
	exprNode()

	// Clone returns a structurally identical copy sharing no nodes with
	// the receiver.
	Clone() Expr

	// Equal reports structural equality.
	Equal(Expr) bool

	// String renders precedence-aware infix notation text.
	String() string
}

// SuitPoints counts high-card points in the referenced suit; the whole hand
// when the suit is "@".
type SuitPoints struct {
	Suit SuitRef
}

func (*SuitPoints) exprNode() {}

func (e *SuitPoints) Clone() Expr { return &SuitPoints{Suit: e.Suit} }

func (e *SuitPoints) Equal(other Expr) bool {
	o, ok := other.(*SuitPoints)
	return ok && suitRefsEqual(e.Suit, o.Suit)
}

func (e *SuitPoints) String() string { return "points(" + e.Suit.String() + ")" }

// SuitCards counts cards held in the referenced suit.
type SuitCards struct {
	Suit SuitRef
}

func (*SuitCards) exprNode() {}

func (e *SuitCards) Clone() Expr { return &SuitCards{Suit: e.Suit} }

func (e *SuitCards) Equal(other Expr) bool {
	o, ok := other.(*SuitCards)
	return ok && suitRefsEqual(e.Suit, o.Suit)
}

func (e *SuitCards) String() string { return "cards(" + e.Suit.String() + ")" }

// Var references a named convention parameter, written "$name".
type Var struct {
	Name string
}

func (*Var) exprNode() {}

func (e *Var) Clone() Expr { return &Var{Name: e.Name} }

func (e *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && e.Name == o.Name
}

func (e *Var) String() string { return "$" + e.Name }

// Number is an integer literal.
type Number struct {
	Value int
}

func (*Number) exprNode() {}

func (e *Number) Clone() Expr { return &Number{Value: e.Value} }

func (e *Number) Equal(other Expr) bool {
	o, ok := other.(*Number)
	return ok && e.Value == o.Value
}

func (e *Number) String() string { return strconv.Itoa(e.Value) }

// Not negates its operand.
type Not struct {
	Operand Expr
}

func (*Not) exprNode() {}

func (e *Not) Clone() Expr { return &Not{Operand: e.Operand.Clone()} }

func (e *Not) Equal(other Expr) bool {
	o, ok := other.(*Not)
	return ok && e.Operand.Equal(o.Operand)
}

func (e *Not) String() string {
	if _, ok := e.Operand.(*Binary); ok {
		return "not (" + e.Operand.String() + ")"
	}
	return "not " + e.Operand.String()
}

// Binary applies Op to two operands.
type Binary struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

func (*Binary) exprNode() {}

func (e *Binary) Clone() Expr {
	return &Binary{Op: e.Op, LHS: e.LHS.Clone(), RHS: e.RHS.Clone()}
}

func (e *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && e.Op == o.Op && e.LHS.Equal(o.LHS) && e.RHS.Equal(o.RHS)
}

func (e *Binary) String() string {
	return e.child(e.LHS) + " " + e.Op.String() + " " + e.child(e.RHS)
}

// child parenthesizes a looser-binding binary operand.
func (e *Binary) child(c Expr) string {
	if b, ok := c.(*Binary); ok && precedence(b.Op) < precedence(e.Op) {
		return "(" + c.String() + ")"
	}
	return c.String()
}
