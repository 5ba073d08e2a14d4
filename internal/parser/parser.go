// Package parser turns bidding-convention notation into rule groups.
package parser

/*
 * Grammar, roughly:
 *
 *   convention := group*
 *   group      := header "{" rule* "}"
 *   header     := "opening" | bid ("-" bid)*
 *   bid        := NUMBER denom
 *   rule       := bid ":" alt ("|" alt)* ";"
 *   alt        := cond ("," cond)* ["!" NUMBER]
 *   cond       := conj ("or" conj)*
 *   conj       := unary ("and" unary)*
 *   unary      := "not" unary | primary
 *   primary    := "(" cond ")"
 *              | "points" (range ["in" suitExpr] | cmpRest)
 *              | "cards"  (range "in" suitExpr | cmpRest)
 *              | operand cmpRest
 *   cmpRest    := ("<=" | ">=" | "==") operand
 *   range      := value ".." value | value "+" | value "-" | "=" value
 *   operand    := value | "points" ["(" suitExpr ")"] | "cards" "(" suitExpr ")"
 *   value      := NUMBER | VAR
 *   suitExpr   := suitAtom (("or" | "and") suitAtom)*
 *   suitAtom   := denom | "(" suitExpr ")"
 *
 * "and"/"or" after a suit is ambiguous: it can extend the suit combination
 * or join two conditions. One token of lookahead settles it exactly, since
 * a condition can never begin with a bare denomination: the connective
 * extends the combination iff a suit atom follows it. Parenthesize the
 * whole condition to force the condition reading.
 *
 * A point range with an "in" clause parses but is refused by the expression
 * layer (ErrColoredPointRange); the parser's job is only to attach a source
 * position to that refusal.
 */

import (
	"fmt"
	"strconv"

	"github.com/solatis/bidlang/internal/expr"
	"github.com/solatis/bidlang/internal/rules"
	"github.com/solatis/bidlang/internal/types"
)

// Parser parses bidding-convention notation from tokens.
type Parser struct {
	tokens []Token
	pos    int
}

// New creates a new parser for the given source.
func New(filename string, src []byte) (*Parser, error) {
	if len(src) > types.MaxSourceSize {
		return nil, fmt.Errorf("%w: %d bytes", types.ErrSourceTooLarge, len(src))
	}
	tokens, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens}, nil
}

// ParseConvention parses a complete notation source into its rule groups.
func ParseConvention(filename string, src []byte) ([]rules.RuleGroup, error) {
	p, err := New(filename, src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) Token {
	pos := p.pos + n - 1
	if pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(text string) (Token, error) {
	tok := p.advance()
	if tok.Text != text {
		return tok, fmt.Errorf("expected %q, got %q at %s", text, tok.Text, fmtPos(tok.Pos))
	}
	return tok, nil
}

func (p *Parser) expectNumber() (int, error) {
	tok := p.advance()
	if tok.Type != TokenNumber {
		return 0, fmt.Errorf("expected number, got %q at %s", tok.Text, fmtPos(tok.Pos))
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, fmt.Errorf("number %q out of range at %s", tok.Text, fmtPos(tok.Pos))
	}
	return n, nil
}

// Parse consumes all groups in the source.
func (p *Parser) Parse() ([]rules.RuleGroup, error) {
	var groups []rules.RuleGroup
	for !p.peek().isEOF() {
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (p *Parser) parseGroup() (rules.RuleGroup, error) {
	prefix, err := p.parseHeader()
	if err != nil {
		return rules.RuleGroup{}, err
	}
	if _, err := p.expect("{"); err != nil {
		return rules.RuleGroup{}, err
	}

	var continuations []rules.BidExpression
	for p.peek().Text != "}" && !p.peek().isEOF() {
		be, err := p.parseRule()
		if err != nil {
			return rules.RuleGroup{}, err
		}
		continuations = append(continuations, be)
	}
	if _, err := p.expect("}"); err != nil {
		return rules.RuleGroup{}, err
	}

	return rules.RuleGroup{Prefix: prefix, Continuations: continuations}, nil
}

// parseHeader reads "opening" or a dash-joined bid sequence.
func (p *Parser) parseHeader() (types.BidHistory, error) {
	if tok := p.peek(); tok.Type == TokenIdent && tok.Text == "opening" {
		p.advance()
		return types.BidHistory{}, nil
	}

	var history types.BidHistory
	bid, err := p.parseBid()
	if err != nil {
		return nil, err
	}
	history = append(history, bid)
	for p.peek().Text == "-" {
		p.advance()
		bid, err := p.parseBid()
		if err != nil {
			return nil, err
		}
		history = append(history, bid)
	}
	return history, nil
}

func (p *Parser) parseBid() (types.Bid, error) {
	levelTok := p.peek()
	level, err := p.expectNumber()
	if err != nil {
		return types.Bid{}, err
	}
	denomTok := p.advance()
	if denomTok.Type != TokenIdent {
		return types.Bid{}, fmt.Errorf("expected denomination, got %q at %s", denomTok.Text, fmtPos(denomTok.Pos))
	}
	denom, err := types.ParseDenomination(denomTok.Text)
	if err != nil {
		return types.Bid{}, fmt.Errorf("%w at %s", err, fmtPos(denomTok.Pos))
	}

	bid := types.Bid{Level: level, Denom: denom}
	if err := bid.Validate(); err != nil {
		return types.Bid{}, fmt.Errorf("%w at %s", err, fmtPos(levelTok.Pos))
	}
	return bid, nil
}

func (p *Parser) parseRule() (rules.BidExpression, error) {
	bid, err := p.parseBid()
	if err != nil {
		return rules.BidExpression{}, err
	}
	if _, err := p.expect(":"); err != nil {
		return rules.BidExpression{}, err
	}

	var conditions []rules.Condition
	for {
		cond, err := p.parseAlternative()
		if err != nil {
			return rules.BidExpression{}, err
		}
		conditions = append(conditions, cond)
		if p.peek().Text != "|" {
			break
		}
		p.advance()
	}
	if _, err := p.expect(";"); err != nil {
		return rules.BidExpression{}, err
	}

	return rules.BidExpression{Bid: bid, Conditions: conditions}, nil
}

// parseAlternative reads one comma-joined condition list with its optional
// "!N" priority.
func (p *Parser) parseAlternative() (rules.Condition, error) {
	var exprs []expr.Expr
	for {
		e, err := p.parseCondition()
		if err != nil {
			return rules.Condition{}, err
		}
		exprs = append(exprs, e)
		if p.peek().Text != "," {
			break
		}
		p.advance()
	}

	priority := 0
	if p.peek().Text == "!" {
		p.advance()
		numTok := p.peek()
		n, err := p.expectNumber()
		if err != nil {
			return rules.Condition{}, err
		}
		if n < 1 {
			return rules.Condition{}, fmt.Errorf("priority must be at least 1, got %d at %s", n, fmtPos(numTok.Pos))
		}
		priority = n
	}

	return rules.NewCondition(priority, exprs...)
}

func (p *Parser) parseCondition() (expr.Expr, error) {
	lhs, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.peek().Text == "or" {
		opTok := p.advance()
		rhs, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		lhs, err = expr.Combine(lhs, expr.LogicOr, rhs)
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, fmtPos(opTok.Pos))
		}
	}
	return lhs, nil
}

func (p *Parser) parseConjunction() (expr.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Text == "and" {
		opTok := p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs, err = expr.Combine(lhs, expr.LogicAnd, rhs)
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, fmtPos(opTok.Pos))
		}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (expr.Expr, error) {
	if tok := p.peek(); tok.Type == TokenIdent && tok.Text == "not" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Negate(operand), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (expr.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Text == "(" && tok.Type == TokenOperator:
		p.advance()
		e, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	case tok.Type == TokenIdent && tok.Text == "points":
		return p.parsePoints()
	case tok.Type == TokenIdent && tok.Text == "cards":
		return p.parseCards()
	case tok.Type == TokenNumber || tok.Type == TokenVar:
		lhs, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return p.finishComparison(lhs)
	}
	return nil, fmt.Errorf("expected condition, got %q at %s", tok.Text, fmtPos(tok.Pos))
}

// parsePoints disambiguates the forms starting with "points": the operand
// form "points(suit)"/"points" followed by a comparison, and the range form
// "points 12..14".
func (p *Parser) parsePoints() (expr.Expr, error) {
	kwTok := p.advance()

	next := p.peek()
	switch {
	case next.Text == "(":
		p.advance()
		suit, err := p.parseSuitExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.finishComparison(&expr.SuitPoints{Suit: suit})
	case next.Type == TokenNumber || next.Type == TokenVar || next.Text == "=":
		r, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		var suit expr.SuitRef
		inTok := p.peek()
		if inTok.Type == TokenIdent && inTok.Text == "in" {
			p.advance()
			suit, err = p.parseSuitExpr()
			if err != nil {
				return nil, err
			}
		}
		e, err := expr.PointRange(r, suit)
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, fmtPos(inTok.Pos))
		}
		return e, nil
	case isComparisonOp(next.Text):
		return p.finishComparison(&expr.SuitPoints{Suit: expr.Suit{Denom: types.TotalPoints}})
	}
	return nil, fmt.Errorf("expected range or comparison after %q at %s", kwTok.Text, fmtPos(next.Pos))
}

// parseCards handles "cards(suit)" followed by a comparison and the range
// form "cards 5+ in H".
func (p *Parser) parseCards() (expr.Expr, error) {
	kwTok := p.advance()

	if p.peek().Text == "(" {
		p.advance()
		suit, err := p.parseSuitExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.finishComparison(&expr.SuitCards{Suit: suit})
	}

	next := p.peek()
	if next.Type != TokenNumber && next.Type != TokenVar && next.Text != "=" {
		return nil, fmt.Errorf("expected range or comparison after %q at %s", kwTok.Text, fmtPos(next.Pos))
	}
	r, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	inTok, err := p.expect("in")
	if err != nil {
		return nil, err
	}
	suit, err := p.parseSuitExpr()
	if err != nil {
		return nil, err
	}
	e, err := expr.Count(r, suit)
	if err != nil {
		return nil, fmt.Errorf("%w at %s", err, fmtPos(inTok.Pos))
	}
	return e, nil
}

var comparisonOps = map[string]expr.BinaryOp{
	"<=": expr.OpLE,
	">=": expr.OpGE,
	"==": expr.OpEQ,
}

func isComparisonOp(text string) bool {
	_, ok := comparisonOps[text]
	return ok
}

// finishComparison reads the operator and right operand following lhs.
func (p *Parser) finishComparison(lhs expr.Expr) (expr.Expr, error) {
	opTok := p.advance()
	op, ok := comparisonOps[opTok.Text]
	if !ok {
		return nil, fmt.Errorf("expected comparison operator, got %q at %s", opTok.Text, fmtPos(opTok.Pos))
	}
	rhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	e, err := expr.Compare(lhs, op, rhs)
	if err != nil {
		return nil, fmt.Errorf("%w at %s", err, fmtPos(opTok.Pos))
	}
	return e, nil
}

func (p *Parser) parseOperand() (expr.Expr, error) {
	tok := p.advance()
	switch {
	case tok.Type == TokenNumber:
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, fmt.Errorf("number %q out of range at %s", tok.Text, fmtPos(tok.Pos))
		}
		return &expr.Number{Value: n}, nil
	case tok.Type == TokenVar:
		return &expr.Var{Name: tok.Text}, nil
	case tok.Type == TokenIdent && tok.Text == "points":
		if p.peek().Text != "(" {
			return &expr.SuitPoints{Suit: expr.Suit{Denom: types.TotalPoints}}, nil
		}
		p.advance()
		suit, err := p.parseSuitExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return &expr.SuitPoints{Suit: suit}, nil
	case tok.Type == TokenIdent && tok.Text == "cards":
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		suit, err := p.parseSuitExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return &expr.SuitCards{Suit: suit}, nil
	}
	return nil, fmt.Errorf("expected value, %q, or %q, got %q at %s", "points", "cards", tok.Text, fmtPos(tok.Pos))
}

// parseValue reads a number or variable range bound.
func (p *Parser) parseValue() (expr.Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenNumber:
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, fmt.Errorf("number %q out of range at %s", tok.Text, fmtPos(tok.Pos))
		}
		return &expr.Number{Value: n}, nil
	case TokenVar:
		return &expr.Var{Name: tok.Text}, nil
	}
	return nil, fmt.Errorf("expected number or variable, got %q at %s", tok.Text, fmtPos(tok.Pos))
}

func (p *Parser) parseRange() (expr.RangeFunc, error) {
	if p.peek().Text == "=" {
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return expr.Exactly(v), nil
	}

	lo, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Text {
	case "..":
		p.advance()
		hi, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return expr.Range(lo, hi), nil
	case "+":
		p.advance()
		return expr.OrMore(lo), nil
	case "-":
		p.advance()
		return expr.OrFewer(lo), nil
	default:
		return nil, fmt.Errorf("expected %q, %q, or %q after range bound, got %q at %s", "..", "+", "-", tok.Text, fmtPos(tok.Pos))
	}
}

func (p *Parser) parseSuitExpr() (expr.SuitRef, error) {
	ref, err := p.parseSuitAtom()
	if err != nil {
		return nil, err
	}
	for p.continuesCombination() {
		opTok := p.advance()
		rhs, err := p.parseSuitAtom()
		if err != nil {
			return nil, err
		}
		op := expr.LogicAnd
		if opTok.Text == "or" {
			op = expr.LogicOr
		}
		ref = expr.LogicSuit{Op: op, LHS: ref, RHS: rhs}
	}
	return ref, nil
}

func (p *Parser) parseSuitAtom() (expr.SuitRef, error) {
	tok := p.advance()
	if tok.Text == "(" && tok.Type == TokenOperator {
		suit, err := p.parseSuitExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return suit, nil
	}
	if tok.Type != TokenIdent {
		return nil, fmt.Errorf("expected suit, got %q at %s", tok.Text, fmtPos(tok.Pos))
	}
	denom, err := types.ParseDenomination(tok.Text)
	if err != nil {
		return nil, fmt.Errorf("%w at %s", err, fmtPos(tok.Pos))
	}
	return expr.Suit{Denom: denom}, nil
}

// continuesCombination reports whether the connective at the cursor extends
// the current suit combination rather than joining two conditions. It does
// iff a suit atom follows the connective; conditions never start with one.
func (p *Parser) continuesCombination() bool {
	if t := p.peek().Text; t != "or" && t != "and" {
		return false
	}
	after := p.peekAhead(2)
	if after.Type == TokenIdent && isDenomination(after.Text) {
		return true
	}
	if after.Text == "(" {
		inner := p.peekAhead(3)
		return inner.Type == TokenIdent && isDenomination(inner.Text)
	}
	return false
}

func isDenomination(text string) bool {
	_, err := types.ParseDenomination(text)
	return err == nil
}
