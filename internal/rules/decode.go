package rules

import (
	"encoding/json"
	"fmt"

	"github.com/solatis/bidlang/internal/expr"
	"github.com/solatis/bidlang/internal/types"
)

// nodeDoc and exprDoc mirror the JSON artifact shape for decoding.
type nodeDoc struct {
	Bid      string          `json:"bid"`
	Test     json.RawMessage `json:"test"`
	Children []nodeDoc       `json:"children"`
}

type exprDoc struct {
	Kind    string          `json:"kind"`
	Value   *int            `json:"value"`
	Name    string          `json:"name"`
	Suit    string          `json:"suit"`
	Operand json.RawMessage `json:"operand"`
	Op      string          `json:"op"`
	LHS     json.RawMessage `json:"lhs"`
	RHS     json.RawMessage `json:"rhs"`
}

// DecodeJSON restores a compiled tree from its JSON artifact form.
// Artifacts hold resolved expressions only; a suit combination or unknown
// node kind in the input is a decode error.
func DecodeJSON(data []byte) ([]DecisionNode, error) {
	var docs []nodeDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return decodeNodes(docs)
}

func decodeNodes(docs []nodeDoc) ([]DecisionNode, error) {
	nodes := make([]DecisionNode, 0, len(docs))
	for _, d := range docs {
		bid, err := types.ParseBid(d.Bid)
		if err != nil {
			return nil, fmt.Errorf("decode artifact: %w", err)
		}
		test, err := decodeExpr(d.Test)
		if err != nil {
			return nil, fmt.Errorf("decode artifact: node %s: %w", d.Bid, err)
		}
		children, err := decodeNodes(d.Children)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, DecisionNode{Test: test, Bid: bid, Children: children})
	}
	return nodes, nil
}

func decodeExpr(raw json.RawMessage) (expr.Expr, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing test expression")
	}

	var d exprDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	switch d.Kind {
	case "number":
		if d.Value == nil {
			return nil, fmt.Errorf("number node without value")
		}
		return &expr.Number{Value: *d.Value}, nil

	case "var":
		if d.Name == "" {
			return nil, fmt.Errorf("var node without name")
		}
		return &expr.Var{Name: d.Name}, nil

	case "points", "cards":
		denom, err := types.ParseDenomination(d.Suit)
		if err != nil {
			return nil, err
		}
		if d.Kind == "points" {
			return &expr.SuitPoints{Suit: expr.Suit{Denom: denom}}, nil
		}
		return &expr.SuitCards{Suit: expr.Suit{Denom: denom}}, nil

	case "not":
		operand, err := decodeExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		return &expr.Not{Operand: operand}, nil

	case "binary":
		op, err := expr.ParseBinaryOp(d.Op)
		if err != nil {
			return nil, err
		}
		lhs, err := decodeExpr(d.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(d.RHS)
		if err != nil {
			return nil, err
		}
		return &expr.Binary{Op: op, LHS: lhs, RHS: rhs}, nil
	}

	return nil, fmt.Errorf("unknown expression kind %q", d.Kind)
}
