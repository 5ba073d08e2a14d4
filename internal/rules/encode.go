package rules

/*
 * Artifact encoding.
 *
 * A compiled tree renders in three formats: JSON (the storage form), YAML,
 * and an indented text listing for review at the terminal. JSON and YAML
 * share one generic value form; decode.go restores trees from the JSON
 * form. Expression nodes are tagged by "kind" so decoding needs no schema
 * beyond the artifact itself.
 */

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solatis/bidlang/internal/expr"
)

// Format selects an artifact rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Encode renders a compiled tree. indent applies to JSON nesting and text
// tree depth; zero selects compact JSON and the default text indent.
func Encode(nodes []DecisionNode, format Format, indent int) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(nodes, indent)
	case FormatYAML:
		return yaml.Marshal(encodeNodes(nodes))
	case FormatText:
		return encodeText(nodes, indent), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func encodeJSON(nodes []DecisionNode, indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(encodeNodes(nodes))
	}
	return json.MarshalIndent(encodeNodes(nodes), "", strings.Repeat(" ", indent))
}

// encodeNodes produces the generic value form shared by JSON and YAML.
// Children encode as an empty list, never null, so consumers need no nil
// handling.
func encodeNodes(nodes []DecisionNode) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = map[string]any{
			"bid":      n.Bid.String(),
			"test":     encodeExpr(n.Test),
			"children": encodeNodes(n.Children),
		}
	}
	return out
}

func encodeExpr(e expr.Expr) map[string]any {
	switch n := e.(type) {
	case *expr.Number:
		return map[string]any{"kind": "number", "value": n.Value}
	case *expr.Var:
		return map[string]any{"kind": "var", "name": n.Name}
	case *expr.SuitPoints:
		return map[string]any{"kind": "points", "suit": n.Suit.String()}
	case *expr.SuitCards:
		return map[string]any{"kind": "cards", "suit": n.Suit.String()}
	case *expr.Not:
		return map[string]any{"kind": "not", "operand": encodeExpr(n.Operand)}
	case *expr.Binary:
		return map[string]any{
			"kind": "binary",
			"op":   n.Op.String(),
			"lhs":  encodeExpr(n.LHS),
			"rhs":  encodeExpr(n.RHS),
		}
	}
	panic(fmt.Sprintf("encodeExpr: unknown node %T", e))
}

const defaultTextIndent = 2

// encodeText renders the tree as indented "BID  if CONDITION" lines, one
// node per line, children indented one level under their parent.
func encodeText(nodes []DecisionNode, indent int) []byte {
	if indent <= 0 {
		indent = defaultTextIndent
	}
	var b strings.Builder
	writeTextNodes(&b, nodes, 0, indent)
	return []byte(b.String())
}

func writeTextNodes(b *strings.Builder, nodes []DecisionNode, depth, indent int) {
	pad := strings.Repeat(" ", depth*indent)
	for _, n := range nodes {
		fmt.Fprintf(b, "%s%s  if %s\n", pad, n.Bid, n.Test)
		writeTextNodes(b, n.Children, depth+1, indent)
	}
}
