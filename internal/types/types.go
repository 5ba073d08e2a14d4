// Package types provides domain models shared across bidlang components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library, so the expression and parser packages can depend on them without
// dragging in store or CLI dependencies. ID utilities in ids.go import uuid
// but are isolated for selective inclusion.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Denomination identifies a bid strain (clubs through no-trump) or the
// whole-hand point subject. Constant order is the bridge rank order and
// doubles as the canonical denomination order for bid comparison.
type Denomination int

const (
	Clubs Denomination = iota
	Diamonds
	Hearts
	Spades
	NoTrump

	// TotalPoints is the whole-hand subject written "@" in expressions.
	// It never appears in a Bid; ParseBid and Validate reject it.
	TotalPoints
)

// denomNames maps denominations to their canonical text form.
var denomNames = map[Denomination]string{
	Clubs:       "C",
	Diamonds:    "D",
	Hearts:      "H",
	Spades:      "S",
	NoTrump:     "NT",
	TotalPoints: "@",
}

// String returns the canonical text form ("C", "D", "H", "S", "NT", "@").
func (d Denomination) String() string {
	if s, ok := denomNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Denomination(%d)", int(d))
}

// ParseDenomination converts canonical text to a Denomination.
// Rejects anything outside the six canonical forms.
func ParseDenomination(s string) (Denomination, error) {
	for d, name := range denomNames {
		if s == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDenomination, s)
}

// Bid represents a single call: a level (1..7) in a denomination.
type Bid struct {
	Level int
	Denom Denomination
}

// String returns the canonical text form, e.g. "1H" or "3NT".
func (b Bid) String() string {
	return strconv.Itoa(b.Level) + b.Denom.String()
}

// Compare orders bids by level, then by denomination rank.
// Returns <0 if b sorts before other, 0 if equal, >0 if after.
// 1C < 1NT < 2C; the total order every later bid in an auction must respect.
func (b Bid) Compare(other Bid) int {
	if b.Level != other.Level {
		return b.Level - other.Level
	}
	return int(b.Denom) - int(other.Denom)
}

// Validate checks level bounds and rejects the TotalPoints pseudo-denomination.
func (b Bid) Validate() error {
	if b.Level < MinBidLevel || b.Level > MaxBidLevel {
		return fmt.Errorf("%w: level %d out of range [%d, %d]", ErrMalformedBid, b.Level, MinBidLevel, MaxBidLevel)
	}
	if b.Denom < Clubs || b.Denom > NoTrump {
		return fmt.Errorf("%w: %q is not a bid denomination", ErrMalformedBid, b.Denom)
	}
	return nil
}

// ParseBid converts canonical text ("1H", "3NT") to a Bid.
// Strict round-trip with String: uppercase denominations only.
func ParseBid(s string) (Bid, error) {
	if len(s) < 2 {
		return Bid{}, fmt.Errorf("%w: %q", ErrMalformedBid, s)
	}
	level := int(s[0] - '0')
	if level < MinBidLevel || level > MaxBidLevel {
		return Bid{}, fmt.Errorf("%w: %q level must be %d..%d", ErrMalformedBid, s, MinBidLevel, MaxBidLevel)
	}
	denom, err := ParseDenomination(s[1:])
	if err != nil {
		return Bid{}, fmt.Errorf("%w: %q", ErrMalformedBid, s)
	}
	if denom == TotalPoints {
		return Bid{}, fmt.Errorf("%w: %q", ErrMalformedBid, s)
	}
	return Bid{Level: level, Denom: denom}, nil
}

// BidHistory is the auction so far, oldest bid first.
// Histories are treated as immutable: Extend copies, callers never mutate.
type BidHistory []Bid

// String returns the canonical text form, bids joined by "-", e.g. "1H-1S".
// The empty history renders as the empty string.
func (h BidHistory) String() string {
	parts := make([]string, len(h))
	for i, b := range h {
		parts[i] = b.String()
	}
	return strings.Join(parts, "-")
}

// ParseBidHistory converts canonical text ("1H-1S") to a BidHistory.
// The empty string is rejected; the empty (opening) history has no text form.
func ParseBidHistory(s string) (BidHistory, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedHistory)
	}
	parts := strings.Split(s, "-")
	h := make(BidHistory, len(parts))
	for i, p := range parts {
		b, err := ParseBid(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
		}
		h[i] = b
	}
	return h, nil
}

// IsPrefixOf reports whether h is a (non-strict) prefix of other.
// A history longer than other is never a prefix, regardless of content.
func (h BidHistory) IsPrefixOf(other BidHistory) bool {
	if len(h) > len(other) {
		return false
	}
	for i, b := range h {
		if b != other[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two histories contain the same bids in the same order.
func (h BidHistory) Equal(other BidHistory) bool {
	if len(h) != len(other) {
		return false
	}
	for i, b := range h {
		if b != other[i] {
			return false
		}
	}
	return true
}

// Extend returns a new history with bid appended. The receiver's backing
// array is never shared with the result, so extending the same history
// twice can never clobber a sibling branch.
func (h BidHistory) Extend(bid Bid) BidHistory {
	out := make(BidHistory, len(h)+1)
	copy(out, h)
	out[len(h)] = bid
	return out
}

// Domain bounds and resource limits shared by the parser, compiler, and library.
const (
	// MinBidLevel is the lowest legal bid level in contract bridge.
	MinBidLevel = 1

	// MaxBidLevel is the highest legal bid level in contract bridge.
	MaxBidLevel = 7

	// MaxAuctionDepth bounds rule-group prefix length and tree assembly recursion.
	// 64 exceeds any auction a convention could describe; guards pathological input.
	MaxAuctionDepth = 64

	// MaxConventionNameLength prevents excessively long library names.
	// 128 chars accommodates descriptive names like "precision-2D-multi-responses".
	MaxConventionNameLength = 128

	// MaxSourceSize limits notation source accepted by the library.
	// 1MB covers any hand-written convention; larger inputs are likely mistakes.
	MaxSourceSize = 1024 * 1024
)
