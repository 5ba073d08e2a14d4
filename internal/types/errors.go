package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for bidlang operations.
var (
	// ErrUnsupported is the class error for notation the compiler recognizes
	// but deliberately refuses. Specific cases below wrap it so callers can
	// match the class with errors.Is.
	ErrUnsupported = errors.New("unsupported notation feature")

	// ErrColoredPointRange indicates a point range scoped to a named suit.
	// Point ranges are whole-hand only.
	ErrColoredPointRange = fmt.Errorf("%w: point range over a named suit", ErrUnsupported)

	// ErrDualSuitCombo indicates suit combinations on both sides of one
	// comparison; the resolver can distribute over at most one side.
	ErrDualSuitCombo = fmt.Errorf("%w: suit combination on both comparison operands", ErrUnsupported)

	// ErrMalformedBid indicates bid text that does not parse as "<level><denom>".
	ErrMalformedBid = errors.New("malformed bid")

	// ErrUnknownDenomination indicates denomination text outside C/D/H/S/NT/@.
	ErrUnknownDenomination = errors.New("unknown denomination")

	// ErrMalformedHistory indicates auction text that does not parse as "-"-joined bids.
	ErrMalformedHistory = errors.New("malformed bid history")

	// ErrNoConditions indicates a rule with an empty condition list.
	ErrNoConditions = errors.New("rule has no conditions")

	// ErrDuplicatePrefix indicates two rule groups keyed by the same auction prefix.
	ErrDuplicatePrefix = errors.New("duplicate auction prefix")

	// ErrNoOpening indicates a convention without an opening (empty-prefix) group.
	ErrNoOpening = errors.New("no opening rule group")

	// ErrAuctionTooDeep indicates a prefix or assembly depth beyond MaxAuctionDepth.
	ErrAuctionTooDeep = errors.New("auction exceeds maximum depth")

	// ErrConventionNotFound indicates a library lookup by name or ID missed.
	ErrConventionNotFound = errors.New("convention not found")

	// ErrNameTooLong indicates a convention name exceeds MaxConventionNameLength.
	ErrNameTooLong = errors.New("convention name too long")

	// ErrSourceTooLarge indicates notation source exceeds MaxSourceSize.
	ErrSourceTooLarge = errors.New("notation source exceeds maximum size")
)
