package rules

import (
	"fmt"

	"github.com/solatis/bidlang/internal/types"
)

// Validate checks structural soundness before assembly: well-formed bids,
// bounded prefixes, at least one condition per continuation, and prefix
// uniqueness. Two groups keyed by the same auction would silently shadow
// each other during lookup, so duplicates are rejected outright.
func Validate(groups []RuleGroup) error {
	seen := make(map[string]struct{}, len(groups))

	for _, g := range groups {
		if len(g.Prefix) > types.MaxAuctionDepth {
			return fmt.Errorf("%w: prefix %s has %d calls", types.ErrAuctionTooDeep, displayPrefix(g.Prefix), len(g.Prefix))
		}
		for _, b := range g.Prefix {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("group %s: %w", displayPrefix(g.Prefix), err)
			}
		}

		key := g.Prefix.String()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", types.ErrDuplicatePrefix, displayPrefix(g.Prefix))
		}
		seen[key] = struct{}{}

		for _, be := range g.Continuations {
			if err := be.Bid.Validate(); err != nil {
				return fmt.Errorf("group %s: %w", displayPrefix(g.Prefix), err)
			}
			if len(be.Conditions) == 0 {
				return fmt.Errorf("%w: %s after %s", types.ErrNoConditions, be.Bid, displayPrefix(g.Prefix))
			}
		}
	}
	return nil
}
