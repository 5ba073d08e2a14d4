package types

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseBid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Bid
		wantErr error
	}{
		{name: "one heart", input: "1H", want: Bid{Level: 1, Denom: Hearts}},
		{name: "three no-trump", input: "3NT", want: Bid{Level: 3, Denom: NoTrump}},
		{name: "seven clubs", input: "7C", want: Bid{Level: 7, Denom: Clubs}},
		{name: "two diamonds", input: "2D", want: Bid{Level: 2, Denom: Diamonds}},
		{name: "level zero", input: "0H", wantErr: ErrMalformedBid},
		{name: "level eight", input: "8H", wantErr: ErrMalformedBid},
		{name: "unknown denomination", input: "1X", wantErr: ErrMalformedBid},
		{name: "total points is not biddable", input: "1@", wantErr: ErrMalformedBid},
		{name: "lowercase rejected", input: "1h", wantErr: ErrMalformedBid},
		{name: "empty", input: "", wantErr: ErrMalformedBid},
		{name: "bare level", input: "1", wantErr: ErrMalformedBid},
		{name: "trailing junk", input: "1HX", wantErr: ErrMalformedBid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBid(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseBid(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("ParseBid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBid_Compare(t *testing.T) {
	// Ascending auction order: level first, then denomination rank.
	ordered := []Bid{
		{1, Clubs}, {1, Diamonds}, {1, Hearts}, {1, Spades}, {1, NoTrump},
		{2, Clubs}, {2, Hearts}, {3, NoTrump}, {7, NoTrump},
	}

	for i := 0; i < len(ordered)-1; i++ {
		lo, hi := ordered[i], ordered[i+1]
		if lo.Compare(hi) >= 0 {
			t.Errorf("Compare(%v, %v) = %d, want < 0", lo, hi, lo.Compare(hi))
		}
		if hi.Compare(lo) <= 0 {
			t.Errorf("Compare(%v, %v) = %d, want > 0", hi, lo, hi.Compare(lo))
		}
	}
	if got := (Bid{3, Spades}).Compare(Bid{3, Spades}); got != 0 {
		t.Errorf("Compare(3S, 3S) = %d, want 0", got)
	}
}

func TestBid_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bid     Bid
		wantErr error
	}{
		{name: "valid", bid: Bid{Level: 4, Denom: Spades}},
		{name: "level too low", bid: Bid{Level: 0, Denom: Clubs}, wantErr: ErrMalformedBid},
		{name: "level too high", bid: Bid{Level: 8, Denom: Clubs}, wantErr: ErrMalformedBid},
		{name: "total points denomination", bid: Bid{Level: 1, Denom: TotalPoints}, wantErr: ErrMalformedBid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bid.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBidHistory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // canonical re-render
		wantErr error
	}{
		{name: "single bid", input: "1H", want: "1H"},
		{name: "three bids", input: "1H-1S-2C", want: "1H-1S-2C"},
		{name: "no-trump inside", input: "1NT-2C", want: "1NT-2C"},
		{name: "empty string", input: "", wantErr: ErrMalformedHistory},
		{name: "trailing separator", input: "1H-", wantErr: ErrMalformedHistory},
		{name: "bad bid inside", input: "1H-9S", wantErr: ErrMalformedHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBidHistory(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseBidHistory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && got.String() != tt.want {
				t.Errorf("ParseBidHistory(%q).String() = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestBidHistory_IsPrefixOf(t *testing.T) {
	h := func(s string) BidHistory {
		parsed, err := ParseBidHistory(s)
		if err != nil {
			t.Fatalf("ParseBidHistory(%q): %v", s, err)
		}
		return parsed
	}

	tests := []struct {
		name string
		a, b BidHistory
		want bool
	}{
		{name: "empty prefixes everything", a: BidHistory{}, b: h("1H-1S"), want: true},
		{name: "empty prefixes empty", a: BidHistory{}, b: BidHistory{}, want: true},
		{name: "proper prefix", a: h("1H"), b: h("1H-1S"), want: true},
		{name: "equal histories", a: h("1H-1S"), b: h("1H-1S"), want: true},
		{name: "longer is never a prefix", a: h("1H-1S-2C"), b: h("1H-1S"), want: false},
		{name: "diverging first bid", a: h("1S"), b: h("1H-1S"), want: false},
		{name: "diverging later bid", a: h("1H-2C"), b: h("1H-1S-2C"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsPrefixOf(tt.b); got != tt.want {
				t.Errorf("(%q).IsPrefixOf(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBidHistory_ExtendDoesNotAlias(t *testing.T) {
	base := BidHistory{{1, Hearts}}
	left := base.Extend(Bid{1, Spades})
	right := base.Extend(Bid{2, Clubs})

	if left[1] != (Bid{1, Spades}) {
		t.Errorf("left branch bid = %v, want 1S", left[1])
	}
	if right[1] != (Bid{2, Clubs}) {
		t.Errorf("right branch bid = %v, want 2C", right[1])
	}
	if len(base) != 1 {
		t.Errorf("base length = %d, want 1", len(base))
	}
}

// bidFromInt maps [0, 34] onto the 35 legal bids; keeps gopter generators simple.
func bidFromInt(n int) Bid {
	return Bid{Level: n/5 + 1, Denom: Denomination(n % 5)}
}

func historyFromInts(ns []int) BidHistory {
	h := make(BidHistory, len(ns))
	for i, n := range ns {
		h[i] = bidFromInt(n)
	}
	return h
}

func TestBid_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("bid text round-trips through ParseBid", prop.ForAll(
		func(level, denom int) bool {
			b := Bid{Level: level, Denom: Denomination(denom)}
			got, err := ParseBid(b.String())
			return err == nil && got == b
		},
		gen.IntRange(MinBidLevel, MaxBidLevel),
		gen.IntRange(int(Clubs), int(NoTrump)),
	))

	properties.TestingRun(t)
}

func TestBidHistory_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every history is a prefix of its own extension", prop.ForAll(
		func(ns []int, next int) bool {
			h := historyFromInts(ns)
			return h.IsPrefixOf(h.Extend(bidFromInt(next)))
		},
		gen.SliceOf(gen.IntRange(0, 34)),
		gen.IntRange(0, 34),
	))

	properties.Property("an extension is never a prefix of its base", prop.ForAll(
		func(ns []int, next int) bool {
			h := historyFromInts(ns)
			return !h.Extend(bidFromInt(next)).IsPrefixOf(h)
		},
		gen.SliceOf(gen.IntRange(0, 34)),
		gen.IntRange(0, 34),
	))

	properties.Property("sibling extensions never clobber each other", prop.ForAll(
		func(ns []int, a, b int) bool {
			h := historyFromInts(ns)
			left := h.Extend(bidFromInt(a))
			right := h.Extend(bidFromInt(b))
			return left[len(left)-1] == bidFromInt(a) &&
				right[len(right)-1] == bidFromInt(b) &&
				len(h) == len(ns)
		},
		gen.SliceOf(gen.IntRange(0, 34)),
		gen.IntRange(0, 34),
		gen.IntRange(0, 34),
	))

	properties.Property("history text round-trips when non-empty", prop.ForAll(
		func(ns []int) bool {
			h := historyFromInts(ns)
			if len(h) == 0 {
				return true
			}
			got, err := ParseBidHistory(h.String())
			return err == nil && got.Equal(h)
		},
		gen.SliceOf(gen.IntRange(0, 34)),
	))

	properties.TestingRun(t)
}

func TestConventionID(t *testing.T) {
	id := NewConventionID()

	parsed, err := ParseConventionID(string(id))
	if err != nil {
		t.Fatalf("ParseConventionID(%q) error = %v", id, err)
	}
	if parsed != id {
		t.Errorf("ParseConventionID(%q) = %q, want %q", id, parsed, id)
	}
	if ConventionIDTime(id).IsZero() {
		t.Errorf("ConventionIDTime(%q) is zero, want embedded timestamp", id)
	}

	if _, err := ParseConventionID("not-a-uuid"); err == nil {
		t.Errorf("ParseConventionID(not-a-uuid) error = nil, want error")
	}
}
