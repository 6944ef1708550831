// Package hand implements C2: a concealed tile multiset plus called
// melds, draw/call marker and riichi flag, with the legal-move queries
// the round state machine and agents rely on.
package hand

import (
	"fmt"

	"riichi/tile"
)

// PendingKind distinguishes what put the hand into "must discard" state.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingDraw
	PendingCall
)

// Pending describes why the hand currently holds 14 logical tiles and
// must discard (or declare a kan/win) before play continues.
type Pending struct {
	Kind PendingKind
	Tile tile.Tile // the drawn tile, valid when Kind == PendingDraw
}

// Hand is the mutable concealed-hand representation from spec 3.3.
type Hand struct {
	counts  [34]uint8 // concealed count per tile.Key()
	redMan  uint8
	redPin  uint8
	redSou  uint8
	hidden  int // face-down placeholders, for masked opponent views
	melds   []tile.Meld
	pending *Pending
	riichi  bool
}

// New returns an empty hand (no tiles, no melds).
func New() *Hand {
	return &Hand{}
}

// Clone returns an independent deep copy.
func (h *Hand) Clone() *Hand {
	c := *h
	c.melds = append([]tile.Meld(nil), h.melds...)
	if h.pending != nil {
		p := *h.pending
		c.pending = &p
	}
	return &c
}

func (h *Hand) redCount(suit byte) *uint8 {
	switch suit {
	case tile.Man:
		return &h.redMan
	case tile.Pin:
		return &h.redPin
	case tile.Sou:
		return &h.redSou
	default:
		return nil
	}
}

// ConcealedCount returns how many copies of t (by normalized rank) are
// held concealed, regardless of redness.
func (h *Hand) ConcealedCount(t tile.Tile) int {
	return int(h.counts[tile.Tile{Suit: t.Suit, Num: t.Normalized()}.Key()])
}

// RedCount returns how many red-fives of the given numbered suit are
// concealed in hand.
func (h *Hand) RedCount(suit byte) int {
	if r := h.redCount(suit); r != nil {
		return int(*r)
	}
	return 0
}

// Melds returns the called melds in call order (includes ankan/kakan).
func (h *Hand) Melds() []tile.Meld { return append([]tile.Meld(nil), h.melds...) }

// Pending returns the current must-discard marker, or nil.
func (h *Hand) Pending() *Pending {
	if h.pending == nil {
		return nil
	}
	p := *h.pending
	return &p
}

// Riichi reports whether the hand has declared riichi.
func (h *Hand) Riichi() bool { return h.riichi }

// Menzen reports concealment: true iff no called meld carries a
// direction flag (ankan is still menzen, per spec 3.3).
func (h *Hand) Menzen() bool {
	for _, m := range h.melds {
		if m.Dir != tile.DirNone {
			return false
		}
	}
	return true
}

// TileCount returns concealed tiles + 3*open-melds-as-triples-equivalent
// (kan melds still count as one meld group for the 13/14 invariant: a
// kan's 4th tile is a supplementary draw, not part of the 13/14 base).
func (h *Hand) TileCount() int {
	concealed := 0
	for _, c := range h.counts {
		concealed += int(c)
	}
	concealed += h.hidden
	return concealed + 3*len(h.melds)
}

// addConcealed adds n copies of t (n may be negative to remove).
func (h *Hand) addConcealed(t tile.Tile, n int) error {
	key := tile.Tile{Suit: t.Suit, Num: t.Normalized()}.Key()
	cur := int(h.counts[key])
	next := cur + n
	if next < 0 || next > 4 {
		return fmt.Errorf("hand: invariant violated for %s: count would be %d", t, next)
	}
	h.counts[key] = uint8(next)
	if t.IsRed() {
		r := h.redCount(t.Suit)
		if r == nil {
			return fmt.Errorf("hand: red five on non-numbered suit %q", t.Suit)
		}
		rn := int(*r) + n
		if rn < 0 || rn > next {
			return fmt.Errorf("hand: invariant violated, red-five count %d exceeds five count %d", rn, next)
		}
		*r = uint8(rn)
	}
	return nil
}

// ConcealedTiles flattens the concealed multiset back into individual
// tiles (red-fives first within a suit's count of 5s), for callers that
// need a plain slice: shanten.FromConcealed, decompose.Enumerate, and
// yaku.Context.ConcealedTiles.
func (h *Hand) ConcealedTiles() []tile.Tile {
	out := make([]tile.Tile, 0, h.TileCount())
	for key, n := range h.counts {
		if n == 0 {
			continue
		}
		base := tile.FromKey(key)
		reds := 0
		if base.IsNumbered() && base.Normalized() == 5 {
			reds = int(*h.redCount(base.Suit))
		}
		for i := uint8(0); i < n; i++ {
			if int(i) < reds {
				out = append(out, tile.Tile{Suit: base.Suit, Num: 0})
			} else {
				out = append(out, base)
			}
		}
	}
	return out
}

// FromTiles builds a concealed-only hand from a flat tile list (no
// melds, no pending draw); used by callers building a starting deal.
func FromTiles(tiles []tile.Tile) (*Hand, error) {
	h := New()
	for _, t := range tiles {
		if t.IsHidden() {
			h.hidden++
			continue
		}
		if !t.Valid() {
			return nil, fmt.Errorf("hand: invalid tile %q", t)
		}
		if err := h.addConcealed(t, 1); err != nil {
			return nil, err
		}
	}
	return h, nil
}
