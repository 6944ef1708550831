package hand

import (
	"fmt"
	"strings"

	"riichi/tile"
)

// digitsForSuit lists, in ascending canonical order (red-five before its
// plain sibling), the concealed digits of one suit, excluding a single
// copy of the current pending draw (it is rendered separately, appended
// after the sorted run per spec 6).
func (h *Hand) digitsForSuit(suit byte) []int8 {
	excludeNum, excludeRed := int8(-1), false
	if h.pending != nil && h.pending.Kind == PendingDraw && h.pending.Tile.Suit == suit {
		excludeNum = h.pending.Tile.Normalized()
		excludeRed = h.pending.Tile.IsRed()
	}
	hi := int8(9)
	if suit == tile.Honor {
		hi = 7
	}
	var out []int8
	for n := int8(1); n <= hi; n++ {
		count := int(h.counts[tile.Tile{Suit: suit, Num: n}.Key()])
		if (suit == tile.Man || suit == tile.Pin || suit == tile.Sou) && n == 5 {
			red := h.RedCount(suit)
			plain := count - red
			if excludeNum == 5 {
				if excludeRed {
					red--
				} else {
					plain--
				}
			}
			for i := 0; i < red; i++ {
				out = append(out, 0)
			}
			for i := 0; i < plain; i++ {
				out = append(out, 5)
			}
			continue
		}
		if n == excludeNum {
			count--
		}
		for i := 0; i < count; i++ {
			out = append(out, n)
		}
	}
	return out
}

// String renders the hand in the text form of spec 6: concealed run
// ordered m -> p -> s -> z, the pending draw appended, `*` for riichi,
// then called melds in call order with a trailing comma iff the most
// recent action was a call/kan still awaiting a discard.
func (h *Hand) String() string {
	var b strings.Builder
	lastSuit := byte(0)
	for _, suit := range [...]byte{tile.Man, tile.Pin, tile.Sou, tile.Honor} {
		digits := h.digitsForSuit(suit)
		if len(digits) == 0 {
			continue
		}
		b.WriteByte(suit)
		lastSuit = suit
		for _, d := range digits {
			fmt.Fprintf(&b, "%d", d)
		}
	}
	if h.pending != nil && h.pending.Kind == PendingDraw {
		d := h.pending.Tile
		if d.Suit != lastSuit {
			b.WriteByte(d.Suit)
		}
		fmt.Fprintf(&b, "%d", d.Num)
	}
	if h.riichi {
		b.WriteByte('*')
	}
	for _, m := range h.melds {
		b.WriteByte(',')
		b.WriteString(m.String())
	}
	if h.pending != nil && h.pending.Kind == PendingCall && len(h.melds) > 0 {
		b.WriteByte(',')
	}
	return b.String()
}

// parseConcealedRun decodes a bare suit-prefixed digit run (no melds, no
// riichi marker) into a flat, unsorted tile list.
func parseConcealedRun(s string) ([]tile.Tile, bool) {
	var tiles []tile.Tile
	var suit byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == tile.Man || c == tile.Pin || c == tile.Sou || c == tile.Honor:
			suit = c
		case c >= '0' && c <= '9':
			if suit == 0 {
				return nil, false
			}
			t := tile.Tile{Suit: suit, Num: int8(c - '0')}
			if !t.Valid() {
				return nil, false
			}
			tiles = append(tiles, t)
		default:
			return nil, false
		}
	}
	return tiles, true
}

// FromString is C2's from_string: the inverse of String. It recovers
// which trailing tile (if any) was the pending draw purely from the
// 13/14 tile-count invariant, since the draw is the only concealed tile
// not written in sorted position.
func FromString(s string) (*Hand, error) {
	parts := strings.Split(s, ",")
	head := parts[0]
	meldToks := parts[1:]

	trailingComma := false
	if n := len(meldToks); n > 0 && meldToks[n-1] == "" {
		trailingComma = true
		meldToks = meldToks[:n-1]
	}

	riichiFlag := false
	if strings.HasSuffix(head, "*") {
		riichiFlag = true
		head = head[:len(head)-1]
	}

	tiles, ok := parseConcealedRun(head)
	if !ok {
		return nil, fmt.Errorf("hand: malformed concealed run %q", head)
	}

	melds := make([]tile.Meld, 0, len(meldToks))
	meldTileTotal := 0
	hasKan := false
	for _, mt := range meldToks {
		m, ok := tile.ParseMeld(mt)
		if !ok {
			return nil, fmt.Errorf("hand: malformed meld %q", mt)
		}
		melds = append(melds, m)
		meldTileTotal += 3 // a kan still counts as one 3-tile group (see TileCount)
		if m.TileCount() == 4 {
			hasKan = true
		}
	}

	total := len(tiles) + meldTileTotal
	var pending *Pending
	var drawTile tile.Tile
	hasDraw := false
	switch {
	case trailingComma:
		// A just-declared kan still owes its rinshan draw: one tile short.
		if total != 14 && !(total == 13 && hasKan) {
			return nil, fmt.Errorf("hand: pending-call tile count %d, want 14", total)
		}
		pending = &Pending{Kind: PendingCall}
	case total == 14:
		if len(tiles) == 0 {
			return nil, fmt.Errorf("hand: 14 tiles but no concealed draw to extract")
		}
		drawTile = tiles[len(tiles)-1]
		tiles = tiles[:len(tiles)-1]
		hasDraw = true
	case total != 13:
		return nil, fmt.Errorf("hand: tile count %d is neither 13 nor 14", total)
	}

	h, err := FromTiles(tiles)
	if err != nil {
		return nil, err
	}
	h.melds = melds
	h.riichi = riichiFlag
	if hasDraw {
		if err := h.addConcealed(drawTile, 1); err != nil {
			return nil, err
		}
		pending = &Pending{Kind: PendingDraw, Tile: drawTile}
	}
	h.pending = pending
	return h, nil
}
