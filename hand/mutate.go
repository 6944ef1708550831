package hand

import (
	"fmt"

	"riichi/tile"
)

// Draw adds a self-drawn tile and marks the hand as must-discard. It is
// an IllegalAction to draw while already holding a pending draw/call.
func (h *Hand) Draw(t tile.Tile) error {
	if h.pending != nil {
		return fmt.Errorf("hand: draw while a discard/kan/win is still pending")
	}
	if !t.Valid() || t.IsHidden() {
		return fmt.Errorf("hand: invalid draw tile %q", t)
	}
	if err := h.addConcealed(t, 1); err != nil {
		return err
	}
	h.pending = &Pending{Kind: PendingDraw, Tile: t}
	return nil
}

// Discard removes t from the concealed hand (it must be the current
// draw, or any concealed tile if the hand is not in riichi) and clears
// the pending marker.
func (h *Hand) Discard(t tile.Tile) error {
	if h.pending == nil {
		return fmt.Errorf("hand: discard with nothing pending")
	}
	if h.riichi {
		// After riichi only the freshly drawn tile may be discarded,
		// and only if it was a draw (ankan handled separately).
		if h.pending.Kind != PendingDraw || h.pending.Tile.Normalized() != t.Normalized() || h.pending.Tile.IsRed() != t.IsRed() {
			return fmt.Errorf("hand: riichi forbids discarding anything but the drawn tile")
		}
	}
	if h.ConcealedCount(t) <= 0 {
		return fmt.Errorf("hand: no %s to discard", t)
	}
	if err := h.addConcealed(t, -1); err != nil {
		return err
	}
	h.pending = nil
	return nil
}

// Call applies a chi/pon/daiminkan: removes the concealed tiles the
// meld consumes (all but the called tile) and appends the meld,
// entering the must-discard state.
func (h *Hand) Call(m tile.Meld) error {
	if h.pending != nil {
		return fmt.Errorf("hand: call while a discard/kan/win is still pending")
	}
	if m.Type != tile.Chi && m.Type != tile.Pon && m.Type != tile.Daiminkan {
		return fmt.Errorf("hand: Call does not accept %s (use Kan)", m.Type)
	}
	for i, mt := range m.Tiles {
		if i == m.CalledIndex {
			continue
		}
		if h.ConcealedCount(mt) <= 0 {
			return fmt.Errorf("hand: missing %s for call", mt)
		}
	}
	for i, mt := range m.Tiles {
		if i == m.CalledIndex {
			continue
		}
		if err := h.addConcealed(mt, -1); err != nil {
			return err
		}
	}
	h.melds = append(h.melds, m)
	h.pending = &Pending{Kind: PendingCall}
	return nil
}

// Kan applies an ankan (concealed quad from the current draw or hand)
// or a kakan (adds the drawn tile to an existing pon), entering the
// must-discard state (the caller must still draw the rinshan tile via
// the wall and Draw it before the discard).
func (h *Hand) Kan(m tile.Meld) error {
	if h.pending != nil && h.pending.Kind != PendingDraw {
		return fmt.Errorf("hand: kan while a call/kan is still pending")
	}
	switch m.Type {
	case tile.Ankan:
		for _, mt := range m.Tiles {
			if h.ConcealedCount(mt) <= 0 {
				return fmt.Errorf("hand: missing %s for ankan", mt)
			}
		}
		// Respect the exact physical red-five count requested.
		need := 0
		for _, mt := range m.Tiles {
			if mt.IsRed() {
				need++
			}
		}
		if suit := m.Suit; (suit == tile.Man || suit == tile.Pin || suit == tile.Sou) && need > h.RedCount(suit) {
			return fmt.Errorf("hand: not enough red fives for ankan")
		}
		for _, mt := range m.Tiles {
			if err := h.addConcealed(mt, -1); err != nil {
				return err
			}
		}
		h.melds = append(h.melds, m)
	case tile.Kakan:
		idx := findPon(h.melds, m)
		if idx < 0 {
			return fmt.Errorf("hand: no matching pon for kakan")
		}
		added := m.Tiles[m.AppendedIndex]
		if h.ConcealedCount(added) <= 0 {
			return fmt.Errorf("hand: missing %s to add to pon", added)
		}
		if err := h.addConcealed(added, -1); err != nil {
			return err
		}
		h.melds[idx] = m
	default:
		return fmt.Errorf("hand: Kan does not accept %s", m.Type)
	}
	h.pending = &Pending{Kind: PendingCall}
	return nil
}

// findPon locates the existing pon meld a kakan extends (same suit and
// normalized number, direction preserved).
func findPon(melds []tile.Meld, kakan tile.Meld) int {
	for i, existing := range melds {
		if existing.Type != tile.Pon || existing.Suit != kakan.Suit {
			continue
		}
		if existing.Tiles[0].Normalized() != kakan.Tiles[0].Normalized() {
			continue
		}
		return i
	}
	return -1
}

// DrawRinshan adds the dead-wall tile drawn after a kan declaration. It
// is Draw's counterpart for the one case Draw itself must reject: right
// after Kan sets the must-discard marker to PendingCall, the caller
// still owes a rinshan draw before the next discard.
func (h *Hand) DrawRinshan(t tile.Tile) error {
	if h.pending == nil || h.pending.Kind != PendingCall {
		return fmt.Errorf("hand: DrawRinshan without a just-declared kan pending")
	}
	if !t.Valid() || t.IsHidden() {
		return fmt.Errorf("hand: invalid rinshan tile %q", t)
	}
	if err := h.addConcealed(t, 1); err != nil {
		return err
	}
	h.pending = &Pending{Kind: PendingDraw, Tile: t}
	return nil
}

// Riichi declares riichi on the current discard: the hand must be
// menzen, hold 14 tiles (mid-turn, about to discard) and not already be
// in riichi. The actual point/stick bookkeeping is the round state
// machine's job (C9); this only flips the flag.
func (h *Hand) DeclareRiichi() error {
	if h.riichi {
		return fmt.Errorf("hand: already in riichi")
	}
	if !h.Menzen() {
		return fmt.Errorf("hand: riichi requires a concealed hand")
	}
	if h.pending == nil {
		return fmt.Errorf("hand: riichi must be declared while holding the drawn tile")
	}
	h.riichi = true
	return nil
}
