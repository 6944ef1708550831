package hand

import (
	"fmt"
	"strings"

	"riichi/tile"
)

func meldToken(suit byte, digits []int8, calledPos int, dir byte, appended int8, hasAppended bool) string {
	var b strings.Builder
	b.WriteByte(suit)
	for i, d := range digits {
		fmt.Fprintf(&b, "%d", d)
		if i == calledPos {
			b.WriteByte(dir)
		}
	}
	if hasAppended {
		fmt.Fprintf(&b, "%d", appended)
	}
	return b.String()
}

// sequenceValue mirrors tile.Tile.Normalized for meld-shape arithmetic:
// a red five (digit 0) behaves as a plain 5 for adjacency purposes.
func sequenceValue(d int8) int8 {
	if d == 0 {
		return 5
	}
	return d
}

// LegalDiscards is C2's legal_discards: nil when the hand is not
// awaiting a discard, else every concealed tile currently held, each
// red/plain variant as a distinct option. After a chi that formed a
// partial sequence, kuikae policy removes the tile identical to the
// called one (genbutsu), and in strict mode also the tile on the far
// side of the sequence that would let the same two hand tiles call an
// equivalent shape (suji-swap).
func (h *Hand) LegalDiscards(forbidKuikaeStrict bool) []tile.Tile {
	if h.pending == nil {
		return nil
	}
	forbiddenNums := map[int8]bool{}
	forbiddenSuit := byte(0)
	if h.pending.Kind == PendingCall && len(h.melds) > 0 {
		last := h.melds[len(h.melds)-1]
		if last.Type == tile.Chi {
			forbiddenSuit = last.Suit
			called := last.Tiles[last.CalledIndex]
			forbiddenNums[called.Normalized()] = true
			vals := make([]int8, 0, 3)
			for _, t := range last.Tiles {
				vals = append(vals, sequenceValue(t.Num))
			}
			lo, hi := vals[0], vals[0]
			for _, v := range vals {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			calledVal := sequenceValue(called.Num)
			if forbidKuikaeStrict {
				switch calledVal {
				case lo:
					if hi+1 <= 9 {
						forbiddenNums[hi+1] = true
					}
				case hi:
					if lo-1 >= 1 {
						forbiddenNums[lo-1] = true
					}
				}
			}
		}
	}

	var out []tile.Tile
	for _, suit := range [...]byte{tile.Man, tile.Pin, tile.Sou, tile.Honor} {
		hi := int8(9)
		if suit == tile.Honor {
			hi = 7
		}
		for n := int8(1); n <= hi; n++ {
			if suit == forbiddenSuit && forbiddenNums[n] {
				continue
			}
			total := h.ConcealedCount(tile.Tile{Suit: suit, Num: n})
			if total == 0 {
				continue
			}
			if (suit == tile.Man || suit == tile.Pin || suit == tile.Sou) && n == 5 {
				red := h.RedCount(suit)
				if red > 0 {
					out = append(out, tile.Tile{Suit: suit, Num: 0})
				}
				if total-red > 0 {
					out = append(out, tile.Tile{Suit: suit, Num: 5})
				}
				continue
			}
			out = append(out, tile.Tile{Suit: suit, Num: n})
		}
	}
	return out
}

// LegalChi is C2's legal_chi: melds callable from the kamicha discard
// t, one per sequence position (low/middle/high) and per red-five
// variant the hand can supply for the other two slots.
func (h *Hand) LegalChi(t tile.Tile, forbidKuikaeStrict bool) []tile.Meld {
	_ = forbidKuikaeStrict // kuikae gates the resulting discard, not the call itself
	if h.pending != nil || !t.IsNumbered() {
		return nil
	}
	v := sequenceValue(t.Num)
	offsets := [][2]int8{{-2, -1}, {-1, 1}, {1, 2}}
	var out []tile.Meld
	for _, off := range offsets {
		a, b := v+off[0], v+off[1]
		if a < 1 || b > 9 {
			continue
		}
		out = append(out, h.chiVariants(t, a, b)...)
	}
	return out
}

func (h *Hand) chiVariants(called tile.Tile, a, b int8) []tile.Meld {
	suit := called.Suit
	variants := func(v int8) []int8 {
		if v != 5 {
			if h.ConcealedCount(tile.Tile{Suit: suit, Num: v}) == 0 {
				return nil
			}
			return []int8{v}
		}
		var opts []int8
		if h.RedCount(suit) > 0 {
			opts = append(opts, 0)
		}
		if h.ConcealedCount(tile.Tile{Suit: suit, Num: 5})-h.RedCount(suit) > 0 {
			opts = append(opts, 5)
		}
		return opts
	}
	var out []tile.Meld
	for _, da := range variants(a) {
		for _, db := range variants(b) {
			tok := meldToken(suit, []int8{da, db, called.Num}, 2, tile.DirKamicha, 0, false)
			m, ok := tile.ParseMeld(tok)
			if ok {
				out = append(out, m)
			}
		}
	}
	return out
}

// LegalPon is C2's legal_pon: forbidden after riichi, otherwise one
// meld per red-five combination the hand's two contributed tiles can
// take.
func (h *Hand) LegalPon(t tile.Tile) []tile.Meld {
	if h.pending != nil || h.riichi {
		return nil
	}
	if h.ConcealedCount(t) < 2 {
		return nil
	}
	if !t.IsNumbered() || t.Normalized() != 5 {
		return h.ponSimple(t)
	}
	return h.ponRedVariants(t)
}

func (h *Hand) ponSimple(t tile.Tile) []tile.Meld {
	tok := meldToken(t.Suit, []int8{t.Num, t.Num, t.Num}, 0, tile.DirKamicha, 0, false)
	m, ok := tile.ParseMeld(tok)
	if !ok {
		return nil
	}
	return []tile.Meld{
		withDir(m, tile.DirShimocha),
		withDir(m, tile.DirToimen),
		withDir(m, tile.DirKamicha),
	}
}

func (h *Hand) ponRedVariants(t tile.Tile) []tile.Meld {
	suit := t.Suit
	red := h.RedCount(suit)
	total := h.ConcealedCount(t)
	plain := total - red
	var out []tile.Meld
	for redUsed := 0; redUsed <= 2 && redUsed <= red; redUsed++ {
		plainUsed := 2 - redUsed
		if plainUsed < 0 || plainUsed > plain {
			continue
		}
		digits := make([]int8, 0, 2)
		for i := 0; i < redUsed; i++ {
			digits = append(digits, 0)
		}
		for i := 0; i < plainUsed; i++ {
			digits = append(digits, 5)
		}
		tok := meldToken(suit, append(digits, t.Num), 2, tile.DirKamicha, 0, false)
		m, ok := tile.ParseMeld(tok)
		if !ok {
			continue
		}
		out = append(out, withDir(m, tile.DirShimocha), withDir(m, tile.DirToimen), withDir(m, tile.DirKamicha))
	}
	return out
}

func withDir(m tile.Meld, dir byte) tile.Meld {
	m.Dir = dir
	return m
}

// LegalKan is C2's legal_kan. With t non-nil it reports daiminkan
// options against a discard (forbidden after riichi, requires three
// matching concealed tiles). With t nil it reports ankan and kakan
// shapes available from the current hand/draw; afterRiichiLevel gates
// ankan once riichi has been declared (0 = never, 1 = always if
// structurally possible, 2 = only when it does not change the waits —
// callers that can re-run shanten should pre-filter level-2 results).
func (h *Hand) LegalKan(t *tile.Tile, afterRiichiLevel int) []tile.Meld {
	if t != nil {
		if h.pending != nil || h.riichi {
			return nil
		}
		if h.ConcealedCount(*t) < 3 {
			return nil
		}
		return h.daiminkan(*t)
	}
	if h.pending == nil {
		return nil
	}
	if h.riichi && afterRiichiLevel == 0 {
		return nil
	}
	var out []tile.Meld
	out = append(out, h.ankanOptions(afterRiichiLevel)...)
	if !h.riichi {
		out = append(out, h.kakanOptions()...)
	}
	return out
}

func (h *Hand) daiminkan(t tile.Tile) []tile.Meld {
	tok := meldToken(t.Suit, []int8{t.Num, t.Num, t.Num, t.Num}, 3, tile.DirKamicha, 0, false)
	m, ok := tile.ParseMeld(tok)
	if !ok {
		return nil
	}
	return []tile.Meld{withDir(m, tile.DirShimocha), withDir(m, tile.DirToimen), withDir(m, tile.DirKamicha)}
}

func (h *Hand) ankanOptions(afterRiichiLevel int) []tile.Meld {
	var out []tile.Meld
	for _, suit := range [...]byte{tile.Man, tile.Pin, tile.Sou, tile.Honor} {
		hi := int8(9)
		if suit == tile.Honor {
			hi = 7
		}
		for n := int8(1); n <= hi; n++ {
			if h.ConcealedCount(tile.Tile{Suit: suit, Num: n}) != 4 {
				continue
			}
			if h.riichi {
				drawn := h.pending.Tile
				if drawn.Normalized() != n || drawn.Suit != suit {
					continue // post-riichi ankan only from the drawn tile
				}
				// Level 2 (tenpai-shape-preserving) is enforced by the
				// round state machine, which can re-run shanten; the hand
				// layer only knows the structural (level >= 1) shape.
			}
			tok := meldToken(suit, []int8{n, n, n, n}, -1, tile.DirNone, 0, false)
			m, ok := tile.ParseMeld(tok)
			if ok {
				out = append(out, m)
			}
		}
	}
	return out
}

func (h *Hand) kakanOptions() []tile.Meld {
	var out []tile.Meld
	for _, m := range h.melds {
		if m.Type != tile.Pon {
			continue
		}
		n := m.Tiles[0].Normalized()
		suit := m.Suit
		for _, candidate := range []int8{n, otherRedForm(n)} {
			if candidate < 0 {
				continue
			}
			if h.ConcealedCount(tile.Tile{Suit: suit, Num: candidate}) <= 0 {
				continue
			}
			others := make([]int8, 0, 3)
			calledPos := -1
			for i, mt := range m.Tiles {
				others = append(others, mt.Num)
				if i == m.CalledIndex {
					calledPos = i
				}
			}
			tok := meldToken(suit, others, calledPos, m.Dir, candidate, true)
			km, ok := tile.ParseMeld(tok)
			if ok {
				out = append(out, km)
			}
		}
	}
	return out
}

// otherRedForm returns the red-five digit when n==5 (to probe drawing
// the red five to add to a plain-five pon), else -1.
func otherRedForm(n int8) int8 {
	if n == 5 {
		return 0
	}
	return -1
}
