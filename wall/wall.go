// Package wall implements C4: the shuffled 136-tile stack, dead-wall
// accounting for dora/ura-dora/rinshan draws, and an RNG capability
// injected at construction instead of relying on process-wide state.
package wall

import (
	"fmt"

	"riichi/internal/log"
	"riichi/tile"
)

// RNG supplies a uniform float in [0,1), as spec 5/6 require: the wall
// never seeds or owns a process-wide random source.
type RNG interface {
	Float64() float64
}

const (
	totalTiles  = 136
	deadWallLen = 14
	rinshanLen  = 4
	maxKans     = 4
)

// RedFiveCounts configures how many of each numbered suit's four physical
// fives are substituted with the red-five (aka-dora) variant.
type RedFiveCounts struct {
	Man, Pin, Sou int
}

// Wall is the live stack plus its dead wall.
type Wall struct {
	live        []tile.Tile // live draws pop from the end (index len-1)
	dead        []tile.Tile // fixed 14 tiles, indices 0-13
	kanDrawn    int         // rinshan tiles already taken (0..4)
	doraCount   int         // revealed dora indicators (1..5)
	uraDoraCnt  int         // revealed ura indicators (0..5)
	kanPending  bool        // a kan_draw happened, awaiting reveal
	kanDoraOn   bool        // rule: kan_dora_enabled
	uraOn       bool        // rule: ura_dora_enabled
	kanUraOn    bool        // rule: kan_ura_enabled
	kanDelayed  bool        // rule: kan_dora_delayed
	closed      bool
}

// New shuffles a fresh 136-tile wall using rng and the given red-five
// counts, per spec 4.4's construction algorithm: repeatedly draw index
// floor(rand()*remaining) and move that tile to the output.
func New(rng RNG, red RedFiveCounts, kanDoraEnabled, uraDoraEnabled, kanUraEnabled, kanDoraDelayed bool) (*Wall, error) {
	tiles := buildTileSet(red)
	shuffled, err := shuffle(tiles, rng)
	if err != nil {
		return nil, err
	}
	w := &Wall{
		live:       shuffled[:totalTiles-deadWallLen],
		dead:       shuffled[totalTiles-deadWallLen:],
		doraCount:  1,
		kanDoraOn:  kanDoraEnabled,
		uraOn:      uraDoraEnabled,
		kanUraOn:   kanUraEnabled,
		kanDelayed: kanDoraDelayed,
	}
	log.Debug("wall shuffled: %d live, %d dead, kan_dora=%v ura_dora=%v", len(w.live), len(w.dead), kanDoraEnabled, uraDoraEnabled)
	return w, nil
}

func buildTileSet(red RedFiveCounts) []tile.Tile {
	tiles := make([]tile.Tile, 0, totalTiles)
	add := func(suit byte, n int8, redCount int) {
		for copy := 0; copy < 4; copy++ {
			if n == 5 && copy < redCount {
				tiles = append(tiles, tile.Tile{Suit: suit, Num: 0})
				continue
			}
			tiles = append(tiles, tile.Tile{Suit: suit, Num: n})
		}
	}
	for n := int8(1); n <= 9; n++ {
		add(tile.Man, n, red.Man)
		add(tile.Pin, n, red.Pin)
		add(tile.Sou, n, red.Sou)
	}
	for n := int8(1); n <= 7; n++ {
		add(tile.Honor, n, 0)
	}
	return tiles
}

func shuffle(tiles []tile.Tile, rng RNG) ([]tile.Tile, error) {
	remaining := append([]tile.Tile(nil), tiles...)
	out := make([]tile.Tile, 0, len(tiles))
	for len(remaining) > 0 {
		r := rng.Float64()
		if r < 0 || r >= 1 {
			return nil, fmt.Errorf("wall: rng returned %v, want [0,1)", r)
		}
		idx := int(r * float64(len(remaining)))
		if idx >= len(remaining) {
			idx = len(remaining) - 1
		}
		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out, nil
}

// LiveCount returns the number of undrawn live-wall tiles.
func (w *Wall) LiveCount() int { return len(w.live) }

// DoraIndicators returns the currently revealed dora indicator tiles, in
// reveal order (wall indices 4, 6, 8, 10, 12).
func (w *Wall) DoraIndicators() []tile.Tile {
	out := make([]tile.Tile, 0, w.doraCount)
	for i := 0; i < w.doraCount; i++ {
		out = append(out, w.dead[4+2*i])
	}
	return out
}

// UraIndicators returns the revealed ura-dora indicators, or nil if the
// wall has not closed or ura-dora is disabled (spec 9a: nil iff
// ura_dora_enabled is false, independent of kan_ura_enabled).
func (w *Wall) UraIndicators() []tile.Tile {
	if !w.closed || !w.uraOn {
		return nil
	}
	out := make([]tile.Tile, 0, w.uraDoraCnt)
	for i := 0; i < w.uraDoraCnt; i++ {
		out = append(out, w.dead[5+2*i])
	}
	return out
}

// Draw pops the next live tile.
func (w *Wall) Draw() (tile.Tile, error) {
	if w.closed {
		return tile.Tile{}, fmt.Errorf("wall: draw from a closed wall")
	}
	if w.kanPending {
		return tile.Tile{}, fmt.Errorf("wall: draw while a kan-dora reveal is pending")
	}
	if len(w.live) == 0 {
		return tile.Tile{}, fmt.Errorf("wall: live wall exhausted")
	}
	t := w.live[len(w.live)-1]
	w.live = w.live[:len(w.live)-1]
	return t, nil
}

// KanDraw pops the next rinshan tile from the dead wall (spec 4.4: index
// 0 outward). It errors if the wall is closed, exhausted, a previous
// kan-draw's reveal is still pending, or all four kans have been drawn.
func (w *Wall) KanDraw() (tile.Tile, error) {
	if w.closed {
		return tile.Tile{}, fmt.Errorf("wall: kan_draw from a closed wall")
	}
	if w.kanPending {
		return tile.Tile{}, fmt.Errorf("wall: kan_draw while a prior reveal is pending")
	}
	if w.kanDrawn >= maxKans {
		return tile.Tile{}, fmt.Errorf("wall: all %d kan draws already taken", maxKans)
	}
	if len(w.live) == 0 {
		return tile.Tile{}, fmt.Errorf("wall: live wall exhausted")
	}
	t := w.dead[w.kanDrawn]
	w.kanDrawn++
	w.kanPending = true
	// The rinshan draw itself comes from the dead wall's reserved rinshan
	// slots; per spec 4.4/8 the live count still decreases by one per kan
	// draw, so the next live tile is dropped (the dead slice keeps its
	// fixed 14 tiles).
	w.live = w.live[:len(w.live)-1]
	return t, nil
}

// RevealKanDora moves the next dora indicator (and, if ura and kan-ura
// are both enabled, the next ura indicator) into the visible set. It
// errors unless a kan-draw reveal is pending.
func (w *Wall) RevealKanDora() error {
	if !w.kanPending {
		return fmt.Errorf("wall: reveal_kan_dora with no kan-draw pending")
	}
	if w.kanDoraOn {
		w.doraCount++
	}
	if w.uraOn && w.kanUraOn {
		w.uraDoraCnt++
	}
	w.kanPending = false
	log.Debug("kan-dora revealed: dora_count=%d ura_count=%d", w.doraCount, w.uraDoraCnt)
	return nil
}

// Close seals the wall; ura-dora becomes visible (via UraIndicators) iff
// enabled: one indicator, plus one per kan-dora reveal when kan-ura is
// enabled.
func (w *Wall) Close() {
	w.closed = true
	if w.uraOn {
		w.uraDoraCnt = 1
		if w.kanUraOn {
			w.uraDoraCnt = w.doraCount
		}
	}
}

// KanPending reports whether a kan-draw reveal is outstanding.
func (w *Wall) KanPending() bool { return w.kanPending }

// Closed reports whether the wall has been sealed.
func (w *Wall) Closed() bool { return w.closed }

// KansDrawn returns how many rinshan tiles have been taken so far.
func (w *Wall) KansDrawn() int { return w.kanDrawn }
