// Package decompose implements C6: enumeration of winning decompositions
// of a completed 14-tile hand into melds + pair (or chiitoi / kokushi /
// nine-gates), with the winning tile's meld, direction and wait shape
// marked for C7's fu calculation.
//
// The teacher's score_calculator.go (runtime/game/engines/mahjong) never
// implements this step — checkPinfu, calculatePairFu and calculateWaitFu
// are stubs returning false/0 with a TODO — so this package has no
// teacher logic to adapt beyond the shape of canFormMelds in
// searcher.go, which it extends from a yes/no search into one that
// records the groups it finds.
package decompose

import (
	"riichi/tile"
)

// GroupKind distinguishes the shape of one completed set.
type GroupKind int

const (
	Sequence GroupKind = iota
	Triplet
	Kan
)

// Group is one of the four (generalized) sets in a standard hand.
type Group struct {
	Kind      GroupKind
	Tiles     []tile.Tile // 3 for sequence/triplet, 4 for kan
	Concealed bool        // ankan, or a triplet/sequence built from the concealed hand
	CalledDir byte        // tile.DirNone if concealed
	IsAnkan   bool
}

// WaitShape classifies how the winning tile completed its group, for fu
// purposes (spec 4.6's "uniquely identifies tanki/kanchan/penchan").
type WaitShape int

const (
	WaitNone WaitShape = iota
	WaitRyanmen
	WaitKanchan
	WaitPenchan
	WaitShanpon
	WaitTanki
)

// Form names which of the four winning shapes a Decomposition uses.
type Form int

const (
	Standard Form = iota
	Chiitoi
	Kokushi
	NineGates
)

// Decomposition is one legal way to read a completed hand.
type Decomposition struct {
	Form             Form
	Groups           []Group // 4 groups for Standard/NineGates, 7 pairs for Chiitoi (as degenerate Triplets of len 2), empty for Kokushi
	Pair             tile.Tile
	WinningGroup     int // index into Groups whose completion used the winning tile; -1 for chiitoi/kokushi
	WinningIsPair    bool
	WaitShape        WaitShape
	WinningTile      tile.Tile
	WinByRon         bool
}

// terminalHonorKeys mirrors shanten's kokushi tile set.
var terminalHonorKeys = [13]int{0, 8, 9, 17, 18, 26, 27, 28, 29, 30, 31, 32, 33}

func suitOf(key int) int {
	switch {
	case key <= 8:
		return 0
	case key <= 17:
		return 1
	case key <= 26:
		return 2
	default:
		return -1
	}
}
func isNumberKey(key int) bool { return key >= 0 && key <= 26 }

// Enumerate finds every legal decomposition of a completed 14-tile hand:
// concealedTiles (the 14 - 3*len(calledMelds) concealed tiles, including
// the winning tile), calledMelds already fixed by earlier calls, the
// winning tile itself, and whether it was won by ron (vs tsumo, which
// affects the Concealed flag of the group it completes and ron-only
// menzen +10 fu upstream in C7).
func Enumerate(concealedTiles []tile.Tile, calledMelds []tile.Meld, winning tile.Tile, byRon bool) []Decomposition {
	var out []Decomposition
	out = append(out, standardDecompositions(concealedTiles, calledMelds, winning, byRon)...)
	if len(calledMelds) == 0 {
		if d, ok := chiitoiDecomposition(concealedTiles, winning); ok {
			out = append(out, d)
		}
		if d, ok := kokushiDecomposition(concealedTiles, winning); ok {
			out = append(out, d)
		}
	}
	return out
}

func keysOf(tiles []tile.Tile) [34]uint8 {
	var h [34]uint8
	for _, t := range tiles {
		h[t.Key()]++
	}
	return h
}

// standardDecompositions enumerates every (pair, 4-meld) split of the
// concealed tiles, converts called melds into fixed Groups, and tags the
// winning tile's group/wait-shape in each result.
func standardDecompositions(concealed []tile.Tile, calledMelds []tile.Meld, winning tile.Tile, byRon bool) []Decomposition {
	h := keysOf(concealed)
	need := 4 - len(calledMelds)
	if need < 0 {
		return nil
	}

	var results []Decomposition
	for pairKey := 0; pairKey < 34; pairKey++ {
		if h[pairKey] < 2 {
			continue
		}
		work := h
		work[pairKey] -= 2
		var groups []Group
		findMelds(&work, need, &groups, &results, pairKey, concealed, calledMelds, winning, byRon)
	}
	return results
}

func findMelds(h *[34]uint8, need int, acc *[]Group, results *[]Decomposition, pairKey int, concealed []tile.Tile, calledMelds []tile.Meld, winning tile.Tile, byRon bool) {
	if need == 0 {
		for i := 0; i < 34; i++ {
			if h[i] != 0 {
				return
			}
		}
		finishStandard(*acc, pairKey, concealed, calledMelds, winning, byRon, results)
		return
	}
	i := -1
	for k := 0; k < 34; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}
	if h[i] >= 3 {
		h[i] -= 3
		*acc = append(*acc, Group{Kind: Triplet, Tiles: tripletTiles(i, concealed), Concealed: true})
		findMelds(h, need-1, acc, results, pairKey, concealed, calledMelds, winning, byRon)
		*acc = (*acc)[:len(*acc)-1]
		h[i] += 3
	}
	if isNumberKey(i) && i+2 < 34 && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			*acc = append(*acc, Group{Kind: Sequence, Tiles: sequenceTiles(i, concealed), Concealed: true})
			findMelds(h, need-1, acc, results, pairKey, concealed, calledMelds, winning, byRon)
			*acc = (*acc)[:len(*acc)-1]
			h[i]++
			h[i+1]++
			h[i+2]++
		}
	}
}

// tripletTiles/sequenceTiles pick concrete Tile values (preserving a red
// five if the concealed hand holds one) for the abstract key group i.
func tripletTiles(key int, concealed []tile.Tile) []tile.Tile {
	base := tile.FromKey(key)
	out := make([]tile.Tile, 0, 3)
	redUsed := false
	for i := 0; i < 3; i++ {
		if !redUsed && base.IsNumbered() && base.Num == 5 && hasRed(concealed, base.Suit) {
			out = append(out, tile.Tile{Suit: base.Suit, Num: 0})
			redUsed = true
			continue
		}
		out = append(out, base)
	}
	return out
}

func sequenceTiles(startKey int, concealed []tile.Tile) []tile.Tile {
	out := make([]tile.Tile, 0, 3)
	for k := startKey; k < startKey+3; k++ {
		t := tile.FromKey(k)
		if t.Num == 5 && hasRed(concealed, t.Suit) {
			t.Num = 0
		}
		out = append(out, t)
	}
	return out
}

func hasRed(concealed []tile.Tile, suit byte) bool {
	for _, t := range concealed {
		if t.Suit == suit && t.IsRed() {
			return true
		}
	}
	return false
}

func finishStandard(melds []Group, pairKey int, concealed []tile.Tile, calledMelds []tile.Meld, winning tile.Tile, byRon bool, results *[]Decomposition) {
	groups := make([]Group, 0, len(melds)+len(calledMelds))
	groups = append(groups, melds...)
	for _, m := range calledMelds {
		groups = append(groups, meldToGroup(m))
	}

	winIdx, isPair, shape := locateWinningTile(groups, pairKey, winning, byRon)
	if winIdx == -1 && !isPair {
		return // winning tile not reachable in this split; not a valid decomposition
	}
	if byRon && winIdx >= 0 {
		groups[winIdx].Concealed = false // completed by ron: counts as open
	}
	d := Decomposition{
		Form:          Standard,
		Groups:        groups,
		Pair:          tile.FromKey(pairKey),
		WinningGroup:  winIdx,
		WinningIsPair: isPair,
		WaitShape:     shape,
		WinningTile:   winning,
		WinByRon:      byRon,
	}
	if isNineGatesShape(concealed, calledMelds) {
		d.Form = NineGates
	}
	*results = append(*results, d)
}

func meldToGroup(m tile.Meld) Group {
	kind := Sequence
	switch m.Type {
	case tile.Pon:
		kind = Triplet
	case tile.Daiminkan, tile.Ankan, tile.Kakan:
		kind = Kan
	}
	return Group{
		Kind:      kind,
		Tiles:     append([]tile.Tile(nil), m.Tiles...),
		Concealed: m.Type == tile.Ankan,
		CalledDir: m.Dir,
		IsAnkan:   m.Type == tile.Ankan,
	}
}

// locateWinningTile finds which group (or the pair) the winning tile
// belongs to and classifies the wait shape from that group's shape.
func locateWinningTile(groups []Group, pairKey int, winning tile.Tile, byRon bool) (idx int, isPair bool, shape WaitShape) {
	wk := winning.Key()
	if pairKey == wk {
		// Ambiguous between pair-tanki and a group containing it; prefer
		// a group match first, falling back to tanki.
	}
	for gi, g := range groups {
		if !containsKey(g.Tiles, wk) {
			continue
		}
		switch g.Kind {
		case Triplet:
			// Winning tile completed a triplet: shanpon if the pair also
			// matches the same tile, else a concealed/called triplet via
			// ron (treated as shanpon-equivalent fu-wise for a lone other
			// identical pair) — both map to WaitShanpon for fu purposes
			// when the third came from elsewhere.
			if pairKey == wk {
				return gi, false, WaitShanpon
			}
			return gi, false, WaitShanpon
		case Sequence:
			return gi, false, classifySequenceWait(g.Tiles, winning)
		case Kan:
			return gi, false, WaitShanpon
		}
	}
	if pairKey == wk {
		return -1, true, WaitTanki
	}
	return -1, false, WaitNone
}

func containsKey(tiles []tile.Tile, key int) bool {
	for _, t := range tiles {
		if t.Key() == key {
			return true
		}
	}
	return false
}

// classifySequenceWait determines ryanmen/kanchan/penchan from the
// completed sequence and which end the winning tile occupies.
func classifySequenceWait(seqTiles []tile.Tile, winning tile.Tile) WaitShape {
	vals := make([]int8, 3)
	for i, t := range seqTiles {
		vals[i] = t.Normalized()
	}
	// seqTiles is already in ascending order (built from consecutive keys).
	low, mid, high := vals[0], vals[1], vals[2]
	wv := winning.Normalized()
	switch wv {
	case mid:
		return WaitKanchan
	case low:
		if low == 1 {
			return WaitPenchan
		}
		return WaitRyanmen
	case high:
		if high == 9 {
			return WaitPenchan
		}
		return WaitRyanmen
	}
	return WaitNone
}

func isNineGatesShape(concealed []tile.Tile, calledMelds []tile.Meld) bool {
	if len(calledMelds) != 0 || len(concealed) != 14 {
		return false
	}
	suit := byte(0)
	for _, t := range concealed {
		if !t.IsNumbered() {
			return false
		}
		if suit == 0 {
			suit = t.Suit
		} else if suit != t.Suit {
			return false
		}
	}
	var counts [9]int
	for _, t := range concealed {
		counts[t.Normalized()-1]++
	}
	need := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	extra := 0
	for i := 0; i < 9; i++ {
		if counts[i] < need[i] {
			return false
		}
		extra += counts[i] - need[i]
	}
	return extra == 1
}

// PureNineGatesWait reports whether the pre-win concealed shape (13
// tiles) was the exact 1112345678999 nine-wait, per spec 4.7/8 scenario
// 5: any of the 9 tiles completes it, and the yaku is the "pure"
// (double-counted) chuuren-poutou variant.
func PureNineGatesWait(concealed []tile.Tile, winning tile.Tile) bool {
	if len(concealed) != 14 {
		return false
	}
	pre := make([]tile.Tile, 0, 13)
	removed := false
	for _, t := range concealed {
		if !removed && t.Key() == winning.Key() {
			removed = true
			continue
		}
		pre = append(pre, t)
	}
	if len(pre) != 13 {
		return false
	}
	suit := pre[0].Suit
	var counts [9]int
	for _, t := range pre {
		if t.Suit != suit || !t.IsNumbered() {
			return false
		}
		counts[t.Normalized()-1]++
	}
	want := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	return counts == want
}

func chiitoiDecomposition(concealed []tile.Tile, winning tile.Tile) (Decomposition, bool) {
	h := keysOf(concealed)
	pairs := 0
	distinct := 0
	groups := make([]Group, 0, 7)
	for i := 0; i < 34; i++ {
		if h[i] > 0 {
			distinct++
		}
		if h[i] >= 2 {
			pairs++
			groups = append(groups, Group{Kind: Triplet, Tiles: []tile.Tile{tile.FromKey(i), tile.FromKey(i)}, Concealed: true})
		}
	}
	if pairs != 7 || distinct != 7 {
		return Decomposition{}, false
	}
	return Decomposition{
		Form:         Chiitoi,
		Groups:       groups,
		WinningGroup: -1,
		WaitShape:    WaitTanki,
		WinningTile:  winning,
	}, true
}

func kokushiDecomposition(concealed []tile.Tile, winning tile.Tile) (Decomposition, bool) {
	h := keysOf(concealed)
	unique := 0
	pairKey := -1
	for _, k := range terminalHonorKeys {
		if h[k] > 0 {
			unique++
		}
		if h[k] >= 2 {
			pairKey = k
		}
	}
	if unique != 13 || pairKey == -1 {
		return Decomposition{}, false
	}
	shape := WaitNone
	if winning.Key() == pairKey {
		shape = WaitTanki // the 13-wait form: any of the 13 kinds completes it
	}
	return Decomposition{
		Form:         Kokushi,
		WinningGroup: -1,
		WaitShape:    shape,
		WinningTile:  winning,
		Pair:         tile.FromKey(pairKey),
	}, true
}
