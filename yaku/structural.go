package yaku

import (
	"sort"

	"riichi/decompose"
	"riichi/tile"
)

func groupIsSequence(g decompose.Group) bool { return g.Kind == decompose.Sequence }
func groupIsTripletLike(g decompose.Group) bool {
	return g.Kind == decompose.Triplet || g.Kind == decompose.Kan
}

func sequenceStart(g decompose.Group) (byte, int8) {
	start := g.Tiles[0].Normalized()
	for _, t := range g.Tiles {
		if t.Normalized() < start {
			start = t.Normalized()
		}
	}
	return g.Tiles[0].Suit, start
}

func groupIsTerminalOrHonor(g decompose.Group) bool {
	if g.Kind == decompose.Sequence {
		_, start := sequenceStart(g)
		return start == 1 || start == 7 // contains a 1 or a 9 terminal
	}
	return isTerminalOrHonor(g.Tiles[0])
}

func groupIsPureTerminal(g decompose.Group) bool {
	if g.Kind == decompose.Sequence {
		_, start := sequenceStart(g)
		return start == 1 || start == 7
	}
	t := g.Tiles[0]
	return t.IsNumbered() && (t.Normalized() == 1 || t.Normalized() == 9)
}

// checkStructural evaluates every structural yaku from spec 4.7 over one
// standard/chiitoi decomposition. Kokushi never reaches here (it is
// yakuman-only, handled in checkYakuman).
func checkStructural(d decompose.Decomposition, ctx Context) []YakuResult {
	var out []YakuResult
	add := func(id Yaku, han int) {
		if han > 0 {
			out = append(out, YakuResult{ID: id, Han: han})
		}
	}

	if d.Form == decompose.Chiitoi {
		add(Chiitoi, 2)
		if isHonitsuTiles(ctx.allTiles(), false) {
			if ctx.Menzen {
				add(Honitsu, 3)
			} else {
				add(Honitsu, 2)
			}
		}
		if isHonitsuTiles(ctx.allTiles(), true) {
			add(Chinitsu, closedOr(ctx.Menzen, 6, 5))
		}
		return out
	}
	if d.Form != decompose.Standard && d.Form != decompose.NineGates {
		return out
	}

	if isPinfu(d, ctx) {
		add(Pinfu, 1)
	}
	if ctx.Menzen && !ctx.ByRon {
		add(MenzenTsumo, 1)
	}

	for _, y := range tripletYakuhaiHan(d, ctx.RoundWind, ctx.SeatWind) {
		add(y.ID, y.Han)
	}

	if tanyao(d, ctx) {
		if ctx.Rules.KuitanEnabled || ctx.Menzen {
			add(Tanyao, 1)
		}
	}

	iipeikoCount := countIipeiko(d)
	if ctx.Menzen {
		if iipeikoCount >= 2 {
			add(Ryanpeiko, 3)
		} else if iipeikoCount == 1 {
			add(Iipeiko, 1)
		}
	}

	if sanshokuDoujun(d) {
		add(SanshokuDoujun, closedOr(ctx.Menzen, 2, 1))
	}
	if ittsu(d) {
		add(Ittsu, closedOr(ctx.Menzen, 2, 1))
	}
	if allGroupsContainTerminalOrHonor(d) {
		if allGroupsPureTerminal(d) {
			add(Junchan, closedOr(ctx.Menzen, 3, 2))
		} else {
			add(Chanta, closedOr(ctx.Menzen, 2, 1))
		}
	}
	if toitoi(d) {
		add(Toitoi, 2)
	}
	if n := countConcealedTriplets(d); n >= 3 {
		add(Sanankou, 2)
	}
	if n := countKans(d); n >= 3 {
		add(Sankantsu, 2)
	}
	if sanshokuDoukou(d) {
		add(SanshokuDoukou, 2)
	}
	if honroutou(d) {
		add(Honroutou, 2)
	}
	if shousangen(d) {
		add(Shousangen, 2)
	}
	if isHonitsuTiles(ctx.allTiles(), false) {
		add(Honitsu, closedOr(ctx.Menzen, 3, 2))
	}
	if isHonitsuTiles(ctx.allTiles(), true) {
		add(Chinitsu, closedOr(ctx.Menzen, 6, 5))
	}
	return out
}

func closedOr(menzen bool, closed, open int) int {
	if menzen {
		return closed
	}
	return open
}

// checkPreHand translates the context flags (riichi, ippatsu, special
// tsumo/ron windows, tenho/chiho) straight into yaku per spec 4.7's
// "pre-hand yaku (from context)" list. When tenho or chiho is set it
// returns that single yakuman entry alone, and evaluateOne scores it in
// place of every other yaku.
func checkPreHand(ctx Context) []YakuResult {
	var out []YakuResult
	switch ctx.RiichiLevel {
	case 2:
		out = append(out, YakuResult{ID: DoubleRiichi, Han: 2})
	case 1:
		out = append(out, YakuResult{ID: Riichi, Han: 1})
	}
	if ctx.RiichiLevel > 0 && ctx.Ippatsu {
		out = append(out, YakuResult{ID: Ippatsu, Han: 1})
	}
	if ctx.Haitei {
		out = append(out, YakuResult{ID: Haitei, Han: 1})
	}
	if ctx.Houtei {
		out = append(out, YakuResult{ID: Houtei, Han: 1})
	}
	if ctx.Rinshan {
		out = append(out, YakuResult{ID: Rinshan, Han: 1})
	}
	if ctx.Chankan {
		out = append(out, YakuResult{ID: Chankan, Han: 1})
	}
	if ctx.Tenho {
		return []YakuResult{{ID: Tenho, Han: 0, YakumanMultiplier: 1}}
	}
	if ctx.Chiho {
		return []YakuResult{{ID: Chiho, Han: 0, YakumanMultiplier: 1}}
	}
	return out
}

func isPinfu(d decompose.Decomposition, ctx Context) bool {
	if !ctx.Menzen {
		return false
	}
	for _, g := range d.Groups {
		if !groupIsSequence(g) {
			return false
		}
	}
	if d.WaitShape != decompose.WaitRyanmen {
		return false
	}
	return pairFu(d.Pair, ctx.RoundWind, ctx.SeatWind) == 0
}

// tripletYakuhaiHan scores yakuhai per triplet/kan of a wind/dragon tile
// (the pair bonus for the same tile is fu-only, handled in pairFu).
func tripletYakuhaiHan(d decompose.Decomposition, roundWind, seatWind int8) []YakuResult {
	var out []YakuResult
	for _, g := range d.Groups {
		if !groupIsTripletLike(g) {
			continue
		}
		t := g.Tiles[0]
		if t.Suit != tile.Honor {
			continue
		}
		switch {
		case t.Num == roundWind && t.Num == seatWind:
			out = append(out, YakuResult{ID: YakuhaiRound, Han: 1}, YakuResult{ID: YakuhaiSeat, Han: 1})
		case t.Num == roundWind:
			out = append(out, YakuResult{ID: YakuhaiRound, Han: 1})
		case t.Num == seatWind:
			out = append(out, YakuResult{ID: YakuhaiSeat, Han: 1})
		case t.Num == 5:
			out = append(out, YakuResult{ID: YakuhaiWhite, Han: 1})
		case t.Num == 6:
			out = append(out, YakuResult{ID: YakuhaiGreen, Han: 1})
		case t.Num == 7:
			out = append(out, YakuResult{ID: YakuhaiRed, Han: 1})
		}
	}
	return out
}

func tanyao(d decompose.Decomposition, ctx Context) bool {
	if isTerminalOrHonor(d.Pair) {
		return false
	}
	for _, g := range d.Groups {
		for _, t := range g.Tiles {
			if isTerminalOrHonor(t) {
				return false
			}
		}
	}
	return true
}

func countIipeiko(d decompose.Decomposition) int {
	type key struct {
		suit  byte
		start int8
	}
	counts := map[key]int{}
	for _, g := range d.Groups {
		if !groupIsSequence(g) {
			continue
		}
		suit, start := sequenceStart(g)
		counts[key{suit, start}]++
	}
	pairs := 0
	for _, c := range counts {
		pairs += c / 2
	}
	return pairs
}

func sanshokuDoujun(d decompose.Decomposition) bool {
	seen := map[int8]map[byte]bool{}
	for _, g := range d.Groups {
		if !groupIsSequence(g) {
			continue
		}
		suit, start := sequenceStart(g)
		if seen[start] == nil {
			seen[start] = map[byte]bool{}
		}
		seen[start][suit] = true
	}
	for _, suits := range seen {
		if suits[tile.Man] && suits[tile.Pin] && suits[tile.Sou] {
			return true
		}
	}
	return false
}

func sanshokuDoukou(d decompose.Decomposition) bool {
	seen := map[int8]map[byte]bool{}
	for _, g := range d.Groups {
		if !groupIsTripletLike(g) {
			continue
		}
		t := g.Tiles[0]
		if !t.IsNumbered() {
			continue
		}
		n := t.Normalized()
		if seen[n] == nil {
			seen[n] = map[byte]bool{}
		}
		seen[n][t.Suit] = true
	}
	for _, suits := range seen {
		if suits[tile.Man] && suits[tile.Pin] && suits[tile.Sou] {
			return true
		}
	}
	return false
}

func ittsu(d decompose.Decomposition) bool {
	bySuit := map[byte]map[int8]bool{}
	for _, g := range d.Groups {
		if !groupIsSequence(g) {
			continue
		}
		suit, start := sequenceStart(g)
		if bySuit[suit] == nil {
			bySuit[suit] = map[int8]bool{}
		}
		bySuit[suit][start] = true
	}
	for _, starts := range bySuit {
		if starts[1] && starts[4] && starts[7] {
			return true
		}
	}
	return false
}

func allGroupsContainTerminalOrHonor(d decompose.Decomposition) bool {
	if !isTerminalOrHonor(d.Pair) {
		return false
	}
	for _, g := range d.Groups {
		if !groupIsTerminalOrHonor(g) {
			return false
		}
	}
	return true
}

func allGroupsPureTerminal(d decompose.Decomposition) bool {
	if !d.Pair.IsNumbered() || (d.Pair.Normalized() != 1 && d.Pair.Normalized() != 9) {
		return false
	}
	for _, g := range d.Groups {
		if !groupIsPureTerminal(g) {
			return false
		}
	}
	return true
}

func toitoi(d decompose.Decomposition) bool {
	for _, g := range d.Groups {
		if groupIsSequence(g) {
			return false
		}
	}
	return true
}

func countConcealedTriplets(d decompose.Decomposition) int {
	n := 0
	for i, g := range d.Groups {
		if g.Kind != decompose.Triplet && !(g.Kind == decompose.Kan && g.IsAnkan) {
			continue
		}
		if !g.Concealed {
			continue
		}
		// A triplet completed by the winning ron tile is conventionally
		// treated as open for sanankou purposes.
		if d.WinningGroup == i && d.WinByRon {
			continue
		}
		n++
	}
	return n
}

func countKans(d decompose.Decomposition) int {
	n := 0
	for _, g := range d.Groups {
		if g.Kind == decompose.Kan {
			n++
		}
	}
	return n
}

// honroutou requires every group and the pair to be a terminal or honor
// tile and no sequences (the chiitoi form of this shape scores via its
// own honitsu/chinitsu path in checkStructural, not here).
func honroutou(d decompose.Decomposition) bool {
	if !isTerminalOrHonor(d.Pair) {
		return false
	}
	for _, g := range d.Groups {
		if groupIsSequence(g) {
			return false
		}
		if !isTerminalOrHonor(g.Tiles[0]) {
			return false
		}
	}
	return true
}

func shousangen(d decompose.Decomposition) bool {
	dragonTriplets := 0
	for _, g := range d.Groups {
		if !groupIsTripletLike(g) {
			continue
		}
		if g.Tiles[0].Suit == tile.Honor && g.Tiles[0].Num >= 5 {
			dragonTriplets++
		}
	}
	pairIsDragon := d.Pair.Suit == tile.Honor && d.Pair.Num >= 5
	return dragonTriplets == 2 && pairIsDragon
}

// isHonitsuTiles reports whether every tile belongs to one suit plus
// (unless pureSuit) honors. Used for both honitsu/chinitsu and the
// chiitoi variants of the same check.
func isHonitsuTiles(tiles []tile.Tile, pureSuit bool) bool {
	suit := byte(0)
	sawHonor := false
	for _, t := range tiles {
		if t.Suit == tile.Honor {
			if pureSuit {
				return false
			}
			sawHonor = true
			continue
		}
		if suit == 0 {
			suit = t.Suit
		} else if suit != t.Suit {
			return false
		}
	}
	if pureSuit {
		return suit != 0
	}
	return suit != 0 && sawHonor
}

func countDora(tiles []tile.Tile, indicators []tile.Tile) int {
	targets := map[[2]byte]int{}
	for _, ind := range indicators {
		tgt := doraTarget(ind)
		targets[[2]byte{tgt.Suit, byte(tgt.Normalized())}]++
	}
	n := 0
	for _, t := range tiles {
		n += targets[[2]byte{t.Suit, byte(t.Normalized())}]
	}
	return n
}

func doraTarget(indicator tile.Tile) tile.Tile {
	if indicator.Suit == tile.Honor {
		if indicator.Num >= 1 && indicator.Num <= 4 {
			return tile.Tile{Suit: tile.Honor, Num: indicator.Num%4 + 1}
		}
		return tile.Tile{Suit: tile.Honor, Num: (indicator.Num-5+1)%3 + 5}
	}
	n := indicator.Normalized()
	next := n%9 + 1
	return tile.Tile{Suit: indicator.Suit, Num: next}
}

func countRed(tiles []tile.Tile) int {
	n := 0
	for _, t := range tiles {
		if t.IsRed() {
			n++
		}
	}
	return n
}

var _ = sort.Sort // keep sort imported for future wait-shape tie-breaks
