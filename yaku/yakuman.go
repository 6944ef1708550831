package yaku

import (
	"riichi/decompose"
	"riichi/tile"
)

// checkYakuman evaluates the yakuman set from spec 4.7. Several entries
// are mutually exclusive by construction (kokushi only matches the
// Kokushi-form decomposition; suuankou only the standard form), so this
// simply collects every match — EvaluateAll sums YakumanMultiplier and
// honors yakuman_composition_enabled to decide whether they stack.
func checkYakuman(d decompose.Decomposition, ctx Context) []YakuResult {
	var out []YakuResult

	if d.Form == decompose.Kokushi {
		if d.WaitShape == decompose.WaitTanki {
			out = append(out, YakuResult{ID: KokushiJusanmen, YakumanMultiplier: 2})
		} else {
			out = append(out, YakuResult{ID: Kokushi, YakumanMultiplier: 1})
		}
		return out
	}
	if d.Form != decompose.Standard && d.Form != decompose.NineGates {
		return out
	}

	if n := countConcealedTriplets(d); n == 4 {
		if d.WaitShape == decompose.WaitTanki {
			out = append(out, YakuResult{ID: SuuankouTanki, YakumanMultiplier: 2})
		} else {
			out = append(out, YakuResult{ID: Suuankou, YakumanMultiplier: 1})
		}
	}

	if daisangenShape(d) {
		out = append(out, YakuResult{ID: Daisangen, YakumanMultiplier: 1})
	}

	windTriplets := windTripletCount(d)
	if windTriplets == 4 {
		out = append(out, YakuResult{ID: Daisuushii, YakumanMultiplier: 2})
	} else if windTriplets == 3 && isWindPair(d.Pair) {
		out = append(out, YakuResult{ID: Shousuushii, YakumanMultiplier: 1})
	}

	if allHonors(d) {
		out = append(out, YakuResult{ID: Tsuuiisou, YakumanMultiplier: 1})
	}
	if allGreen(d) {
		out = append(out, YakuResult{ID: Ryuuiisou, YakumanMultiplier: 1})
	}
	if allPureTerminals(d) {
		out = append(out, YakuResult{ID: Chinroutou, YakumanMultiplier: 1})
	}
	if n := countKans(d); n == 4 {
		out = append(out, YakuResult{ID: Suukantsu, YakumanMultiplier: 1})
	}

	if d.Form == decompose.NineGates {
		if decompose.PureNineGatesWait(ctx.ConcealedTiles, ctx.WinningTile) {
			out = append(out, YakuResult{ID: JunseiChuuren, YakumanMultiplier: 2})
		} else {
			out = append(out, YakuResult{ID: Chuuren, YakumanMultiplier: 1})
		}
	}

	return out
}

func daisangenShape(d decompose.Decomposition) bool {
	n := 0
	for _, g := range d.Groups {
		if !groupIsTripletLike(g) {
			continue
		}
		if g.Tiles[0].Suit == tile.Honor && g.Tiles[0].Num >= 5 {
			n++
		}
	}
	return n == 3
}

func windTripletCount(d decompose.Decomposition) int {
	n := 0
	for _, g := range d.Groups {
		if !groupIsTripletLike(g) {
			continue
		}
		if g.Tiles[0].Suit == tile.Honor && g.Tiles[0].Num >= 1 && g.Tiles[0].Num <= 4 {
			n++
		}
	}
	return n
}

func isWindPair(pair tile.Tile) bool {
	return pair.Suit == tile.Honor && pair.Num >= 1 && pair.Num <= 4
}

func allHonors(d decompose.Decomposition) bool {
	if d.Pair.Suit != tile.Honor {
		return false
	}
	for _, g := range d.Groups {
		for _, t := range g.Tiles {
			if t.Suit != tile.Honor {
				return false
			}
		}
	}
	return true
}

// allGreen checks ryuuiisou's tile set: sou 2/3/4/6/8 and the green
// dragon only.
func allGreen(d decompose.Decomposition) bool {
	ok := func(t tile.Tile) bool {
		if t.Suit == tile.Honor {
			return t.Num == 6
		}
		if t.Suit != tile.Sou {
			return false
		}
		switch t.Normalized() {
		case 2, 3, 4, 6, 8:
			return true
		default:
			return false
		}
	}
	if !ok(d.Pair) {
		return false
	}
	for _, g := range d.Groups {
		for _, t := range g.Tiles {
			if !ok(t) {
				return false
			}
		}
	}
	return true
}

func allPureTerminals(d decompose.Decomposition) bool {
	if !d.Pair.IsNumbered() || (d.Pair.Normalized() != 1 && d.Pair.Normalized() != 9) {
		return false
	}
	for _, g := range d.Groups {
		if groupIsSequence(g) {
			return false
		}
		t := g.Tiles[0]
		if !t.IsNumbered() || (t.Normalized() != 1 && t.Normalized() != 9) {
			return false
		}
	}
	return true
}
