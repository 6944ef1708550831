// Package yaku implements C7: fu/yaku/yakuman evaluation and the base
// point / payment tables, grounded on the teacher's
// runtime/game/engines/mahjong/{score_calculator,yaku}.go — but those
// files leave checkPinfu, calculatePairFu, calculateWaitFu and every
// structural yaku checker other than the four yakuman stubs returning
// false/0/stub values. This package keeps the teacher's
// checker-registry architecture (YakuChecker / registry slice /
// GetFanfuAndYakus) and supplies the real rule bodies spec 4.7 calls
// for, rather than carrying the stubs forward.
package yaku

import (
	"riichi/decompose"
	"riichi/tile"
)

// Yaku enumerates every scoring element from spec 4.7, structural and
// pre-hand alike, plus the yakuman set.
type Yaku int

const (
	Riichi Yaku = iota
	DoubleRiichi
	Ippatsu
	MenzenTsumo
	Pinfu
	Tanyao
	YakuhaiRound
	YakuhaiSeat
	YakuhaiWhite
	YakuhaiGreen
	YakuhaiRed
	Iipeiko
	SanshokuDoujun
	Ittsu
	Chanta
	Junchan
	Honitsu
	Chinitsu
	Toitoi
	Sanankou
	Sankantsu
	SanshokuDoukou
	Honroutou
	Shousangen
	Ryanpeiko
	Chiitoi
	Haitei
	Houtei
	Rinshan
	Chankan
	Tenho
	Chiho

	Kokushi
	KokushiJusanmen
	Suuankou
	SuuankouTanki
	Daisangen
	Shousuushii
	Daisuushii
	Tsuuiisou
	Ryuuiisou
	Chinroutou
	Suukantsu
	Chuuren
	JunseiChuuren
	KazoeYakuman
)

// Options carries the scoring-relevant subset of the rule set (C8 owns
// the full RuleSet; this is the slice scoring actually branches on,
// kept here to avoid a yaku->rules import cycle).
type Options struct {
	KuitanEnabled           bool
	YakumanCompositionEnabled bool
	DoubleYakumanEnabled    bool
	CountedYakumanEnabled   bool
	YakumanPaoEnabled       bool
	RoundUpMangan           bool
}

// DefaultOptions mirrors spec 4.8's parenthesized defaults for the
// fields this package consumes.
func DefaultOptions() Options {
	return Options{
		KuitanEnabled:             true,
		YakumanCompositionEnabled: true,
		DoubleYakumanEnabled:      true,
		CountedYakumanEnabled:     true,
		YakumanPaoEnabled:         true,
		RoundUpMangan:             false,
	}
}

// Context is everything C7 needs beyond the decomposition itself: the
// scoring inputs listed at the top of spec 4.7.
type Context struct {
	ConcealedTiles []tile.Tile // the 13/14 concealed tiles, winning tile included
	Melds          []tile.Meld
	Menzen         bool
	WinningTile    tile.Tile
	ByRon          bool

	RoundWind int8 // tile.Tile.Num for z1..z4 (E/S/W/N)
	SeatWind  int8

	RiichiLevel int // 0 none, 1 riichi, 2 double riichi
	Ippatsu     bool
	Haitei      bool
	Houtei      bool
	Rinshan     bool
	Chankan     bool
	Tenho       bool
	Chiho       bool

	DoraIndicators []tile.Tile
	UraIndicators  []tile.Tile // nil iff ura disabled for this hand

	Rules Options
}

// YakuResult is one matched yaku with its han (0 for a yakuman entry,
// whose value lives in YakumanMultiplier instead).
type YakuResult struct {
	ID                Yaku
	Han               int
	YakumanMultiplier int // 0 for non-yakuman, 1 normal, 2 double
}

// Win is the outcome of scoring one decomposition: the yaku list, total
// han (structural + pre-hand + dora), fu, and the derived base points.
type Win struct {
	Decomposition decompose.Decomposition
	Yakus         []YakuResult
	Han           int
	YakumanUnits  int // total yakuman multiplier units (0 if this is a non-yakuman win)
	Fu            FuBreakdown
	BasePoints    int
}

// allTiles flattens the concealed tiles and every meld's tiles, the unit
// dora/fu counting needs.
func (c *Context) allTiles() []tile.Tile {
	out := append([]tile.Tile(nil), c.ConcealedTiles...)
	for _, m := range c.Melds {
		out = append(out, m.Tiles...)
	}
	return out
}

// EvaluateAll scores every legal decomposition of the hand and returns
// the one maximizing the player's payment (spec 4.7's selection rule),
// tie-broken by higher han then higher fu. Returns ok=false when no
// decomposition yields a yaku (not a valid win).
func EvaluateAll(decomps []decompose.Decomposition, ctx Context) (Win, bool) {
	var best Win
	haveBest := false
	for _, d := range decomps {
		w, ok := evaluateOne(d, ctx)
		if !ok {
			continue
		}
		if !haveBest || betterWin(w, best) {
			best = w
			haveBest = true
		}
	}
	return best, haveBest
}

func betterWin(a, b Win) bool {
	ap, bp := a.BasePoints, b.BasePoints
	if ap != bp {
		return ap > bp
	}
	if a.Han != b.Han {
		return a.Han > b.Han
	}
	return a.Fu.Total > b.Fu.Total
}

func evaluateOne(d decompose.Decomposition, ctx Context) (Win, bool) {
	yakumanResults := checkYakuman(d, ctx)
	if ctx.Tenho || ctx.Chiho {
		yakumanResults = checkPreHand(ctx) // tenho/chiho replace every other yaku
	}
	units := 0
	for _, y := range yakumanResults {
		mult := y.YakumanMultiplier
		if mult > 1 && !ctx.Rules.DoubleYakumanEnabled {
			mult = 1
		}
		units += mult
	}
	if units > 0 {
		if !ctx.Rules.YakumanCompositionEnabled {
			// Keep only the single highest-value yakuman.
			best := yakumanResults[0]
			for _, y := range yakumanResults[1:] {
				if y.YakumanMultiplier > best.YakumanMultiplier {
					best = y
				}
			}
			units = best.YakumanMultiplier
			if units > 1 && !ctx.Rules.DoubleYakumanEnabled {
				units = 1
			}
			yakumanResults = []YakuResult{best}
		}
		return Win{
			Decomposition: d,
			Yakus:         yakumanResults,
			YakumanUnits:  units,
			BasePoints:    8000 * units,
		}, true
	}

	structural := checkStructural(d, ctx)
	preHand := checkPreHand(ctx)
	all := append(structural, preHand...)
	han := 0
	for _, y := range all {
		han += y.Han
	}
	if han == 0 {
		return Win{}, false // no yaku, not a valid win
	}

	isPinfu := containsYaku(all, Pinfu)
	fu := CalculateFu(d, ctx.Menzen, ctx.ByRon, isPinfu, ctx.RoundWind, ctx.SeatWind)

	doraHan := countDora(ctx.allTiles(), ctx.DoraIndicators)
	redHan := countRed(ctx.allTiles())
	uraHan := 0
	if ctx.RiichiLevel > 0 && ctx.UraIndicators != nil {
		uraHan = countDora(ctx.allTiles(), ctx.UraIndicators)
	}
	han += doraHan + redHan + uraHan

	if han >= 13 && ctx.Rules.CountedYakumanEnabled {
		units := han / 13
		return Win{Decomposition: d, Yakus: all, Han: han, YakumanUnits: units, Fu: fu, BasePoints: 8000 * units}, true
	}

	base := BasePoints(fu.Total, han, ctx.Rules)
	return Win{Decomposition: d, Yakus: all, Han: han, Fu: fu, BasePoints: base}, true
}

func containsYaku(ys []YakuResult, id Yaku) bool {
	for _, y := range ys {
		if y.ID == id {
			return true
		}
	}
	return false
}
