package yaku

import (
	"riichi/decompose"
	"riichi/tile"
)

// FuBreakdown records every contributing term so callers (and tests) can
// see where the total came from, rather than just the final number.
type FuBreakdown struct {
	Base       int
	Melds      int
	Pair       int
	Wait       int
	Tsumo      int
	MenzenRon  int
	OpenFloor  bool // the open-hand-minimum-30 rule applied
	Chiitoi    bool
	Total      int // after floor + round-up-to-10
}

func isTerminalOrHonor(t tile.Tile) bool {
	if !t.IsNumbered() {
		return true
	}
	n := t.Normalized()
	return n == 1 || n == 9
}

func isYakuhaiTile(t tile.Tile, roundWind, seatWind int8) bool {
	if t.Suit != tile.Honor {
		return false
	}
	if t.Num >= 5 {
		return true // dragons
	}
	return t.Num == roundWind || t.Num == seatWind
}

// pairFu is the teacher's stubbed calculatePairFu, implemented per spec
// 4.7: +2 for the round wind, +2 for the seat wind (so a double-wind
// pair scores +4), +2 for any dragon.
func pairFu(pair tile.Tile, roundWind, seatWind int8) int {
	if pair.Suit != tile.Honor {
		return 0
	}
	fu := 0
	if pair.Num >= 5 {
		fu += 2
		return fu
	}
	if pair.Num == roundWind {
		fu += 2
	}
	if pair.Num == seatWind {
		fu += 2
	}
	return fu
}

// meldFu is the teacher's calculateMeldFu, extended to cover concealed
// triplets (ankou) which the teacher's version never implemented.
func meldFu(g decompose.Group) int {
	if g.Kind == decompose.Sequence || len(g.Tiles) == 0 {
		return 0
	}
	yaochuu := isTerminalOrHonor(g.Tiles[0])
	switch g.Kind {
	case decompose.Triplet:
		if g.Concealed {
			if yaochuu {
				return 8
			}
			return 4
		}
		if yaochuu {
			return 4
		}
		return 2
	case decompose.Kan:
		if g.IsAnkan {
			if yaochuu {
				return 32
			}
			return 16
		}
		if yaochuu {
			return 16
		}
		return 8
	}
	return 0
}

// waitFu is the teacher's stubbed calculateWaitFu: tanki/kanchan/penchan
// each add +2; ryanmen and shanpon add nothing (shanpon's value already
// lives in the triplet it completes).
func waitFu(shape decompose.WaitShape) int {
	switch shape {
	case decompose.WaitTanki, decompose.WaitKanchan, decompose.WaitPenchan:
		return 2
	default:
		return 0
	}
}

// CalculateFu computes (total, breakdown) for one decomposition under
// spec 4.7. menzen is hand.Hand.Menzen() (concealed, or only ankan
// calls). isPinfu suppresses the tsumo +2 per the pinfu exception.
func CalculateFu(d decompose.Decomposition, menzen bool, byRon bool, isPinfu bool, roundWind, seatWind int8) FuBreakdown {
	if d.Form == decompose.Chiitoi {
		return FuBreakdown{Base: 25, Chiitoi: true, Total: 25}
	}
	if d.Form == decompose.Kokushi {
		return FuBreakdown{Total: 0}
	}
	if isPinfu {
		if byRon {
			return FuBreakdown{Base: 20, MenzenRon: 10, Total: 30}
		}
		return FuBreakdown{Base: 20, Total: 20}
	}

	b := FuBreakdown{Base: 20}
	for _, g := range d.Groups {
		b.Melds += meldFu(g)
	}
	b.Pair = pairFu(d.Pair, roundWind, seatWind)
	b.Wait = waitFu(d.WaitShape)
	if !byRon {
		b.Tsumo = 2
	} else if menzen {
		b.MenzenRon = 10
	}

	total := b.Base + b.Melds + b.Pair + b.Wait + b.Tsumo + b.MenzenRon
	if !menzen && total < 30 {
		total = 30
		b.OpenFloor = true
	}
	b.Total = roundUpTo10(total)
	return b
}

func roundUpTo10(x int) int {
	if x%10 == 0 {
		return x
	}
	return x + (10 - x%10)
}

func roundUpTo100(x int) int {
	if x%100 == 0 {
		return x
	}
	return x + (100 - x%100)
}
