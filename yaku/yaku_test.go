package yaku

import (
	"testing"

	"riichi/decompose"
	"riichi/tile"
)

func tt(toks ...string) []tile.Tile {
	out := make([]tile.Tile, 0, len(toks))
	for _, tok := range toks {
		t, ok := tile.ValidTile(tok)
		if !ok {
			panic("bad tile " + tok)
		}
		out = append(out, t)
	}
	return out
}

func TestPinfuTanyaoRon(t *testing.T) {
	concealed := tt("m2", "m3", "m4", "p4", "p5", "p6", "s2", "s3", "s4", "s6", "s7", "s8", "p2", "p2")
	win := tile.T(tile.Pin, 6)

	decomps := decompose.Enumerate(concealed, nil, win, true)
	if len(decomps) == 0 {
		t.Fatalf("expected at least one decomposition")
	}

	ctx := Context{
		ConcealedTiles: concealed,
		Menzen:         true,
		WinningTile:    win,
		ByRon:          true,
		RoundWind:      1,
		SeatWind:       2,
		Rules:          DefaultOptions(),
	}
	win14, ok := EvaluateAll(decomps, ctx)
	if !ok {
		t.Fatalf("expected a valid win")
	}
	if win14.Han != 2 {
		t.Fatalf("Han = %d, want 2 (pinfu + tanyao)", win14.Han)
	}
	if win14.Fu.Total != 30 {
		t.Fatalf("Fu.Total = %d, want 30", win14.Fu.Total)
	}
	if win14.BasePoints != 480 {
		t.Fatalf("BasePoints = %d, want 480", win14.BasePoints)
	}

	pay := ComputePayments(win14.BasePoints, true, false)
	if pay.LoserPays != 2000 {
		t.Fatalf("LoserPays = %d, want 2000", pay.LoserPays)
	}
}

func TestKokushiYakuman(t *testing.T) {
	// Single-wait form: m1 is already paired before the win, so the
	// draw only completes the missing z7 singleton (not a 13-wait).
	concealed := tt("m1", "m1", "m9", "p1", "p9", "s1", "s9", "z1", "z2", "z3", "z4", "z5", "z6", "z7")
	win := tile.T(tile.Honor, 7)

	decomps := decompose.Enumerate(concealed, nil, win, false)
	ctx := Context{ConcealedTiles: concealed, Menzen: true, WinningTile: win, ByRon: false, Rules: DefaultOptions()}
	result, ok := EvaluateAll(decomps, ctx)
	if !ok {
		t.Fatalf("expected a valid kokushi win")
	}
	if result.YakumanUnits != 1 {
		t.Fatalf("YakumanUnits = %d, want 1", result.YakumanUnits)
	}
	if result.BasePoints != 8000 {
		t.Fatalf("BasePoints = %d, want 8000", result.BasePoints)
	}
}

func TestKokushiThirteenWaitDoublesYakuman(t *testing.T) {
	concealed := tt("m1", "m9", "p1", "p9", "s1", "s9", "z1", "z2", "z3", "z4", "z5", "z6", "z7", "m1")
	win := tile.T(tile.Man, 1)

	decomps := decompose.Enumerate(concealed, nil, win, false)
	ctx := Context{ConcealedTiles: concealed, Menzen: true, WinningTile: win, ByRon: false, Rules: DefaultOptions()}
	result, ok := EvaluateAll(decomps, ctx)
	if !ok {
		t.Fatalf("expected a valid kokushi win")
	}
	if result.YakumanUnits != 2 {
		t.Fatalf("YakumanUnits = %d, want 2 (13-wait double yakuman)", result.YakumanUnits)
	}
}

func TestChiitoiFixedFu(t *testing.T) {
	concealed := tt("m1", "m1", "m9", "m9", "p2", "p2", "p8", "p8", "s3", "s3", "s7", "s7", "z5", "z5")
	win := tile.T(tile.Honor, 5)
	decomps := decompose.Enumerate(concealed, nil, win, true)
	ctx := Context{ConcealedTiles: concealed, Menzen: true, WinningTile: win, ByRon: true, Rules: DefaultOptions()}
	result, ok := EvaluateAll(decomps, ctx)
	if !ok {
		t.Fatalf("expected a valid chiitoi win")
	}
	if result.Fu.Total != 25 {
		t.Fatalf("Fu.Total = %d, want 25", result.Fu.Total)
	}
	if result.Han < 2 {
		t.Fatalf("Han = %d, want at least 2 (chiitoi)", result.Han)
	}
}

func TestDoraCounting(t *testing.T) {
	tiles := tt("m2", "m3", "m4")
	indicators := tt("m1") // m1 -> dora is m2
	if got := countDora(tiles, indicators); got != 1 {
		t.Fatalf("countDora = %d, want 1", got)
	}
}

func TestDoraWindCycle(t *testing.T) {
	if got := doraTarget(tile.T(tile.Honor, 4)); got != (tile.Tile{Suit: tile.Honor, Num: 1}) {
		t.Fatalf("doraTarget(North) = %v, want East", got)
	}
	if got := doraTarget(tile.T(tile.Honor, 7)); got != (tile.Tile{Suit: tile.Honor, Num: 5}) {
		t.Fatalf("doraTarget(Red) = %v, want White", got)
	}
}
