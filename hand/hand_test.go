package hand

import (
	"testing"

	"riichi/tile"
)

func mustTiles(toks ...string) []tile.Tile {
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

func TestFromTilesAndTileCount(t *testing.T) {
	h, err := FromTiles(mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z1", "z1"))
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	if h.TileCount() != 13 {
		t.Fatalf("TileCount() = %d, want 13", h.TileCount())
	}
}

func TestDrawDiscardRoundTrip(t *testing.T) {
	h, err := FromTiles(mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z2", "z2", "z2"))
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	draw, _ := tile.ValidTile("z1")
	if err := h.Draw(draw); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if h.Pending() == nil || h.Pending().Kind != PendingDraw {
		t.Fatalf("expected pending draw")
	}
	s := h.String()
	h2, err := FromString(s)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	if h2.String() != s {
		t.Errorf("round-trip %q -> %q", s, h2.String())
	}
	if err := h.Discard(draw); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if h.Pending() != nil {
		t.Fatalf("expected no pending after discard")
	}
}

func TestHandStringSpecExample(t *testing.T) {
	// Hand m123p456s789z11,z222= (pon of S from toimen), then discard z1.
	concealed := mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z2", "z2")
	h, err := FromTiles(concealed)
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	pon, ok := tile.ParseMeld("z222=")
	if !ok {
		t.Fatalf("ParseMeld(z222=) failed")
	}
	if err := h.Call(pon); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if h.Menzen() {
		t.Fatalf("hand with an open pon must not be menzen")
	}
	if got := h.String(); got != "m123p456s789z11,z222=," {
		t.Errorf("String() = %q, want %q", got, "m123p456s789z11,z222=,")
	}
	if err := h.Discard(mustTiles("z1")[0]); err != nil {
		t.Fatalf("Discard after call: %v", err)
	}
}

func TestCallConsumesConcealedTiles(t *testing.T) {
	h, err := FromTiles(mustTiles("z2", "z2", "m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1"))
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	pon, _ := tile.ParseMeld("z222=")
	if err := h.Call(pon); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if h.ConcealedCount(mustTiles("z2")[0]) != 0 {
		t.Fatalf("pon should consume both concealed z2 tiles")
	}
	if h.Pending() == nil || h.Pending().Kind != PendingCall {
		t.Fatalf("expected pending call after Call")
	}
}

func TestAnkanRemovesFourTiles(t *testing.T) {
	h, err := FromTiles(mustTiles("m1", "m1", "m1", "m1", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z2"))
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	ankan, ok := tile.ParseMeld("m1111")
	if !ok {
		t.Fatalf("ParseMeld(m1111) failed")
	}
	if err := h.Kan(ankan); err != nil {
		t.Fatalf("Kan: %v", err)
	}
	if h.ConcealedCount(mustTiles("m1")[0]) != 0 {
		t.Fatalf("ankan should remove all four concealed m1")
	}
	if !h.Menzen() {
		t.Fatalf("ankan must not break menzen")
	}
}

func TestLegalDiscardsNilWithoutPending(t *testing.T) {
	h, _ := FromTiles(mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z1", "z2"))
	if h.LegalDiscards(false) != nil {
		t.Fatalf("expected nil legal discards before a draw")
	}
}

func TestLegalDiscardsAfterDraw(t *testing.T) {
	h, _ := FromTiles(mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z1", "z2"))
	draw, _ := tile.ValidTile("z3")
	if err := h.Draw(draw); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	discards := h.LegalDiscards(false)
	if len(discards) == 0 {
		t.Fatalf("expected legal discards after a draw")
	}
	found := false
	for _, d := range discards {
		if d == draw {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the drawn tile to be a legal (tsumogiri) discard")
	}
}

func TestLegalChiFromKamicha(t *testing.T) {
	h, _ := FromTiles(mustTiles("m3", "m5", "p1", "p1", "p1", "s2", "s3", "s4", "z1", "z1", "z1", "z2", "z3"))
	called, _ := tile.ValidTile("m4")
	melds := h.LegalChi(called, false)
	if len(melds) == 0 {
		t.Fatalf("expected a legal chi for m3-m4-m5")
	}
	for _, m := range melds {
		if m.Type != tile.Chi || m.Dir != tile.DirKamicha {
			t.Errorf("unexpected meld %+v", m)
		}
	}
}

func TestLegalPonForbiddenAfterRiichi(t *testing.T) {
	h, _ := FromTiles(mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s7", "s8", "s9", "z1", "z1", "z2", "z2"))
	draw, _ := tile.ValidTile("z3")
	if err := h.Draw(draw); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := h.Discard(draw); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	draw2, _ := tile.ValidTile("z4")
	if err := h.Draw(draw2); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := h.DeclareRiichi(); err != nil {
		t.Fatalf("DeclareRiichi: %v", err)
	}
	if err := h.Discard(draw2); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	called, _ := tile.ValidTile("z2")
	if melds := h.LegalPon(called); melds != nil {
		t.Errorf("expected pon to be forbidden after riichi, got %v", melds)
	}
}
