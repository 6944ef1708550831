package discard

import (
	"testing"

	"riichi/tile"
)

func tok(s string) tile.DiscardToken {
	d, ok := tile.ParseDiscardToken(s)
	if !ok {
		panic("bad discard token " + s)
	}
	return d
}

func TestDiscardAndFuriten(t *testing.T) {
	p := New()
	if err := p.Discard(tok("m5_")); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if !p.Contains(tok("m5").Tile) {
		t.Errorf("expected furiten hit on m5")
	}
	redFive, _ := tile.ValidTile("m0")
	if !p.Contains(redFive) {
		t.Errorf("red five should normalize to plain five for furiten")
	}
	if p.Contains(tok("p5").Tile) {
		t.Errorf("unexpected furiten hit on p5")
	}
}

func TestMarkCalledOnlyAffectsLastDiscard(t *testing.T) {
	p := New()
	_ = p.Discard(tok("m5_"))
	_ = p.Discard(tok("p3"))
	if err := p.MarkCalled(tile.DirKamicha); err != nil {
		t.Fatalf("MarkCalled: %v", err)
	}
	entries := p.Entries()
	if entries[0].Dir != tile.DirNone {
		t.Errorf("first discard should be untouched")
	}
	if entries[1].Dir != tile.DirKamicha {
		t.Errorf("expected last discard marked kamicha")
	}
}

func TestDiscardStripsIncomingDirFlag(t *testing.T) {
	p := New()
	if err := p.Discard(tok("m5-")); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	last, _ := p.Last()
	if last.Dir != tile.DirNone {
		t.Errorf("a fresh discard must not carry a call-origin marker")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := New()
	_ = p.Discard(tok("m5_"))
	c := p.Clone()
	_ = p.Discard(tok("p9"))
	if c.Len() != 1 {
		t.Errorf("clone should not observe later mutations")
	}
	if c.Contains(tok("p9").Tile) {
		t.Errorf("clone should not see p9")
	}
}
