package wall

import (
	"math/rand"
	"testing"
)

type mathRand struct{ r *rand.Rand }

func newMathRand(seed int64) RNG { return mathRand{rand.New(rand.NewSource(seed))} }

func (m mathRand) Float64() float64 { return m.r.Float64() }

func defaultRed() RedFiveCounts { return RedFiveCounts{Man: 1, Pin: 1, Sou: 1} }

func TestNewWallLiveCountAndDora(t *testing.T) {
	w, err := New(newMathRand(1), defaultRed(), true, true, true, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.LiveCount() != 122 {
		t.Fatalf("LiveCount() = %d, want 122", w.LiveCount())
	}
	if len(w.DoraIndicators()) != 1 {
		t.Fatalf("expected exactly one dora indicator initially")
	}
	if w.UraIndicators() != nil {
		t.Fatalf("ura must be nil before close()")
	}
}

func TestUraNilWhenDisabledEvenAfterClose(t *testing.T) {
	w, _ := New(newMathRand(2), defaultRed(), true, false, true, true)
	w.Close()
	if w.UraIndicators() != nil {
		t.Fatalf("ura_dora_enabled=false must keep ura nil after close")
	}
}

func TestUraRevealedAfterClose(t *testing.T) {
	w, _ := New(newMathRand(3), defaultRed(), true, true, true, true)
	w.Close()
	if len(w.UraIndicators()) != 1 {
		t.Fatalf("expected one ura indicator after close, matching dora count")
	}
}

func TestKanDrawRequiresRevealBetweenCalls(t *testing.T) {
	w, _ := New(newMathRand(4), defaultRed(), true, true, true, true)
	if _, err := w.KanDraw(); err != nil {
		t.Fatalf("first KanDraw: %v", err)
	}
	if _, err := w.KanDraw(); err == nil {
		t.Fatalf("expected second KanDraw to fail without a reveal")
	}
	if err := w.RevealKanDora(); err != nil {
		t.Fatalf("RevealKanDora: %v", err)
	}
	if _, err := w.KanDraw(); err != nil {
		t.Fatalf("KanDraw after reveal: %v", err)
	}
	if len(w.DoraIndicators()) != 2 {
		t.Fatalf("expected 2 dora indicators after one reveal, got %d", len(w.DoraIndicators()))
	}
}

func TestFourKansThenFifthFails(t *testing.T) {
	w, _ := New(newMathRand(5), defaultRed(), true, true, true, true)
	for i := 0; i < 4; i++ {
		if _, err := w.KanDraw(); err != nil {
			t.Fatalf("KanDraw #%d: %v", i, err)
		}
		if err := w.RevealKanDora(); err != nil {
			t.Fatalf("RevealKanDora #%d: %v", i, err)
		}
	}
	if _, err := w.KanDraw(); err == nil {
		t.Fatalf("expected 5th KanDraw to fail")
	}
}

func TestKanDrawWithKanDoraDisabledStillAdvances(t *testing.T) {
	w, _ := New(newMathRand(6), defaultRed(), false, true, true, true)
	if _, err := w.KanDraw(); err != nil {
		t.Fatalf("KanDraw: %v", err)
	}
	if err := w.RevealKanDora(); err != nil {
		t.Fatalf("RevealKanDora: %v", err)
	}
	if len(w.DoraIndicators()) != 1 {
		t.Fatalf("kan_dora_enabled=false must not add an indicator")
	}
	if _, err := w.KanDraw(); err != nil {
		t.Fatalf("second KanDraw should still be permitted: %v", err)
	}
}

func TestDrawFromClosedWallFails(t *testing.T) {
	w, _ := New(newMathRand(7), defaultRed(), true, true, true, true)
	w.Close()
	if _, err := w.Draw(); err == nil {
		t.Fatalf("expected draw from closed wall to fail")
	}
}

func TestDrawWhenExhaustedFails(t *testing.T) {
	w, _ := New(newMathRand(8), defaultRed(), true, true, true, true)
	for w.LiveCount() > 0 {
		if _, err := w.Draw(); err != nil {
			t.Fatalf("unexpected draw failure with %d live: %v", w.LiveCount(), err)
		}
	}
	if _, err := w.Draw(); err == nil {
		t.Fatalf("expected draw on exhausted wall to fail")
	}
}

func TestAuditShuffleStaysWithinChiSquareBound(t *testing.T) {
	seed := int64(100)
	newRNG := func() RNG {
		seed++
		return newMathRand(seed)
	}
	chiSquare, err := AuditShuffle(500, newRNG, defaultRed())
	if err != nil {
		t.Fatalf("AuditShuffle: %v", err)
	}
	// 7 degrees of freedom (8 buckets): a uniform shuffle should sit
	// comfortably under the 99.9% critical value (~24.3); a broken
	// shuffle (e.g. always drawing bucket 0) blows well past it.
	const chiSquareCriticalP999 = 24.3
	if chiSquare > chiSquareCriticalP999 {
		t.Fatalf("AuditShuffle chi-square = %v, want <= %v (shuffle looks non-uniform)", chiSquare, chiSquareCriticalP999)
	}
}

func TestAuditShuffleRejectsNonPositiveN(t *testing.T) {
	if _, err := AuditShuffle(0, func() RNG { return newMathRand(1) }, defaultRed()); err == nil {
		t.Fatalf("expected AuditShuffle(0, ...) to fail")
	}
}

func TestShuffleDeterminism(t *testing.T) {
	w1, _ := New(newMathRand(42), defaultRed(), true, true, true, true)
	w2, _ := New(newMathRand(42), defaultRed(), true, true, true, true)
	for i := 0; i < 10; i++ {
		t1, err1 := w1.Draw()
		t2, err2 := w2.Draw()
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected draw error: %v / %v", err1, err2)
		}
		if t1 != t2 {
			t.Fatalf("same seed produced divergent draws at step %d: %v != %v", i, t1, t2)
		}
	}
}
