package tile

import "testing"

func TestValidMeldCanonical(t *testing.T) {
	cases := []struct {
		tok       string
		wantValid bool
	}{
		{"z222=", true},  // pon of South, called from toimen
		{"m1112", false}, // four digits, no flag: not same number -> invalid ankan
		{"m1111", true},  // ankan
		{"m456-", true},  // chi, kamicha
		{"p0a", false},   // malformed
		{"z88=", false},  // honor digit out of range
	}
	for _, c := range cases {
		_, ok := ValidMeld(c.tok)
		if ok != c.wantValid {
			t.Errorf("ValidMeld(%q) = %v, want %v", c.tok, ok, c.wantValid)
		}
	}
}

func TestMeldRoundTrip(t *testing.T) {
	toks := []string{"z222=", "m1111", "m456-", "p111+", "s999="}
	for _, tok := range toks {
		canon, ok := ValidMeld(tok)
		if !ok {
			t.Fatalf("ValidMeld(%q) failed", tok)
		}
		if canon != tok {
			t.Errorf("canonical(%q) = %q", tok, canon)
		}
		canon2, ok := ValidMeld(canon)
		if !ok || canon2 != canon {
			t.Errorf("canonical(canonical(%q)) != canonical(%q)", tok, tok)
		}
	}
}

func TestKakanParsing(t *testing.T) {
	m, ok := ParseMeld("m111+1")
	if !ok {
		t.Fatalf("ParseMeld(m111+1) failed")
	}
	if m.Type != Kakan {
		t.Fatalf("expected Kakan, got %v", m.Type)
	}
	if m.TileCount() != 4 {
		t.Fatalf("expected 4 tiles, got %d", m.TileCount())
	}
}

func TestChiWithRedFive(t *testing.T) {
	m, ok := ParseMeld("m4-06") // red-5 man chi, called the 4 from kamicha
	if !ok {
		t.Fatalf("ParseMeld(m4-06) failed")
	}
	if m.Type != Chi {
		t.Fatalf("expected Chi, got %v", m.Type)
	}
	if !m.Tiles[1].IsRed() {
		t.Fatalf("expected middle tile to be red five, got %+v", m.Tiles)
	}
}

func TestAnkanIsConcealed(t *testing.T) {
	m, _ := ParseMeld("m1111")
	if !m.IsConcealed() {
		t.Fatalf("ankan must be concealed")
	}
	p, _ := ParseMeld("p111+")
	if p.IsConcealed() {
		t.Fatalf("pon must not be concealed")
	}
}
