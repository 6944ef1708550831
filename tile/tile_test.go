package tile

import "testing"

func TestValidTile(t *testing.T) {
	cases := []struct {
		tok   string
		valid bool
	}{
		{"m1", true}, {"m9", true}, {"m0", true},
		{"p5", true}, {"s0", true},
		{"z1", true}, {"z7", true}, {"z0", false}, {"z8", false},
		{"_", true},
		{"m", false}, {"mm", false}, {"m10", false}, {"", false},
	}
	for _, c := range cases {
		_, ok := ValidTile(c.tok)
		if ok != c.valid {
			t.Errorf("ValidTile(%q) = %v, want %v", c.tok, ok, c.valid)
		}
	}
}

func TestNextDora(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"m9", "m1", false},
		{"z4", "z1", false},
		{"z7", "z5", false},
		{"m0", "m6", false},
		{"z0", "", true},
	}
	for _, c := range cases {
		in, _ := ValidTile(c.in)
		got, err := NextDora(in)
		if c.wantErr {
			if err == nil {
				t.Errorf("NextDora(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NextDora(%q) unexpected error: %v", c.in, err)
		}
		if got.String() != c.want {
			t.Errorf("NextDora(%q) = %q, want %q", c.in, got.String(), c.want)
		}
	}
}

func TestDiscardTokenRoundTrip(t *testing.T) {
	cases := []string{"m5", "m5_", "m5*", "m5+", "p0_", "s3-"}
	for _, tok := range cases {
		d, ok := ParseDiscardToken(tok)
		if !ok {
			t.Fatalf("ParseDiscardToken(%q) failed", tok)
		}
		if got := d.String(); got != tok {
			t.Errorf("round-trip %q -> %q", tok, got)
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for key := 0; key < 34; key++ {
		tl := FromKey(key)
		if tl.Key() != key {
			t.Errorf("FromKey(%d).Key() = %d", key, tl.Key())
		}
	}
}
