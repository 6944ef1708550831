package tile

import "strings"

// DiscardToken is a tile token as it appears in a discard pile: the bare
// tile plus the optional trailing markers from spec 3.1 — "_" for
// tsumogiri (discarded immediately after the draw that produced it), "*"
// for a riichi-declaring discard, and a direction flag noting the seat
// that later called it.
type DiscardToken struct {
	Tile      Tile
	Tsumogiri bool
	Riichi    bool
	Dir       byte
}

func (d DiscardToken) String() string {
	var b strings.Builder
	b.WriteString(d.Tile.String())
	if d.Tsumogiri {
		b.WriteByte('_')
	}
	if d.Riichi {
		b.WriteByte('*')
	}
	if d.Dir != DirNone {
		b.WriteByte(d.Dir)
	}
	return b.String()
}

// ParseDiscardToken parses a discard-pile token, stripping its trailing
// markers in order (tsumogiri, riichi, called-from direction).
func ParseDiscardToken(tok string) (DiscardToken, bool) {
	if tok == "" {
		return DiscardToken{}, false
	}
	var d DiscardToken
	rest := tok
	if n := len(rest); n > 0 {
		switch rest[n-1] {
		case DirShimocha, DirToimen, DirKamicha:
			d.Dir = rest[n-1]
			rest = rest[:n-1]
		}
	}
	if n := len(rest); n > 0 && rest[n-1] == '*' {
		d.Riichi = true
		rest = rest[:n-1]
	}
	if n := len(rest); n > 0 && rest[n-1] == '_' {
		d.Tsumogiri = true
		rest = rest[:n-1]
	}
	t, ok := ValidTile(rest)
	if !ok {
		return DiscardToken{}, false
	}
	d.Tile = t
	return d, true
}
