package tile

import (
	"fmt"
	"sort"
	"strings"
)

// MeldType enumerates the four call shapes from spec 3.2. Ankan is a
// concealed quad: it carries no direction flag, which is why a hand with
// only ankan calls is still considered menzen (spec 3.3).
type MeldType int

const (
	Chi MeldType = iota
	Pon
	Daiminkan
	Ankan
	Kakan
)

func (mt MeldType) String() string {
	switch mt {
	case Chi:
		return "chi"
	case Pon:
		return "pon"
	case Daiminkan:
		return "daiminkan"
	case Ankan:
		return "ankan"
	case Kakan:
		return "kakan"
	default:
		return "unknown"
	}
}

// Meld is a single call: a chi/pon/kan token decoded into its tiles.
type Meld struct {
	Type MeldType
	Suit byte
	// Tiles holds the meld's tiles in canonical order: 3 for chi/pon, 4
	// for the kan shapes.
	Tiles []Tile
	// CalledIndex is the index within Tiles of the tile taken from
	// another seat; -1 for ankan (nothing was called).
	CalledIndex int
	// Dir is the direction flag of the called tile; DirNone for ankan.
	Dir byte
	// AppendedIndex is set for Kakan: the index of the tile added to
	// the pre-existing pon to complete the added kan.
	AppendedIndex int
}

// sequenceValue returns the ordering value used to sort suited digits so
// that a red five (0) sorts immediately before its plain sibling (5).
func sequenceValue(d int8) int {
	if d == 0 {
		return 5 // same rank as 5 for adjacency checks
	}
	return int(d)
}

// digitSort orders digits ascending by rank, red-five before its plain
// sibling when both are present (canonicalization rule c).
func digitSort(ds []int8) {
	sort.SliceStable(ds, func(i, j int) bool {
		vi, vj := sequenceValue(ds[i]), sequenceValue(ds[j])
		if vi != vj {
			return vi < vj
		}
		return ds[i] < ds[j] // 0 (red) before 5
	})
}

// ValidMeld parses and canonicalizes a meld token. This is C1's
// valid_meld operation: it returns the canonical token string iff tok
// decodes to a structurally legal meld.
func ValidMeld(tok string) (string, bool) {
	m, ok := parseMeld(tok)
	if !ok {
		return "", false
	}
	return m.String(), true
}

// ParseMeld decodes a meld token without re-stringifying it.
func ParseMeld(tok string) (Meld, bool) { return parseMeld(tok) }

func parseMeld(tok string) (Meld, bool) {
	if len(tok) < 4 {
		return Meld{}, false
	}
	suit := tok[0]
	if suit != Man && suit != Pin && suit != Sou && suit != Honor {
		return Meld{}, false
	}

	var digitsBefore, digitsAfter []int8
	flagPos := -1
	dir := byte(DirNone)
	seenFlag := false

	for i := 1; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c >= '0' && c <= '9':
			d := int8(c - '0')
			if !seenFlag {
				digitsBefore = append(digitsBefore, d)
			} else {
				digitsAfter = append(digitsAfter, d)
			}
		case c == DirShimocha || c == DirToimen || c == DirKamicha:
			if seenFlag {
				return Meld{}, false // only one direction flag per token
			}
			seenFlag = true
			flagPos = len(digitsBefore) - 1
			dir = c
		default:
			return Meld{}, false
		}
	}
	for _, d := range digitsBefore {
		if !(Tile{Suit: suit, Num: d}).Valid() {
			return Meld{}, false
		}
	}
	for _, d := range digitsAfter {
		if !(Tile{Suit: suit, Num: d}).Valid() {
			return Meld{}, false
		}
	}

	total := len(digitsBefore) + len(digitsAfter)
	switch {
	case !seenFlag && total == 4:
		return buildAnkan(suit, digitsBefore)
	case seenFlag && len(digitsBefore) == 3 && len(digitsAfter) == 1:
		return buildKakan(suit, digitsBefore, flagPos, dir, digitsAfter[0])
	case seenFlag && len(digitsBefore) == 4 && len(digitsAfter) == 0:
		return buildDaiminkan(suit, digitsBefore, flagPos, dir)
	case seenFlag && total == 3:
		// The flag may fall after any of the 3 digits (chi's called tile
		// keeps its numeric position; pon's is re-sorted to the end).
		ds := append(append([]int8(nil), digitsBefore...), digitsAfter...)
		return buildChiOrPon(suit, ds, flagPos, dir)
	default:
		return Meld{}, false
	}
}

func sameNumber(ds []int8) bool {
	for _, d := range ds {
		if sequenceValue(d) != sequenceValue(ds[0]) {
			return false
		}
	}
	return true
}

func buildAnkan(suit byte, ds []int8) (Meld, bool) {
	if !sameNumber(ds) {
		return Meld{}, false
	}
	tiles := make([]Tile, 4)
	sorted := append([]int8(nil), ds...)
	digitSort(sorted)
	for i, d := range sorted {
		tiles[i] = Tile{Suit: suit, Num: d}
	}
	return Meld{Type: Ankan, Suit: suit, Tiles: tiles, CalledIndex: -1, Dir: DirNone}, true
}

// splitCalled pulls the digit at pos out of ds and sorts the remainder
// ascending (red-five before its plain sibling, rule c). The called
// digit always canonicalizes to the last slot of its same-value group
// (rule a): for an identical-value group there is nothing else to key
// the position on, and this matches the worked example in spec 4.2
// ("z222=": pon, flag after the final digit).
func splitCalled(ds []int8, pos int) (remainder []int8, called int8) {
	called = ds[pos]
	remainder = make([]int8, 0, len(ds)-1)
	for i, d := range ds {
		if i == pos {
			continue
		}
		remainder = append(remainder, d)
	}
	digitSort(remainder)
	return remainder, called
}

func buildDaiminkan(suit byte, ds []int8, flagPos int, dir byte) (Meld, bool) {
	if !sameNumber(ds) || flagPos < 0 || flagPos >= len(ds) {
		return Meld{}, false
	}
	remainder, called := splitCalled(ds, flagPos)
	tiles := make([]Tile, 0, 4)
	for _, d := range remainder {
		tiles = append(tiles, Tile{Suit: suit, Num: d})
	}
	tiles = append(tiles, Tile{Suit: suit, Num: called})
	return Meld{Type: Daiminkan, Suit: suit, Tiles: tiles, CalledIndex: len(tiles) - 1, Dir: dir}, true
}

func buildKakan(suit byte, ponDigits []int8, flagPos int, dir byte, appended int8) (Meld, bool) {
	if !sameNumber(ponDigits) || flagPos < 0 || flagPos >= len(ponDigits) {
		return Meld{}, false
	}
	if sequenceValue(appended) != sequenceValue(ponDigits[0]) {
		return Meld{}, false // the appended tile must complete the same quad
	}
	remainder, called := splitCalled(ponDigits, flagPos)
	tiles := make([]Tile, 0, 4)
	for _, d := range remainder {
		tiles = append(tiles, Tile{Suit: suit, Num: d})
	}
	tiles = append(tiles, Tile{Suit: suit, Num: called})
	calledIdx := len(tiles) - 1
	tiles = append(tiles, Tile{Suit: suit, Num: appended})
	return Meld{
		Type: Kakan, Suit: suit, Tiles: tiles,
		CalledIndex: calledIdx, Dir: dir, AppendedIndex: len(tiles) - 1,
	}, true
}

func buildChiOrPon(suit byte, ds []int8, flagPos int, dir byte) (Meld, bool) {
	if flagPos < 0 || flagPos >= len(ds) {
		return Meld{}, false
	}
	if sameNumber(ds) {
		remainder, called := splitCalled(ds, flagPos)
		tiles := make([]Tile, 0, 3)
		for _, d := range remainder {
			tiles = append(tiles, Tile{Suit: suit, Num: d})
		}
		tiles = append(tiles, Tile{Suit: suit, Num: called})
		return Meld{Type: Pon, Suit: suit, Tiles: tiles, CalledIndex: len(tiles) - 1, Dir: dir}, true
	}

	// Chi: honors can never form a sequence.
	if suit == Honor {
		return Meld{}, false
	}
	values := make([]int, 3)
	for i, d := range ds {
		values[i] = sequenceValue(d)
	}
	sortedVals := append([]int(nil), values...)
	sort.Ints(sortedVals)
	if sortedVals[0]+1 != sortedVals[1] || sortedVals[1]+1 != sortedVals[2] {
		return Meld{}, false
	}
	if sortedVals[2] > 9 {
		return Meld{}, false
	}
	// Rebuild ascending digits preserving which was red (a run has three
	// distinct sequence values, so each maps to exactly one input digit).
	tiles := make([]Tile, 3)
	calledIdx := -1
	for pos, v := range sortedVals {
		for i, d := range ds {
			if sequenceValue(d) == v {
				tiles[pos] = Tile{Suit: suit, Num: d}
				if i == flagPos {
					calledIdx = pos
				}
				break
			}
		}
	}
	return Meld{Type: Chi, Suit: suit, Tiles: tiles, CalledIndex: calledIdx, Dir: dir}, true
}

// String renders the canonical meld token (round-trips through
// ParseMeld).
func (m Meld) String() string {
	var b strings.Builder
	b.WriteByte(m.Suit)
	switch m.Type {
	case Ankan:
		for _, t := range m.Tiles {
			fmt.Fprintf(&b, "%d", t.Num)
		}
	case Daiminkan, Chi, Pon:
		for i, t := range m.Tiles {
			fmt.Fprintf(&b, "%d", t.Num)
			if i == m.CalledIndex {
				b.WriteByte(m.Dir)
			}
		}
	case Kakan:
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&b, "%d", m.Tiles[i].Num)
			if i == m.CalledIndex {
				b.WriteByte(m.Dir)
			}
		}
		fmt.Fprintf(&b, "%d", m.Tiles[3].Num)
	}
	return b.String()
}

// IsConcealed reports whether the meld counts toward menzen status:
// ankan only (called chi/pon/open-kan break menzen; kakan started life
// as an open pon and stays open).
func (m Meld) IsConcealed() bool { return m.Type == Ankan }

// TileCount is 3 for chi/pon, 4 for the kan shapes.
func (m Meld) TileCount() int { return len(m.Tiles) }
